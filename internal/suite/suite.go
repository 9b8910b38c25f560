// Package suite wires the page objects to a running browser. It owns one
// Playwright driver and one browser per test binary, hands every test a
// fresh browser context, and provides the registered-user and
// authenticated-dashboard fixtures the scenarios build on.
package suite

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/kuitang/qa-suite/internal/apiclient"
	"github.com/kuitang/qa-suite/internal/config"
	"github.com/kuitang/qa-suite/internal/fakeapp"
	"github.com/kuitang/qa-suite/internal/obs"
	"github.com/kuitang/qa-suite/internal/pages"
)

var (
	browserMu     sync.Mutex
	sharedPW      *playwright.Playwright
	sharedBrowser playwright.Browser
	launchErr     error

	configOnce sync.Once
	sharedCfg  *config.Config
	configErr  error

	runID = initialRunID()
)

// Env is what a test needs to reach the application: its configuration, the
// page-object site derived from it, and the shared browser.
type Env struct {
	Config *config.Config
	Site   pages.Site

	browser playwright.Browser
}

func initialRunID() string {
	if id := strings.TrimSpace(os.Getenv(config.RunIDEnv)); id != "" {
		return id
	}
	return uuid.NewString()
}

// RunID identifies this test binary's run in logs and reports.
func RunID() string {
	return runID
}

// Setup returns an environment aimed at the configured application. The
// test is skipped in -short mode or when no browser can be launched.
func Setup(t *testing.T) *Env {
	t.Helper()

	configOnce.Do(func() {
		sharedCfg, configErr = config.LoadConfig()
	})
	if configErr != nil {
		t.Fatalf("load suite configuration: %v", configErr)
	}
	return New(t, sharedCfg)
}

// New returns an environment for cfg backed by the shared browser.
func New(t *testing.T, cfg *config.Config) *Env {
	t.Helper()

	if testing.Short() {
		t.Skip("browser scenarios are skipped in -short mode")
	}
	browser := launchBrowser(t, cfg)
	return &Env{
		Config:  cfg,
		Site:    pages.Site{BaseURL: cfg.BaseURL, SettleDelay: cfg.SettleDelay},
		browser: browser,
	}
}

// LocalEnv starts the stand-in application on a loopback port and returns
// an environment aimed at it. The server stops when the test ends.
func LocalEnv(t *testing.T) *Env {
	t.Helper()

	srv := httptest.NewServer(fakeapp.New().Handler())
	t.Cleanup(srv.Close)
	return New(t, config.Default().ForBaseURL(srv.URL))
}

func launchBrowser(t *testing.T, cfg *config.Config) playwright.Browser {
	t.Helper()

	browserMu.Lock()
	defer browserMu.Unlock()

	if sharedBrowser != nil {
		return sharedBrowser
	}
	if launchErr != nil {
		t.Skip("Browser not available:", launchErr)
	}

	pw, err := playwright.Run()
	if err != nil {
		launchErr = err
		t.Skip("Playwright not available:", err)
	}

	var browserType playwright.BrowserType
	switch cfg.Browser {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(cfg.SlowMoMS),
	})
	if err != nil {
		_ = pw.Stop()
		launchErr = err
		t.Skip("Could not launch browser:", err)
	}

	obs.Pkg("suite").Info("browser_launched",
		"browser", cfg.Browser,
		"version", browser.Version(),
		"headless", cfg.Headless,
		"run_id", runID,
	)
	sharedPW = pw
	sharedBrowser = browser
	return browser
}

// Shutdown closes the shared browser. Call it from TestMain after m.Run.
func Shutdown() {
	browserMu.Lock()
	defer browserMu.Unlock()

	if sharedBrowser != nil {
		_ = sharedBrowser.Close()
		sharedBrowser = nil
	}
	if sharedPW != nil {
		_ = sharedPW.Stop()
		sharedPW = nil
	}
	launchErr = nil
}

// Context returns a context carrying the run and test correlation ids.
func (e *Env) Context(t *testing.T) context.Context {
	return obs.WithCorrelation(t.Context(), obs.Correlation{RunID: runID, Test: t.Name()})
}

// API returns a rate-limited client for the application's JSON endpoints.
func (e *Env) API() *apiclient.Client {
	return apiclient.New(e.Config.APIBaseURL,
		apiclient.WithRateLimit(e.Config.APIRequestsPerSecond, e.Config.APIBurst))
}
