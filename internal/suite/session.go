package suite

import (
	"strings"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/kuitang/qa-suite/internal/logutil"
	"github.com/kuitang/qa-suite/internal/obs"
	"github.com/kuitang/qa-suite/internal/pages"
	"github.com/kuitang/qa-suite/internal/testdata"
)

const maxLoggedConsole = 300

// ConsoleMessage is one browser console entry.
type ConsoleMessage struct {
	Type string
	Text string
}

// Session is one isolated browser context with a single page. Storage and
// cookies never leak between sessions.
type Session struct {
	env     *Env
	context playwright.BrowserContext
	page    playwright.Page

	mu      sync.Mutex
	console []ConsoleMessage
}

// SessionOption adjusts the browser context before it is created.
type SessionOption func(*playwright.BrowserNewContextOptions)

// WithViewport sizes the page to v.
func WithViewport(v testdata.Viewport) SessionOption {
	return func(o *playwright.BrowserNewContextOptions) {
		o.Viewport = &playwright.Size{Width: v.Width, Height: v.Height}
	}
}

// NewSession opens a fresh context and page. Both are closed when the test
// ends; on failure the captured console output is logged first.
func (e *Env) NewSession(t *testing.T, opts ...SessionOption) *Session {
	t.Helper()

	options := playwright.BrowserNewContextOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	bctx, err := e.browser.NewContext(options)
	require.NoError(t, err, "create browser context")
	timeoutMS := float64(e.Config.DefaultTimeout.Milliseconds())
	bctx.SetDefaultTimeout(timeoutMS)
	bctx.SetDefaultNavigationTimeout(timeoutMS)

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		t.Fatalf("could not create page: %v", err)
	}

	s := &Session{env: e, context: bctx, page: page}
	log := obs.From(e.Context(t)).With("pkg", "suite")
	page.OnConsole(func(msg playwright.ConsoleMessage) {
		entry := ConsoleMessage{Type: msg.Type(), Text: msg.Text()}
		s.mu.Lock()
		s.console = append(s.console, entry)
		s.mu.Unlock()
		log.Debug("browser_console", "type", entry.Type, "text", logutil.TruncateForLog(entry.Text, maxLoggedConsole))
	})

	t.Cleanup(func() {
		if t.Failed() {
			for _, m := range s.ConsoleMessages() {
				t.Logf("console.%s: %s", m.Type, m.Text)
			}
		}
		_ = bctx.Close()
	})
	return s
}

// Page exposes the raw Playwright page.
func (s *Session) Page() playwright.Page {
	return s.page
}

// Env returns the environment the session was opened from.
func (s *Session) Env() *Env {
	return s.env
}

// RegisterPage opens the registration form.
func (s *Session) RegisterPage(t *testing.T) *pages.RegisterPage {
	t.Helper()
	p := pages.NewRegisterPage(s.page, s.env.Site)
	require.NoError(t, p.Open(), "open registration page")
	return p
}

// LoginPage opens the login page.
func (s *Session) LoginPage(t *testing.T) *pages.LoginPage {
	t.Helper()
	p := pages.NewLoginPage(s.page, s.env.Site)
	require.NoError(t, p.Open(), "open login page")
	return p
}

// ForgotPasswordPage opens the password reset form.
func (s *Session) ForgotPasswordPage(t *testing.T) *pages.ForgotPasswordPage {
	t.Helper()
	p := pages.NewForgotPasswordPage(s.page, s.env.Site)
	require.NoError(t, p.Open(), "open forgot password page")
	return p
}

// DashboardPage wraps the session's page without navigating, since the
// dashboard is normally reached through a login redirect.
func (s *Session) DashboardPage() *pages.DashboardPage {
	return pages.NewDashboardPage(s.page, s.env.Site)
}

// SetViewport resizes the page in place.
func (s *Session) SetViewport(t *testing.T, v testdata.Viewport) {
	t.Helper()
	require.NoError(t, s.page.SetViewportSize(v.Width, v.Height), "resize to %s", v.Name)
}

// ConsoleMessages returns a copy of everything logged to the console so far.
func (s *Session) ConsoleMessages() []ConsoleMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ConsoleMessage(nil), s.console...)
}

// ConsoleContains reports whether any console entry contains substr.
func (s *Session) ConsoleContains(substr string) bool {
	return lo.ContainsBy(s.ConsoleMessages(), func(m ConsoleMessage) bool {
		return strings.Contains(m.Text, substr)
	})
}
