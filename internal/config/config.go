// Package config loads suite settings from environment variables, optionally
// seeded from a .env file in the working directory, validates them, and
// provides defaults that target the deployed QA application.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the deployed application under test.
	DefaultBaseURL = "https://qa-test-web-app.vercel.app"

	// RunIDEnv carries a run id from qareport into the test binary so
	// logs and the report correlate.
	RunIDEnv = "QA_RUN_ID"

	defaultRegion = "auto"
)

// Config holds suite configuration.
type Config struct {
	// Target application
	BaseURL    string // QA_BASE_URL
	APIBaseURL string // QA_API_BASE_URL, defaults to BaseURL + "/api"

	// Browser
	Browser        string  // QA_BROWSER: chromium, firefox or webkit
	Headless       bool    // HEADLESS=false shows the browser window
	SlowMoMS       float64 // QA_SLOW_MO_MS
	DefaultTimeout time.Duration
	URLWaitTimeout time.Duration
	SettleDelay    time.Duration // pause after form submissions and clicks

	// Direct API calls
	APIRequestsPerSecond float64
	APIBurst             int

	// Reports
	ReportDir string

	// Report archive (S3 compatible, optional)
	ReportBucket       string // REPORT_S3_BUCKET
	AWSEndpointS3      string // AWS_ENDPOINT_URL_S3
	AWSRegion          string // AWS_REGION
	AWSAccessKeyID     string // AWS_ACCESS_KEY_ID
	AWSSecretAccessKey string // AWS_SECRET_ACCESS_KEY
	ReportPublicURL    string // REPORT_PUBLIC_URL
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// ParseFlags parses the stand-in server's CLI flags.
func ParseFlags() (addr string) {
	flag.StringVar(&addr, "addr", "", "Listen address (default :8080, overrides LISTEN_ADDR env var)")
	flag.Parse()
	if addr == "" {
		addr = getEnvOrDefault("LISTEN_ADDR", ":8080")
	}
	return addr
}

// LoadConfig reads a .env file if one exists, then loads configuration from
// environment variables. Variables already set in the environment win over
// the file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv loads configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := Default()

	cfg.BaseURL = strings.TrimRight(getEnvOrDefault("QA_BASE_URL", cfg.BaseURL), "/")
	cfg.APIBaseURL = strings.TrimRight(getEnvOrDefault("QA_API_BASE_URL", cfg.BaseURL+"/api"), "/")

	cfg.Browser = strings.ToLower(getEnvOrDefault("QA_BROWSER", cfg.Browser))
	cfg.Headless = parseBoolOrDefault("HEADLESS", cfg.Headless)
	cfg.SlowMoMS = parseFloat64OrDefault("QA_SLOW_MO_MS", cfg.SlowMoMS)
	cfg.DefaultTimeout = parseDurationOrDefault("QA_DEFAULT_TIMEOUT", cfg.DefaultTimeout)
	cfg.URLWaitTimeout = parseDurationOrDefault("QA_URL_WAIT_TIMEOUT", cfg.URLWaitTimeout)
	cfg.SettleDelay = parseDurationOrDefault("QA_SETTLE_DELAY", cfg.SettleDelay)

	cfg.APIRequestsPerSecond = parseFloat64OrDefault("QA_API_RPS", cfg.APIRequestsPerSecond)
	cfg.APIBurst = parseIntOrDefault("QA_API_BURST", cfg.APIBurst)

	cfg.ReportDir = getEnvOrDefault("QA_REPORT_DIR", cfg.ReportDir)

	cfg.ReportBucket = getEnvOrDefault("REPORT_S3_BUCKET", "")
	cfg.AWSEndpointS3 = getEnvOrDefault("AWS_ENDPOINT_URL_S3", "")
	cfg.AWSRegion = getEnvOrDefault("AWS_REGION", defaultRegion)
	cfg.AWSAccessKeyID = getEnvOrDefault("AWS_ACCESS_KEY_ID", "")
	cfg.AWSSecretAccessKey = getEnvOrDefault("AWS_SECRET_ACCESS_KEY", "")
	cfg.ReportPublicURL = getEnvOrDefault("REPORT_PUBLIC_URL", "")
	if cfg.ReportPublicURL == "" && cfg.AWSEndpointS3 != "" && cfg.ReportBucket != "" {
		cfg.ReportPublicURL = strings.TrimRight(cfg.AWSEndpointS3, "/") + "/" + cfg.ReportBucket
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no variables are set.
func Default() *Config {
	return &Config{
		BaseURL:              DefaultBaseURL,
		APIBaseURL:           DefaultBaseURL + "/api",
		Browser:              "chromium",
		Headless:             true,
		DefaultTimeout:       5 * time.Second,
		URLWaitTimeout:       10 * time.Second,
		SettleDelay:          500 * time.Millisecond,
		APIRequestsPerSecond: 5,
		APIBurst:             5,
		ReportDir:            "reports",
		AWSRegion:            defaultRegion,
	}
}

// ForBaseURL returns a copy of c aimed at another deployment of the application.
func (c *Config) ForBaseURL(baseURL string) *Config {
	out := *c
	out.BaseURL = strings.TrimRight(baseURL, "/")
	out.APIBaseURL = out.BaseURL + "/api"
	return &out
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	if err := validateHTTPURL(c.BaseURL); err != nil {
		errs = append(errs, "QA_BASE_URL "+err.Error())
	}
	if err := validateHTTPURL(c.APIBaseURL); err != nil {
		errs = append(errs, "QA_API_BASE_URL "+err.Error())
	}

	switch c.Browser {
	case "chromium", "firefox", "webkit":
	default:
		errs = append(errs, fmt.Sprintf("QA_BROWSER must be chromium, firefox or webkit (got %q)", c.Browser))
	}

	if c.DefaultTimeout <= 0 {
		errs = append(errs, "QA_DEFAULT_TIMEOUT must be positive")
	}
	if c.URLWaitTimeout <= 0 {
		errs = append(errs, "QA_URL_WAIT_TIMEOUT must be positive")
	}
	if c.SettleDelay < 0 {
		errs = append(errs, "QA_SETTLE_DELAY must not be negative")
	}
	if c.SlowMoMS < 0 {
		errs = append(errs, "QA_SLOW_MO_MS must not be negative")
	}
	if c.APIRequestsPerSecond <= 0 {
		errs = append(errs, "QA_API_RPS must be positive")
	}
	if c.APIBurst <= 0 {
		errs = append(errs, "QA_API_BURST must be positive")
	}
	if c.ReportDir == "" {
		errs = append(errs, "QA_REPORT_DIR must not be empty")
	}

	// Archive credentials are only needed once a bucket is named.
	if c.ReportBucket != "" {
		if c.AWSAccessKeyID == "" {
			errs = append(errs, "AWS_ACCESS_KEY_ID is required when REPORT_S3_BUCKET is set")
		}
		if c.AWSSecretAccessKey == "" {
			errs = append(errs, "AWS_SECRET_ACCESS_KEY is required when REPORT_S3_BUCKET is set")
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ArchiveEnabled reports whether generated reports should be uploaded.
func (c *Config) ArchiveEnabled() bool {
	return c.ReportBucket != ""
}

// IsLocal reports whether the suite targets a locally running application.
func (c *Config) IsLocal() bool {
	return strings.HasPrefix(c.BaseURL, "http://localhost") ||
		strings.HasPrefix(c.BaseURL, "http://127.0.0.1")
}

// PrintStartupSummary prints a human-readable summary of the configuration to stderr.
func (c *Config) PrintStartupSummary() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "qa suite configuration")
	fmt.Fprintf(os.Stderr, "  Target:  %s\n", c.BaseURL)
	fmt.Fprintf(os.Stderr, "  API:     %s (%.1f req/s)\n", c.APIBaseURL, c.APIRequestsPerSecond)
	fmt.Fprintf(os.Stderr, "  Browser: %s (headless=%t)\n", c.Browser, c.Headless)
	fmt.Fprintf(os.Stderr, "  Reports: %s\n", c.ReportDir)
	if c.ArchiveEnabled() {
		fmt.Fprintf(os.Stderr, "  Archive: s3://%s\n", c.ReportBucket)
	}
	fmt.Fprintln(os.Stderr, "")
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("is not a valid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host (got %q)", raw)
	}
	return nil
}

// Helper functions for parsing environment variables

func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseFloat64OrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// MustLoadConfig loads configuration and panics if validation fails.
func MustLoadConfig() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			panic(fmt.Sprintf("Configuration validation failed:\n  - %s", strings.Join(validationErr.Errors, "\n  - ")))
		}
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	return cfg
}
