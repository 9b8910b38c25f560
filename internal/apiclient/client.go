// Package apiclient issues direct JSON requests to the application's
// /api/register and /api/login endpoints, bypassing the browser.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kuitang/qa-suite/internal/errs"
	"github.com/kuitang/qa-suite/internal/logutil"
	"github.com/kuitang/qa-suite/internal/obs"
	"github.com/kuitang/qa-suite/internal/testdata"
)

const maxLoggedBody = 512

// Client talks to the application's API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRateLimit throttles requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New creates a client for the API rooted at baseURL, e.g.
// "https://qa-test-web-app.vercel.app/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client posts to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Registration is the JSON body accepted by /api/register.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Password  string `json:"password"`
}

// RegistrationFor converts a form record to an API payload.
func RegistrationFor(u testdata.User) Registration {
	return Registration{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		City:      u.City,
		ZipCode:   u.ZipCode,
		Password:  u.Password,
	}
}

// Credentials is the JSON body accepted by /api/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register posts a full registration.
func (c *Client) Register(ctx context.Context, reg Registration) (*Response, error) {
	return c.PostJSON(ctx, testdata.RegisterEndpoint, reg)
}

// Login posts credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*Response, error) {
	return c.PostJSON(ctx, testdata.LoginEndpoint, Credentials{Email: email, Password: password})
}

// PostJSON marshals payload and posts it to path under the API root. Any
// HTTP status is returned as a Response; only transport and encoding
// failures are errors.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidArgument, "encode request body", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errs.Wrap(errs.Unavailable, "rate limiter", err)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(errs.InvalidArgument, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	requestID := obs.NewRequestID()
	req.Header.Set("X-Request-Id", requestID)

	log := obs.From(obs.WithCorrelation(ctx, obs.Correlation{RequestID: requestID})).With("pkg", "apiclient")
	log.Debug("api_request",
		"method", req.Method,
		"url", url,
		"body", logutil.FormatBodyForLog("application/json", body, maxLoggedBody),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.Unavailable, fmt.Sprintf("POST %s", url), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.Unavailable, fmt.Sprintf("read response from %s", url), err)
	}

	log.Debug("api_response",
		"status", resp.StatusCode,
		"dur_ms", float64(time.Since(start).Microseconds())/1000.0,
		"body", logutil.FormatBodyForLog(resp.Header.Get("Content-Type"), respBody, maxLoggedBody),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
