package obs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		out = append(out, entry)
	}
	return out
}

func TestFrom_AddsCorrelation(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutputForTests(&buf)
	defer restore()

	ctx := WithCorrelation(context.Background(), Correlation{RunID: "run-1", Test: "TestLogin"})
	ctx = WithCorrelation(ctx, Correlation{RequestID: "req-9"})
	From(ctx).Info("hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "run-1", lines[0]["run_id"])
	assert.Equal(t, "TestLogin", lines[0]["test"])
	assert.Equal(t, "req-9", lines[0]["request_id"])
	assert.True(t, strings.HasSuffix(lines[0]["time"].(string), "Z"), "time should be UTC")
}

func TestPkg_TagsPackage(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutputForTests(&buf)
	defer restore()

	Pkg("pages").Debug("navigate", "url", "http://x/register.html")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "pages", lines[0]["pkg"])
	assert.Equal(t, "navigate", lines[0]["msg"])
}

func TestMiddleware_PropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutputForTests(&buf)
	defer restore()

	var seen string
	h := HTTPMiddleware("fakeapp", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CorrelationFromContext(r.Context()).RequestID
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	req.Header.Set("X-Request-Id", "req-abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-abc", seen)
	assert.Equal(t, "req-abc", rec.Header().Get("X-Request-Id"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "http_access", lines[0]["msg"])
	assert.EqualValues(t, http.StatusTeapot, lines[0]["status"])
	assert.EqualValues(t, len("short and stout"), lines[0]["resp_bytes"])
	assert.Equal(t, "page", lines[0]["kind"])
	assert.Equal(t, "DEBUG", lines[0]["level"])
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	h := HTTPMiddleware("fakeapp", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, strings.HasPrefix(rec.Header().Get("X-Request-Id"), "req-"))
}

func TestMiddleware_APICallsLogAtInfo(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutputForTests(&buf)
	defer restore()

	h := HTTPMiddleware("fakeapp", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/login", nil))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "api", lines[0]["kind"])
	assert.EqualValues(t, http.StatusOK, lines[0]["status"])
}

func TestRouteKind(t *testing.T) {
	cases := map[string]string{
		"/":                 "page",
		"/register.html":    "page",
		"/api/register":     "api",
		"/styles.css":       "asset",
		"/app.js":           "asset",
		"/apis/not-the-api": "asset",
	}
	for path, want := range cases {
		assert.Equal(t, want, RouteKind(path), path)
	}
}
