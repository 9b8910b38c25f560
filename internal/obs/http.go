package obs

import (
	"net/http"
	"strings"
	"time"
)

// statusRecorder remembers what a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += int64(n)
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// RouteKind classifies a request path for access logs: "api" for the JSON
// endpoints, "page" for HTML documents and "asset" for everything else.
func RouteKind(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/"):
		return "api"
	case path == "/" || strings.HasSuffix(path, ".html"):
		return "page"
	default:
		return "asset"
	}
}

// HTTPMiddleware tags each request with an X-Request-Id, echoing the
// caller's when present, and logs one http_access event when it completes.
// API calls log at info so a suite run shows the traffic it generated;
// pages and assets log at debug.
func HTTPMiddleware(pkg string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if requestID == "" {
			requestID = NewRequestID()
		}
		w.Header().Set("X-Request-Id", requestID)
		ctx := WithCorrelation(r.Context(), Correlation{RequestID: requestID})

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(ctx))
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		kind := RouteKind(r.URL.Path)
		log := From(ctx).With("pkg", pkg).Debug
		if kind == "api" {
			log = From(ctx).With("pkg", pkg).Info
		}
		log("http_access",
			"method", r.Method,
			"path", r.URL.Path,
			"kind", kind,
			"status", rec.status,
			"dur_ms", float64(time.Since(start).Microseconds())/1000.0,
			"resp_bytes", rec.bytes,
		)
	})
}
