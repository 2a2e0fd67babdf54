package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-chi/chi/v5"
)

var durationBuckets = metrics.ExponentialBuckets(1e-3, 5, 6)

// Metrics collects per-route request counters and latency histograms.
type Metrics struct {
	set *metrics.Set
}

// NewMetrics creates an empty metrics set for the router.
func NewMetrics() *Metrics {
	return &Metrics{set: metrics.NewSet()}
}

func (m *Metrics) observe(method, route string, status int, start time.Time) {
	labels := fmt.Sprintf(`{method=%q,path=%q,status="%d"}`, method, route, status)
	m.set.GetOrCreateCounter(`http_requests_total` + labels).Inc()
	m.set.GetOrCreatePrometheusHistogramExt(`http_request_duration_seconds`+labels, durationBuckets).UpdateDuration(start)
}

// ServeHTTP writes the collected metrics plus process metrics in Prometheus text format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	m.set.WritePrometheus(w)
	metrics.WriteProcessMetrics(w)
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController (Go 1.20+).
func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }

// Flush implements http.Flusher for http.FileServer.
func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// RequestLogger returns middleware that logs each HTTP request and, when m
// is non-nil, records it under the matched route pattern.
func RequestLogger(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(sr, r)
			slog.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", sr.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)
			if m != nil {
				m.observe(r.Method, routePattern(r), sr.statusCode, start)
			}
		})
	}
}

// routePattern returns the chi pattern that served r, so that
// /api/users/{id} is one series rather than one per contact.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
