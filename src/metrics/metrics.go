// Package metrics provides Prometheus instrumentation for broker API calls
// and the relay server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts broker API calls by operation and outcome.
	// status is the HTTP status code, or "transport" when no response arrived.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "t212_api_requests_total",
		Help: "Total Trading 212 API requests",
	}, []string{"op", "method", "status"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "t212_api_request_duration_seconds",
		Help:    "Trading 212 API request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	}, []string{"op", "method"})

	// HistoryRecordsSynced counts archive rows inserted by the history sync.
	HistoryRecordsSynced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "t212_history_records_synced_total",
		Help: "History records inserted into the archive",
	}, []string{"kind"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "t212_relay_http_requests_total",
		Help: "Total relay HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "t212_relay_http_request_duration_seconds",
		Help:    "Relay HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"method", "path"})
)

// ObserveAPICall records one broker API call.
func ObserveAPICall(op, method string, status int, elapsed time.Duration) {
	label := "transport"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	APIRequestsTotal.WithLabelValues(op, method, label).Inc()
	APIRequestDuration.WithLabelValues(op, method).Observe(elapsed.Seconds())
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		// Raw paths never become labels, so scans of random URLs cannot grow
		// the series count.
		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
