// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the balance reconciliation engine.
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
	// RequestsTotal counts handled HTTP requests by route pattern and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mytrip",
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by route pattern and status code.",
	}, []string{"route", "method", "status"})

	// ReconcileDuration observes how long balance reconciliation takes.
	ReconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mytrip",
		Name:      "reconcile_duration_seconds",
		Help:      "Duration of trip balance reconciliation.",
		Buckets:   prometheus.DefBuckets,
	})

	// ReconcileFailures counts reconciliations that did not complete.
	ReconcileFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mytrip",
		Name:      "reconcile_failures_total",
		Help:      "Reconciliations that failed after a successful mutation.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records a counter sample per request, labeled with the chi
// route pattern so path parameters do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
	})
}

// ObserveReconcile records one reconciliation run.
func ObserveReconcile(start time.Time, err error) {
	ReconcileDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		ReconcileFailures.Inc()
	}
}
