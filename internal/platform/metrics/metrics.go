package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	Optimizations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "route_optimizations_total",
			Help: "Total completed route optimizations.",
		},
	)
	OptimizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "route_optimize_duration_seconds",
			Help:    "Route optimization latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	RouteCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "route_cache_hits_total",
			Help: "Total optimizations served from the fingerprint cache.",
		},
	)
	ScenarioVariantFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scenario_variant_failures_total",
			Help: "Total scenario variants that failed to evaluate.",
		},
	)
)

func Register() {
	prometheus.MustRegister(
		httpRequests, httpLatency,
		Optimizations, OptimizeDuration, RouteCacheHits, ScenarioVariantFailures,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, path, status string, seconds float64) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpLatency.WithLabelValues(method, path, status).Observe(seconds)
}
