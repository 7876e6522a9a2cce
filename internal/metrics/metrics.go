// Package metrics exposes Prometheus instrumentation for the MinTid server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors. Collectors are registered
// on a dedicated registry so tests can create independent instances.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	loginAttemptsTotal  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintid_http_requests_total",
				Help: "Total number of HTTP requests handled by the server",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mintid_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		loginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mintid_login_attempts_total",
				Help: "Login attempts partitioned by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(m.httpRequestsTotal, m.httpRequestDuration, m.loginAttemptsTotal)

	return m
}

// ObserveRequest records one handled HTTP request. Paths must be route
// patterns, not raw URLs, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveLogin records one login attempt with outcome "success", "failure" or
// "inactive".
func (m *Metrics) ObserveLogin(outcome string) {
	m.loginAttemptsTotal.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
