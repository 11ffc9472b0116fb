// Package metrics defines the gateway's Prometheus collectors. Collectors
// are registered on a caller-supplied registerer so tests and multiple
// gateway instances in one process do not collide on the global registry.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "iscs"

// Forward outcomes.
const (
	OutcomeForwarded = "forwarded"
	OutcomeTransport = "transport_failure"
)

// Metrics holds the gateway collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	requestsInFlight     prometheus.Gauge
	validationRejections *prometheus.CounterVec
	forwardTotal         *prometheus.CounterVec
	forwardDuration      *prometheus.HistogramVec
	rateLimitRejects     prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests handled by the gateway",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds, including the downstream call",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		validationRejections: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_rejections_total",
				Help:      "Requests rejected by the gateway before forwarding",
			},
			[]string{"service", "reason"},
		),
		forwardTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forward_total",
				Help:      "Downstream calls by service and outcome",
			},
			[]string{"service", "outcome"},
		),
		forwardDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "forward_duration_seconds",
				Help:      "Downstream call latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service"},
		),
		rateLimitRejects: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_rejects_total",
				Help:      "Total number of requests rejected due to rate limiting",
			},
		),
	}
}

// RequestStarted increments the in-flight gauge and returns the function
// that records completion.
func (m *Metrics) RequestStarted() func(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return func(string, string, int, time.Duration) {}
	}
	m.requestsInFlight.Inc()
	return func(method, route string, status int, elapsed time.Duration) {
		m.requestsInFlight.Dec()
		m.requestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	}
}

// ValidationRejected counts a request rejected before forwarding.
func (m *Metrics) ValidationRejected(service, reason string) {
	if m == nil {
		return
	}
	m.validationRejections.WithLabelValues(service, reason).Inc()
}

// Forwarded records a downstream call.
func (m *Metrics) Forwarded(service, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.forwardTotal.WithLabelValues(service, outcome).Inc()
	m.forwardDuration.WithLabelValues(service).Observe(elapsed.Seconds())
}

// RateLimited counts a request shed by the rate limiter.
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimitRejects.Inc()
}

// statusLabel treats an unwritten status as the implicit 200.
func statusLabel(status int) string {
	if status == 0 {
		return "200"
	}
	return strconv.Itoa(status)
}
