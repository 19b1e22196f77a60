package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics provides observability for the journal's HTTP adapter.
type HTTPMetrics interface {
	// RecordRequest records a handled request with its route and status code.
	RecordRequest(route string, status int, duration time.Duration)

	// RecordConnectionAccepted counts a connection taken by the accept loop.
	RecordConnectionAccepted()

	// RecordRateLimited counts a request rejected by the rate limiter.
	RecordRateLimited()
}

type httpMetrics struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	connectionsAccepted prometheus.Counter
	rateLimited         prometheus.Counter
}

// NewHTTPMetrics creates a Prometheus-backed HTTPMetrics instance.
//
// Returns a no-op implementation if metrics are not enabled.
func NewHTTPMetrics() HTTPMetrics {
	if !IsEnabled() {
		return NewNoopHTTPMetrics()
	}

	reg := GetRegistry()

	return &httpMetrics{
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "moodflow_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moodflow_http_request_duration_seconds",
				Help:    "Duration of HTTP requests from parse to response flush",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		connectionsAccepted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "moodflow_http_connections_accepted_total",
				Help: "Total number of TCP connections accepted",
			},
		),
		rateLimited: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "moodflow_http_rate_limited_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
	}
}

func (m *httpMetrics) RecordRequest(route string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *httpMetrics) RecordConnectionAccepted() {
	m.connectionsAccepted.Inc()
}

func (m *httpMetrics) RecordRateLimited() {
	m.rateLimited.Inc()
}

// NewNoopHTTPMetrics returns an HTTPMetrics that records nothing.
func NewNoopHTTPMetrics() HTTPMetrics {
	return noopHTTPMetrics{}
}

type noopHTTPMetrics struct{}

func (noopHTTPMetrics) RecordRequest(string, int, time.Duration) {}
func (noopHTTPMetrics) RecordConnectionAccepted()                {}
func (noopHTTPMetrics) RecordRateLimited()                       {}
