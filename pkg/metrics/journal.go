package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// JournalMetrics provides observability for the shared journal store.
type JournalMetrics interface {
	// ObserveOperation records a list/append/remove call, including the time
	// spent waiting for the store lock.
	ObserveOperation(operation string, duration time.Duration, err error)

	// SetEntries reports the number of records currently held.
	SetEntries(count int)
}

type journalMetrics struct {
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	entries           prometheus.Gauge
}

// NewJournalMetrics creates a Prometheus-backed JournalMetrics instance.
//
// Returns a no-op implementation if metrics are not enabled.
func NewJournalMetrics() JournalMetrics {
	if !IsEnabled() {
		return NewNoopJournalMetrics()
	}

	reg := GetRegistry()

	return &journalMetrics{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "moodflow_journal_operations_total",
				Help: "Total number of journal store operations by kind and status",
			},
			[]string{"operation", "status"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moodflow_journal_operation_duration_seconds",
				Help:    "Duration of journal store operations including persistence",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		entries: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "moodflow_journal_entries",
				Help: "Number of records in the journal",
			},
		),
	}
}

func (m *journalMetrics) ObserveOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.operations.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *journalMetrics) SetEntries(count int) {
	m.entries.Set(float64(count))
}

// NewNoopJournalMetrics returns a JournalMetrics that records nothing.
func NewNoopJournalMetrics() JournalMetrics {
	return noopJournalMetrics{}
}

type noopJournalMetrics struct{}

func (noopJournalMetrics) ObserveOperation(string, time.Duration, error) {}
func (noopJournalMetrics) SetEntries(int)                                {}
