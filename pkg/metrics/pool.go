package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PoolMetrics provides observability for the worker pool.
//
// The pool calls these hooks from the submitting goroutine (RecordJobSubmitted,
// SetQueueDepth) and from worker goroutines (the rest), so implementations must
// be safe for concurrent use.
type PoolMetrics interface {
	// RecordJobSubmitted counts a job handed to the pool.
	RecordJobSubmitted()

	// SetQueueDepth reports the number of jobs waiting for a worker.
	SetQueueDepth(depth int)

	// RecordJobStarted marks a worker as busy.
	RecordJobStarted(worker int)

	// RecordJobCompleted marks a worker as idle again and records how long
	// the job ran and whether it panicked.
	RecordJobCompleted(worker int, duration time.Duration, panicked bool)
}

type poolMetrics struct {
	jobsSubmitted prometheus.Counter
	jobsCompleted *prometheus.CounterVec
	jobDuration   prometheus.Histogram
	queueDepth    prometheus.Gauge
	busyWorkers   prometheus.Gauge
}

// NewPoolMetrics creates a Prometheus-backed PoolMetrics instance.
//
// Returns a no-op implementation if metrics are not enabled.
func NewPoolMetrics() PoolMetrics {
	if !IsEnabled() {
		return NewNoopPoolMetrics()
	}

	reg := GetRegistry()

	return &poolMetrics{
		jobsSubmitted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "moodflow_pool_jobs_submitted_total",
				Help: "Total number of jobs submitted to the worker pool",
			},
		),
		jobsCompleted: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "moodflow_pool_jobs_completed_total",
				Help: "Total number of jobs run to completion by outcome",
			},
			[]string{"status"},
		),
		jobDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "moodflow_pool_job_duration_seconds",
				Help: "Time a worker spent running a single job",
				Buckets: []float64{
					0.0005, // 0.5ms
					0.001,  // 1ms
					0.005,  // 5ms
					0.01,   // 10ms
					0.05,   // 50ms
					0.1,    // 100ms
					0.5,    // 500ms
					1.0,    // 1s
					5.0,    // 5s
				},
			},
		),
		queueDepth: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "moodflow_pool_queue_depth",
				Help: "Number of jobs waiting in the job channel",
			},
		),
		busyWorkers: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "moodflow_pool_busy_workers",
				Help: "Number of workers currently running a job",
			},
		),
	}
}

func (m *poolMetrics) RecordJobSubmitted() {
	m.jobsSubmitted.Inc()
}

func (m *poolMetrics) SetQueueDepth(depth int) {
	m.queueDepth.Set(float64(depth))
}

func (m *poolMetrics) RecordJobStarted(worker int) {
	m.busyWorkers.Inc()
}

func (m *poolMetrics) RecordJobCompleted(worker int, duration time.Duration, panicked bool) {
	status := "success"
	if panicked {
		status = "panic"
	}
	m.busyWorkers.Dec()
	m.jobsCompleted.WithLabelValues(status).Inc()
	m.jobDuration.Observe(duration.Seconds())
}

// NewNoopPoolMetrics returns a PoolMetrics that records nothing.
func NewNoopPoolMetrics() PoolMetrics {
	return noopPoolMetrics{}
}

type noopPoolMetrics struct{}

func (noopPoolMetrics) RecordJobSubmitted()                         {}
func (noopPoolMetrics) SetQueueDepth(int)                           {}
func (noopPoolMetrics) RecordJobStarted(int)                        {}
func (noopPoolMetrics) RecordJobCompleted(int, time.Duration, bool) {}
