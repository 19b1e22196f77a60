package config

import (
	"github.com/twnkl2713/moodflow/pkg/metrics"
)

// MetricsResult holds the metrics server and the per-component metrics.
type MetricsResult struct {
	// Server is nil when metrics are disabled
	Server *metrics.Server

	Pool    metrics.PoolMetrics
	Journal metrics.JournalMetrics
	HTTP    metrics.HTTPMetrics
}

// InitializeMetrics sets up metrics collection from configuration.
//
// When disabled, every component gets a no-op implementation and Server is
// nil. When enabled, the global registry is initialized first so the
// component constructors register against it.
func InitializeMetrics(cfg *Config) *MetricsResult {
	if !cfg.Server.Metrics.Enabled {
		return &MetricsResult{
			Pool:    metrics.NewNoopPoolMetrics(),
			Journal: metrics.NewNoopJournalMetrics(),
			HTTP:    metrics.NewNoopHTTPMetrics(),
		}
	}

	metrics.InitRegistry()

	return &MetricsResult{
		Server: metrics.NewServer(metrics.ServerConfig{
			Port: cfg.Server.Metrics.Port,
		}),
		Pool:    metrics.NewPoolMetrics(),
		Journal: metrics.NewJournalMetrics(),
		HTTP:    metrics.NewHTTPMetrics(),
	}
}
