package config

import (
	"fmt"

	"github.com/twnkl2713/moodflow/pkg/adapter"
	"github.com/twnkl2713/moodflow/pkg/adapter/web"
)

// CreateAdapters builds every enabled adapter.
//
// Returns an error if none is enabled.
func CreateAdapters(cfg *Config, m *MetricsResult) ([]adapter.Adapter, error) {
	var adapters []adapter.Adapter

	if cfg.Adapters.HTTP.Enabled {
		adapters = append(adapters, web.New(cfg.Adapters.HTTP, m.HTTP, m.Pool))
	}

	if len(adapters) == 0 {
		return nil, fmt.Errorf("no adapters enabled in configuration")
	}

	return adapters, nil
}
