package config

import (
	"strings"

	"github.com/twnkl2713/moodflow/pkg/adapter/web"
	"github.com/twnkl2713/moodflow/pkg/store/journal/badger"
	"github.com/twnkl2713/moodflow/pkg/store/journal/s3"
)

// Default locations, relative to the working directory.
const (
	DefaultJournalPath = "data/entries.json"
	DefaultBadgerPath  = "data/journal.db"
)

// ApplyDefaults fills zero-valued fields with defaults. Explicit values are
// kept.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyMetricsDefaults(&cfg.Server.Metrics)
	applyStorageDefaults(&cfg.Storage)
	applyHTTPDefaults(cfg)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyStorageDefaults(cfg *StorageConfig) {
	if cfg.Type == "" {
		cfg.Type = "filesystem"
	}

	if cfg.Filesystem == nil {
		cfg.Filesystem = make(map[string]any)
	}
	if _, ok := cfg.Filesystem["path"]; !ok {
		cfg.Filesystem["path"] = DefaultJournalPath
	}

	if cfg.Memory == nil {
		cfg.Memory = make(map[string]any)
	}

	if cfg.Badger == nil {
		cfg.Badger = make(map[string]any)
	}
	if _, ok := cfg.Badger["db_path"]; !ok {
		cfg.Badger["db_path"] = DefaultBadgerPath
	}
	if _, ok := cfg.Badger["key"]; !ok {
		cfg.Badger["key"] = badger.DefaultKey
	}

	if cfg.S3 == nil {
		cfg.S3 = make(map[string]any)
	}
	if _, ok := cfg.S3["key"]; !ok {
		cfg.S3["key"] = s3.DefaultKey
	}
}

func applyHTTPDefaults(cfg *Config) {
	h := &cfg.Adapters.HTTP
	if h.BindAddress == "" {
		h.BindAddress = "127.0.0.1"
	}
	if h.Port == 0 {
		h.Port = 7878
	}
	if h.Workers == 0 {
		h.Workers = 4
	}
	if h.StaticDir == "" {
		h.StaticDir = "static"
	}
	if h.MaxRequestBytes == 0 {
		h.MaxRequestBytes = 8192
	}
}

// GetDefaultConfig returns a configuration with every default applied and
// the HTTP adapter enabled. It is what `moodflow init` writes.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Adapters: AdaptersConfig{
			HTTP: web.WebConfig{Enabled: true},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
