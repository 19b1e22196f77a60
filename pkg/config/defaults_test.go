package config

import (
	"testing"

	"github.com/twnkl2713/moodflow/pkg/store/journal/badger"
	"github.com/twnkl2713/moodflow/pkg/store/journal/s3"
)

func TestApplyDefaults_Logging(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default log output 'stdout', got %q", cfg.Logging.Output)
	}
}

func TestApplyDefaults_NormalizesLevel(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "warn"}}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected level normalized to 'WARN', got %q", cfg.Logging.Level)
	}
}

func TestApplyDefaults_Metrics(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Server.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}
	if cfg.Server.Metrics.Port != 9090 {
		t.Errorf("Expected default metrics port 9090, got %d", cfg.Server.Metrics.Port)
	}
}

func TestApplyDefaults_Storage(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Storage.Type != "filesystem" {
		t.Errorf("Expected default storage type 'filesystem', got %q", cfg.Storage.Type)
	}
	if cfg.Storage.Filesystem["path"] != DefaultJournalPath {
		t.Errorf("Expected default journal path %q, got %v", DefaultJournalPath, cfg.Storage.Filesystem["path"])
	}
	if cfg.Storage.Badger["db_path"] != DefaultBadgerPath {
		t.Errorf("Expected default badger path %q, got %v", DefaultBadgerPath, cfg.Storage.Badger["db_path"])
	}
	if cfg.Storage.Badger["key"] != badger.DefaultKey {
		t.Errorf("Expected default badger key %q, got %v", badger.DefaultKey, cfg.Storage.Badger["key"])
	}
	if cfg.Storage.S3["key"] != s3.DefaultKey {
		t.Errorf("Expected default s3 key %q, got %v", s3.DefaultKey, cfg.Storage.S3["key"])
	}
	if cfg.Storage.Memory == nil {
		t.Error("Expected memory section to be initialized")
	}
}

func TestApplyDefaults_HTTP(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	h := cfg.Adapters.HTTP
	if h.Enabled {
		t.Error("ApplyDefaults must not enable the HTTP adapter on its own")
	}
	if h.BindAddress != "127.0.0.1" {
		t.Errorf("Expected default bind address '127.0.0.1', got %q", h.BindAddress)
	}
	if h.Port != 7878 {
		t.Errorf("Expected default port 7878, got %d", h.Port)
	}
	if h.Workers != 4 {
		t.Errorf("Expected default workers 4, got %d", h.Workers)
	}
	if h.StaticDir != "static" {
		t.Errorf("Expected default static dir 'static', got %q", h.StaticDir)
	}
	if h.MaxRequestBytes != 8192 {
		t.Errorf("Expected default max request bytes 8192, got %d", h.MaxRequestBytes)
	}
	if h.RateLimit.RequestsPerSecond != 0 {
		t.Errorf("Expected rate limiting off by default, got %d rps", h.RateLimit.RequestsPerSecond)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "ERROR", Format: "json", Output: "/var/log/moodflow.log"},
		Server:  ServerConfig{Metrics: MetricsConfig{Port: 9999}},
		Storage: StorageConfig{
			Type:       "filesystem",
			Filesystem: map[string]any{"path": "/srv/entries.json"},
		},
	}
	cfg.Adapters.HTTP.Port = 8080
	cfg.Adapters.HTTP.Workers = 32

	ApplyDefaults(cfg)

	if cfg.Logging.Format != "json" || cfg.Logging.Output != "/var/log/moodflow.log" {
		t.Errorf("Explicit logging values were overwritten: %+v", cfg.Logging)
	}
	if cfg.Server.Metrics.Port != 9999 {
		t.Errorf("Expected metrics port 9999, got %d", cfg.Server.Metrics.Port)
	}
	if cfg.Storage.Filesystem["path"] != "/srv/entries.json" {
		t.Errorf("Expected explicit journal path, got %v", cfg.Storage.Filesystem["path"])
	}
	if cfg.Adapters.HTTP.Port != 8080 || cfg.Adapters.HTTP.Workers != 32 {
		t.Errorf("Explicit http values were overwritten: %+v", cfg.Adapters.HTTP)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if !cfg.Adapters.HTTP.Enabled {
		t.Error("Expected HTTP adapter enabled in default config")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Default config should be valid, got: %v", err)
	}
}
