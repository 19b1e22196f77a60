package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/twnkl2713/moodflow/pkg/adapter/web"
)

// Config represents the complete MoodFlow configuration.
//
// Configuration sources, in order of precedence (highest first):
//  1. Environment variables (MOODFLOW_*, dots replaced by underscores)
//  2. Configuration file (YAML or TOML)
//  3. Default values
//
// Example environment override:
//
//	MOODFLOW_LOGGING_LEVEL=DEBUG
//	MOODFLOW_ADAPTERS_HTTP_WORKERS=8
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Server contains process-wide settings
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Storage selects and configures the journal backend
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Adapters configures the network front ends
	Adapters AdaptersConfig `mapstructure:"adapters" yaml:"adapters"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" yaml:"output" validate:"required"`
}

// ServerConfig contains process-wide settings.
type ServerConfig struct {
	// Metrics configures the Prometheus endpoint
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// MetricsConfig configures Prometheus metrics collection and exposure.
type MetricsConfig struct {
	// Enabled turns metrics collection and the /metrics endpoint on
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is the HTTP port for the metrics endpoint. Default: 9090
	Port int `mapstructure:"port" yaml:"port" validate:"min=0,max=65535"`
}

// StorageConfig selects the journal backend.
//
// Only the section matching Type is used. Sections are kept as generic maps
// and decoded by the matching factory, so each backend owns its options.
type StorageConfig struct {
	// Type is the backend: filesystem, memory, badger or s3
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=filesystem memory badger s3"`

	// Filesystem options: path
	Filesystem map[string]any `mapstructure:"filesystem" yaml:"filesystem,omitempty"`

	// Memory has no options
	Memory map[string]any `mapstructure:"memory" yaml:"memory,omitempty"`

	// Badger options: db_path, key
	Badger map[string]any `mapstructure:"badger" yaml:"badger,omitempty"`

	// S3 options: region, bucket, key, endpoint, access_key_id,
	// secret_access_key, max_retries
	S3 map[string]any `mapstructure:"s3" yaml:"s3,omitempty"`
}

// AdaptersConfig configures the network adapters.
type AdaptersConfig struct {
	// HTTP is the journal web front end
	HTTP web.WebConfig `mapstructure:"http" yaml:"http"`
}

// Load reads configuration from file, environment and defaults.
//
// If configPath is empty, the default location is searched
// ($XDG_CONFIG_HOME/moodflow/config.yaml or ~/.config/moodflow/config.yaml).
// A missing default file is not an error; an explicit configPath that cannot
// be read is.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("MOODFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about.
	registerKeys(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// registerKeys declares every scalar key with its default so environment
// variables can override settings absent from the file.
func registerKeys(v *viper.Viper) {
	d := GetDefaultConfig()

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)

	v.SetDefault("server.metrics.enabled", d.Server.Metrics.Enabled)
	v.SetDefault("server.metrics.port", d.Server.Metrics.Port)

	v.SetDefault("storage.type", d.Storage.Type)

	http := d.Adapters.HTTP
	v.SetDefault("adapters.http.enabled", http.Enabled)
	v.SetDefault("adapters.http.bind_address", http.BindAddress)
	v.SetDefault("adapters.http.port", http.Port)
	v.SetDefault("adapters.http.workers", http.Workers)
	v.SetDefault("adapters.http.static_dir", http.StaticDir)
	v.SetDefault("adapters.http.max_request_bytes", http.MaxRequestBytes)
	v.SetDefault("adapters.http.rate_limit.requests_per_second", http.RateLimit.RequestsPerSecond)
	v.SetDefault("adapters.http.rate_limit.burst", http.RateLimit.Burst)
}

func readConfigFile(v *viper.Viper, configPath string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configPath == "" {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "moodflow")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "moodflow")
}

// GetDefaultConfigPath returns the config file path used when none is given.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// ConfigExists reports whether a config file exists at the default path.
func ConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the directory holding the default config file.
func GetConfigDir() string {
	return getConfigDir()
}
