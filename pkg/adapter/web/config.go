package web

import (
	"fmt"
	"net"
)

// WebConfig configures the HTTP adapter.
//
// It is decoded from the adapters.http section of the configuration file.
type WebConfig struct {
	// Enabled controls whether the adapter runs.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// BindAddress is the IP address to listen on. Default: 127.0.0.1
	BindAddress string `mapstructure:"bind_address" yaml:"bind_address" validate:"omitempty,ip"`

	// Port is the TCP port to listen on. Default: 7878
	Port int `mapstructure:"port" yaml:"port" validate:"min=0,max=65535"`

	// Workers is the size of the worker pool that handles connections.
	// It bounds how many requests run at once. Default: 4
	Workers int `mapstructure:"workers" yaml:"workers" validate:"min=0"`

	// StaticDir holds index.html, 404.html and the other static pages.
	// Default: static
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`

	// MaxRequestBytes caps how much of a request is read, headers and body
	// together. Default: 8192
	MaxRequestBytes int64 `mapstructure:"max_request_bytes" yaml:"max_request_bytes" validate:"min=0"`

	// RateLimit optionally caps the request rate across all connections.
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// RateLimitConfig configures the global token bucket. A zero
// RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond uint `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	Burst             uint `mapstructure:"burst" yaml:"burst"`
}

func (c *WebConfig) applyDefaults() {
	if c.BindAddress == "" {
		c.BindAddress = "127.0.0.1"
	}
	if c.Port <= 0 {
		c.Port = 7878
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.MaxRequestBytes <= 0 {
		c.MaxRequestBytes = 8192
	}
}

func (c *WebConfig) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be 0-65535", c.Port)
	}
	if net.ParseIP(c.BindAddress) == nil {
		return fmt.Errorf("invalid bind address %q", c.BindAddress)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("invalid workers %d: must be > 0", c.Workers)
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("invalid max_request_bytes %d: must be > 0", c.MaxRequestBytes)
	}
	return nil
}

// Address returns the host:port the adapter listens on.
func (c *WebConfig) Address() string {
	return net.JoinHostPort(c.BindAddress, fmt.Sprint(c.Port))
}
