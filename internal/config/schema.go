// Package config defines the configuration schema for nexuchat.
//
// Keys use camelCase in every supported format (JSON, YAML, TOML).
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/nexuchat/nexuchat/internal/endpoint"
)

// Config is the whole configuration file.
type Config struct {
	// Endpoint is the base URL of the proxy service, including the trailing slash.
	Endpoint string `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	// Model is the initial model override. Empty defers to the server default.
	Model string `json:"model" yaml:"model" toml:"model"`
	// TimeoutSeconds bounds each HTTP request. Zero disables the timeout.
	TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds" toml:"timeoutSeconds"`
	// CatalogRefresh is a cron spec for periodic catalog reloads, e.g. "@every 30m".
	CatalogRefresh string `json:"catalogRefresh" yaml:"catalogRefresh" toml:"catalogRefresh"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel" yaml:"logLevel" toml:"logLevel"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Endpoint: endpoint.Default,
		LogLevel: "warn",
	}
}

// Timeout returns TimeoutSeconds as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SlogLevel maps LogLevel onto slog; unknown values fall back to warn.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
