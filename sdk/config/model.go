// Package config provides public SDK types for exporter configuration.
// These types are re-exported from the internal config package to provide
// a stable public API for external consumers.
package config

import (
	internal "github.com/gearvrf/gvrf-exporter/internal/config"
)

// Config is the complete exporter configuration: device console, asset
// server and logging.
type Config = internal.Config

// RemoteConfig locates the GVRf debug console on the device and sets its
// dial and read timeouts.
type RemoteConfig = internal.RemoteConfig

// ServerConfig defines the embedded asset server, including the staging
// directory and the URL prefix devices download from.
type ServerConfig = internal.ServerConfig

// ServerLimitsConfig defines the HTTP timeouts of the asset server.
type ServerLimitsConfig = internal.ServerLimitsConfig

// LoggingConfig defines the log level and output format.
type LoggingConfig = internal.LoggingConfig

// LogFilter selects recorded log events by level, time and export run.
type LogFilter = internal.LogFilter

// Load reads the configuration from .env, config.yaml and GVRF_
// environment variables, and configures logging.
func Load(configFile string) (*Config, error) {
	return internal.Load(configFile)
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return internal.DefaultConfig()
}
