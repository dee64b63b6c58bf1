// Package config provides configuration management for attestd with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (ATTESTD_* prefix)
//  2. Local config (.attestd/config.yaml in the working directory)
//  3. Global config (~/.attestd/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// The signer key itself never lives in a config file; it is read from the
// ATTESTD_SIGNER_KEY environment variable by the keys package at startup.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for attestd.
type Config struct {
	// Server contains settings for the HTTP query surface.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Log contains settings for log output and rotation.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Modules contains settings for the built-in computation modules.
	Modules ModulesConfig `yaml:"modules" mapstructure:"modules"`
}

// ServerConfig contains settings for the HTTP server.
type ServerConfig struct {
	// Listen is the address the HTTP server binds to.
	// Default: "127.0.0.1:8645"
	Listen string `yaml:"listen" mapstructure:"listen"`

	// RequestTimeout bounds one signing request end to end, including the
	// module's compute step. Default: 30s
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`

	// ShutdownTimeout is how long graceful shutdown waits for in-flight
	// requests. Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LogConfig contains settings for log output.
type LogConfig struct {
	// File enables writing logs to the rotated file under ~/.attestd/logs
	// in addition to the console. Default: true
	File bool `yaml:"file" mapstructure:"file"`

	// MaxSizeMB is the size at which the log file rotates. Default: 10
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is how many rotated files are kept. Default: 3
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`

	// MaxAgeDays is how long rotated files are kept. Default: 28
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days"`
}

// ModulesConfig contains settings for built-in computation modules.
type ModulesConfig struct {
	// Quotes maps symbols to fixed-point price strings (8 fractional
	// decimals) served by the quote module's static source.
	Quotes map[string]string `yaml:"quotes" mapstructure:"quotes"`
}
