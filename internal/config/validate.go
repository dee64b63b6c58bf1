package config

import (
	"math/big"
	"net"
	"time"

	"github.com/attestlab/attestd/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - server listen address must be a valid host:port
//   - server request timeout must be between 1s and 10m
//   - server shutdown timeout must be positive
//   - log rotation values must be positive when file logging is enabled
//   - quote prices must be non-negative integers
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateServerConfig(&cfg.Server); err != nil {
		return err
	}
	if err := validateLogConfig(&cfg.Log); err != nil {
		return err
	}
	return validateModulesConfig(&cfg.Modules)
}

// validateServerConfig checks HTTP server configuration values.
func validateServerConfig(cfg *ServerConfig) error {
	if cfg.Listen == "" {
		return errors.Wrap(errors.ErrConfigInvalidServer, "server.listen must not be empty")
	}
	if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidServer,
			"server.listen must be host:port, got %q", cfg.Listen)
	}

	minTimeout, maxTimeout := 1*time.Second, 10*time.Minute
	if cfg.RequestTimeout < minTimeout || cfg.RequestTimeout > maxTimeout {
		return errors.Wrapf(errors.ErrConfigInvalidServer,
			"server.request_timeout must be between %s and %s, got %s",
			minTimeout, maxTimeout, cfg.RequestTimeout)
	}

	if cfg.ShutdownTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidServer,
			"server.shutdown_timeout must be positive, got %s", cfg.ShutdownTimeout)
	}

	return nil
}

// validateLogConfig checks log rotation values.
func validateLogConfig(cfg *LogConfig) error {
	if !cfg.File {
		return nil
	}

	if cfg.MaxSizeMB <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_size_mb must be positive, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_backups must not be negative, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_age_days must not be negative, got %d", cfg.MaxAgeDays)
	}

	return nil
}

// validateModulesConfig checks built-in module settings.
func validateModulesConfig(cfg *ModulesConfig) error {
	for symbol, price := range cfg.Quotes {
		if symbol == "" {
			return errors.Wrap(errors.ErrEmptyValue, "modules.quotes symbol")
		}
		p, ok := new(big.Int).SetString(price, 10)
		if !ok || p.Sign() < 0 {
			return errors.Wrapf(errors.ErrValueOutOfRange,
				"modules.quotes[%s] must be a non-negative integer, got %q", symbol, price)
		}
	}
	return nil
}
