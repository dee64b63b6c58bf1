package config

import (
	"github.com/spf13/viper"

	"github.com/attestlab/attestd/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files and environment variables.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			// Listen: loopback by default; exposing a signing surface beyond
			// localhost is a deliberate operator decision.
			Listen: constants.DefaultListenAddr,

			// RequestTimeout: generous enough for I/O-bound modules while
			// still bounding a hung compute call's blast radius to its own
			// request.
			RequestTimeout: constants.DefaultRequestTimeout,

			ShutdownTimeout: constants.DefaultShutdownTimeout,
		},
		Log: LogConfig{
			File:       true,
			MaxSizeMB:  constants.DefaultLogMaxSizeMB,
			MaxBackups: constants.DefaultLogMaxBackups,
			MaxAgeDays: constants.DefaultLogMaxAgeDays,
		},
		Modules: ModulesConfig{
			Quotes: map[string]string{},
		},
	}
}

// setDefaults registers the default values on a viper instance so that
// partial config files inherit the remaining defaults.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("server.listen", defaults.Server.Listen)
	v.SetDefault("server.request_timeout", defaults.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)

	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.Log.MaxAgeDays)

	v.SetDefault("modules.quotes", defaults.Modules.Quotes)
}
