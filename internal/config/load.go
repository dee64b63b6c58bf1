package config

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/attestlab/attestd/internal/errors"
)

// newViperInstance creates a new Viper instance with standard attestd
// configuration: environment variable prefix (ATTESTD_), key replacer, and
// defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ATTESTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// viperDecoderOption returns the decode hooks used when unmarshaling config:
// duration strings ("30s") and comma-separated slices.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error. Missing config files are expected; only real problems surface.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (ATTESTD_* prefix)
//  2. Local config (.attestd/config.yaml)
//  3. Global config (~/.attestd/config.yaml)
//  4. Built-in defaults
//
// The function returns an error only for actual configuration problems,
// not for missing config files (which are expected in many scenarios).
func Load(ctx context.Context) (*Config, error) {
	return LoadFromPaths(ctx, LocalConfigPath(), GlobalConfigPath())
}

// LoadFromPaths loads configuration from explicit local and global config
// file paths. This is primarily useful for testing; Load resolves the
// standard paths.
func LoadFromPaths(ctx context.Context, localPath, globalPath string) (*Config, error) {
	v := newViperInstance()

	// Global config first (lower precedence), local merges over it.
	if err := mergeConfigFile(v, globalPath); err != nil {
		return nil, err
	}
	if err := mergeConfigFile(v, localPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("server.listen", cfg.Server.Listen).
		Dur("server.request_timeout", cfg.Server.RequestTimeout).
		Dur("server.shutdown_timeout", cfg.Server.ShutdownTimeout).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// mergeConfigFile merges a single YAML config file into the viper instance.
// A missing file is not an error.
func mergeConfigFile(v *viper.Viper, path string) error {
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		if isConfigNotFoundError(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}
