package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestlab/attestd/internal/errors"
)

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, Validate(DefaultConfig()))
	})

	t.Run("nil config", func(t *testing.T) {
		err := Validate(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigNil)
	})
}

func TestValidateServerConfig(t *testing.T) {
	valid := func() *Config {
		return DefaultConfig()
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "empty listen",
			mutate:  func(c *Config) { c.Server.Listen = "" },
			wantErr: errors.ErrConfigInvalidServer,
		},
		{
			name:    "listen without port",
			mutate:  func(c *Config) { c.Server.Listen = "localhost" },
			wantErr: errors.ErrConfigInvalidServer,
		},
		{
			name:    "request timeout too short",
			mutate:  func(c *Config) { c.Server.RequestTimeout = 500 * time.Millisecond },
			wantErr: errors.ErrConfigInvalidServer,
		},
		{
			name:    "request timeout too long",
			mutate:  func(c *Config) { c.Server.RequestTimeout = time.Hour },
			wantErr: errors.ErrConfigInvalidServer,
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.Server.ShutdownTimeout = 0 },
			wantErr: errors.ErrConfigInvalidServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("boundary timeouts accepted", func(t *testing.T) {
		cfg := valid()
		cfg.Server.RequestTimeout = time.Second
		assert.NoError(t, Validate(cfg))

		cfg.Server.RequestTimeout = 10 * time.Minute
		assert.NoError(t, Validate(cfg))
	})
}

func TestValidateLogConfig(t *testing.T) {
	t.Run("rotation values ignored when file logging disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.File = false
		cfg.Log.MaxSizeMB = 0

		assert.NoError(t, Validate(cfg))
	})

	t.Run("zero max size rejected when enabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.MaxSizeMB = 0

		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidLog)
	})

	t.Run("negative backups rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Log.MaxBackups = -1

		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidLog)
	})
}

func TestValidateModulesConfig(t *testing.T) {
	t.Run("valid quote table", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Modules.Quotes = map[string]string{"BTC": "6500000000000", "ETH": "0"}

		assert.NoError(t, Validate(cfg))
	})

	t.Run("empty symbol", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Modules.Quotes = map[string]string{"": "1"}

		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrEmptyValue)
	})

	t.Run("negative price", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Modules.Quotes = map[string]string{"BTC": "-5"}

		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrValueOutOfRange)
	})

	t.Run("non-integer price", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Modules.Quotes = map[string]string{"BTC": "1.5"}

		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrValueOutOfRange)
	})
}
