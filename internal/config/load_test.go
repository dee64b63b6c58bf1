package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestlab/attestd/internal/constants"
	"github.com/attestlab/attestd/internal/errors"
)

// clearAttestdEnv blanks any ATTESTD_ variables that could bleed into a test.
func clearAttestdEnv(t *testing.T) {
	t.Helper()
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ATTESTD_") {
			key, _, _ := strings.Cut(env, "=")
			t.Setenv(key, "")
		}
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	err = os.Chdir(tempDir)
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(oldWd)
	}()

	clearAttestdEnv(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err, "Load should not fail when no config file exists")
	require.NotNil(t, cfg)

	assert.Equal(t, constants.DefaultListenAddr, cfg.Server.Listen)
	assert.Equal(t, constants.DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, constants.DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Log.File)
}

func TestLoadFromPaths_LocalOverridesGlobal(t *testing.T) {
	ctx := context.Background()
	clearAttestdEnv(t)

	globalConfig := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(globalConfig, []byte(`
server:
  listen: "0.0.0.0:9000"
  request_timeout: 45s
log:
  max_backups: 7
`), 0o600)
	require.NoError(t, err)

	localConfig := filepath.Join(t.TempDir(), "config.yaml")
	err = os.WriteFile(localConfig, []byte(`
server:
  listen: "127.0.0.1:7000"
`), 0o600)
	require.NoError(t, err)

	cfg, err := LoadFromPaths(ctx, localConfig, globalConfig)
	require.NoError(t, err)

	// Local wins for the overlapping key.
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Listen)

	// Global values without a local override persist.
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 7, cfg.Log.MaxBackups)

	// Untouched keys fall back to defaults.
	assert.Equal(t, constants.DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
}

func TestLoadFromPaths_EnvOverridesFiles(t *testing.T) {
	ctx := context.Background()
	clearAttestdEnv(t)

	localConfig := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(localConfig, []byte(`
server:
  listen: "127.0.0.1:7000"
`), 0o600)
	require.NoError(t, err)

	t.Setenv("ATTESTD_SERVER_LISTEN", "127.0.0.1:7100")

	cfg, err := LoadFromPaths(ctx, localConfig, "")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7100", cfg.Server.Listen)
}

func TestLoadFromPaths_ModuleQuotes(t *testing.T) {
	ctx := context.Background()
	clearAttestdEnv(t)

	localConfig := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(localConfig, []byte(`
modules:
  quotes:
    BTC: "6500000000000"
    ETH: "350000000000"
`), 0o600)
	require.NoError(t, err)

	cfg, err := LoadFromPaths(ctx, localConfig, "")
	require.NoError(t, err)

	assert.Equal(t, "6500000000000", cfg.Modules.Quotes["BTC"])
	assert.Equal(t, "350000000000", cfg.Modules.Quotes["ETH"])
}

func TestLoadFromPaths_InvalidValuesRejected(t *testing.T) {
	ctx := context.Background()
	clearAttestdEnv(t)

	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name: "bad listen address",
			yaml: `
server:
  listen: "not-an-address"
`,
			wantErr: errors.ErrConfigInvalidServer,
		},
		{
			name: "request timeout too small",
			yaml: `
server:
  request_timeout: 5ms
`,
			wantErr: errors.ErrConfigInvalidServer,
		},
		{
			name: "non-numeric quote price",
			yaml: `
modules:
  quotes:
    BTC: "cheap"
`,
			wantErr: errors.ErrValueOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			localConfig := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(localConfig, []byte(tt.yaml), 0o600))

			_, err := LoadFromPaths(ctx, localConfig, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromPaths_MalformedYAML(t *testing.T) {
	ctx := context.Background()
	clearAttestdEnv(t)

	localConfig := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(localConfig, []byte("server: [not: valid"), 0o600))

	_, err := LoadFromPaths(ctx, localConfig, "")
	require.Error(t, err)
}
