package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetServerAddr())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Empty(t, cfg.Reference.CatalogPath)
	assert.Nil(t, cfg.Estimation.JitterSeed)
}

func TestLoadConfigMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server": {"port": 9090},
		"logging": {"level": "debug", "development": true},
		"reference": {"catalog_path": "/etc/cropwise/crops.yaml"},
		"estimation": {"jitter_seed": 42}
	}`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "/etc/cropwise/crops.yaml", cfg.Reference.CatalogPath)
	require.NotNil(t, cfg.Estimation.JitterSeed)
	assert.Equal(t, uint64(42), *cfg.Estimation.JitterSeed)
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server":`), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_DEVELOPMENT", "true")
	t.Setenv("CATALOG_PATH", "crops.yaml")
	t.Setenv("JITTER_SEED", "7")
	t.Setenv("JITTER_DISABLED", "1")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.GetServerAddr())
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "crops.yaml", cfg.Reference.CatalogPath)
	require.NotNil(t, cfg.Estimation.JitterSeed)
	assert.Equal(t, uint64(7), *cfg.Estimation.JitterSeed)
	assert.True(t, cfg.Estimation.DisableJitter)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoadConfigRejectsBadEnv(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SERVER_PORT", "eighty"},
		{"SERVER_PORT", "70000"},
		{"LOG_DEVELOPMENT", "maybe"},
		{"JITTER_SEED", "-1"},
		{"JITTER_DISABLED", "sometimes"},
		{"CACHE_TTL", "forever"},
		{"CACHE_TTL", "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}
