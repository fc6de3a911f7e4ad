package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.kdl")
	require.NoError(t, os.WriteFile(path, []byte(`
log-level "debug"
crack {
    progress-every 50
}
mongodb {
    uri "mongodb://localhost:27017"
}
`), 0o644))

	cfg, err := InitializeConfig([]string{path})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.Crack.ProgressEvery)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.True(t, cfg.MongoDB.Enabled())
}

func TestInitializeConfigShippedFile(t *testing.T) {
	cfg, err := InitializeConfig([]string{"config.kdl"})
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Crack.ProgressEvery)
	assert.Equal(t, int64(1_000_000), cfg.Generate.ConfirmThreshold)
	assert.False(t, cfg.MongoDB.Enabled())
}

func TestInitializeConfigMissingExplicitFile(t *testing.T) {
	_, err := InitializeConfig([]string{filepath.Join(t.TempDir(), "nope.kdl")})
	assert.Error(t, err)
}

func TestInitializeConfigDefaultsWhenDefaultPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := InitializeConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Crack, cfg.Crack)
	assert.Equal(t, "warn", cfg.LogLevel)
}
