package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shift_select_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadFromPath_Valid(t *testing.T) {
	path := writeConfig(t, `
listenAddr: ":8080"
databaseURL: "postgres://localhost:5432/shifts"
redisURL: "redis://localhost:6379/0"
tokenCacheTTLMinutes: 10
`)

	cfg, err := LoadFromPath(path)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "postgres://localhost:5432/shifts", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 10, cfg.TokenCacheTTLMinutes)
}

func TestLoadFromPath_RedisOptional(t *testing.T) {
	path := writeConfig(t, `
listenAddr: ":8080"
databaseURL: "postgres://localhost:5432/shifts"
`)

	cfg, err := LoadFromPath(path)

	require.NoError(t, err)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadFromPath_MissingRequiredFields(t *testing.T) {
	path := writeConfig(t, `
listenAddr: ":8080"
`)

	_, err := LoadFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "listenAddr: [unclosed")

	_, err := LoadFromPath(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_InvalidTTL(t *testing.T) {
	path := writeConfig(t, `
listenAddr: ":8080"
databaseURL: "postgres://localhost:5432/shifts"
tokenCacheTTLMinutes: 0
`)

	// Zero is treated as unset by omitempty; negative values fail.
	_, err := LoadFromPath(path)
	require.NoError(t, err)

	path = writeConfig(t, `
listenAddr: ":8080"
databaseURL: "postgres://localhost:5432/shifts"
tokenCacheTTLMinutes: -5
`)
	_, err = LoadFromPath(path)
	require.Error(t, err)
}
