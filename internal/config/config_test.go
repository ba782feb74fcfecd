package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/hsrsize/internal/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvRoot, "")
	t.Setenv(EnvDestination, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Root)
	assert.Equal(t, store.DefaultDestination, cfg.Destination)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "zstd", cfg.Export.Compression)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv(EnvRoot, "/games/hsr")
	t.Setenv(EnvDestination, "out.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/games/hsr", cfg.Root)
	assert.Equal(t, "out.db", cfg.Destination)
}

func TestLoad_FileOverridesEnvironment(t *testing.T) {
	t.Setenv(EnvRoot, "/from/env")
	t.Setenv("HSR_EXPORT_DIR", "/exports")

	path := writeFile(t, "hsrsize.yaml", `
root: /from/file
destination: analysis.duckdb
driver: duckdb
log:
  level: debug
  json: true
export:
  parquet: ${HSR_EXPORT_DIR}/inventory.parquet
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.Root)
	assert.Equal(t, "analysis.duckdb", cfg.Destination)
	assert.Equal(t, "duckdb", cfg.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "/exports/inventory.parquet", cfg.Export.Parquet)
	assert.Equal(t, "zstd", cfg.Export.Compression)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "root: [unterminated"))
	require.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvRoot, "")
	require.NoError(t, os.Unsetenv(EnvRoot))

	require.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := writeFile(t, ".env", "GAME_DIR=/from/dotenv\n")
	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "/from/dotenv", os.Getenv(EnvRoot))
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	t.Setenv(EnvRoot, "/already/set")

	path := writeFile(t, ".env", "GAME_DIR=/from/dotenv\n")
	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "/already/set", os.Getenv(EnvRoot))
}
