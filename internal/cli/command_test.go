package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/hsrsize/internal/config"
	"github.com/idelchi/hsrsize/internal/dirstat"
	"github.com/idelchi/hsrsize/internal/export"
	"github.com/idelchi/hsrsize/internal/store"
)

func scenarioTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]int{
		"file1.txt":        100,
		"file2.py":         200,
		"file3":            150,
		"subdir/file4.jpg": 300,
		"subdir/file5.txt": 250,
	}

	for rel, size := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o600))
	}

	return root
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := New("v1.2.3").Command()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func noEnv(t *testing.T) string {
	t.Helper()

	t.Setenv(config.EnvRoot, "")
	t.Setenv(config.EnvDestination, "")

	return filepath.Join(t.TempDir(), "none.env")
}

func TestCommand_Version(t *testing.T) {
	out, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3\n", out)
}

func TestCommand_JSONAndPersist(t *testing.T) {
	envFile := noEnv(t)
	root := scenarioTree(t)
	dest := filepath.Join(t.TempDir(), "analysis.db")
	parquetPath := filepath.Join(t.TempDir(), "inventory.parquet")

	out, _, err := run(t, root, "--env-file", envFile, "--db", dest, "-o", "json", "--parquet", parquetPath)
	require.NoError(t, err)

	var got jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(5), got.FileCount)
	assert.Equal(t, int64(1000), got.TotalBytes)
	assert.Len(t, got.Extensions, 4)
	assert.Len(t, got.Directories, 2)

	s, err := store.Open(dest, store.DefaultOptions(), nil)
	require.NoError(t, err)
	defer s.Close()

	records, err := s.ReadInventory(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 5)

	inv, err := export.ReadInventory(parquetPath)
	require.NoError(t, err)
	assert.Equal(t, records, inv.Records)
}

func TestCommand_Table(t *testing.T) {
	envFile := noEnv(t)
	dest := filepath.Join(t.TempDir(), "analysis.db")

	out, _, err := run(t, scenarioTree(t), "--env-file", envFile, "--db", dest)
	require.NoError(t, err)

	assert.Contains(t, out, "Top extensions:")
	assert.Contains(t, out, ".txt:")
	assert.Contains(t, out, "(35.0%)")
	assert.Contains(t, out, "Top directories:")
	assert.Contains(t, out, "Root Directory:")
	assert.Contains(t, out, "(55.0%)")
	assert.Regexp(t, `Total files:\s+5\n`, out)
}

func TestCommand_RootFromDotenv(t *testing.T) {
	noEnv(t)
	require.NoError(t, os.Unsetenv(config.EnvRoot))

	root := scenarioTree(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GAME_DIR="+root+"\n"), 0o600))

	dest := filepath.Join(t.TempDir(), "analysis.db")

	out, _, err := run(t, "--env-file", envFile, "--db", dest, "-o", "none")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.FileExists(t, dest)
}

func TestCommand_ConfigFile(t *testing.T) {
	envFile := noEnv(t)
	root := scenarioTree(t)
	dir := t.TempDir()
	dest := filepath.Join(dir, "from-config.db")

	cfgPath := filepath.Join(dir, "hsrsize.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: "+root+"\ndestination: "+dest+"\n"), 0o600))

	_, _, err := run(t, "--env-file", envFile, "--config", cfgPath, "-o", "none")
	require.NoError(t, err)
	assert.FileExists(t, dest)
}

func TestCommand_Errors(t *testing.T) {
	envFile := noEnv(t)

	_, _, err := run(t, "--env-file", envFile)
	require.ErrorIs(t, err, dirstat.ErrInvalidPath)

	_, _, err = run(t, filepath.Join(t.TempDir(), "missing"), "--env-file", envFile)
	require.ErrorIs(t, err, dirstat.ErrInvalidPath)

	_, _, err = run(t, t.TempDir(), "--env-file", envFile, "-o", "xml")
	require.Error(t, err)

	_, _, err = run(t, t.TempDir(), "--env-file", envFile, "--top", "0")
	require.Error(t, err)

	_, _, err = run(t, t.TempDir(), "--env-file", envFile, "--log-level", "loud")
	require.Error(t, err)
}

func TestCommand_PersistenceFailureIsReported(t *testing.T) {
	envFile := noEnv(t)
	dest := filepath.Join(t.TempDir(), "no", "such", "dir", "x.db")

	out, stderr, err := run(t, scenarioTree(t), "--env-file", envFile, "--db", dest)
	require.ErrorIs(t, err, store.ErrPersistence)
	assert.Contains(t, out, "Top extensions:", "report is still printed")
	assert.Contains(t, stderr, "opening store failed")
}
