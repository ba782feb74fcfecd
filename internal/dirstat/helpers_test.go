package dirstat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeTree creates files under a fresh temp dir. Keys are slash-separated
// relative paths, values the file size in bytes. A key ending in "/" creates
// an empty directory.
func makeTree(t *testing.T, files map[string]int) string {
	t.Helper()

	root := t.TempDir()

	for rel, size := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))

		if strings.HasSuffix(rel, "/") {
			require.NoError(t, os.MkdirAll(path, 0o755))

			continue
		}

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o600))
	}

	return root
}

// scenarioTree is the flat plus nested example: three files at the root and
// two in subdir, 1000 bytes in total.
func scenarioTree(t *testing.T) string {
	t.Helper()

	return makeTree(t, map[string]int{
		"file1.txt":        100,
		"file2.py":         200,
		"file3":            150,
		"subdir/file4.jpg": 300,
		"subdir/file5.txt": 250,
	})
}

// byPath indexes records by FullPath.
func byPath(records []FileRecord) map[string]FileRecord {
	m := make(map[string]FileRecord, len(records))
	for _, r := range records {
		m[filepath.ToSlash(r.FullPath)] = r
	}

	return m
}
