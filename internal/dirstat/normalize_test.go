package dirstat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`C:\Users\test`, "C:/Users/test"},
		{`C:\\Users\\test`, "C:/Users/test"},
		{`C:\Users\test\`, "C:/Users/test/"},
		{`C:\\Users\\test\\`, "C:/Users/test/"},
		{"C:/Users/Test", "C:/Users/Test"},
		{`C:\Users\Documents//Project\Files`, "C:/Users/Documents/Project/Files"},
		{"/home/user//test", "/home/user/test"},
		{"/home/user//test//", "/home/user/test/"},
		{"//home//user//test//", "/home/user/test/"},
		{"/home/user/test/", "/home/user/test/"},
		{"./a/../b", "./a/../b"},
		{`\\`, "/"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", "/", "//", `\`, `\\server\share`, `C:\\a\\\b//c\`, "a/b/c", "../x//y", " spaced //path ",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()

	got, err := ResolveRoot(dir + "//")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(dir), got)
	assert.True(t, filepath.IsAbs(got))
}

func TestResolveRoot_KeepsSurroundingSpaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), " spaced ")
	require.NoError(t, os.Mkdir(dir, 0o755))

	got, err := ResolveRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, " spaced ", filepath.Base(got))
}

func TestResolveRoot_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	for _, path := range []string{"", "   ", filepath.Join(dir, "missing"), file} {
		_, err := ResolveRoot(path)
		require.ErrorIs(t, err, ErrInvalidPath, "path %q", path)
	}
}
