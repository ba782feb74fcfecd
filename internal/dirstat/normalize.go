package dirstat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Normalize converts a user supplied path to forward-slash form.
// Backslashes become slashes and every run of slashes collapses to one,
// including a leading "//". Trailing slashes are kept. Dot segments are left
// alone; resolving them is the job of ResolveRoot.
func Normalize(path string) string {
	if path == "" {
		return ""
	}

	var b strings.Builder

	b.Grow(len(path))

	prevSlash := false

	for i := range len(path) {
		c := path[i]
		if c == '\\' {
			c = '/'
		}

		if c == '/' {
			if prevSlash {
				continue
			}

			prevSlash = true
		} else {
			prevSlash = false
		}

		b.WriteByte(c)
	}

	return b.String()
}

// ResolveRoot normalizes path, resolves it to an absolute path and checks that
// it names an existing directory.
func ResolveRoot(path string) (string, error) {
	normalized := Normalize(path)
	if normalized == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	abs, err := filepath.Abs(filepath.FromSlash(normalized))
	if err != nil {
		return "", fmt.Errorf("%w: resolving %q: %w", ErrInvalidPath, normalized, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: accessing %q: %w", ErrInvalidPath, abs, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory", ErrInvalidPath, abs)
	}

	return abs, nil
}
