package dirstat

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
)

// ScanOptions configures a scan.
type ScanOptions struct {
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
	// Progress is invoked periodically with the running file and byte counts.
	Progress func(files, bytes int64)
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// Extension returns the lowercased extension of a file name, including the
// leading dot. Leading dots of the name do not start an extension, so
// ".hidden" has none while "name." has ".".
func Extension(name string) string {
	base := filepath.Base(name)
	stem := strings.TrimLeft(base, ".")

	idx := strings.LastIndexByte(stem, '.')
	if idx < 0 {
		return ""
	}

	return strings.ToLower(stem[idx:])
}

// DirectoryLabel returns the directory label for a path relative to the root.
func DirectoryLabel(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." || dir == "" {
		return RootDirectory
	}

	return dir
}

// newRecord derives a FileRecord for the file at root/rel.
func newRecord(rel string, size int64) FileRecord {
	ext := Extension(rel)
	if ext == "" {
		ext = NoExtension
	}

	return FileRecord{
		Extension: ext,
		Size:      size,
		Directory: DirectoryLabel(rel),
		FullPath:  rel,
	}
}

// Scan walks root and returns one record per file in walk order.
// root must already be normalized and absolute, see ResolveRoot.
//
// Directories produce no records. Symbolic links are stat'ed through to their
// target; links to directories are skipped. The first filesystem error aborts
// the walk and is returned wrapped in ErrScanIO.
func Scan(ctx context.Context, root string, opts ScanOptions) ([]FileRecord, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	collector := newCollector()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, opts.Progress, opts.ProgressInterval)

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug("walk error", "path", path, "error", err)

			return fmt.Errorf("%w: %s: %w", ErrScanIO, path, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			return nil
		}

		var info fs.FileInfo

		if d.Type()&fs.ModeSymlink != 0 {
			info, err = os.Stat(path)
			if err != nil {
				return fmt.Errorf("%w: following link %s: %w", ErrScanIO, path, err)
			}

			if info.IsDir() {
				log.Debug("skipping link to directory", "path", path)

				return nil
			}
		} else {
			info, err = d.Info()
			if err != nil {
				return fmt.Errorf("%w: stat %s: %w", ErrScanIO, path, err)
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("%w: relative path of %s: %w", ErrScanIO, path, err)
		}

		rec := newRecord(rel, info.Size())
		collector.add(rec)

		log.Debug("file", "path", rel, "ext", rec.Extension, "size", rec.Size)

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return collector.finalize(), nil
}
