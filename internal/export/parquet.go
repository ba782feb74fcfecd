// Package export writes scan inventories to columnar files.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"

	"github.com/idelchi/hsrsize/internal/dirstat"
)

// Options configures the Parquet writer.
type Options struct {
	// Compression is one of none, snappy, zstd, lz4 or gzip.
	Compression string
}

// DefaultOptions returns default Parquet options.
func DefaultOptions() Options {
	return Options{Compression: "zstd"}
}

// InventoryRow is one inventory record in Parquet form.
type InventoryRow struct {
	Extension string  `parquet:"extension,dict"`
	Size      float64 `parquet:"size"`
	Directory string  `parquet:"directory,dict"`
	FullPath  string  `parquet:"full_path"`
}

// codec returns the parquet-go compression codec for name.
func codec(name string) (compress.Codec, error) {
	switch name {
	case "", "zstd":
		return &parquet.Zstd, nil
	case "snappy":
		return &parquet.Snappy, nil
	case "lz4":
		return &parquet.Lz4Raw, nil
	case "gzip":
		return &parquet.Gzip, nil
	case "none":
		return &parquet.Uncompressed, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}

// WriteInventory writes inv to a Parquet file at path, replacing any existing file.
func WriteInventory(path string, inv *dirstat.Inventory, opts Options) (err error) {
	c, err := codec(opts.Compression)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	writer := parquet.NewGenericWriter[InventoryRow](f, parquet.Compression(c))

	rows := make([]InventoryRow, len(inv.Records))
	for i, r := range inv.Records {
		rows[i] = InventoryRow{
			Extension: r.Extension,
			Size:      float64(r.Size),
			Directory: r.Directory,
			FullPath:  r.FullPath,
		}
	}

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}

	return nil
}

// ReadInventory reads a file written by WriteInventory.
func ReadInventory(path string) (*dirstat.Inventory, error) {
	rows, err := parquet.ReadFile[InventoryRow](path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	records := make([]dirstat.FileRecord, len(rows))
	for i, r := range rows {
		records[i] = dirstat.FileRecord{
			Extension: r.Extension,
			Size:      int64(r.Size),
			Directory: r.Directory,
			FullPath:  r.FullPath,
		}
	}

	return dirstat.BuildTable(records), nil
}
