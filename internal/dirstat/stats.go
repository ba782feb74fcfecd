package dirstat

import (
	"sort"
	"sync"
	"time"
)

const (
	// NoExtension labels files whose name carries no extension.
	NoExtension = "No extension"
	// RootDirectory labels files that sit directly in the scanned root.
	RootDirectory = "Root Directory"
)

// FileRecord describes a single file found during a scan.
type FileRecord struct {
	// Extension is the lowercased extension including the dot, or NoExtension.
	Extension string `json:"extension"`
	// Size is the size in bytes at scan time.
	Size int64 `json:"size"`
	// Directory is the directory relative to the root, or RootDirectory.
	Directory string `json:"directory"`
	// FullPath is the file path relative to the root.
	FullPath string `json:"full_path"`
}

// SizeQuantiles holds approximate file size quantiles in bytes.
type SizeQuantiles struct {
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P99 float64 `json:"p99"`
}

// Report is the result of a full pipeline run.
type Report struct {
	// Root is the absolute, scanned root directory.
	Root string `json:"root"`
	// Inventory holds one row per file.
	Inventory *Inventory `json:"inventory"`
	// Extensions is the distribution of total size by extension.
	Extensions *Distribution `json:"extensions"`
	// Directories is the distribution of total size by directory.
	Directories *Distribution `json:"directories"`
	// FileCount is the number of files scanned.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of all files.
	TotalBytes int64 `json:"total_bytes"`
	// TopFiles contains the N largest files, largest first.
	TopFiles []FileRecord `json:"top_files"`
	// Quantiles are file size quantiles, zero for an empty tree.
	Quantiles SizeQuantiles `json:"quantiles"`
	// ZeroTotal is set when files were found but all of them are empty.
	ZeroTotal bool `json:"zero_total"`
	// Elapsed is the total time taken for the scan and aggregation.
	Elapsed time.Duration `json:"elapsed"`
	// TopN is the number of top files tracked.
	TopN int `json:"top_n"`
}

// Options configures a pipeline run.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// TopN is the number of largest files to keep in the report.
	TopN int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// collector gathers records from fastwalk callbacks.
type collector struct {
	mu         sync.Mutex
	records    []FileRecord
	fileCount  int64
	totalBytes int64
}

func newCollector() *collector {
	return &collector{records: make([]FileRecord, 0)}
}

// add appends a record in callback order.
func (c *collector) add(rec FileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, rec)
	c.fileCount++
	c.totalBytes += rec.Size
}

// progress returns the running counters.
func (c *collector) progress() (int64, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount, c.totalBytes
}

// finalize hands over the collected records.
func (c *collector) finalize() []FileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.records
}

// topFiles returns the n largest records, largest first.
// Ties keep scan order.
func topFiles(records []FileRecord, n int) []FileRecord {
	sorted := make([]FileRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})

	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}
