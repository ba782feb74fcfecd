package dirstat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DataDog/sketches-go/ddsketch"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// DefaultTopN is the number of largest files kept when Options.TopN is unset.
const DefaultTopN = 10

// quantileAccuracy is the relative accuracy of the size quantiles.
const quantileAccuracy = 0.01

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// sizeQuantiles computes approximate p50, p90 and p99 file sizes.
func sizeQuantiles(records []FileRecord) (SizeQuantiles, error) {
	var q SizeQuantiles

	if len(records) == 0 {
		return q, nil
	}

	sketch, err := ddsketch.NewDefaultDDSketch(quantileAccuracy)
	if err != nil {
		return q, fmt.Errorf("creating sketch: %w", err)
	}

	for _, r := range records {
		if err := sketch.Add(float64(r.Size)); err != nil {
			return q, fmt.Errorf("adding size %d: %w", r.Size, err)
		}
	}

	q.P50, _ = sketch.GetValueAtQuantile(0.50)
	q.P90, _ = sketch.GetValueAtQuantile(0.90)
	q.P99, _ = sketch.GetValueAtQuantile(0.99)

	return q, nil
}

// distribution aggregates t by column and downgrades ErrDivisionByZero to a
// warning, leaving the distribution empty.
func distribution(log *slog.Logger, t *Inventory, by GroupColumn) (*Distribution, bool, error) {
	dist, err := Aggregate(t, by)
	if errors.Is(err, ErrDivisionByZero) {
		log.Warn("all files are empty, distribution left empty", "by", string(by), "files", t.Len())

		return dist, true, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("aggregating by %s: %w", by, err)
	}

	return dist, false, nil
}

// Run scans the tree at opt.Path and returns the inventory together with its
// distributions by extension and by directory.
//
// Path and scan errors are returned immediately. The walk can be cancelled via
// ctx. Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, log *slog.Logger, progressHook func(int64, int64)) (*Report, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	if opt.TopN <= 0 {
		opt.TopN = DefaultTopN
	}

	root, err := ResolveRoot(opt.Path)
	if err != nil {
		return nil, err
	}

	log.Debug("scanning", "root", root)

	start := time.Now()

	records, err := Scan(ctx, root, ScanOptions{
		Logger:           log,
		Progress:         progressHook,
		ProgressInterval: opt.ProgressInterval,
	})
	if err != nil {
		return nil, err
	}

	inventory := BuildTable(records)

	extensions, zeroTotal, err := distribution(log, inventory, ByExtension)
	if err != nil {
		return nil, err
	}

	directories, _, err := distribution(log, inventory, ByDirectory)
	if err != nil {
		return nil, err
	}

	quantiles, err := sizeQuantiles(records)
	if err != nil {
		log.Warn("size quantiles unavailable", "error", err)
	}

	report := &Report{
		Root:        root,
		Inventory:   inventory,
		Extensions:  extensions,
		Directories: directories,
		FileCount:   int64(inventory.Len()),
		TotalBytes:  inventory.TotalSize(),
		TopFiles:    topFiles(records, opt.TopN),
		Quantiles:   quantiles,
		ZeroTotal:   zeroTotal,
		TopN:        opt.TopN,
		Elapsed:     time.Since(start),
	}

	log.Info("scan complete",
		"root", root,
		"files", report.FileCount,
		"bytes", report.TotalBytes,
		"extensions", extensions.Len(),
		"directories", directories.Len(),
		"elapsed", report.Elapsed,
	)

	return report, nil
}
