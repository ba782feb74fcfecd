package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/hsrsize/internal/dirstat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// jsonReport is the JSON shape of a report. The inventory is left out;
// it lives in the destination database.
type jsonReport struct {
	Root        string                 `json:"root"`
	FileCount   int64                  `json:"file_count"`
	TotalBytes  int64                  `json:"total_bytes"`
	Extensions  []dirstat.AggregateRow `json:"extensions"`
	Directories []dirstat.AggregateRow `json:"directories"`
	TopFiles    []dirstat.FileRecord   `json:"top_files"`
	Quantiles   dirstat.SizeQuantiles  `json:"quantiles"`
	ZeroTotal   bool                   `json:"zero_total"`
	ElapsedMs   int64                  `json:"elapsed_ms"`
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *dirstat.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(jsonReport{
		Root:        report.Root,
		FileCount:   report.FileCount,
		TotalBytes:  report.TotalBytes,
		Extensions:  report.Extensions.Rows,
		Directories: report.Directories.Rows,
		TopFiles:    report.TopFiles,
		Quantiles:   report.Quantiles,
		ZeroTotal:   report.ZeroTotal,
		ElapsedMs:   report.Elapsed.Milliseconds(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// printDistribution writes the n largest groups of dist.
func printDistribution(w io.Writer, title string, dist *dirstat.Distribution, n int) {
	fmt.Fprintf(w, "\n%s:\t\t\n", title)

	rows := dist.Largest(n)
	for i, r := range rows {
		fmt.Fprintf(w, "  %d) %s:\t%d files, %s\t(%.1f%%)\n",
			i+1, r.Key, r.Files, humanize.IBytes(uint64(r.Bytes)), r.Proportion) //nolint:gosec // Sizes are never negative
	}
}

// PrintTable outputs the report in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report *dirstat.Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	printDistribution(w, "Top extensions", report.Extensions, report.TopN)
	printDistribution(w, "Top directories", report.Directories, report.TopN)

	fmt.Fprintln(w, "\nTop files:\t\t")

	for i, f := range report.TopFiles {
		pct := 0.0
		if report.TotalBytes > 0 {
			pct = 100.0 * float64(f.Size) / float64(report.TotalBytes)
		}

		fmt.Fprintf(w, "  %d) '%s'\t%s\t(%.1f%%)\n",
			i+1, f.FullPath, humanize.IBytes(uint64(f.Size)), pct) //nolint:gosec // Sizes are never negative
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Root:\t%s\n", report.Root)
	fmt.Fprintf(w, "Total files:\t%d\n", report.FileCount)
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(report.TotalBytes)), report.TotalBytes) //nolint:gosec // Sizes are never negative

	if report.FileCount > 0 {
		fmt.Fprintf(w, "File size p50/p90/p99:\t%s / %s / %s\n",
			humanize.IBytes(uint64(report.Quantiles.P50)),
			humanize.IBytes(uint64(report.Quantiles.P90)),
			humanize.IBytes(uint64(report.Quantiles.P99)))
	}

	if report.ZeroTotal {
		fmt.Fprintln(w, "Note:\tall files are empty, distributions left empty")
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Elapsed)

	return w.Flush()
}
