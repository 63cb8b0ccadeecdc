// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/internal/parquet"
	"github.com/huangsam/stackscan/schema"
)

// PrintReport outputs the analysis report, dispatching based on the output format configured.
// savedPath is where project_analysis.json was written, or empty when it was not.
func PrintReport(report schema.AnalysisReport, cfg *contract.Config, duration time.Duration, savedPath string) error {
	warnSkipped(report)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return EncodeReport(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExtensionCSV(w, schema.ExtensionStats(report))
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ExtensionRowsFromStats(0, schema.ExtensionStats(report))
		if err := parquet.WriteExtensionStatsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg, duration, savedPath)
		}, "Wrote text")
	}
	return nil
}

// LogAnalysisHeader prints a one-line header before the analysis runs.
func LogAnalysisHeader(cfg *contract.Config) {
	fmt.Printf("🔎 Analyzing project: %s (max depth: %d)\n", cfg.RootPath, cfg.MaxDepth)
}

// warnSkipped reports unreadable directories and files on stderr.
func warnSkipped(report schema.AnalysisReport) {
	if n := len(report.SkippedDirs); n > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "⚠️  Skipped %d unreadable directories (first: %s)\n", n, report.SkippedDirs[0].Path)
	}
	if n := len(report.SkippedFiles); n > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "⚠️  Skipped %d unreadable files while counting lines (first: %s)\n", n, report.SkippedFiles[0].Path)
	}
}
