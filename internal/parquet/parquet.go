// Package parquet provides data structures and functions for exporting stackscan
// reports and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/stackscan/schema"
	"github.com/parquet-go/parquet-go"
)

// RunRow represents a single recorded analysis run.
// This struct maps to the stackscan_runs database table.
type RunRow struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RootPath is the absolute path of the analyzed directory
	RootPath string `parquet:"root_path,snappy"`

	StartTime time.Time `parquet:"start_time,snappy"`
	EndTime   time.Time `parquet:"end_time,snappy"`

	RunDurationMs  int64 `parquet:"run_duration_ms,snappy"`
	TotalFiles     int32 `parquet:"total_files,snappy"`
	TotalCodeLines int64 `parquet:"total_code_lines,snappy"`
	SkippedFiles   int32 `parquet:"skipped_files,snappy"`
	SkippedDirs    int32 `parquet:"skipped_dirs,snappy"`

	// ProjectTypes is comma-separated and null when no marker was found
	ProjectTypes *string `parquet:"project_types,optional,snappy"`

	// ArchitecturePatterns is semicolon-separated
	ArchitecturePatterns string `parquet:"architecture_patterns,snappy"`
}

// ExtensionStatRow represents per-extension statistics of one run.
// This struct maps to the stackscan_extension_stats database table.
type ExtensionStatRow struct {
	// RunID references the parent run (0 for a report that was not recorded)
	RunID int64 `parquet:"run_id,snappy"`

	// Extension is empty for extensionless files
	Extension string `parquet:"extension,snappy"`

	FileCount int32 `parquet:"file_count,snappy"`
	CodeLines int64 `parquet:"code_lines,snappy"`
}

// WriteRunsParquet writes a slice of RunRow structs to a Parquet file.
func WriteRunsParquet(data []RunRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteExtensionStatsParquet writes a slice of ExtensionStatRow structs to a Parquet file.
func WriteExtensionStatsParquet(data []ExtensionStatRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows creates outputPath and writes all rows with a schema inferred from T's struct tags.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// RunRowsFromRecords converts stored runs into Parquet rows.
func RunRowsFromRecords(runs []schema.RunRecord) []RunRow {
	rows := make([]RunRow, 0, len(runs))
	for _, r := range runs {
		row := RunRow{
			RunID:                r.RunID,
			RootPath:             r.RootPath,
			StartTime:            r.StartTime,
			EndTime:              r.EndTime,
			RunDurationMs:        r.RunDurationMs,
			TotalFiles:           int32(r.TotalFiles),
			TotalCodeLines:       int64(r.TotalCodeLines),
			SkippedFiles:         int32(r.SkippedFiles),
			SkippedDirs:          int32(r.SkippedDirs),
			ArchitecturePatterns: r.ArchitecturePatterns,
		}
		if r.ProjectTypes != "" {
			pt := r.ProjectTypes
			row.ProjectTypes = &pt
		}
		rows = append(rows, row)
	}
	return rows
}

// ExtensionRowsFromStats converts a report's extension stats into Parquet rows.
func ExtensionRowsFromStats(runID int64, stats []schema.ExtensionStat) []ExtensionStatRow {
	rows := make([]ExtensionStatRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, ExtensionStatRow{
			RunID:     runID,
			Extension: s.Extension,
			FileCount: int32(s.FileCount),
			CodeLines: int64(s.CodeLines),
		})
	}
	return rows
}

// ExtensionRowsFromRecords converts stored extension stats into Parquet rows.
func ExtensionRowsFromRecords(records []schema.ExtensionStatRecord) []ExtensionStatRow {
	rows := make([]ExtensionStatRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ExtensionStatRow{
			RunID:     r.RunID,
			Extension: r.Extension,
			FileCount: int32(r.FileCount),
			CodeLines: int64(r.CodeLines),
		})
	}
	return rows
}
