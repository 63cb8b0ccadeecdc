package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRuns outputs recorded runs in the configured format.
// Parquet is not offered here; the history export command covers it.
func PrintRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if runs == nil {
			runs = []schema.RunRecord{}
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsCSV(w, runs)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for run listings, use history export")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(w, runs, cfg, time.Now())
		}, "Wrote text")
	}
}

// writeRunsTable renders runs as a table with relative start times.
func writeRunsTable(w io.Writer, runs []schema.RunRecord, cfg *contract.Config, now time.Time) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	const reservedWidth = 70 // Other columns and borders
	pathWidth := GetMaxPathWidth(cfg, reservedWidth)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Root", "Started", "Duration", "Files", "Lines", "Stack"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			contract.TruncatePath(r.RootPath, pathWidth),
			humanize.RelTime(r.StartTime, now, "ago", "from now"),
			(time.Duration(r.RunDurationMs) * time.Millisecond).String(),
			humanize.Comma(int64(r.TotalFiles)),
			humanize.Comma(int64(r.TotalCodeLines)),
			r.ProjectTypes,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeRunsCSV writes one row per run with RFC3339 timestamps.
func writeRunsCSV(w io.Writer, runs []schema.RunRecord) error {
	header := []string{
		"run_id", "root_path", "start_time", "end_time", "run_duration_ms", "total_files",
		"total_code_lines", "skipped_files", "skipped_dirs", "project_types", "architecture_patterns",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range runs {
			if err := cw.Write([]string{
				strconv.FormatInt(r.RunID, 10),
				r.RootPath,
				r.StartTime.Format(time.RFC3339),
				r.EndTime.Format(time.RFC3339),
				strconv.FormatInt(r.RunDurationMs, 10),
				strconv.Itoa(r.TotalFiles),
				strconv.Itoa(r.TotalCodeLines),
				strconv.Itoa(r.SkippedFiles),
				strconv.Itoa(r.SkippedDirs),
				r.ProjectTypes,
				r.ArchitecturePatterns,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
