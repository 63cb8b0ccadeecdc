package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const (
	bannerWidth   = 60
	topExtensions = 10
	listIndent    = "  - "
)

// Section headings of the console report.
const (
	headingTitle         = "Project Analysis Report"
	headingProjectTypes  = "Project Types"
	headingPatterns      = "Architecture Patterns"
	headingEntryPoints   = "Entry Points"
	headingCodeStatistic = "Code Statistics"
)

// writeReportText renders the console report.
func writeReportText(w io.Writer, report schema.AnalysisReport, cfg *contract.Config, duration time.Duration, savedPath string) error {
	heading := color.New(color.FgCyan, color.Bold)
	if !cfg.UseColors {
		heading.DisableColor()
	}
	banner := strings.Repeat("=", bannerWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n%s\n%s\n", banner, heading.Sprint(headingTitle), banner)

	writeSection(&b, heading, headingProjectTypes, stringsOf(report.ProjectTypes))
	writeSection(&b, heading, headingPatterns, stringsOf(report.ArchitecturePatterns))

	entryWidth := GetMaxPathWidth(cfg, len(listIndent))
	entries := make([]string, len(report.EntryPoints))
	for i, ep := range report.EntryPoints {
		entries[i] = contract.TruncatePath(ep.Path, entryWidth)
	}
	writeSection(&b, heading, headingEntryPoints, entries)

	fmt.Fprintf(&b, "\n%s\n", heading.Sprint(headingCodeStatistic))
	fmt.Fprintf(&b, "  Total code lines: %s\n", humanize.Comma(int64(report.TotalCodeLines)))
	fmt.Fprintf(&b, "  Files listed: %s\n", humanize.Comma(int64(report.TotalFiles())))
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if err := writeExtensionTable(w, schema.TopExtensions(report, topExtensions), report.LinesByExtension); err != nil {
		return err
	}

	if savedPath != "" {
		if _, err := fmt.Fprintf(w, "\nDetailed report saved to: %s\n", savedPath); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v (skipped dirs: %d, skipped files: %d)\n",
		duration.Round(time.Millisecond), len(report.SkippedDirs), len(report.SkippedFiles))
	return err
}

// writeSection writes a heading followed by one bullet per item.
func writeSection(b *strings.Builder, heading *color.Color, title string, items []string) {
	fmt.Fprintf(b, "\n%s\n", heading.Sprint(title))
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "%s%s\n", listIndent, item)
	}
}

// writeExtensionTable renders the file-type distribution.
// Code lines are only shown for extensions present in counted.
func writeExtensionTable(w io.Writer, stats []schema.ExtensionStat, counted map[string]int) error {
	if len(stats) == 0 {
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Extension", "Files", "Code Lines"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range stats {
		lines := "-"
		if _, ok := counted[s.Extension]; ok {
			lines = humanize.Comma(int64(s.CodeLines))
		}
		data = append(data, []string{
			schema.FormatExtension(s.Extension),
			humanize.Comma(int64(s.FileCount)),
			lines,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeExtensionCSV writes every extension as extension,file_count,code_lines.
func writeExtensionCSV(w io.Writer, stats []schema.ExtensionStat) error {
	return writeCSVWithHeader(w, []string{"extension", "file_count", "code_lines"}, func(cw *csv.Writer) error {
		for _, s := range stats {
			if err := cw.Write([]string{s.Extension, strconv.Itoa(s.FileCount), strconv.Itoa(s.CodeLines)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
