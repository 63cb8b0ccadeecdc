package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(root string) schema.AnalysisReport {
	return schema.AnalysisReport{
		RootPath:             root,
		ProjectTypes:         []schema.ProjectType{schema.NodeJSType},
		ArchitecturePatterns: []schema.ArchitecturePattern{schema.MVCPattern},
		EntryPoints: []schema.EntryPoint{
			{Path: filepath.Join(root, "app.js"), Family: schema.NodeFamily, ProjectTypes: []schema.ProjectType{schema.NodeJSType}},
		},
		FileStatistics:     map[string]int{".js": 3, ".json": 1, "": 2},
		DirectoryStructure: map[string][]string{".js": {"app.js", "models/user.js", "controllers/users.js"}, ".json": {"package.json"}, "": {"Makefile", "LICENSE"}},
		TotalCodeLines:     12345,
		LinesByExtension:   map[string]int{".js": 12345},
		CountedFiles:       3,
	}
}

func emptyReport(root string) schema.AnalysisReport {
	return schema.AnalysisReport{
		RootPath:             root,
		ArchitecturePatterns: []schema.ArchitecturePattern{schema.UnrecognizedPattern},
		FileStatistics:       map[string]int{},
		DirectoryStructure:   map[string][]string{},
		LinesByExtension:     map[string]int{},
	}
}

func textConfig() *contract.Config {
	return &contract.Config{Output: schema.TextOut, Width: 100, MaxDepth: contract.DefaultMaxDepth}
}

func TestWriteReportText(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	err := writeReportText(&buf, sampleReport(root), textConfig(), 1500*time.Millisecond, filepath.Join(root, schema.ReportFileName))
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, strings.Repeat("=", bannerWidth))
	assert.Contains(t, out, headingTitle)
	assert.Contains(t, out, "  - nodejs\n")
	assert.Contains(t, out, "  - MVC\n")
	assert.Contains(t, out, "app.js")
	assert.Contains(t, out, "  Total code lines: 12,345\n")
	assert.Contains(t, out, "  Files listed: 6\n")
	assert.Contains(t, out, schema.NoExtensionLabel)
	assert.Contains(t, out, "Detailed report saved to: "+filepath.Join(root, schema.ReportFileName))
	assert.Contains(t, out, "Analysis completed in 1.5s (skipped dirs: 0, skipped files: 0)")

	// Sections appear in a fixed order
	order := []string{headingProjectTypes, headingPatterns, headingEntryPoints, headingCodeStatistic}
	last := -1
	for _, h := range order {
		idx := strings.Index(out, h)
		require.NotEqual(t, -1, idx, h)
		assert.Greater(t, idx, last, h)
		last = idx
	}
}

func TestWriteReportText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReportText(&buf, emptyReport(t.TempDir()), textConfig(), 0, ""))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "  (none)\n"), "project types and entry points")
	assert.Contains(t, out, string(schema.UnrecognizedPattern))
	assert.Contains(t, out, "  Total code lines: 0\n")
	assert.NotContains(t, out, "Detailed report saved to")
	assert.NotContains(t, out, "Extension")
}

func TestWriteExtensionTable_UncountedShowsDash(t *testing.T) {
	var buf bytes.Buffer
	stats := []schema.ExtensionStat{
		{Extension: ".js", FileCount: 3, CodeLines: 40},
		{Extension: ".md", FileCount: 1},
	}
	require.NoError(t, writeExtensionTable(&buf, stats, map[string]int{".js": 40}))

	var mdLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, ".md") {
			mdLine = line
		}
	}
	require.NotEmpty(t, mdLine)
	assert.Contains(t, mdLine, "-")
	assert.NotContains(t, mdLine, "0")
}

func TestWriteExtensionCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeExtensionCSV(&buf, schema.ExtensionStats(sampleReport("/r"))))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"extension", "file_count", "code_lines"},
		{".js", "3", "12345"},
		{"", "2", "0"},
		{".json", "1", "0"},
	}, records)
}

func TestPrintReport_Formats(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport(dir)

	t.Run("json", func(t *testing.T) {
		out := filepath.Join(dir, "report.json")
		cfg := &contract.Config{Output: schema.JSONOut, OutputFile: out}
		require.NoError(t, PrintReport(report, cfg, time.Second, ""))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, []any{"nodejs"}, doc["project_types"])
		assert.Equal(t, float64(12345), doc["total_code_lines"])
	})

	t.Run("csv", func(t *testing.T) {
		out := filepath.Join(dir, "report.csv")
		cfg := &contract.Config{Output: schema.CSVOut, OutputFile: out}
		require.NoError(t, PrintReport(report, cfg, time.Second, ""))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "extension,file_count,code_lines\n"))
	})

	t.Run("parquet", func(t *testing.T) {
		out := filepath.Join(dir, "report.parquet")
		cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: out}
		require.NoError(t, PrintReport(report, cfg, time.Second, ""))

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("text", func(t *testing.T) {
		out := filepath.Join(dir, "report.txt")
		cfg := textConfig()
		cfg.OutputFile = out
		require.NoError(t, PrintReport(report, cfg, time.Second, ""))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), headingTitle)
	})
}
