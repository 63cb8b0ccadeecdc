package outwriter

import (
	"bytes"
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

func sampleRuns(now time.Time) []schema.RunRecord {
	return []schema.RunRecord{
		{
			RunID: 2, RootPath: "/srv/app", StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-2 * time.Hour),
			RunDurationMs: 1500, TotalFiles: 2048, TotalCodeLines: 98765, ProjectTypes: "go",
		},
		{
			RunID: 1, RootPath: "/srv/web", StartTime: now.Add(-72 * time.Hour), EndTime: now.Add(-72 * time.Hour),
			RunDurationMs: 20, TotalFiles: 3, TotalCodeLines: 7, ProjectTypes: "nodejs,python",
		},
	}
}

func TestWriteRunsTable(t *testing.T) {
	now := time.Now()
	var buf bytes.Buffer
	require.NoError(t, writeRunsTable(&buf, sampleRuns(now), textConfig(), now))
	out := buf.String()

	assert.Contains(t, out, "/srv/app")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "3 days ago")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "98,765")
	assert.Contains(t, out, "nodejs,python")
	assert.Less(t, strings.Index(out, "/srv/app"), strings.Index(out, "/srv/web"))
}

func TestWriteRunsTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRunsTable(&buf, nil, textConfig(), time.Now()))
	assert.Equal(t, "No runs recorded.\n", buf.String())
}

func TestPrintRuns(t *testing.T) {
	dir := t.TempDir()
	runs := sampleRuns(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))

	t.Run("json", func(t *testing.T) {
		out := filepath.Join(dir, "runs.json")
		require.NoError(t, PrintRuns(runs, &contract.Config{Output: schema.JSONOut, OutputFile: out}))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, float64(2), decoded[0]["run_id"])
		assert.Equal(t, "/srv/app", decoded[0]["root_path"])
	})

	t.Run("json empty", func(t *testing.T) {
		out := filepath.Join(dir, "empty.json")
		require.NoError(t, PrintRuns(nil, &contract.Config{Output: schema.JSONOut, OutputFile: out}))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("csv", func(t *testing.T) {
		out := filepath.Join(dir, "runs.csv")
		require.NoError(t, PrintRuns(runs, &contract.Config{Output: schema.CSVOut, OutputFile: out}))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "run_id,root_path,start_time"))
		assert.True(t, strings.HasPrefix(lines[1], "2,/srv/app,2026-05-01T08:00:00Z"))
	})

	t.Run("parquet rejected", func(t *testing.T) {
		err := PrintRuns(runs, &contract.Config{Output: schema.ParquetOut, OutputFile: filepath.Join(dir, "x")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "history export")
	})
}

func TestGetMaxPathWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		reserved int
		expected int
	}{
		{name: "override", width: 100, reserved: 10, expected: 90},
		{name: "clamped low", width: 30, reserved: 25, expected: 20},
		{name: "clamped high", width: 400, reserved: 10, expected: 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetMaxPathWidth(&contract.Config{Width: tt.width}, tt.reserved))
		})
	}
}
