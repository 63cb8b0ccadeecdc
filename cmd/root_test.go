package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs rootCmd with args and default flag values, returning the
// error and whatever cobra printed to its error stream.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestRootAnalyzesDirectory(t *testing.T) {
	root := writeProject(t, map[string]string{
		"go.mod":          "module example.com/app\n",
		"main.go":         "package main\n\nfunc main() {}\n",
		"internal/db.go":  "package internal\n",
		"cmd/tool/run.go": "package main\n",
	})
	outFile := filepath.Join(t.TempDir(), "report.json")

	_, err := executeRoot(t, "--save=false", "--output", "json", "--output-file", outFile, root)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var doc struct {
		ProjectTypes   []string `json:"project_types"`
		EntryPoints    []string `json:"entry_points"`
		TotalCodeLines int      `json:"total_code_lines"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, []string{"go"}, doc.ProjectTypes)
	assert.Equal(t, []string{filepath.Join(root, "main.go")}, doc.EntryPoints)
	assert.Equal(t, 5, doc.TotalCodeLines)

	assert.NoFileExists(t, filepath.Join(root, "project_analysis.json"))
}

func TestRootSavesReport(t *testing.T) {
	root := writeProject(t, map[string]string{"package.json": "{}\n", "index.js": "run()\n"})

	_, err := executeRoot(t, "--color", "no", root)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "project_analysis.json"))
}

func TestRootDirectoryNamedLikeSubcommand(t *testing.T) {
	root := writeProject(t, map[string]string{"history/requirements.txt": "flask\n"})

	_, err := executeRoot(t, "--save=false", "--color", "no", filepath.Join(root, "history"))
	require.NoError(t, err)
}

func TestRootInvocationErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	tests := []struct {
		name      string
		args      []string
		wantErr   error
		wantMsg   string
		wantUsage bool
	}{
		{
			name:      "missing path",
			args:      []string{},
			wantErr:   contract.ErrMissingPath,
			wantUsage: true,
		},
		{
			name:      "too many paths",
			args:      []string{dir, dir},
			wantMsg:   "expected exactly one path, got 2",
			wantUsage: true,
		},
		{
			name:    "file instead of directory",
			args:    []string{"--save=false", file},
			wantErr: contract.ErrNotDirectory,
		},
		{
			name:    "nonexistent path",
			args:    []string{"--save=false", filepath.Join(dir, "missing")},
			wantErr: contract.ErrNotDirectory,
		},
		{
			name:    "invalid max depth",
			args:    []string{"--max-depth", "0", dir},
			wantMsg: "max-depth must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeRoot(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			if tt.wantUsage {
				assert.Contains(t, out, "stackscan <path>")
			} else {
				assert.NotContains(t, out, "Usage:")
			}
		})
	}
}
