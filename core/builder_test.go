package core

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/huangsam/stackscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildReport(t *testing.T, root string) schema.AnalysisReport {
	t.Helper()
	report, err := NewReportBuilder(context.Background(), testConfig(root)).
		DetectStack().
		WalkTree().
		ClassifyArchitecture().
		LocateEntryPoints().
		CountLines().
		Build()
	require.NoError(t, err)
	return report
}

func TestReportEmptyRoot(t *testing.T) {
	report := buildReport(t, t.TempDir())

	assert.Empty(t, report.ProjectTypes)
	assert.Equal(t, []schema.ArchitecturePattern{schema.UnrecognizedPattern}, report.ArchitecturePatterns)
	assert.Empty(t, report.EntryPoints)
	assert.Equal(t, 0, report.TotalCodeLines)
	assert.Empty(t, report.FileStatistics)
	assert.Empty(t, report.DirectoryStructure)
}

func TestReportNodeMVC(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":         "{}",
		"app.js":               "const x = 1\nmodule.exports = x\n",
		"models/user.js":       "a\n",
		"views/index.html":     "<p/>",
		"controllers/users.js": "b\nc",
	})

	report := buildReport(t, root)
	assert.Equal(t, []schema.ProjectType{schema.NodeJSType}, report.ProjectTypes)
	assert.Contains(t, report.ArchitecturePatterns, schema.MVCPattern)
	assert.Equal(t, []string{filepath.Join(root, "app.js")}, entryPaths(report.EntryPoints))
	assert.Equal(t, 5, report.TotalCodeLines)
	assert.Equal(t, map[string]int{".json": 1, ".js": 3, ".html": 1}, report.FileStatistics)
}

func TestReportMavenApplication(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pom.xml":                        "<project/>",
		"src/main/OrderApplication.java": "class OrderApplication {}\n",
	})

	report := buildReport(t, root)
	assert.Contains(t, report.ProjectTypes, schema.JavaMavenType)
	assert.Contains(t, entryPaths(report.EntryPoints), filepath.Join(root, "src", "main", "OrderApplication.java"))
	assert.Equal(t, 1, report.TotalCodeLines)
}

func TestReportNoMarkersMeansNoEntryPoints(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":             "package main\n",
		"index.js":            "",
		"FooApplication.java": "",
	})

	report := buildReport(t, root)
	assert.Empty(t, report.ProjectTypes)
	assert.Empty(t, report.EntryPoints)
}

func TestReportSamplesDirectoryStructure(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for i := range 15 {
		files[fmt.Sprintf("data/f%02d.txt", i)] = ""
	}
	writeTree(t, root, files)

	report := buildReport(t, root)
	assert.Equal(t, 15, report.FileStatistics[".txt"])
	require.Len(t, report.DirectoryStructure[".txt"], 10)
	assert.Equal(t, filepath.Join("data", "f00.txt"), report.DirectoryStructure[".txt"][0])
	assert.Equal(t, 15, report.TotalFiles())
}

func TestReportCountsOnlySourceExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.java":    "1\n2\n",
		"b.ts":      "1\n",
		"c.md":      "1\n2\n3\n",
		"d.rb":      "1\n",
		"e.JS":      "1\n",
		"web/f.tsx": "1\n2\n3\n4",
	})

	report := buildReport(t, root)
	assert.Equal(t, 7, report.TotalCodeLines)
	assert.Equal(t, 3, report.CountedFiles)
}

func TestReportIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":          "module x\n",
		"main.go":         "package main\n",
		"domain/order.go": "package domain\n",
		"b/c.go":          "",
		"a/d.py":          "x",
	})

	first := schema.NewReportDocument(buildReport(t, root))
	second := schema.NewReportDocument(buildReport(t, root))
	assert.Equal(t, first, second)
}

func TestReportBuilderStopsOnError(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing"))
	_, err := NewReportBuilder(context.Background(), cfg).
		DetectStack().
		WalkTree().
		ClassifyArchitecture().
		LocateEntryPoints().
		CountLines().
		Build()
	assert.ErrorIs(t, err, ErrRootUnreadable)

	cfg = testConfig(t.TempDir())
	cfg.ExcludeGlobs = []string{"[bad"}
	_, err = NewReportBuilder(context.Background(), cfg).WalkTree().Build()
	assert.Error(t, err)
}
