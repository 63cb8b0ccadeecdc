package core

import (
	"context"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/schema"
)

// ReportBuilder assembles an AnalysisReport one stage at a time.
// The first failing stage stops the chain and its error is returned by Build.
type ReportBuilder struct {
	ctx    context.Context
	cfg    *contract.Config
	opts   WalkOptions
	report *schema.AnalysisReport
	files  schema.FileGrouping
	err    error
}

// NewReportBuilder is the starting point for building a report.
func NewReportBuilder(ctx context.Context, cfg *contract.Config) *ReportBuilder {
	b := &ReportBuilder{
		ctx:    ctx,
		cfg:    cfg,
		report: &schema.AnalysisReport{RootPath: cfg.RootPath},
	}
	exclusions, err := NewExclusionSet(cfg.Excludes, cfg.ExcludeGlobs)
	if err != nil {
		b.err = err
		return b
	}
	b.opts = WalkOptions{
		MaxDepth:       cfg.MaxDepth,
		Exclusions:     exclusions,
		FollowSymlinks: cfg.FollowSymlinks,
	}
	return b
}

// DetectStack checks the root for marker files.
func (b *ReportBuilder) DetectStack() *ReportBuilder {
	if b.err != nil {
		return b
	}
	b.report.ProjectTypes = DetectProjectTypes(b.cfg.RootPath)
	return b
}

// WalkTree lists the files of the tree, grouped by extension.
func (b *ReportBuilder) WalkTree() *ReportBuilder {
	if b.err != nil {
		return b
	}
	result, err := WalkTree(b.ctx, b.cfg.RootPath, b.opts)
	if err != nil {
		b.err = err
		return b
	}
	b.files = result.Files
	b.report.SkippedDirs = result.SkippedDirs
	return b
}

// ClassifyArchitecture derives pattern labels from the top-level directories.
func (b *ReportBuilder) ClassifyArchitecture() *ReportBuilder {
	if b.err != nil {
		return b
	}
	b.report.ArchitecturePatterns = ClassifyArchitecture(TopLevelDirs(b.files))
	return b
}

// LocateEntryPoints searches for the conventional entry files of each detected stack.
func (b *ReportBuilder) LocateEntryPoints() *ReportBuilder {
	if b.err != nil {
		return b
	}
	entries, err := LocateEntryPoints(b.ctx, b.cfg.RootPath, b.report.ProjectTypes, b.opts)
	if err != nil {
		b.err = err
		return b
	}
	b.report.EntryPoints = entries
	return b
}

// CountLines tallies source lines over the allow-listed extensions.
func (b *ReportBuilder) CountLines() *ReportBuilder {
	if b.err != nil {
		return b
	}
	count, err := CountLines(b.ctx, b.cfg.RootPath, b.files, sourceExtensions)
	if err != nil {
		b.err = err
		return b
	}
	b.report.TotalCodeLines = count.Total
	b.report.LinesByExtension = count.ByExtension
	b.report.CountedFiles = count.Counted
	b.report.SkippedFiles = count.Skipped
	return b
}

// Build derives per-extension counts and samples and returns the final report.
func (b *ReportBuilder) Build() (schema.AnalysisReport, error) {
	if b.err != nil {
		return schema.AnalysisReport{}, b.err
	}
	b.report.FileStatistics = make(map[string]int, len(b.files))
	b.report.DirectoryStructure = make(map[string][]string, len(b.files))
	for ext, paths := range b.files {
		b.report.FileStatistics[ext] = len(paths)
		n := min(len(paths), b.cfg.SampleSize)
		b.report.DirectoryStructure[ext] = append([]string{}, paths[:n]...)
	}
	if b.report.LinesByExtension == nil {
		b.report.LinesByExtension = map[string]int{}
	}
	return *b.report, nil
}
