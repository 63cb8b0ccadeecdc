// Package core has core logic for stack detection, architecture classification and report assembly.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/internal/outwriter"
	"github.com/huangsam/stackscan/schema"
)

// GetAnalysisReport runs every analysis stage over cfg.RootPath and returns the
// assembled report. Nothing is written to disk.
func GetAnalysisReport(ctx context.Context, cfg *contract.Config) (schema.AnalysisReport, error) {
	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		outwriter.LogAnalysisHeader(cfg)
	}
	return NewReportBuilder(ctx, cfg).
		DetectStack().
		WalkTree().
		ClassifyArchitecture().
		LocateEntryPoints().
		CountLines().
		Build()
}

// ExecuteAnalysis runs the analysis, persists project_analysis.json when
// enabled and prints the report in the configured format.
// A non-nil store receives a record of the completed run.
func ExecuteAnalysis(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	start := time.Now()
	report, err := GetAnalysisReport(ctx, cfg)
	if err != nil {
		return err
	}

	var savedPath string
	if cfg.Save {
		savedPath, err = outwriter.PersistReport(report)
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
	}
	end := time.Now()

	if store != nil {
		if _, err := RecordRun(store, report, start, end); err != nil {
			contract.LogWarn("Run history recording failed", err)
		}
	}

	return outwriter.PrintReport(report, cfg, end.Sub(start), savedPath)
}

// RecordRun stores a summary of one completed run with its per-extension rows.
func RecordRun(store contract.HistoryStore, report schema.AnalysisReport, start, end time.Time) (int64, error) {
	run := schema.RunRecord{
		RootPath:             report.RootPath,
		StartTime:            start,
		EndTime:              end,
		RunDurationMs:        end.Sub(start).Milliseconds(),
		TotalFiles:           report.TotalFiles(),
		TotalCodeLines:       report.TotalCodeLines,
		SkippedFiles:         len(report.SkippedFiles),
		SkippedDirs:          len(report.SkippedDirs),
		ProjectTypes:         schema.JoinProjectTypes(report.ProjectTypes),
		ArchitecturePatterns: schema.JoinPatterns(report.ArchitecturePatterns),
	}
	return store.RecordRun(run, schema.ExtensionStats(report))
}
