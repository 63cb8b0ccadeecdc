// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/huangsam/stackscan/schema"

// HistoryStore records completed analysis runs.
// The analysis itself never reads from it, so every run stays independent.
type HistoryStore interface {
	// RecordRun stores one run with its per-extension statistics and returns the run ID.
	RecordRun(run schema.RunRecord, stats []schema.ExtensionStat) (int64, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetAllRuns returns every run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllExtensionStats returns every per-extension row, ordered by run.
	GetAllExtensionStats() ([]schema.ExtensionStatRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes every recorded run.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
