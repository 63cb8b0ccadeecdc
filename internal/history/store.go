package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/schema"
)

// StoreImpl implements the HistoryStore interface.
type StoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &StoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
// The none backend yields a store that accepts and returns nothing.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend || backend == "" {
		return &StoreImpl{backend: schema.NoneBackend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	for _, query := range createTablesQueries(backend) {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create history tables: %w", err)
		}
	}

	return &StoreImpl{db: db, backend: backend}, nil
}

// disabled reports whether the store is a no-op.
func (s *StoreImpl) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// RecordRun stores one run and its extension rows in a single transaction.
func (s *StoreImpl) RecordRun(run schema.RunRecord, stats []schema.ExtensionStat) (int64, error) {
	if s.disabled() {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runsQuery := fmt.Sprintf(`INSERT INTO %s (root_path, start_time, end_time, run_duration_ms, total_files,
		total_code_lines, skipped_files, skipped_dirs, project_types, architecture_patterns)
		VALUES (%s)`, quoteTableName(runsTable, s.backend), placeholders(s.backend, 1, 10))
	args := []any{
		run.RootPath, formatTime(run.StartTime, s.backend), formatTime(run.EndTime, s.backend),
		run.RunDurationMs, run.TotalFiles, run.TotalCodeLines, run.SkippedFiles, run.SkippedDirs,
		run.ProjectTypes, run.ArchitecturePatterns,
	}

	var runID int64
	switch s.backend {
	case schema.PostgreSQLBackend:
		if err := tx.QueryRow(runsQuery+" RETURNING run_id", args...).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
	default: // SQLite and MySQL
		result, err := tx.Exec(runsQuery, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		if runID, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read run id: %w", err)
		}
	}

	statsQuery := fmt.Sprintf(`INSERT INTO %s (run_id, extension, file_count, code_lines) VALUES (%s)`,
		quoteTableName(extensionStatsTable, s.backend), placeholders(s.backend, 1, 4))
	for _, st := range stats {
		if _, err := tx.Exec(statsQuery, runID, st.Extension, st.FileCount, st.CodeLines); err != nil {
			return 0, fmt.Errorf("failed to insert stats for extension %q: %w", st.Extension, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `run_id, root_path, start_time, end_time, run_duration_ms, total_files,
	total_code_lines, skipped_files, skipped_dirs, project_types, architecture_patterns`

// ListRuns returns at most limit runs, newest first.
func (s *StoreImpl) ListRuns(limit int) ([]schema.RunRecord, error) {
	if s.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY run_id DESC LIMIT %s",
		runColumns, quoteTableName(runsTable, s.backend), placeholder(s.backend, 1))
	return s.queryRuns(query, limit)
}

// GetAllRuns retrieves all runs from the store, oldest first.
func (s *StoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if s.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY run_id", runColumns, quoteTableName(runsTable, s.backend))
	return s.queryRuns(query)
}

func (s *StoreImpl) queryRuns(query string, args ...any) ([]schema.RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var r schema.RunRecord
		var start, end any
		if err := rows.Scan(&r.RunID, &r.RootPath, &start, &end, &r.RunDurationMs, &r.TotalFiles,
			&r.TotalCodeLines, &r.SkippedFiles, &r.SkippedDirs, &r.ProjectTypes, &r.ArchitecturePatterns); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if r.StartTime, err = parseTime(start); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if r.EndTime, err = parseTime(end); err != nil {
			return nil, fmt.Errorf("failed to parse end_time: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllExtensionStats retrieves every per-extension row, ordered by run and extension.
func (s *StoreImpl) GetAllExtensionStats() ([]schema.ExtensionStatRecord, error) {
	if s.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT run_id, extension, file_count, code_lines FROM %s ORDER BY run_id, extension",
		quoteTableName(extensionStatsTable, s.backend))
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query extension stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ExtensionStatRecord
	for rows.Next() {
		var r schema.ExtensionStatRecord
		if err := rows.Scan(&r.RunID, &r.Extension, &r.FileCount, &r.CodeLines); err != nil {
			return nil, fmt.Errorf("failed to scan extension stats: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating extension stats: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (s *StoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	runs := quoteTableName(runsTable, s.backend)
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last, oldest any
		lastQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runs)
		if err := s.db.QueryRow(lastQuery).Scan(&status.LastRunID, &last); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runs)
		if err := s.db.QueryRow(oldestQuery).Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		var err error
		if status.LastRunTime, err = parseTime(last); err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		if status.OldestRunTime, err = parseTime(oldest); err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
		filesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_files), 0) FROM %s", runs)
		if err := s.db.QueryRow(filesQuery).Scan(&status.TotalFilesSeen); err != nil {
			return status, fmt.Errorf("failed to get total files seen: %w", err)
		}
	}

	for _, table := range []string{runsTable, extensionStatsTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
		if err := s.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// Clear removes all recorded runs and their extension rows.
func (s *StoreImpl) Clear() error {
	if s.disabled() {
		return nil
	}
	for _, table := range []string{extensionStatsTable, runsTable} {
		if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", quoteTableName(table, s.backend))); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *StoreImpl) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}

// parseTime reads a timestamp column stored natively or as RFC3339 text.
func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unexpected time value of type %T", v)
	}
}
