package history

import (
	"fmt"

	"github.com/huangsam/stackscan/schema"
)

// createTablesQueries returns the CREATE TABLE statements for a backend, in dependency order.
func createTablesQueries(backend schema.DatabaseBackend) []string {
	return []string{
		getCreateRunsQuery(backend),
		getCreateExtensionStatsQuery(backend),
	}
}

// getCreateRunsQuery returns the CREATE TABLE query for stackscan_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				root_path TEXT NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6) NOT NULL,
				run_duration_ms BIGINT NOT NULL,
				total_files INT NOT NULL,
				total_code_lines BIGINT NOT NULL,
				skipped_files INT NOT NULL,
				skipped_dirs INT NOT NULL,
				project_types TEXT NOT NULL,
				architecture_patterns TEXT NOT NULL
			)`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				root_path TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ NOT NULL,
				run_duration_ms BIGINT NOT NULL,
				total_files INT NOT NULL,
				total_code_lines BIGINT NOT NULL,
				skipped_files INT NOT NULL,
				skipped_dirs INT NOT NULL,
				project_types TEXT NOT NULL,
				architecture_patterns TEXT NOT NULL
			)`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				root_path TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT NOT NULL,
				run_duration_ms INTEGER NOT NULL,
				total_files INTEGER NOT NULL,
				total_code_lines INTEGER NOT NULL,
				skipped_files INTEGER NOT NULL,
				skipped_dirs INTEGER NOT NULL,
				project_types TEXT NOT NULL,
				architecture_patterns TEXT NOT NULL
			)`, quotedTableName)
	}
}

// getCreateExtensionStatsQuery returns the CREATE TABLE query for stackscan_extension_stats.
func getCreateExtensionStatsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(extensionStatsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				extension VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
				file_count INT NOT NULL,
				code_lines BIGINT NOT NULL,
				PRIMARY KEY (run_id, extension)
			)`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				extension TEXT NOT NULL,
				file_count INT NOT NULL,
				code_lines BIGINT NOT NULL,
				PRIMARY KEY (run_id, extension)
			)`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				extension TEXT NOT NULL,
				file_count INTEGER NOT NULL,
				code_lines INTEGER NOT NULL,
				PRIMARY KEY (run_id, extension)
			)`, quotedTableName)
	}
}
