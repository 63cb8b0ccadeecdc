package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/internal/history"
	"github.com/huangsam/stackscan/internal/outwriter"
	"github.com/huangsam/stackscan/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadHistoryConfig reads the history and output settings without requiring a path to analyze.
func loadHistoryConfig() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseBackend(viper.GetString("history-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	output := schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format '%s'", output)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = output
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")
	return nil
}

// historySetup loads history settings and opens the store.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := loadHistoryConfig(); err != nil {
		return err
	}
	if cfg.HistoryBackend == schema.NoneBackend {
		_, _ = fmt.Fprintln(os.Stderr, "Run history is disabled. Set --history-backend to sqlite, mysql or postgresql.")
	}
	store, err := history.NewHistoryStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	historyStore = store
	return nil
}

// historyMigrateSetup loads history settings but leaves table creation to the migrations.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	return loadHistoryConfig()
}

// historyCmd groups run history management.
//
// Note: history subcommands skip the full sharedSetup since they do not analyze a directory.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded analysis runs",
	Long: `Manage the run history recorded when a history backend is enabled.

Each recorded run stores the analyzed path, timing, totals, detected
project types, architecture patterns and per-extension statistics.
Analyses never read this history back, so every run stays independent.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show run history statistics
  list    - Show the most recent runs
  clear   - Remove all recorded runs
  export  - Export runs to Parquet for analytics
  migrate - Run database schema migrations`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display run history statistics and connection details",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := historyStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyListCmd lists recent runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent recorded runs",
	Long: `List recorded runs, newest first.

Examples:
  # Last 20 runs as a table
  stackscan history list --history-backend sqlite

  # Last 5 runs as JSON
  stackscan history list --history-backend sqlite --limit 5 --output json`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		limit := viper.GetInt("limit")
		if limit < 1 {
			contract.LogFatal("Invalid limit", fmt.Errorf("--limit must be at least 1, got %d", limit))
		}
		runs, err := historyStore.ListRuns(limit)
		if err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
		if err := outwriter.PrintRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to print runs", err)
		}
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete all recorded runs and their per-extension statistics.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  stackscan history export --output-file backup
  stackscan history clear`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := historyStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet format.

Writes two files derived from --output-file:
- <output-file>.runs.parquet
- <output-file>.extension_stats.parquet

Examples:
  stackscan history export --output-file stackscan-data
  duckdb -c "SELECT * FROM read_parquet('stackscan-data.runs.parquet') LIMIT 10"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteExport(historyStore, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  stackscan history migrate --history-backend sqlite

  # Rollback everything
  stackscan history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
