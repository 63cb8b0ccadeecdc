// Package cmd defines the command-line interface for stackscan.
package cmd

import (
	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("max-depth", contract.DefaultMaxDepth, "Directory depth at which listing stops (root is depth 0)")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated directory names to skip in addition to the defaults")
	rootCmd.PersistentFlags().String("exclude-glob", "", "Comma-separated doublestar globs over root-relative directory paths to skip")
	rootCmd.PersistentFlags().Int("sample-size", contract.DefaultSampleSize, "Number of paths kept per extension in the report")
	rootCmd.PersistentFlags().Bool("follow-symlinks", false, "Descend into symlinked directories (cycles are skipped)")
	rootCmd.PersistentFlags().Bool("save", true, "Write project_analysis.json into the analyzed directory")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored headings in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyListCmd to Viper
	historyListCmd.Flags().Int("limit", 20, "Number of recent runs to show")
	if err := viper.BindPFlags(historyListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history list flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
