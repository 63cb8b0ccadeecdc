package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/stackscan/core"
	"github.com/huangsam/stackscan/internal/contract"
	"github.com/huangsam/stackscan/internal/history"
	"github.com/huangsam/stackscan/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// historyStore records completed runs. It is a no-op store unless a history backend is set.
var historyStore contract.HistoryStore

// rootCmd analyzes the directory given as its only argument.
var rootCmd = &cobra.Command{
	Use:   "stackscan <path>",
	Short: "Detect the technology stack and architecture of a project directory.",
	Long: `Stackscan inspects a project directory and reports its project types,
architecture patterns, likely entry points and code statistics.

The report is printed to the console and saved as project_analysis.json
in the analyzed directory.

A path that matches a subcommand name (history, mcp, version) runs that
subcommand. Use ./history to analyze a directory with such a name.`,
	Version:            version,
	Args:               cobra.ArbitraryArgs,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			_ = cmd.Usage()
			return contract.ErrMissingPath
		case 1:
		default:
			_ = cmd.Usage()
			return fmt.Errorf("expected exactly one path, got %d", len(args))
		}
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteAnalysis(rootCtx, cfg, historyStore)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeHistoryStore()
	},
}

// initConfig sets up config file lookup, environment variables and defaults.
func initConfig() {
	configureConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("STACKSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("max-depth", contract.DefaultMaxDepth)
	viper.SetDefault("sample-size", contract.DefaultSampleSize)
	viper.SetDefault("save", true)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", "yes")
}

// configureConfigFile points viper at --config or the default .stackscan.yaml locations.
func configureConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".stackscan") // Name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// readConfigFile reads the config file if present. A missing file is fine.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config, validates it and opens the history store.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.RootPathStr = args[0]
	} else {
		input.RootPathStr = "."
	}

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Open run history with validated config
	store, err := history.NewHistoryStore(cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	historyStore = store
	return nil
}

// closeHistoryStore releases the history store if one was opened.
func closeHistoryStore() error {
	if historyStore == nil {
		return nil
	}
	err := historyStore.Close()
	historyStore = nil
	return err
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
