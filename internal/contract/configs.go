package contract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/stackscan/schema"
)

// Default values for configuration.
const (
	DefaultMaxDepth   = 3
	DefaultSampleSize = 10
	DefaultTopN       = 10
	MaxSampleSize     = 1000
)

// Errors surfaced by configuration validation.
var (
	ErrMissingPath  = errors.New("path to analyze is required")
	ErrNotDirectory = errors.New("not a valid directory")
)

// DefaultExcludedDirs returns the directory names never traversed by default.
// A fresh slice is returned on every call.
func DefaultExcludedDirs() []string {
	return []string{
		"node_modules", "target", "build", "dist", ".git",
		"__pycache__", ".idea", "venv", "env",
	}
}

// Config holds the runtime configuration for the analysis.
// This struct is the "final, validated" config.
type Config struct {
	RootPath       string   // Absolute path to the analyzed directory
	MaxDepth       int      // Directory depth at which traversal stops
	Excludes       []string // Directory names never traversed
	ExcludeGlobs   []string // Root-relative directory globs never traversed
	SampleSize     int      // Paths kept per extension in the report
	FollowSymlinks bool     // Descend into symlinked directories (cycle-guarded)
	Save           bool     // Persist project_analysis.json into the root
	Output         schema.OutputMode
	OutputFile     string
	Width          int // Terminal width override (0 = auto-detect)
	UseColors      bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RootPathStr string

	MaxDepth         int    `mapstructure:"max-depth"`
	Exclude          string `mapstructure:"exclude"`
	ExcludeGlob      string `mapstructure:"exclude-glob"`
	SampleSize       int    `mapstructure:"sample-size"`
	FollowSymlinks   bool   `mapstructure:"follow-symlinks"`
	Save             bool   `mapstructure:"save"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.ExcludeGlobs != nil {
		clone.ExcludeGlobs = make([]string, len(c.ExcludeGlobs))
		copy(clone.ExcludeGlobs, c.ExcludeGlobs)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolveRootPath(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	default:
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	return nil
}

// ParseBackend normalizes a backend string, treating empty as none.
func ParseBackend(s string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(s)))
	if backend == "" {
		return schema.NoneBackend, nil
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", s)
	}
	return backend, nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.FollowSymlinks = input.FollowSymlinks
	cfg.Save = input.Save
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.MaxDepth < 1 {
		return fmt.Errorf("max-depth must be at least 1 (received %d)", input.MaxDepth)
	}
	cfg.MaxDepth = input.MaxDepth

	if input.SampleSize < 0 || input.SampleSize > MaxSampleSize {
		return fmt.Errorf("sample-size must be between 0 and %d (received %d)", MaxSampleSize, input.SampleSize)
	}
	cfg.SampleSize = input.SampleSize

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	cfg.Excludes = DefaultExcludedDirs()
	cfg.Excludes = append(cfg.Excludes, SplitList(input.Exclude)...)
	cfg.ExcludeGlobs = SplitList(input.ExcludeGlob)

	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// resolveRootPath stores the absolute form of the positional argument.
func resolveRootPath(cfg *Config, input *ConfigRawInput) error {
	absPath, err := ResolveRootPath(input.RootPathStr)
	if err != nil {
		return err
	}
	cfg.RootPath = absPath
	return nil
}

// ResolveRootPath checks that path names an existing directory and returns
// its absolute form.
func ResolveRootPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrMissingPath
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %q: %w", path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return absPath, nil
}
