package schema

import "time"

// RunRecord represents a row from the stackscan_runs table.
type RunRecord struct {
	RunID                int64     `json:"run_id"`
	RootPath             string    `json:"root_path"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	RunDurationMs        int64     `json:"run_duration_ms"`
	TotalFiles           int       `json:"total_files"`
	TotalCodeLines       int       `json:"total_code_lines"`
	SkippedFiles         int       `json:"skipped_files"`
	SkippedDirs          int       `json:"skipped_dirs"`
	ProjectTypes         string    `json:"project_types"`         // Comma-separated
	ArchitecturePatterns string    `json:"architecture_patterns"` // Semicolon-separated
}

// ExtensionStatRecord represents a row from the stackscan_extension_stats table.
type ExtensionStatRecord struct {
	RunID     int64  `json:"run_id"`
	Extension string `json:"extension"`
	FileCount int    `json:"file_count"`
	CodeLines int    `json:"code_lines"`
}
