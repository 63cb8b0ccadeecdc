// Package schema has models and constants shared by all parts of stackscan.
package schema

// FileGrouping maps a file extension to root-relative paths in traversal order.
// Extensionless files are keyed by the empty string.
type FileGrouping map[string][]string

// Extensions returns the number of distinct extensions in the grouping.
func (g FileGrouping) Extensions() int {
	return len(g)
}

// TotalFiles returns the number of paths across all extensions.
func (g FileGrouping) TotalFiles() int {
	total := 0
	for _, paths := range g {
		total += len(paths)
	}
	return total
}

// EntryPoint is a file believed to start a program, along with the
// project types whose conventions located it.
type EntryPoint struct {
	Path         string        `json:"path"`   // Absolute path to the file
	Family       StackFamily   `json:"family"` // Stack family whose rule matched
	ProjectTypes []ProjectType `json:"project_types"`
}

// SkippedPath records a file or directory the analysis could not read.
type SkippedPath struct {
	Path   string `json:"path"`   // Root-relative path
	Reason string `json:"reason"` // Error text from the filesystem
}

// LineCount is the outcome of counting lines over allow-listed extensions.
type LineCount struct {
	Total       int            // Sum of lines over counted files
	ByExtension map[string]int // Lines per allow-listed extension
	Counted     int            // Files read successfully
	Skipped     []SkippedPath  // Files that could not be read
}

// AnalysisReport is the aggregate result of one analysis pass.
// It is assembled once and never modified afterwards.
type AnalysisReport struct {
	RootPath             string
	ProjectTypes         []ProjectType
	ArchitecturePatterns []ArchitecturePattern
	EntryPoints          []EntryPoint
	FileStatistics       map[string]int      // Extension -> file count
	DirectoryStructure   map[string][]string // Extension -> first N paths
	TotalCodeLines       int
	LinesByExtension     map[string]int
	CountedFiles         int
	SkippedFiles         []SkippedPath
	SkippedDirs          []SkippedPath
}

// TotalFiles returns the number of files listed by the walker.
func (r AnalysisReport) TotalFiles() int {
	total := 0
	for _, n := range r.FileStatistics {
		total += n
	}
	return total
}
