package schema

import (
	"sort"
	"strings"
)

// FormatExtension renders an extension for humans, naming the empty one explicitly.
func FormatExtension(ext string) string {
	if ext == "" {
		return NoExtensionLabel
	}
	return ext
}

// ExtensionStats flattens the report's per-extension counts, ordered by file count
// descending with ties broken by extension name.
func ExtensionStats(r AnalysisReport) []ExtensionStat {
	stats := make([]ExtensionStat, 0, len(r.FileStatistics))
	for ext, n := range r.FileStatistics {
		stats = append(stats, ExtensionStat{
			Extension: ext,
			FileCount: n,
			CodeLines: r.LinesByExtension[ext],
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].FileCount != stats[j].FileCount {
			return stats[i].FileCount > stats[j].FileCount
		}
		return stats[i].Extension < stats[j].Extension
	})
	return stats
}

// TopExtensions returns at most n entries of ExtensionStats.
func TopExtensions(r AnalysisReport, n int) []ExtensionStat {
	stats := ExtensionStats(r)
	if n >= 0 && len(stats) > n {
		return stats[:n]
	}
	return stats
}

// JoinProjectTypes renders project types as a comma-separated list.
func JoinProjectTypes(types []ProjectType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// JoinPatterns renders pattern labels as a semicolon-separated list.
func JoinPatterns(patterns []ArchitecturePattern) string {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = string(p)
	}
	return strings.Join(parts, ";")
}
