package schema

// ReportDocument is the serialized shape of an AnalysisReport, as written to
// project_analysis.json and returned by the json output mode.
type ReportDocument struct {
	ProjectTypes         []string            `json:"project_types"`
	ArchitecturePatterns []string            `json:"architecture_patterns"`
	EntryPoints          []string            `json:"entry_points"`
	FileStatistics       map[string]int      `json:"file_statistics"`
	TotalCodeLines       int                 `json:"total_code_lines"`
	DirectoryStructure   map[string][]string `json:"directory_structure"`
}

// ExtensionStat is one row of per-extension statistics.
type ExtensionStat struct {
	Extension string `json:"extension"`
	FileCount int    `json:"file_count"`
	CodeLines int    `json:"code_lines"`
}

// NewReportDocument converts a report into its serialized shape.
// Empty sequences are kept as empty slices so they encode as [] rather than null.
func NewReportDocument(r AnalysisReport) ReportDocument {
	doc := ReportDocument{
		ProjectTypes:         make([]string, 0, len(r.ProjectTypes)),
		ArchitecturePatterns: make([]string, 0, len(r.ArchitecturePatterns)),
		EntryPoints:          make([]string, 0, len(r.EntryPoints)),
		FileStatistics:       make(map[string]int, len(r.FileStatistics)),
		TotalCodeLines:       r.TotalCodeLines,
		DirectoryStructure:   make(map[string][]string, len(r.DirectoryStructure)),
	}
	for _, pt := range r.ProjectTypes {
		doc.ProjectTypes = append(doc.ProjectTypes, string(pt))
	}
	for _, p := range r.ArchitecturePatterns {
		doc.ArchitecturePatterns = append(doc.ArchitecturePatterns, string(p))
	}
	for _, ep := range r.EntryPoints {
		doc.EntryPoints = append(doc.EntryPoints, ep.Path)
	}
	for ext, n := range r.FileStatistics {
		doc.FileStatistics[ext] = n
	}
	for ext, paths := range r.DirectoryStructure {
		doc.DirectoryStructure[ext] = append([]string{}, paths...)
	}
	return doc
}
