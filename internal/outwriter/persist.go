package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/huangsam/stackscan/schema"
)

// EncodeReport writes the report document as indented JSON.
func EncodeReport(w io.Writer, report schema.AnalysisReport) error {
	return writeJSON(w, schema.NewReportDocument(report))
}

// PersistReport writes project_analysis.json into the analyzed root and
// returns its path.
func PersistReport(report schema.AnalysisReport) (string, error) {
	path := filepath.Join(report.RootPath, schema.ReportFileName)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodeReport(file, report); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return path, nil
}
