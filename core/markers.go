package core

import (
	"os"
	"path/filepath"

	"github.com/huangsam/stackscan/schema"
)

// DetectProjectTypes returns every project type whose marker file exists
// directly under root. Absent markers are not errors.
func DetectProjectTypes(root string) []schema.ProjectType {
	detected := []schema.ProjectType{}
	for _, rule := range markerRules {
		if _, err := os.Stat(filepath.Join(root, rule.Marker)); err == nil {
			detected = append(detected, rule.Type)
		}
	}
	return detected
}
