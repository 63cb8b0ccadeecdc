package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/stackscan/internal/contract"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root; keys are slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// testConfig returns a validated-looking config with default settings.
func testConfig(root string) *contract.Config {
	return &contract.Config{
		RootPath:   root,
		MaxDepth:   contract.DefaultMaxDepth,
		Excludes:   contract.DefaultExcludedDirs(),
		SampleSize: contract.DefaultSampleSize,
		Output:     "json",
	}
}

func defaultOpts() WalkOptions {
	return WalkOptions{MaxDepth: contract.DefaultMaxDepth, Exclusions: DefaultExclusionSet()}
}
