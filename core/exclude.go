package core

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/huangsam/stackscan/internal/contract"
)

// ExclusionSet names the directories a walk never descends into.
// It is immutable once built and safe to share.
type ExclusionSet struct {
	names map[string]struct{}
	globs []string
}

// NewExclusionSet builds an exclusion set from exact directory names and
// doublestar globs matched against root-relative slash paths.
func NewExclusionSet(names, globs []string) (ExclusionSet, error) {
	set := ExclusionSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		set.names[n] = struct{}{}
	}
	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return ExclusionSet{}, fmt.Errorf("invalid exclude glob %q", g)
		}
		set.globs = append(set.globs, g)
	}
	return set, nil
}

// DefaultExclusionSet returns the built-in deny-list of build, dependency,
// version-control and cache directories.
func DefaultExclusionSet() ExclusionSet {
	set, _ := NewExclusionSet(contract.DefaultExcludedDirs(), nil)
	return set
}

// Excludes reports whether a directory should be pruned.
// name is the base name; relPath is relative to the analysis root.
func (e ExclusionSet) Excludes(name, relPath string) bool {
	if _, ok := e.names[name]; ok {
		return true
	}
	slashPath := filepath.ToSlash(relPath)
	for _, g := range e.globs {
		if ok, _ := doublestar.Match(g, slashPath); ok {
			return true
		}
	}
	return false
}

// Names returns the excluded directory names in sorted order.
func (e ExclusionSet) Names() []string {
	out := make([]string, 0, len(e.names))
	for n := range e.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Globs returns a copy of the exclusion globs.
func (e ExclusionSet) Globs() []string {
	return append([]string{}, e.globs...)
}
