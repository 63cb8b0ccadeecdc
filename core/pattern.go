package core

import (
	"path/filepath"
	"strings"

	"github.com/huangsam/stackscan/schema"
)

// microservicesThreshold is the count of service-like names that must be exceeded.
const microservicesThreshold = 3

// dirSet is the set of top-level directory names seen in a file listing.
type dirSet map[string]struct{}

func (s dirSet) hasAll(names ...string) bool {
	for _, n := range names {
		if _, ok := s[n]; !ok {
			return false
		}
	}
	return true
}

func (s dirSet) hasAny(names ...string) bool {
	for _, n := range names {
		if _, ok := s[n]; ok {
			return true
		}
	}
	return false
}

// patternRule fires a label when its predicate holds over the directory set.
type patternRule struct {
	Pattern schema.ArchitecturePattern
	Fires   func(dirSet) bool
}

// patternRules are evaluated independently; their order is the order of labels.
var patternRules = []patternRule{
	{
		Pattern: schema.LayeredPattern,
		Fires:   func(s dirSet) bool { return s.hasAll("controller", "service", "repository") },
	},
	{
		Pattern: schema.DomainDrivenPattern,
		Fires:   func(s dirSet) bool { return s.hasAny("domain", "application", "infrastructure") },
	},
	{
		Pattern: schema.MicroservicesPattern,
		Fires: func(s dirSet) bool {
			count := 0
			for name := range s {
				if strings.Contains(strings.ToLower(name), "service") {
					count++
				}
			}
			return count > microservicesThreshold
		},
	},
	{
		Pattern: schema.MVCPattern,
		Fires:   func(s dirSet) bool { return s.hasAny("models", "views", "controllers") },
	},
}

// TopLevelDirs returns the distinct first path segments of every listed path
// that has at least one directory component.
func TopLevelDirs(files schema.FileGrouping) map[string]struct{} {
	dirs := make(map[string]struct{})
	for _, paths := range files {
		for _, p := range paths {
			first, _, found := strings.Cut(filepath.ToSlash(p), "/")
			if found && first != "" {
				dirs[first] = struct{}{}
			}
		}
	}
	return dirs
}

// ClassifyArchitecture matches top-level directory names against every
// pattern rule. When no rule fires the result is the unrecognized label alone.
func ClassifyArchitecture(dirs map[string]struct{}) []schema.ArchitecturePattern {
	set := dirSet(dirs)
	var patterns []schema.ArchitecturePattern
	for _, rule := range patternRules {
		if rule.Fires(set) {
			patterns = append(patterns, rule.Pattern)
		}
	}
	if len(patterns) == 0 {
		return []schema.ArchitecturePattern{schema.UnrecognizedPattern}
	}
	return patterns
}
