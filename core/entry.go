package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/stackscan/schema"
)

// LocateEntryPoints runs the entry-point search of every stack family that has
// a detected project type. Each family is searched once. Suffix searches walk
// the whole tree with no depth limit and no exclusions; only the symlink
// policy of opts applies.
func LocateEntryPoints(ctx context.Context, root string, types []schema.ProjectType, opts WalkOptions) ([]schema.EntryPoint, error) {
	byFamily := make(map[schema.StackFamily][]schema.ProjectType)
	for _, pt := range types {
		if family, ok := FamilyOf(pt); ok {
			byFamily[family] = append(byFamily[family], pt)
		}
	}

	entries := []schema.EntryPoint{}
	for _, rule := range entryRules {
		familyTypes, ok := byFamily[rule.Family]
		if !ok {
			continue
		}
		paths, err := rule.search(ctx, root, opts)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			entries = append(entries, schema.EntryPoint{
				Path:         p,
				Family:       rule.Family,
				ProjectTypes: familyTypes,
			})
		}
	}
	return entries, nil
}

func (r entryRule) search(ctx context.Context, root string, opts WalkOptions) ([]string, error) {
	var found []string
	if r.Suffix != "" {
		unbounded := WalkOptions{FollowSymlinks: opts.FollowSymlinks}
		w := newTreeWalker(root, unbounded, func(relPath, name string) {
			if strings.HasSuffix(name, r.Suffix) {
				found = append(found, filepath.Join(root, relPath))
			}
		})
		if err := w.walk(ctx, "", 0); err != nil {
			return nil, err
		}
	}
	for _, candidate := range r.Candidates {
		path := filepath.Join(root, filepath.FromSlash(candidate))
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}
	return found, nil
}
