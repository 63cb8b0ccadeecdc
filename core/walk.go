package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/stackscan/schema"
)

// ErrRootUnreadable is returned when the analysis root itself cannot be listed.
var ErrRootUnreadable = errors.New("cannot read analysis root")

// WalkOptions controls a tree traversal.
type WalkOptions struct {
	MaxDepth       int // Depth at which directories are pruned (0 = unbounded)
	Exclusions     ExclusionSet
	FollowSymlinks bool
}

// WalkResult is the outcome of WalkTree.
type WalkResult struct {
	Files       schema.FileGrouping
	SkippedDirs []schema.SkippedPath
}

// WalkTree lists every file under root grouped by extension.
// Directories are visited in name order; the files of a directory come before
// those of its subdirectories. Unreadable nested directories are recorded and
// skipped. An unreadable root yields ErrRootUnreadable.
func WalkTree(ctx context.Context, root string, opts WalkOptions) (WalkResult, error) {
	files := schema.FileGrouping{}
	w := newTreeWalker(root, opts, func(relPath, name string) {
		ext := FileExtension(name)
		files[ext] = append(files[ext], relPath)
	})
	if err := w.walk(ctx, "", 0); err != nil {
		return WalkResult{}, err
	}
	return WalkResult{Files: files, SkippedDirs: w.skipped}, nil
}

// FileExtension returns the suffix after the last dot of a base name.
// Dot-files without another dot and names ending in a dot have no extension.
func FileExtension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// treeWalker is the depth-first traversal shared by WalkTree and the
// entry-point search.
type treeWalker struct {
	root    string
	opts    WalkOptions
	onFile  func(relPath, name string)
	visited map[string]struct{}
	skipped []schema.SkippedPath
}

func newTreeWalker(root string, opts WalkOptions, onFile func(relPath, name string)) *treeWalker {
	return &treeWalker{
		root:    root,
		opts:    opts,
		onFile:  onFile,
		visited: make(map[string]struct{}),
	}
}

func (w *treeWalker) walk(ctx context.Context, relDir string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
		return nil
	}

	absDir := filepath.Join(w.root, relDir)
	if w.opts.FollowSymlinks && w.seen(absDir) {
		return nil
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		if relDir == "" {
			return fmt.Errorf("%w %s: %v", ErrRootUnreadable, w.root, err)
		}
		w.skipped = append(w.skipped, schema.SkippedPath{Path: relDir, Reason: err.Error()})
		return nil
	}

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		relPath := filepath.Join(relDir, name)
		switch w.classify(entry, filepath.Join(absDir, name)) {
		case entryDir:
			if !w.opts.Exclusions.Excludes(name, relPath) {
				subdirs = append(subdirs, relPath)
			}
		case entryFile:
			w.onFile(relPath, name)
		}
	}

	for _, sub := range subdirs {
		if err := w.walk(ctx, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// seen records the real path of a directory and reports whether it was
// already visited.
func (w *treeWalker) seen(absDir string) bool {
	realPath, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		realPath = absDir
	}
	if _, ok := w.visited[realPath]; ok {
		return true
	}
	w.visited[realPath] = struct{}{}
	return false
}

type entryKind int

const (
	entryFile entryKind = iota
	entryDir
	entryIgnored
)

func (w *treeWalker) classify(entry fs.DirEntry, absPath string) entryKind {
	if entry.IsDir() {
		return entryDir
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return entryFile
	}
	// Broken links are listed like files
	info, err := os.Stat(absPath)
	if err != nil || !info.IsDir() {
		return entryFile
	}
	if w.opts.FollowSymlinks {
		return entryDir
	}
	return entryIgnored
}
