package core

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/huangsam/stackscan/schema"
)

// CountLines counts the lines of every listed file whose extension is in
// allow. Files that cannot be read are recorded as skipped and contribute zero.
func CountLines(ctx context.Context, root string, files schema.FileGrouping, allow []string) (schema.LineCount, error) {
	result := schema.LineCount{ByExtension: make(map[string]int)}
	for _, ext := range allow {
		paths, ok := files[ext]
		if !ok {
			continue
		}
		extTotal := 0
		for _, rel := range paths {
			if err := ctx.Err(); err != nil {
				return schema.LineCount{}, err
			}
			n, err := countFileLines(filepath.Join(root, rel))
			if err != nil {
				result.Skipped = append(result.Skipped, schema.SkippedPath{Path: rel, Reason: err.Error()})
				continue
			}
			extTotal += n
			result.Counted++
		}
		result.ByExtension[ext] = extTotal
		result.Total += extTotal
	}
	return result, nil
}

func countFileLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()
	return countLines(f)
}

// countLines counts lines ending in \n, \r\n or \r. A trailing fragment
// without a terminator is a line; empty input has none. Bytes are never
// decoded, so invalid text cannot fail the count.
func countLines(r io.Reader) (int, error) {
	buf := make([]byte, 32*1024)
	lines := 0
	afterCR := false
	open := false
	for {
		n, err := r.Read(buf)
		for _, c := range buf[:n] {
			switch c {
			case '\n':
				if !afterCR {
					lines++
				}
				afterCR = false
				open = false
			case '\r':
				lines++
				afterCR = true
				open = false
			default:
				afterCR = false
				open = true
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if open {
		lines++
	}
	return lines, nil
}
