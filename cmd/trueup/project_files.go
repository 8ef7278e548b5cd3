package main

import (
	"path/filepath"
	"sort"
	"strings"
)

// displayFileList rewrites batch paths for progress display: relative to
// baseDir where possible, slash-separated, de-duplicated, sorted.
func displayFileList(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))

	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}

	for _, file := range files {
		if file == "" {
			continue
		}
		path := filepath.Clean(file)
		if base != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
		path = filepath.ToSlash(path)
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		normalized = append(normalized, path)
	}
	sort.Strings(normalized)
	return normalized
}
