package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"trueup/internal/project"
)

// DefaultExtensions lists the source extensions picked up when walking
// directories passed on the command line.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// CollectFiles expands explicit paths into a sorted, de-duplicated list of
// formattable source files. Directories are walked recursively, keeping
// files whose extension is in exts. Explicit file arguments are taken
// as-is. Declaration-only files are excluded either way.
func CollectFiles(ctx context.Context, paths []string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	extSet := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		extSet[ext] = struct{}{}
	}

	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if project.IsDeclarationFile(path) {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if _, ok := extSet[filepath.Ext(path)]; ok {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		addFile(p)
	}

	sort.Strings(files)
	return files, nil
}
