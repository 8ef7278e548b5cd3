package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Model is the parsed project model: the root source files a
// TypeScript/JavaScript project declares in its tsconfig-style file.
type Model struct {
	// Path is the model file the data came from.
	Path string
	// Dir is the model file's directory; relative entries resolve against it.
	Dir string
	// Files holds the declared entries in declaration order, unresolved.
	Files []string
}

// LoadModel reads a tsconfig-style JSON file and extracts its "files" array.
// A missing or unreadable file is an error; a file without the "files" key
// yields an empty model.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project model %q: %w", path, err)
	}
	var cfg struct {
		Files []string `json:"files"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse project model: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project model path: %w", err)
	}
	return &Model{
		Path:  abs,
		Dir:   filepath.Dir(abs),
		Files: cfg.Files,
	}, nil
}

// RootFiles resolves the declared entries against the model directory and
// drops declaration-only files. Declaration order is preserved.
func (m *Model) RootFiles() []string {
	out := make([]string, 0, len(m.Files))
	for _, f := range m.Files {
		if f == "" || IsDeclarationFile(f) {
			continue
		}
		if filepath.IsAbs(f) {
			out = append(out, filepath.Clean(f))
		} else {
			out = append(out, filepath.Join(m.Dir, f))
		}
	}
	return out
}

// IsDeclarationFile reports whether path names a declaration-only source
// (.d.ts and its module variants). Declarations carry no formattable code.
func IsDeclarationFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".d.ts") ||
		strings.HasSuffix(lower, ".d.mts") ||
		strings.HasSuffix(lower, ".d.cts")
}
