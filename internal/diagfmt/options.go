package diagfmt

import (
	"fmt"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode converts a --paths flag value into a PathMode.
func ParsePathMode(value string) (PathMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute":
		return PathModeAbsolute, nil
	case "relative":
		return PathModeRelative, nil
	case "basename":
		return PathModeBasename, nil
	default:
		return PathModeAuto, fmt.Errorf("invalid --paths value %q (expected auto|absolute|relative|basename)", value)
	}
}

// formatPathMode maps PathMode onto the source.File.FormatPath mode string.
func (m PathMode) formatPathMode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	HeaderPad int // пробелы между заголовком и текстом строки; 0 → 3
}

func (o PrettyOpts) pad() int {
	if o.HeaderPad <= 0 {
		return 3
	}
	return o.HeaderPad
}
