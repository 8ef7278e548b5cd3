// Package clangformat launches the clang-format binary and captures its
// replacement report. The tool is treated strictly as an external
// collaborator: argument order, style selection and the XML report contract
// live here, parsing of the report lives in internal/replacexml.
package clangformat

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultBinary is the executable name looked up on PATH when the manifest
// does not name one.
const DefaultBinary = "clang-format"

// ConfigFileName — локальный файл стиля в корне проекта. Если он есть,
// пользовательский стиль важнее встроенных дефолтов.
const ConfigFileName = ".clang-format"

// Style describes the inline style descriptor used when no project-local
// config file exists.
type Style struct {
	Language    string
	Base        string
	ColumnLimit int
}

// DefaultStyle returns the built-in inline style.
func DefaultStyle() Style {
	return Style{
		Language:    "JavaScript",
		Base:        "Google",
		ColumnLimit: 80,
	}
}

// Descriptor renders the -style= value for the inline form.
func (s Style) Descriptor() string {
	return fmt.Sprintf("{Language: %s, BasedOnStyle: %s, ColumnLimit: %d}", s.Language, s.Base, s.ColumnLimit)
}

// StyleMode selects between the project-local config file and the inline
// descriptor.
type StyleMode uint8

const (
	// StyleAuto uses the local config file when present, inline otherwise.
	StyleAuto StyleMode = iota
	// StyleFile forces -style=file.
	StyleFile
	// StyleInline forces the inline descriptor.
	StyleInline
)

// ParseStyleMode reads a --style flag value.
func ParseStyleMode(v string) (StyleMode, error) {
	switch v {
	case "auto", "":
		return StyleAuto, nil
	case "file":
		return StyleFile, nil
	case "inline":
		return StyleInline, nil
	}
	return StyleAuto, fmt.Errorf("invalid style mode %q (expected auto, file or inline)", v)
}

// StyleArgs resolves the style argument for one batch. Selection happens
// once per batch, never per file.
func StyleArgs(root string, mode StyleMode, style Style) []string {
	useFile := mode == StyleFile
	if mode == StyleAuto {
		useFile = hasLocalConfig(root)
	}
	if useFile {
		return []string{"-style=file"}
	}
	return []string{"-style=" + style.Descriptor()}
}

func hasLocalConfig(root string) bool {
	// clang-format сам принимает оба имени файла конфигурации.
	for _, name := range []string{ConfigFileName, "_clang-format"} {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}
