package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the tool manifest file looked up from the working directory.
const ManifestName = "trueup.toml"

// FindManifest walks up from startDir to locate trueup.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		found, err := manifestAt(candidate)
		if err != nil {
			return "", false, err
		}
		if found {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Дошли до корня файловой системы.
			return "", false, nil
		}
		dir = parent
	}
}

func manifestAt(candidate string) (bool, error) {
	_, err := os.Stat(candidate)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %q: %w", candidate, err)
	}
}

// FindProjectRoot returns the directory containing trueup.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}
