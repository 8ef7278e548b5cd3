package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a trueup project",
	Long: `Initialize a trueup project by creating a manifest (trueup.toml) and,
if none exists, a minimal project model (tsconfig.json). If [path] is omitted,
initializes the current directory. A non-existing path will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit scaffolds trueup.toml (and tsconfig.json when absent) at the target
// directory. It refuses to re-initialize a directory that already carries a
// manifest.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "trueup.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(defaultManifestTOML()), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create tsconfig.json if not exists
	modelPath := filepath.Join(target, defaultModelFile)
	createdModel := false
	if _, err := os.Stat(modelPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(modelPath, []byte(defaultModelJSON()), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", defaultModelFile, err)
		}
		createdModel = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized trueup project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - trueup.toml\n")
	if createdModel {
		fmt.Fprintf(os.Stdout, "  - %s\n", defaultModelFile)
	} else {
		fmt.Fprintf(os.Stdout, "  - %s (existing)\n", defaultModelFile)
	}
	return nil
}

// defaultManifestTOML returns the manifest stub written by init. Every key is
// optional; the commented entries document the defaults.
func defaultManifestTOML() string {
	return `# trueup project manifest
[project]
config = "tsconfig.json"
# extensions = [".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"]

[style]
base = "Google"
language = "JavaScript"
column_limit = 80

# [format]
# binary = "clang-format"
`
}

// defaultModelJSON returns a minimal project model listing no files.
func defaultModelJSON() string {
	return `{
  "files": []
}
`
}
