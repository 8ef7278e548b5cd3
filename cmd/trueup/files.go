package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"trueup/internal/project"
)

var filesCmd = &cobra.Command{
	Use:   "files [flags]",
	Short: "List the project's resolved source files",
	Long: `List the source files the project model declares, after dropping
declaration-only files. The order matches the model declaration.`,
	Args: cobra.NoArgs,
	RunE: runFiles,
}

func init() {
	filesCmd.Flags().String("format", "text", "output format (text|json)")
}

func runFiles(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	cfg, root, err := loadConfigAndRoot()
	if err != nil {
		return err
	}
	model, err := project.LoadModel(filepath.Join(root, cfg.Project.Config))
	if err != nil {
		return err
	}

	files := model.RootFiles()
	display := make([]string, 0, len(files))
	for _, file := range files {
		display = append(display, formatPathForOutput(root, file))
	}

	switch outputFormat {
	case "text":
		for _, file := range display {
			fmt.Fprintln(os.Stdout, file)
		}
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(display)
	default:
		return fmt.Errorf("files: unsupported output format %q", outputFormat)
	}
	return nil
}

// formatPathForOutput относит путь к корню проекта, если он внутри него.
func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
