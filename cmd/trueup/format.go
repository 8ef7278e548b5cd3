package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"trueup/internal/clangformat"
	"trueup/internal/diagfmt"
	"trueup/internal/driver"
	"trueup/internal/observ"
	"trueup/internal/pipeline"
	"trueup/internal/project"
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] [path...]",
	Short: "Verify source formatting against the project style",
	Long: `Verify that source files conform to the clang-format style. Without --fix
the files are left untouched and every span that needs reformatting is rendered
as a caret block; with --fix the formatter rewrites the files in place.

Without path arguments the file set comes from the project model declared in
trueup.toml (tsconfig.json by default).`,
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().Bool("fix", false, "rewrite files in place instead of reporting")
	formatCmd.Flags().Bool("dry-run", false, "report only; never rewrite files")
	formatCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	formatCmd.Flags().String("paths", "auto", "path display mode (auto|absolute|relative|basename)")
	formatCmd.Flags().String("style", "auto", "style argument selection (auto|file|inline)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	fix, err := cmd.Flags().GetBool("fix")
	if err != nil {
		return fmt.Errorf("failed to get fix flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	pathsValue, err := cmd.Flags().GetString("paths")
	if err != nil {
		return fmt.Errorf("failed to get paths flag: %w", err)
	}
	styleValue, err := cmd.Flags().GetString("style")
	if err != nil {
		return fmt.Errorf("failed to get style flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	fix, overridden := resolveWriteMode(fix, dryRun)
	if overridden {
		fmt.Fprintln(os.Stderr, "dry-run: --fix ignored, files will not be rewritten")
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	pathMode, err := diagfmt.ParsePathMode(pathsValue)
	if err != nil {
		return err
	}
	styleMode, err := clangformat.ParseStyleMode(styleValue)
	if err != nil {
		return err
	}

	cfg, root, err := loadConfigAndRoot()
	if err != nil {
		return err
	}

	var files []string
	if len(args) > 0 {
		files, err = driver.CollectFiles(cmd.Context(), args, cfg.Project.Extensions)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return errors.New("format: no source files found")
		}
	} else {
		model, err := project.LoadModel(filepath.Join(root, cfg.Project.Config))
		if err != nil {
			return err
		}
		files = model.RootFiles()
		// Пустая модель конформна: проверять нечего.
		if len(files) == 0 {
			return nil
		}
	}

	tool := &clangformat.Tool{
		Binary:    cfg.Format.Binary,
		Style:     cfg.style(),
		StyleMode: styleMode,
		Root:      root,
	}
	timer := observ.NewTimer()
	req := &pipeline.VerifyRequest{
		Formatter:      tool,
		Files:          files,
		BaseDir:        root,
		MaxDiagnostics: maxDiagnostics,
		Fix:            fix,
		Timer:          timer,
	}

	displayFiles := displayFileList(files, root)
	useTUI := shouldUseTUI(uiModeValue) && len(displayFiles) > 1

	var res pipeline.VerifyResult
	if useTUI {
		res, err = runVerifyWithUI(cmd.Context(), "trueup format", displayFiles, req)
	} else {
		res, err = pipeline.Verify(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	if useTUI && !quiet {
		printStageTimings(os.Stdout, res.Timings, fix)
	}

	if fix {
		if !quiet {
			fmt.Fprintf(os.Stdout, "reformatted %d file(s)\n", res.Fix.FilesChanged)
		}
		if showTimings {
			fmt.Fprint(os.Stdout, timer.Summary())
		}
		return nil
	}

	check := res.Check
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	prettyOpts := diagfmt.PrettyOpts{Color: useColor, PathMode: pathMode}

	if check.Bag.HasWarnings() && !quiet {
		diagfmt.Warnings(os.Stderr, check.Bag, check.Files, prettyOpts)
	}
	diagfmt.Pretty(os.Stdout, check.Bag, check.Files, prettyOpts)
	if showTimings {
		fmt.Fprint(os.Stdout, timer.Summary())
	}

	if !check.Conforming {
		if !quiet {
			fmt.Fprintf(os.Stdout, "%d of %d file(s) need formatting\n",
				check.FilesWithFindings, check.FilesChecked)
		}
		fmt.Fprintln(os.Stderr, "run 'trueup format --fix' to apply these changes")
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// resolveWriteMode применяет dry-run: он побеждает --fix, файлы не
// перезаписываются никогда. Второй результат просит показать уведомление
// о перекрытии флага.
func resolveWriteMode(fix, dryRun bool) (effective, overridden bool) {
	if dryRun && fix {
		return false, true
	}
	return fix, false
}

// loadConfigAndRoot resolves trueup.toml (walking up from the working
// directory) or falls back to defaults anchored at the working directory.
func loadConfigAndRoot() (toolConfig, string, error) {
	manifest, found, err := loadToolManifest(".")
	if err != nil {
		return toolConfig{}, "", err
	}
	if found {
		return manifest.Config, manifest.Root, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return toolConfig{}, "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return defaultToolConfig(), cwd, nil
}
