package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trueup/internal/driver"
)

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, "trueup.toml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write trueup.toml: %v", err)
	}
	return path
}

func TestLoadToolConfigDefaults(t *testing.T) {
	// Пустой манифест просто помечает корень проекта.
	path := writeManifest(t, t.TempDir(), "")
	cfg, err := loadToolConfig(path)
	if err != nil {
		t.Fatalf("loadToolConfig: %v", err)
	}
	if cfg.Project.Config != defaultModelFile {
		t.Errorf("Project.Config = %q, want %q", cfg.Project.Config, defaultModelFile)
	}
	if len(cfg.Project.Extensions) != len(driver.DefaultExtensions) {
		t.Errorf("Project.Extensions = %v, want defaults", cfg.Project.Extensions)
	}
	if cfg.Style.Base != "Google" || cfg.Style.Language != "JavaScript" || cfg.Style.ColumnLimit != 80 {
		t.Errorf("style defaults = %+v", cfg.Style)
	}
	if cfg.Format.Binary != "clang-format" {
		t.Errorf("Format.Binary = %q, want clang-format", cfg.Format.Binary)
	}
}

func TestLoadToolConfigOverrides(t *testing.T) {
	data := `[project]
config = "build/files.json"
extensions = [".ts", ".tsx"]

[style]
base = "Chromium"
language = "JavaScript"
column_limit = 100

[format]
binary = "clang-format-18"
`
	path := writeManifest(t, t.TempDir(), data)
	cfg, err := loadToolConfig(path)
	if err != nil {
		t.Fatalf("loadToolConfig: %v", err)
	}
	if cfg.Project.Config != "build/files.json" {
		t.Errorf("Project.Config = %q", cfg.Project.Config)
	}
	if len(cfg.Project.Extensions) != 2 || cfg.Project.Extensions[0] != ".ts" {
		t.Errorf("Project.Extensions = %v", cfg.Project.Extensions)
	}
	style := cfg.style()
	if style.Base != "Chromium" || style.ColumnLimit != 100 {
		t.Errorf("style() = %+v", style)
	}
	if cfg.Format.Binary != "clang-format-18" {
		t.Errorf("Format.Binary = %q", cfg.Format.Binary)
	}
}

func TestLoadToolConfigRejectsBadColumnLimit(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[style]\ncolumn_limit = 0\n")
	_, err := loadToolConfig(path)
	if err == nil {
		t.Fatalf("expected error for column_limit = 0")
	}
	if !strings.Contains(err.Error(), "column_limit") {
		t.Errorf("error = %v, want mention of column_limit", err)
	}
}

func TestLoadToolConfigMalformed(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[style\nbase = ???\n")
	_, err := loadToolConfig(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("error = %v, want parse failure", err)
	}
}

func TestLoadToolManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[style]\nbase = \"Mozilla\"\n")
	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	mf, ok, err := loadToolManifest(nested)
	if err != nil {
		t.Fatalf("loadToolManifest: %v", err)
	}
	if !ok {
		t.Fatalf("expected manifest above %s", nested)
	}
	wantRoot, err := filepath.Abs(root)
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if mf.Root != wantRoot {
		t.Errorf("Root = %q, want %q", mf.Root, wantRoot)
	}
	if mf.Config.Style.Base != "Mozilla" {
		t.Errorf("Style.Base = %q, want Mozilla", mf.Config.Style.Base)
	}
	// Незаданные секции остаются на дефолтах.
	if mf.Config.Project.Config != defaultModelFile {
		t.Errorf("Project.Config = %q, want %q", mf.Config.Project.Config, defaultModelFile)
	}
}

func TestLoadToolManifestMissing(t *testing.T) {
	_, ok, err := loadToolManifest(t.TempDir())
	if err != nil {
		t.Fatalf("loadToolManifest: %v", err)
	}
	if ok {
		t.Errorf("found a manifest in an empty directory")
	}
}
