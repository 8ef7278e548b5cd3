package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"trueup/internal/clangformat"
	"trueup/internal/driver"
	"trueup/internal/project"
)

// defaultModelFile is the project model consulted when trueup.toml does not
// name one.
const defaultModelFile = "tsconfig.json"

type toolManifest struct {
	Path   string
	Root   string
	Config toolConfig
}

type toolConfig struct {
	Project projectSection `toml:"project"`
	Style   styleSection   `toml:"style"`
	Format  formatSection  `toml:"format"`
}

type projectSection struct {
	Config     string   `toml:"config"`
	Extensions []string `toml:"extensions"`
}

type styleSection struct {
	Base        string `toml:"base"`
	Language    string `toml:"language"`
	ColumnLimit int    `toml:"column_limit"`
}

type formatSection struct {
	Binary string `toml:"binary"`
}

// loadToolManifest walks up from startDir looking for trueup.toml.
func loadToolManifest(startDir string) (*toolManifest, bool, error) {
	manifestPath, ok, err := project.FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadToolConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &toolManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// loadToolConfig parses trueup.toml. Every key is optional: absent keys keep
// their defaults, so an empty manifest is a valid project marker.
func loadToolConfig(path string) (toolConfig, error) {
	cfg := defaultToolConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return toolConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("style", "column_limit") && cfg.Style.ColumnLimit <= 0 {
		return toolConfig{}, fmt.Errorf("%s: [style].column_limit must be positive", path)
	}
	// Пустые значения откатываются к дефолтам.
	if strings.TrimSpace(cfg.Project.Config) == "" {
		cfg.Project.Config = defaultModelFile
	}
	if len(cfg.Project.Extensions) == 0 {
		cfg.Project.Extensions = append([]string(nil), driver.DefaultExtensions...)
	}
	if strings.TrimSpace(cfg.Style.Base) == "" {
		cfg.Style.Base = clangformat.DefaultStyle().Base
	}
	if strings.TrimSpace(cfg.Style.Language) == "" {
		cfg.Style.Language = clangformat.DefaultStyle().Language
	}
	if strings.TrimSpace(cfg.Format.Binary) == "" {
		cfg.Format.Binary = clangformat.DefaultBinary
	}
	return cfg, nil
}

func defaultToolConfig() toolConfig {
	style := clangformat.DefaultStyle()
	return toolConfig{
		Project: projectSection{
			Config:     defaultModelFile,
			Extensions: append([]string(nil), driver.DefaultExtensions...),
		},
		Style: styleSection{
			Base:        style.Base,
			Language:    style.Language,
			ColumnLimit: style.ColumnLimit,
		},
		Format: formatSection{
			Binary: clangformat.DefaultBinary,
		},
	}
}

// style assembles the clang-format style descriptor from the config.
func (c toolConfig) style() clangformat.Style {
	return clangformat.Style{
		Language:    c.Style.Language,
		Base:        c.Style.Base,
		ColumnLimit: c.Style.ColumnLimit,
	}
}
