package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-parampanel/pkg/render"
)

// fileConfig holds the YAML config file schema. Flags win over file
// values; file values win over the built-in defaults.
type fileConfig struct {
	Renderer string `yaml:"renderer"`
	Title    string `yaml:"title"`
	Output   string `yaml:"output"`
	JSONInit string `yaml:"json_init"`
	Theme    struct {
		Name       string            `yaml:"name"`
		Variant    string            `yaml:"variant"`
		CSSVars    map[string]string `yaml:"css_vars"`
		Stylesheet string            `yaml:"stylesheet"`
	} `yaml:"theme"`
}

// themeConfig projects the config file's theme block onto the
// renderer-facing configuration. Returns nil when nothing is set.
func (c fileConfig) themeConfig() *render.ThemeConfig {
	t := c.Theme
	if t.Name == "" && len(t.CSSVars) == 0 && t.Stylesheet == "" {
		return nil
	}
	cfg := &render.ThemeConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		CSSVars: t.CSSVars,
	}
	if t.Stylesheet != "" {
		cfg.AssetURL = func(key string) string {
			if key == "html.stylesheet" {
				return t.Stylesheet
			}
			return ""
		}
	}
	return cfg
}

// loadFileConfig reads the config file at path, falling back to the
// XDG location when path is empty. A missing file is not an error.
func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	if path == "" {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath resolves $XDG_CONFIG_HOME/parampanel/config.yaml,
// or the equivalent under the home directory.
func defaultConfigPath() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "parampanel", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "parampanel", "config.yaml")
}

// applyFileConfig fills in flag values the user did not set.
func applyFileConfig(cfg fileConfig) {
	if rendererName == "html" && cfg.Renderer != "" {
		rendererName = cfg.Renderer
	}
	if title == "" {
		title = cfg.Title
	}
	if outputPath == "" {
		outputPath = cfg.Output
	}
	if jsonInitPath == "" {
		jsonInitPath = cfg.JSONInit
	}
}
