// Package config provides configuration loading for dirmap.
//
// Values come from built-in defaults, then an optional config file
// (.dirmap.yaml or .dirmap.json in the scanned root, or an explicit path),
// then DIRMAP_* environment variables. Command-line flags are applied on top
// by the CLI.
package config

import (
	"github.com/mvp-joe/dirmap/internal/hierarchy/parsers"
)

// Config represents the complete dirmap configuration.
type Config struct {
	ExcludeExtensions []string        `yaml:"exclude_extensions" mapstructure:"exclude_extensions"`
	ExcludeFolders    []string        `yaml:"exclude_folders" mapstructure:"exclude_folders"` // names or glob patterns
	OutputFormats     []string        `yaml:"output_formats" mapstructure:"output_formats"`   // txt, json, yaml, sqlite
	Output            string          `yaml:"output" mapstructure:"output"`                   // base name of written files
	Hierarchy         HierarchyConfig `yaml:"hierarchy" mapstructure:"hierarchy"`
	Watch             WatchConfig     `yaml:"watch" mapstructure:"watch"`
}

// HierarchyConfig controls entity hierarchy extraction.
type HierarchyConfig struct {
	Enable      bool                        `yaml:"enable" mapstructure:"enable"`
	ProjectType string                      `yaml:"project_type" mapstructure:"project_type"`
	PluginDir   string                      `yaml:"plugin_dir" mapstructure:"plugin_dir"` // relative to the scanned root unless absolute
	Plugins     []parsers.PatternDefinition `yaml:"plugins" mapstructure:"plugins"`
}

// WatchConfig controls --watch rebuilds.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// SupportedFormats lists the output formats in the order they are written.
var SupportedFormats = []string{"txt", "json", "yaml", "sqlite", "docx", "pdf"}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		ExcludeExtensions: []string{".pyc", ".pyo", ".pyd", ".git", ".svn", ".DS_Store"},
		ExcludeFolders: []string{
			"__pycache__",
			".git",
			".svn",
			"node_modules",
			"venv",
			".env",
			".idea",
			".vscode",
		},
		OutputFormats: []string{"txt", "json"},
		Output:        "directory_structure",
		Hierarchy: HierarchyConfig{
			Enable:      false,
			ProjectType: "verilog",
			PluginDir:   ".dirmap/plugins",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}

// HasFormat reports whether format is among the configured output formats.
func (c *Config) HasFormat(format string) bool {
	for _, f := range c.OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
