package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a loader that looks for .dirmap.yaml or .dirmap.json in
// rootDir.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// NewFileLoader creates a loader for an explicit config file. Unlike the
// directory search, a missing file is an error.
func NewFileLoader(path string) Loader {
	return &loader{configFile: path}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DIRMAP_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		if _, err := os.Stat(l.configFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", l.configFile, err)
		}
		v.SetConfigFile(l.configFile)
		v.SetConfigType(configType(l.configFile))
	} else {
		v.SetConfigName(".dirmap")
		v.AddConfigPath(l.rootDir)
	}

	// DIRMAP_HIERARCHY_PROJECT_TYPE -> hierarchy.project_type
	v.SetEnvPrefix("DIRMAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("output")
	v.BindEnv("output_formats")
	v.BindEnv("exclude_extensions")
	v.BindEnv("exclude_folders")
	v.BindEnv("hierarchy.enable")
	v.BindEnv("hierarchy.project_type")
	v.BindEnv("hierarchy.plugin_dir")
	v.BindEnv("watch.debounce_ms")

	setDefaults(v)

	if err := l.readInConfig(v); err != nil {
		// Config file not found is acceptable when searching the root
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// readInConfig reads the config file, if any. A missing root directory has
// nothing to search, which is the same as no config file.
func (l *loader) readInConfig(v *viper.Viper) error {
	if l.configFile == "" {
		if info, err := os.Stat(l.rootDir); err != nil || !info.IsDir() {
			return nil
		}
	}
	return v.ReadInConfig()
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("exclude_extensions", defaults.ExcludeExtensions)
	v.SetDefault("exclude_folders", defaults.ExcludeFolders)
	v.SetDefault("output_formats", defaults.OutputFormats)
	v.SetDefault("output", defaults.Output)

	v.SetDefault("hierarchy.enable", defaults.Hierarchy.Enable)
	v.SetDefault("hierarchy.project_type", defaults.Hierarchy.ProjectType)
	v.SetDefault("hierarchy.plugin_dir", defaults.Hierarchy.PluginDir)

	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// LoadConfigFromDir loads configuration for the given scan root.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
