package hierarchy

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/dirmap/internal/hierarchy/parsers"
)

// LoadPluginDir reads every *.yaml / *.yml file in dir as a pattern plugin
// definition. A missing directory yields no definitions. Unreadable or
// malformed files are logged and skipped. A definition without a name takes
// the file name.
func LoadPluginDir(dir string, logger *slog.Logger) []parsers.PatternDefinition {
	if logger == nil {
		logger = discardLogger()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read plugin directory", "dir", dir, "error", err)
		}
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var defs []parsers.PatternDefinition
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping plugin", "path", path, "error", err)
			continue
		}

		var def parsers.PatternDefinition
		if err := yaml.Unmarshal(data, &def); err != nil {
			logger.Warn("skipping plugin", "path", path, "error", err)
			continue
		}
		if def.Name == "" {
			def.Name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		defs = append(defs, def)
	}
	return defs
}

// RegisterPatterns compiles each definition and registers the ones that
// compile. Returns the registered names.
func (r *Registry) RegisterPatterns(defs []parsers.PatternDefinition, logger *slog.Logger) []string {
	if logger == nil {
		logger = r.logger
	}

	plugins := make([]any, 0, len(defs))
	for _, def := range defs {
		ex, err := parsers.NewPatternExtractor(def)
		if err != nil {
			logger.Warn("skipping plugin", "name", def.Name, "error", err)
			continue
		}
		plugins = append(plugins, ex)
	}

	registered := r.registerPlugins(logger, plugins...)
	for _, name := range registered {
		logger.Debug("registered plugin", "type", name)
	}
	return registered
}
