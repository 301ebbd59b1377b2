package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/mvp-joe/dirmap/internal/config"
	"github.com/mvp-joe/dirmap/internal/hierarchy"
	"github.com/mvp-joe/dirmap/internal/pathmatch"
	"github.com/mvp-joe/dirmap/internal/render"
	"github.com/mvp-joe/dirmap/internal/tree"
)

// runOptions carries the command line. Zero values leave the configured
// value in place.
type runOptions struct {
	RootDir     string
	ConfigFile  string
	Output      string
	Formats     []string
	Hierarchy   bool
	ProjectType string
	PluginDir   string
	Print       bool
	DirectPDF   bool
	Watch       bool
	Quiet       bool
	Verbose     bool
}

func run(ctx context.Context, opts runOptions, stdout, stderr io.Writer) error {
	rootDir, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory: %w", err)
	}

	cfg, err := loadConfig(rootDir, opts)
	if err != nil {
		return err
	}
	if opts.Watch && !cfg.Hierarchy.Enable {
		return errors.New("--watch requires hierarchy extraction (--hierarchy)")
	}

	logger := newLogger(opts.Verbose, stderr)
	logger.Debug("configuration loaded",
		"root", rootDir,
		"formats", cfg.OutputFormats,
		"hierarchy", cfg.Hierarchy.Enable)

	exp := &exporter{
		cfg:     cfg,
		rootDir: rootDir,
		treeOpts: tree.Options{
			ExcludeExtensions: cfg.ExcludeExtensions,
			ExcludeFolders:    cfg.ExcludeFolders,
		},
		out:       stdout,
		quiet:     opts.Quiet,
		directPDF: opts.DirectPDF,
	}

	var (
		h       hierarchy.Map
		builder *hierarchy.Builder
	)
	if cfg.Hierarchy.Enable {
		builder, err = newBuilder(cfg, rootDir, opts.Quiet, logger, stderr)
		if err != nil {
			return err
		}
		h, err = buildHierarchy(builder, rootDir, cfg.Hierarchy.ProjectType, logger, stdout)
		if err != nil {
			return err
		}
	}

	if err := exp.export(h); err != nil {
		return err
	}
	if opts.Print && h != nil {
		if err := render.WriteTerminal(stdout, h, colorEnabled(stdout)); err != nil {
			return err
		}
	}

	if !opts.Watch {
		return nil
	}
	return watch(ctx, builder, exp, opts.Print, logger, stdout)
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig(rootDir string, opts runOptions) (*config.Config, error) {
	var loader config.Loader
	if opts.ConfigFile != "" {
		loader = config.NewFileLoader(opts.ConfigFile)
	} else {
		loader = config.NewLoader(rootDir)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.Formats != nil {
		cfg.OutputFormats = opts.Formats
	}
	if opts.Hierarchy {
		cfg.Hierarchy.Enable = true
	}
	if opts.ProjectType != "" {
		cfg.Hierarchy.ProjectType = opts.ProjectType
	}
	if opts.PluginDir != "" {
		cfg.Hierarchy.PluginDir = opts.PluginDir
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// newRegistry returns the built-in extractors plus the configured pattern
// plugins: first the plugin directory, then inline definitions.
func newRegistry(cfg *config.Config, rootDir string, logger *slog.Logger) *hierarchy.Registry {
	registry := hierarchy.NewDefaultRegistry()
	registry.SetLogger(logger)

	pluginDir := cfg.Hierarchy.PluginDir
	if pluginDir != "" && !filepath.IsAbs(pluginDir) {
		pluginDir = filepath.Join(rootDir, pluginDir)
	}

	defs := hierarchy.LoadPluginDir(pluginDir, logger)
	defs = append(defs, cfg.Hierarchy.Plugins...)
	registry.RegisterPatterns(defs, logger)
	return registry
}

func newBuilder(cfg *config.Config, rootDir string, quiet bool, logger *slog.Logger, stderr io.Writer) (*hierarchy.Builder, error) {
	ignore, err := pathmatch.New(cfg.ExcludeFolders)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude_folders: %w", err)
	}
	cache, err := hierarchy.NewExtractionCache(hierarchy.DefaultCacheCapacity)
	if err != nil {
		return nil, err
	}

	return hierarchy.NewBuilder(newRegistry(cfg, rootDir, logger),
		hierarchy.WithIgnore(ignore),
		hierarchy.WithCache(cache),
		hierarchy.WithProgress(NewCLIProgressReporter(stderr, quiet || !isTerminal(stderr))),
		hierarchy.WithLogger(logger),
	), nil
}

// buildHierarchy runs one build. An unknown project type or a missing root
// aborts; any other failure is reported and leaves an empty hierarchy.
func buildHierarchy(b *hierarchy.Builder, rootDir, projectType string, logger *slog.Logger, stdout io.Writer) (hierarchy.Map, error) {
	h, err := b.Build(rootDir, projectType)
	if err != nil {
		if errors.Is(err, hierarchy.ErrNoParserForType) || errors.Is(err, hierarchy.ErrRootDirectoryNotFound) {
			return nil, err
		}
		fmt.Fprintf(stdout, "Error building hierarchy: %v\n", err)
		return hierarchy.Map{}, nil
	}

	if analysis, err := hierarchy.Analyze(h); err == nil {
		logger.Debug("hierarchy analysis",
			"nodes", analysis.Nodes,
			"edges", analysis.Edges,
			"roots", len(analysis.Roots),
			"cycles", len(analysis.Cycles))
		for _, cycle := range analysis.Cycles {
			logger.Info("reference cycle", "entities", cycle)
		}
	}
	return h, nil
}

// watch re-exports after every rebuild until ctx is cancelled.
func watch(ctx context.Context, b *hierarchy.Builder, exp *exporter, print bool, logger *slog.Logger, stdout io.Writer) error {
	debounce := time.Duration(exp.cfg.Watch.DebounceMs) * time.Millisecond
	projectType := exp.cfg.Hierarchy.ProjectType

	w, err := hierarchy.NewWatcher(b, exp.rootDir, projectType, debounce, func(h hierarchy.Map, err error) {
		if err != nil {
			logger.Error("rebuild failed", "error", err)
			return
		}
		if err := exp.export(h); err != nil {
			logger.Error("export failed", "error", err)
			return
		}
		if print {
			if err := render.WriteTerminal(stdout, h, colorEnabled(stdout)); err != nil {
				logger.Error("print failed", "error", err)
			}
		}
	})
	if err != nil {
		return err
	}

	if !exp.quiet {
		fmt.Fprintf(stdout, "Watching %s for changes (Ctrl+C to stop)\n", exp.rootDir)
	}
	return w.Run(ctx)
}
