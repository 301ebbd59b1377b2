package hierarchy

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
	"github.com/mvp-joe/dirmap/internal/pathmatch"
)

// Builder walks a project directory and assembles its hierarchy.
// A Builder holds no per-build state; every Build call gets its own Map.
type Builder struct {
	registry *Registry
	ignore   *pathmatch.Matcher
	cache    *ExtractionCache
	progress ProgressReporter
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithIgnore skips folders and files matched by m during discovery.
func WithIgnore(m *pathmatch.Matcher) Option {
	return func(b *Builder) { b.ignore = m }
}

// WithCache reuses extraction results for unchanged files.
func WithCache(c *ExtractionCache) Option {
	return func(b *Builder) { b.cache = c }
}

// WithProgress reports discovery and per-file progress to p.
func WithProgress(p ProgressReporter) Option {
	return func(b *Builder) {
		if p != nil {
			b.progress = p
		}
	}
}

// WithLogger sets the logger used for per-file warnings.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder resolving project types through registry.
func NewBuilder(registry *Registry, opts ...Option) *Builder {
	b := &Builder{
		registry: registry,
		progress: &NoOpProgressReporter{},
		logger:   discardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Registry returns the registry the builder resolves project types with.
func (b *Builder) Registry() *Registry { return b.registry }

// Build produces the hierarchy of rootDir for projectType.
//
// Fatal errors (*NoParserForTypeError, *RootDirectoryNotFoundError) are
// returned before any file is read. Everything else is per file: the file is
// logged and contributes nothing.
func (b *Builder) Build(rootDir, projectType string) (Map, error) {
	ex, err := b.registry.Resolve(projectType)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(rootDir)
	if err != nil || !info.IsDir() {
		return nil, &RootDirectoryNotFoundError{Path: rootDir}
	}

	start := time.Now()
	stats := &BuildStats{ProjectType: normalizeType(projectType)}

	files := b.discover(rootDir, ex)
	stats.FilesDiscovered = len(files)
	b.progress.OnDiscoveryComplete(len(files))

	scan := &scan{builder: b, extractor: ex, projectType: stats.ProjectType, stats: stats}

	var m Map
	if fr, ok := ex.(extraction.FilenameResolver); ok && fr.ResolveByFilename() {
		m = newModuleResolver(scan, files).resolve()
	} else {
		m = Map{}
		for _, path := range files {
			if entities, ok := scan.extract(path); ok {
				m.Fold(entities)
			}
			b.progress.OnFileProcessed(path)
		}
	}

	stats.Duration = time.Since(start)
	b.progress.OnComplete(stats)
	b.logger.Debug("hierarchy built",
		"root", rootDir,
		"type", stats.ProjectType,
		"files", stats.FilesDiscovered,
		"parsed", stats.FilesParsed,
		"skipped", stats.FilesSkipped,
		"cache_hits", stats.CacheHits,
		"duration", stats.Duration)

	return m, nil
}

// discover walks rootDir depth-first and returns the files the extractor
// reads, in walk order.
func (b *Builder) discover(rootDir string, ex extraction.Extractor) []string {
	exts := make(map[string]bool)
	for _, ext := range ex.Extensions() {
		exts[ext] = true
	}
	filter, _ := ex.(extraction.FileFilter)

	var files []string
	_ = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			b.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != rootDir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if path != rootDir && b.ignore.MatchDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !exts[filepath.Ext(path)] || b.ignore.MatchFile(rel) {
			return nil
		}
		if filter != nil && filter.SkipFile(d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files
}

// scan is the state of one Build call.
type scan struct {
	builder     *Builder
	extractor   extraction.Extractor
	projectType string
	stats       *BuildStats
}

// extract reads and extracts one file. ok is false when the file was
// skipped; the reason has already been logged.
func (s *scan) extract(path string) (entities []extraction.Entity, ok bool) {
	b := s.builder

	info, err := os.Stat(path)
	if err == nil {
		if cached, hit := b.cache.Get(s.projectType, path, info); hit {
			s.stats.CacheHits++
			s.stats.FilesParsed++
			s.stats.Entities += len(cached)
			return cached, true
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		s.skip(&FileUnreadableError{Path: path, Err: err})
		return nil, false
	}

	entities, err = s.safeExtract(source)
	if err != nil {
		s.skip(&FileUnreadableError{Path: path, Err: err})
		return nil, false
	}

	b.cache.Put(s.projectType, path, info, entities)
	s.stats.FilesParsed++
	s.stats.Entities += len(entities)
	return entities, true
}

// safeExtract turns an extractor panic into an error so one bad file cannot
// abort the scan.
func (s *scan) safeExtract(source []byte) (entities []extraction.Entity, err error) {
	defer func() {
		if r := recover(); r != nil {
			entities = nil
			err = &extractorPanic{value: r}
		}
	}()
	return s.extractor.Extract(source)
}

func (s *scan) skip(err error) {
	s.stats.FilesSkipped++
	s.builder.logger.Warn("skipping file", "error", err)
}

type extractorPanic struct {
	value any
}

func (p *extractorPanic) Error() string {
	return fmt.Sprintf("extractor panicked: %v", p.value)
}
