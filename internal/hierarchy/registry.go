package hierarchy

import (
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
	"github.com/mvp-joe/dirmap/internal/hierarchy/parsers"
)

// ProjectTyper is implemented by extractors that know which project type
// they serve. Plugins must implement it alongside extraction.Extractor.
type ProjectTyper interface {
	ProjectType() string
}

// Registry maps project type names to extractors. Names are case-insensitive.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]extraction.Extractor
	logger     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]extraction.Extractor),
		logger:     discardLogger(),
	}
}

// SetLogger sets the logger plugin registration warns on.
func (r *Registry) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// NewDefaultRegistry creates a registry holding the built-in extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	sql := parsers.NewSQLSchemaExtractor()
	builtins := map[string]extraction.Extractor{
		"verilog":  parsers.NewVerilogExtractor(),
		"python":   parsers.NewPythonExtractor(),
		"java":     parsers.NewJavaExtractor(),
		"react":    parsers.NewReactExtractor(),
		"database": sql,
		"sql":      sql,
	}
	for name, ex := range builtins {
		_ = r.Register(name, ex)
	}
	return r
}

// Register binds typeName to ex, replacing any earlier binding.
func (r *Registry) Register(typeName string, ex extraction.Extractor) error {
	name := normalizeType(typeName)
	if name == "" {
		return errors.New("project type name is required")
	}
	if ex == nil {
		return errors.New("extractor is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[name] = ex
	return nil
}

// RegisterPlugins registers every value that is both an extraction.Extractor
// and a ProjectTyper. Anything else is ignored. A plugin replacing an existing
// binding, built-in or not, is logged at Warn. Returns the registered names.
func (r *Registry) RegisterPlugins(plugins ...any) []string {
	return r.registerPlugins(r.logger, plugins...)
}

func (r *Registry) registerPlugins(logger *slog.Logger, plugins ...any) []string {
	var registered []string
	for _, p := range plugins {
		ex, ok := p.(extraction.Extractor)
		if !ok {
			continue
		}
		typer, ok := p.(ProjectTyper)
		if !ok {
			continue
		}
		name := normalizeType(typer.ProjectType())
		_, err := r.Resolve(name)
		overrides := err == nil
		if err := r.Register(name, ex); err != nil {
			continue
		}
		if overrides {
			logger.Warn("plugin overrides registered project type", "type", name)
		}
		registered = append(registered, name)
	}
	return registered
}

// Resolve returns the extractor for typeName or a *NoParserForTypeError.
func (r *Registry) Resolve(typeName string) (extraction.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ex, ok := r.extractors[normalizeType(typeName)]
	if !ok {
		return nil, &NoParserForTypeError{TypeName: typeName}
	}
	return ex, nil
}

// Types returns the registered project type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeType(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
