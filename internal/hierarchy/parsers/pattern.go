package parsers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

// PatternDefinition describes an extractor entirely through regular
// expressions. It is how project types outside the built-in five are added
// without compiling code into the binary.
type PatternDefinition struct {
	Name        string   `yaml:"name" mapstructure:"name"`
	Kind        string   `yaml:"kind" mapstructure:"kind"`
	Extensions  []string `yaml:"extensions" mapstructure:"extensions"`
	Declaration string   `yaml:"declaration" mapstructure:"declaration"` // first group is the entity name
	Reference   string   `yaml:"reference" mapstructure:"reference"`     // first group is the referenced name
	Direction   string   `yaml:"direction" mapstructure:"direction"`     // "child" (default) or "parent"
}

var (
	// ErrInvalidPattern indicates a pattern definition that cannot be compiled
	ErrInvalidPattern = errors.New("invalid pattern definition")
)

// PatternExtractor is an extractor built from a PatternDefinition. References
// are collected from the span between one declaration and the next.
type PatternExtractor struct {
	name       string
	kind       string
	extensions []string
	decl       *regexp.Regexp
	ref        *regexp.Regexp
	direction  extraction.Direction
}

// NewPatternExtractor compiles def. Definitions without a name, an extension,
// or a declaration pattern with a capture group are rejected.
func NewPatternExtractor(def PatternDefinition) (*PatternExtractor, error) {
	name := strings.ToLower(strings.TrimSpace(def.Name))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPattern)
	}
	if len(def.Extensions) == 0 {
		return nil, fmt.Errorf("%w: %s: at least one extension is required", ErrInvalidPattern, name)
	}

	decl, err := compileWithGroup(def.Declaration)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: declaration: %v", ErrInvalidPattern, name, err)
	}

	var ref *regexp.Regexp
	if def.Reference != "" {
		if ref, err = compileWithGroup(def.Reference); err != nil {
			return nil, fmt.Errorf("%w: %s: reference: %v", ErrInvalidPattern, name, err)
		}
	}

	var dir extraction.Direction
	switch strings.ToLower(def.Direction) {
	case "", "child":
		dir = extraction.RefChild
	case "parent":
		dir = extraction.RefParent
	default:
		return nil, fmt.Errorf("%w: %s: direction must be 'child' or 'parent', got '%s'", ErrInvalidPattern, name, def.Direction)
	}

	kind := def.Kind
	if kind == "" {
		kind = "entity"
	}

	exts := make([]string, 0, len(def.Extensions))
	for _, ext := range def.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}

	return &PatternExtractor{
		name:       name,
		kind:       kind,
		extensions: exts,
		decl:       decl,
		ref:        ref,
		direction:  dir,
	}, nil
}

func compileWithGroup(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, errors.New("pattern is empty")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, errors.New("pattern needs a capture group for the name")
	}
	return re, nil
}

// ProjectType returns the name the extractor registers under.
func (e *PatternExtractor) ProjectType() string { return e.name }

func (e *PatternExtractor) Extensions() []string { return e.extensions }

func (e *PatternExtractor) Extract(source []byte) ([]extraction.Entity, error) {
	spans := splitDeclarations(string(source), e.decl, func(src string, m []int) (string, string) {
		return group(src, m, 1), e.kind
	})

	entities := make([]extraction.Entity, 0, len(spans))
	for _, s := range spans {
		var refs []string
		if e.ref != nil {
			for _, m := range e.ref.FindAllStringSubmatch(s.body, -1) {
				if m[1] != s.name {
					refs = append(refs, m[1])
				}
			}
		}
		entities = append(entities, extraction.Entity{
			Name:       s.name,
			Kind:       s.kind,
			References: uniqueSorted(refs),
			Direction:  e.direction,
		})
	}
	return entities, nil
}
