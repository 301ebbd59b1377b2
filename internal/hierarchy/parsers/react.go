package parsers

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

var (
	// import Default from "x"; import Default, { A, B as C } from 'x'; import { A } from "x"
	reactImport = regexp.MustCompile(
		`(?m)^\s*import\s+(?:(\w+)\s*,?\s*)?(?:\{([^}]*)\}\s*)?from\s+["']([^"']+)["']`)

	reactComponentDecl = regexp.MustCompile(
		`class\s+(\w+)\s+extends\s+(?:React\.)?(?:Pure)?Component\b|function\s+(\w+)\s*\(`)

	jsxOpeningTag = regexp.MustCompile(`<(\w+)`)
)

// ReactExtractor finds components and the imported components each renders.
type ReactExtractor struct{}

// NewReactExtractor creates a React extractor.
func NewReactExtractor() *ReactExtractor {
	return &ReactExtractor{}
}

func (e *ReactExtractor) Extensions() []string { return []string{".js", ".jsx"} }

// Extract works in two passes. The first maps imported names to their source
// path; the second cuts the file into component spans and keeps the JSX tags
// in each span that name an imported component other than the enclosing one.
func (e *ReactExtractor) Extract(source []byte) ([]extraction.Entity, error) {
	src := string(source)
	imports := reactImports(src)

	spans := splitDeclarations(src, reactComponentDecl, func(src string, m []int) (string, string) {
		if name := group(src, m, 1); name != "" {
			return name, "component"
		}
		return group(src, m, 2), "component"
	})

	entities := make([]extraction.Entity, 0, len(spans))
	for _, s := range spans {
		var children []string
		for _, tag := range jsxOpeningTag.FindAllStringSubmatch(s.body, -1) {
			name := tag[1]
			if _, ok := imports[name]; ok && name != s.name {
				children = append(children, name)
			}
		}
		entities = append(entities, extraction.Entity{
			Name:       s.name,
			Kind:       s.kind,
			References: uniqueSorted(children),
			Direction:  extraction.RefChild,
		})
	}
	return entities, nil
}

// reactImports maps each locally bound import name to its source path.
func reactImports(src string) map[string]string {
	imports := make(map[string]string)
	for _, m := range reactImport.FindAllStringSubmatch(src, -1) {
		path := m[3]
		if m[1] != "" {
			imports[m[1]] = path
		}
		for _, spec := range splitList(m[2]) {
			local := spec
			if i := strings.Index(spec, " as "); i >= 0 {
				local = strings.TrimSpace(spec[i+len(" as "):])
			}
			imports[local] = path
		}
	}
	return imports
}
