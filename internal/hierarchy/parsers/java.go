package parsers

import (
	"regexp"
	"strings"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

var (
	javaClassDecl = regexp.MustCompile(
		`\bclass\s+(\w+)(?:\s*<[^{]*?>)?\s*(?:extends\s+([\w.]+)(?:\s*<[^{]*?>)?)?\s*(?:implements\s+([^{]+?))?\s*\{`)
	javaInterfaceDecl = regexp.MustCompile(
		`\binterface\s+(\w+)(?:\s*<[^{]*?>)?\s*(?:extends\s+([^{]+?))?\s*\{`)
	javaTypeArgs = regexp.MustCompile(`<[^<>]*>`)
)

// JavaExtractor finds classes and interfaces and the types they extend or
// implement.
type JavaExtractor struct{}

// NewJavaExtractor creates a Java extractor.
func NewJavaExtractor() *JavaExtractor {
	return &JavaExtractor{}
}

func (e *JavaExtractor) Extensions() []string { return []string{".java"} }

// Extract returns classes (bases: extends target plus implements targets) and
// interfaces (bases: all extends targets). Bases are parents of the entity.
func (e *JavaExtractor) Extract(source []byte) ([]extraction.Entity, error) {
	src := stripCComments(string(source))

	var entities []extraction.Entity
	for _, m := range javaClassDecl.FindAllStringSubmatch(src, -1) {
		var bases []string
		if m[2] != "" {
			bases = append(bases, m[2])
		}
		bases = append(bases, javaTypeList(m[3])...)
		entities = append(entities, extraction.Entity{
			Name:       m[1],
			Kind:       "class",
			References: bases,
			Direction:  extraction.RefParent,
		})
	}

	for _, m := range javaInterfaceDecl.FindAllStringSubmatch(src, -1) {
		entities = append(entities, extraction.Entity{
			Name:       m[1],
			Kind:       "interface",
			References: javaTypeList(m[2]),
			Direction:  extraction.RefParent,
		})
	}
	return entities, nil
}

// javaTypeList splits "A, B<C, D>, E" into [A B E].
func javaTypeList(list string) []string {
	for javaTypeArgs.MatchString(list) {
		list = javaTypeArgs.ReplaceAllString(list, "")
	}
	var out []string
	for _, t := range splitList(list) {
		out = append(out, strings.Join(strings.Fields(t), ""))
	}
	return out
}
