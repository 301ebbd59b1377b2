package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

// PythonExtractor finds top-level classes and their base classes.
type PythonExtractor struct {
	*treeSitterParser
}

// NewPythonExtractor creates a Python extractor.
func NewPythonExtractor() *PythonExtractor {
	lang := sitter.NewLanguage(python.Language())
	return &PythonExtractor{
		treeSitterParser: newTreeSitterParser(lang, "python"),
	}
}

func (e *PythonExtractor) Extensions() []string { return []string{".py"} }

// SkipFile skips dunder files such as __init__.py and __main__.py.
func (e *PythonExtractor) SkipFile(name string) bool {
	return strings.HasPrefix(name, "__")
}

// Extract returns one entity per module-level class. Each base is reduced to
// its identifier, or to the last attribute of a dotted name; anything else is
// recorded as extraction.UnknownName.
func (e *PythonExtractor) Extract(source []byte) ([]extraction.Entity, error) {
	tree, err := e.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var entities []extraction.Entity
	for _, node := range namedChildren(tree.RootNode()) {
		if node.Kind() == "decorated_definition" {
			node = node.ChildByFieldName("definition")
		}
		if node == nil || node.Kind() != "class_definition" {
			continue
		}

		name := extractNodeText(node.ChildByFieldName("name"), source)
		if name == "" {
			continue
		}

		entities = append(entities, extraction.Entity{
			Name:       name,
			Kind:       "class",
			References: e.bases(node.ChildByFieldName("superclasses"), source),
			Direction:  extraction.RefParent,
		})
	}
	return entities, nil
}

// bases resolves each positional argument of a class's superclass list.
func (e *PythonExtractor) bases(args *sitter.Node, source []byte) []string {
	var out []string
	for _, arg := range namedChildren(args) {
		switch arg.Kind() {
		case "keyword_argument", "dictionary_splat", "comment":
			// metaclass=... and **kwargs are not bases
		case "identifier":
			out = append(out, extractNodeText(arg, source))
		case "attribute":
			out = append(out, extractNodeText(arg.ChildByFieldName("attribute"), source))
		default:
			out = append(out, extraction.UnknownName)
		}
	}
	return out
}
