package hierarchy

import (
	"path/filepath"
	"strings"
)

// moduleResolver expands a project whose entities are declared one per file,
// named <entity><ext>. Each file is a traversal root; references are followed
// by locating their declaring file by name.
//
// The visited set bounds the traversal to the number of distinct names. A
// reference to a module on the current path (a cycle) is dropped. A reference
// to a module already fully expanded elsewhere links that same subtree, so the
// result is a DAG and every subtree is finite.
type moduleResolver struct {
	scan  *scan
	files []string

	// index maps a module name to the first file declaring it, in walk order.
	index map[string]string

	visited map[string]bool
	onPath  map[string]bool
	nodes   map[string]Map
}

func newModuleResolver(s *scan, files []string) *moduleResolver {
	r := &moduleResolver{
		scan:    s,
		files:   files,
		index:   make(map[string]string, len(files)),
		visited: make(map[string]bool),
		onPath:  make(map[string]bool),
		nodes:   make(map[string]Map),
	}
	for _, path := range files {
		name := moduleNameOf(path)
		if _, dup := r.index[name]; !dup {
			r.index[name] = path
		}
	}
	return r
}

// resolve walks every file's module as a root. Modules already reached from
// an earlier root are not repeated at the top level.
func (r *moduleResolver) resolve() Map {
	result := Map{}
	for _, path := range r.files {
		name := moduleNameOf(path)
		if !r.visited[name] {
			result[name] = r.visit(name)
		}
		r.scan.builder.progress.OnFileProcessed(path)
	}
	return result
}

// visit expands name. The caller guarantees name has not been visited.
func (r *moduleResolver) visit(name string) Map {
	r.visited[name] = true
	r.onPath[name] = true
	defer delete(r.onPath, name)

	node := Map{}
	r.nodes[name] = node

	path, ok := r.index[name]
	if !ok {
		r.scan.builder.logger.Debug("module file not found", "module", name)
		return node
	}

	for _, ref := range r.references(name, path) {
		switch {
		case r.index[ref] == "":
			// Unresolved leaf: shown, never traversed, never marked visited.
			node[ref] = Map{}
		case r.onPath[ref]:
			// Cycle back to an ancestor.
		case r.visited[ref]:
			node[ref] = r.nodes[ref]
		default:
			node[ref] = r.visit(ref)
		}
	}
	return node
}

// references returns the submodules name instantiates. When the file declares
// name, only that module's references count; otherwise every reference in
// the file is attributed to it.
func (r *moduleResolver) references(name, path string) []string {
	entities, ok := r.scan.extract(path)
	if !ok {
		return nil
	}

	for _, e := range entities {
		if e.Name == name {
			return e.References
		}
	}

	var refs []string
	seen := make(map[string]bool)
	for _, e := range entities {
		for _, ref := range e.References {
			if ref != name && !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

// moduleNameOf returns the file name without its extension.
func moduleNameOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
