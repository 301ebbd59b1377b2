package hierarchy

import (
	"reflect"
	"sort"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

// Map is the hierarchy handed to renderers: entity name to the map of its
// children, recursively. A leaf has an empty (never nil) Map.
//
// Folded projects produce two levels: every declared entity and every parent
// is a key, and its children are empty leaves under it. Resolved projects
// (Verilog) produce real nesting.
type Map map[string]Map

// Edge is one parent to child relation.
type Edge struct {
	Parent string
	Child  string
}

// node returns the children of name, creating an empty entry when absent.
func (m Map) node(name string) Map {
	n, ok := m[name]
	if !ok || n == nil {
		n = Map{}
		m[name] = n
	}
	return n
}

// Declare makes name a key. An existing entry is left untouched.
func (m Map) Declare(name string) {
	if name == "" {
		return
	}
	m.node(name)
}

// AddEdge records child under parent, creating parent when absent. Adding an
// edge twice is a no-op.
func (m Map) AddEdge(parent, child string) {
	if parent == "" || child == "" {
		return
	}
	children := m.node(parent)
	if _, ok := children[child]; !ok {
		children[child] = Map{}
	}
}

// Fold merges one file's entities. Folding is commutative and idempotent, so
// files may be folded in any order, or more than once.
func (m Map) Fold(entities []extraction.Entity) {
	for _, e := range entities {
		m.Declare(e.Name)
		for _, ref := range e.References {
			if e.Direction == extraction.RefParent {
				m.AddEdge(ref, e.Name)
			} else {
				m.AddEdge(e.Name, ref)
			}
		}
	}
}

// Keys returns the top-level names, sorted.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Edges returns every parent to child pair at any depth, sorted and without
// duplicates.
func (m Map) Edges() []Edge {
	seen := make(map[Edge]bool)
	m.walk(func(parent, child string) {
		seen[Edge{Parent: parent, Child: child}] = true
	})

	edges := make([]Edge, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Parent != edges[j].Parent {
			return edges[i].Parent < edges[j].Parent
		}
		return edges[i].Child < edges[j].Child
	})
	return edges
}

// Names returns every name appearing at any depth, sorted.
func (m Map) Names() []string {
	seen := make(map[string]bool)
	for k := range m {
		seen[k] = true
	}
	m.walk(func(_, child string) { seen[child] = true })

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// walk visits each parent/child pair. Resolved hierarchies share subtrees
// between parents, so a subtree is expanded only the first time it is seen.
func (m Map) walk(fn func(parent, child string)) {
	done := make(map[uintptr]bool)
	var visit func(name string, children Map)
	visit = func(name string, children Map) {
		id := reflect.ValueOf(children).Pointer()
		if done[id] {
			return
		}
		done[id] = true
		for child, grand := range children {
			fn(name, child)
			if len(grand) > 0 {
				visit(child, grand)
			}
		}
	}
	for name, children := range m {
		visit(name, children)
	}
}

// Equal reports whether two hierarchies have the same keys and the same
// children at every depth.
func (m Map) Equal(other Map) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
