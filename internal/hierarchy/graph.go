package hierarchy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
)

// Analysis summarises the shape of a hierarchy.
type Analysis struct {
	Nodes  int
	Edges  int
	Roots  []string   // names nothing points at
	Cycles [][]string // strongly connected groups, plus self references
}

// Graph converts the hierarchy into a directed graph with one vertex per name.
func (m Map) Graph() (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())

	for _, name := range m.Names() {
		if err := g.AddVertex(name); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add vertex %s: %w", name, err)
		}
	}

	for _, e := range m.Edges() {
		if err := g.AddEdge(e.Parent, e.Child); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, fmt.Errorf("failed to add edge %s -> %s: %w", e.Parent, e.Child, err)
		}
	}
	return g, nil
}

// Analyze counts nodes and edges and reports roots and cycles. Cycles are
// legal in a folded hierarchy; they are reported, not rejected.
func Analyze(m Map) (*Analysis, error) {
	g, err := m.Graph()
	if err != nil {
		return nil, err
	}

	order, err := g.Order()
	if err != nil {
		return nil, err
	}
	size, err := g.Size()
	if err != nil {
		return nil, err
	}

	preds, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}

	a := &Analysis{Nodes: order, Edges: size}
	for name, in := range preds {
		if len(in) == 0 {
			a.Roots = append(a.Roots, name)
		}
	}
	sort.Strings(a.Roots)

	sccs, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil, err
	}
	for _, scc := range sccs {
		if len(scc) > 1 {
			sort.Strings(scc)
			a.Cycles = append(a.Cycles, scc)
		}
	}
	for _, e := range m.Edges() {
		if e.Parent == e.Child {
			a.Cycles = append(a.Cycles, []string{e.Parent})
		}
	}
	sort.Slice(a.Cycles, func(i, j int) bool { return a.Cycles[i][0] < a.Cycles[j][0] })

	return a, nil
}
