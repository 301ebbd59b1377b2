package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for graph analysis:
// - Graph has one vertex per name and one edge per parent/child pair
// - Roots are the names nothing points at
// - Mutual references are reported as a cycle
// - Self references are reported as a cycle
// - An acyclic hierarchy reports no cycles

func TestMap_Graph(t *testing.T) {
	t.Parallel()

	m := Map{"a": {"b": {}, "c": {}}, "b": {"c": {}}}
	g, err := m.Graph()
	require.NoError(t, err)

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, 3, order)

	_, err = g.Edge("a", "b")
	assert.NoError(t, err)
	_, err = g.Edge("b", "a")
	assert.Error(t, err)
}

func TestAnalyze_Acyclic(t *testing.T) {
	t.Parallel()

	a, err := Analyze(Map{
		"top":  {"core": {"alu": {}}, "uart": {}},
		"misc": {},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, a.Nodes)
	assert.Equal(t, 3, a.Edges)
	assert.Equal(t, []string{"misc", "top"}, a.Roots)
	assert.Empty(t, a.Cycles)
}

func TestAnalyze_Cycles(t *testing.T) {
	t.Parallel()

	// Folded Java hierarchies can contain mutual references.
	a, err := Analyze(Map{
		"A":    {"B": {}},
		"B":    {"A": {}},
		"Self": {"Self": {}},
		"Root": {"A": {}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Root"}, a.Roots)
	assert.Equal(t, [][]string{{"A", "B"}, {"Self"}}, a.Cycles)
}
