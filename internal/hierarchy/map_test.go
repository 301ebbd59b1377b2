package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

// Test Plan for Map:
// - Fold of child-direction entities puts references under the entity
// - Fold of parent-direction entities puts the entity under each base
// - A declared entity with no references is a key with empty children
// - Declaring an existing key leaves its children untouched
// - Referenced-only names are nested, never top-level
// - Folding the same entities twice equals folding them once
// - Folding files in any order yields the same map
// - Empty names are ignored
// - Keys, Edges and Names are sorted and deduplicated
// - Edges and Names terminate on shared subtrees
// - Equal compares at every depth

func TestMap_FoldChildDirection(t *testing.T) {
	t.Parallel()

	m := Map{}
	m.Fold([]extraction.Entity{
		{Name: "orders", References: []string{"customers"}, Direction: extraction.RefChild},
	})

	assert.Equal(t, Map{"orders": {"customers": {}}}, m)
}

func TestMap_FoldParentDirection(t *testing.T) {
	t.Parallel()

	m := Map{}
	m.Fold([]extraction.Entity{
		{Name: "Dog", References: []string{"Animal", "Pet"}, Direction: extraction.RefParent},
		{Name: "Animal", Direction: extraction.RefParent},
	})

	assert.Equal(t, Map{
		"Dog":    {},
		"Animal": {"Dog": {}},
		"Pet":    {"Dog": {}},
	}, m)
}

func TestMap_DeclareKeepsChildren(t *testing.T) {
	t.Parallel()

	m := Map{}
	m.AddEdge("a", "b")
	m.Declare("a")
	m.Declare("")

	assert.Equal(t, Map{"a": {"b": {}}}, m)
}

func TestMap_FoldIdempotent(t *testing.T) {
	t.Parallel()

	entities := []extraction.Entity{
		{Name: "top", References: []string{"alu", "fpu"}},
		{Name: "alu"},
	}

	once := Map{}
	once.Fold(entities)

	twice := Map{}
	twice.Fold(entities)
	twice.Fold(entities)

	assert.True(t, once.Equal(twice))
}

func TestMap_FoldOrderIndependent(t *testing.T) {
	t.Parallel()

	fileA := []extraction.Entity{{Name: "orders", References: []string{"customers"}}}
	fileB := []extraction.Entity{{Name: "customers"}}
	fileC := []extraction.Entity{{Name: "invoices", References: []string{"orders", "customers"}}}

	forward := Map{}
	for _, f := range [][]extraction.Entity{fileA, fileB, fileC} {
		forward.Fold(f)
	}
	backward := Map{}
	for _, f := range [][]extraction.Entity{fileC, fileB, fileA} {
		backward.Fold(f)
	}

	assert.True(t, forward.Equal(backward))
	assert.Equal(t, []string{"customers", "invoices", "orders"}, forward.Keys())
}

func TestMap_IgnoresEmptyNames(t *testing.T) {
	t.Parallel()

	m := Map{}
	m.AddEdge("", "x")
	m.AddEdge("x", "")
	m.Fold([]extraction.Entity{{Name: "", References: []string{"y"}}})

	assert.Empty(t, m)
}

func TestMap_EdgesAndNames(t *testing.T) {
	t.Parallel()

	shared := Map{"leaf": {}}
	m := Map{
		"b":    {"shared": shared},
		"a":    {"shared": shared, "other": {}},
		"lone": {},
	}

	assert.Equal(t, []string{"a", "b", "lone"}, m.Keys())
	assert.Equal(t, []Edge{
		{Parent: "a", Child: "other"},
		{Parent: "a", Child: "shared"},
		{Parent: "b", Child: "shared"},
		{Parent: "shared", Child: "leaf"},
	}, m.Edges())
	assert.Equal(t, []string{"a", "b", "leaf", "lone", "other", "shared"}, m.Names())
}

func TestMap_Equal(t *testing.T) {
	t.Parallel()

	a := Map{"x": {"y": {"z": {}}}}
	assert.True(t, a.Equal(Map{"x": {"y": {"z": {}}}}))
	assert.False(t, a.Equal(Map{"x": {"y": {}}}))
	assert.False(t, a.Equal(Map{"x": {"y": {"z": {}}}, "w": {}}))
	assert.True(t, Map{}.Equal(nil))
}
