package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

// Test Plan for PatternExtractor:
// - Definitions are validated: name, extension, capture groups, direction
// - Extensions get a leading dot; the name is lowercased; kind defaults to "entity"
// - References are collected per declaration span and exclude self references
// - Direction "parent" makes references parents of the entity
// - A definition without a reference pattern yields bare declarations

func TestNewPatternExtractor_Validation(t *testing.T) {
	t.Parallel()

	valid := PatternDefinition{Name: "thrift", Extensions: []string{"thrift"}, Declaration: `struct\s+(\w+)`}

	tests := []struct {
		name   string
		mutate func(*PatternDefinition)
	}{
		{"missing name", func(d *PatternDefinition) { d.Name = " " }},
		{"missing extension", func(d *PatternDefinition) { d.Extensions = nil }},
		{"missing declaration", func(d *PatternDefinition) { d.Declaration = "" }},
		{"declaration without group", func(d *PatternDefinition) { d.Declaration = `struct\s+\w+` }},
		{"reference does not compile", func(d *PatternDefinition) { d.Reference = `(` }},
		{"bad direction", func(d *PatternDefinition) { d.Direction = "sideways" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := valid
			tt.mutate(&def)
			_, err := NewPatternExtractor(def)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}

	ex, err := NewPatternExtractor(valid)
	require.NoError(t, err)
	assert.Equal(t, "thrift", ex.ProjectType())
	assert.Equal(t, []string{".thrift"}, ex.Extensions())
}

func TestPatternExtractor_Extract(t *testing.T) {
	t.Parallel()

	ex, err := NewPatternExtractor(PatternDefinition{
		Name:        "Thrift",
		Extensions:  []string{".thrift"},
		Declaration: `struct\s+(\w+)`,
		Reference:   `\d+:\s*(\w+)\s+\w+`,
	})
	require.NoError(t, err)
	assert.Equal(t, "thrift", ex.ProjectType())

	entities, err := ex.Extract([]byte(`
struct Order {
  1: Customer buyer
  2: Order parent
  3: Item first
  4: Item second
}
struct Item {
}
`))
	require.NoError(t, err)
	require.Len(t, entities, 2)

	assert.Equal(t, "Order", entities[0].Name)
	assert.Equal(t, "entity", entities[0].Kind)
	assert.Equal(t, extraction.RefChild, entities[0].Direction)
	assert.Equal(t, []string{"Customer", "Item"}, entities[0].References)

	assert.Equal(t, "Item", entities[1].Name)
	assert.Empty(t, entities[1].References)
}

func TestPatternExtractor_ParentDirection(t *testing.T) {
	t.Parallel()

	ex, err := NewPatternExtractor(PatternDefinition{
		Name:        "kotlin",
		Kind:        "class",
		Extensions:  []string{".kt"},
		Declaration: `class\s+(\w+)`,
		Reference:   `:\s*(\w+)\(`,
		Direction:   "parent",
	})
	require.NoError(t, err)

	entities, err := ex.Extract([]byte("class Dog : Animal() {}\n"))
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "class", entities[0].Kind)
	assert.Equal(t, extraction.RefParent, entities[0].Direction)
	assert.Equal(t, []string{"Animal"}, entities[0].References)
}

func TestPatternExtractor_DeclarationsOnly(t *testing.T) {
	t.Parallel()

	ex, err := NewPatternExtractor(PatternDefinition{
		Name:        "proto",
		Extensions:  []string{".proto"},
		Declaration: `message\s+(\w+)`,
	})
	require.NoError(t, err)

	entities, err := ex.Extract([]byte("message A {}\nmessage B {}\n"))
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Empty(t, entities[0].References)
	assert.Empty(t, entities[1].References)
}
