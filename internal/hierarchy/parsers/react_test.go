package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

// Test Plan for ReactExtractor:
// - Function and class components are declared entities
// - Only JSX tags naming an imported component are children
// - Default, named and aliased imports all count
// - HTML tags and components that are not imported are ignored
// - A component never lists itself
// - Tags are attributed to the component whose body contains them

func TestReactExtractor_Components(t *testing.T) {
	t.Parallel()

	src := `
import React, { Component } from 'react';
import Header from './Header';
import { Sidebar, Footer as PageFooter } from "./layout";

function App() {
  return (
    <div className="app">
      <Header title="x" />
      <Sidebar />
      <PageFooter />
      <Unimported />
    </div>
  );
}

class Dashboard extends React.Component {
  render() {
    return <section><Header /><Dashboard /></section>;
  }
}

export default App;
`
	entities, err := NewReactExtractor().Extract([]byte(src))
	require.NoError(t, err)
	require.Len(t, entities, 2)

	app := entityByName(entities, "App")
	require.NotNil(t, app)
	assert.Equal(t, "component", app.Kind)
	assert.Equal(t, extraction.RefChild, app.Direction)
	assert.Equal(t, []string{"Header", "PageFooter", "Sidebar"}, app.References)

	dash := entityByName(entities, "Dashboard")
	require.NotNil(t, dash)
	assert.Equal(t, []string{"Header"}, dash.References)
}

func TestReactExtractor_PureComponent(t *testing.T) {
	t.Parallel()

	src := "import Row from './Row';\nclass Table extends PureComponent {\n  render() { return <Row />; }\n}\n"
	entities, err := NewReactExtractor().Extract([]byte(src))
	require.NoError(t, err)

	require.Len(t, entities, 1)
	assert.Equal(t, "Table", entities[0].Name)
	assert.Equal(t, []string{"Row"}, entities[0].References)
}

func TestReactImports(t *testing.T) {
	t.Parallel()

	imports := reactImports(`
import React from "react";
import Default, { A, B as C } from './mod';
import { D } from "../d";
`)

	assert.Equal(t, map[string]string{
		"React":   "react",
		"Default": "./mod",
		"A":       "./mod",
		"C":       "./mod",
		"D":       "../d",
	}, imports)
}

func TestReactExtractor_Extensions(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{".js", ".jsx"}, NewReactExtractor().Extensions())
}
