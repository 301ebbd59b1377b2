package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/dirmap/internal/hierarchy"
)

// WriteJSON writes h as a nested JSON object indented by four spaces.
// Leaves are written as {}.
func WriteJSON(w io.Writer, h hierarchy.Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(normalize(h)); err != nil {
		return fmt.Errorf("failed to encode hierarchy as JSON: %w", err)
	}
	return nil
}

// WriteYAML writes h as a nested YAML mapping.
func WriteYAML(w io.Writer, h hierarchy.Map) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(h)); err != nil {
		return fmt.Errorf("failed to encode hierarchy as YAML: %w", err)
	}
	return enc.Close()
}

// normalize replaces nil children with empty maps so encoders never write
// null for a leaf.
func normalize(h hierarchy.Map) hierarchy.Map {
	out := make(hierarchy.Map, len(h))
	for k, v := range h {
		out[k] = normalize(v)
	}
	return out
}
