package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sysarch/pkg/diagram"
)

// WriteJSON encodes a diagram as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(d *diagram.Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromDiagram(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a diagram to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(d *diagram.Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// ReadJSON decodes a JSON diagram from r.
//
// The input is an object with "name", "clusters" (each holding its
// "nodes") and "edges":
//
//	{
//	  "name": "Example",
//	  "clusters": [{"name": "Web", "nodes": [{"label": "UI"}]},
//	               {"name": "Storage", "nodes": [{"label": "users", "shape": "database"}]}],
//	  "edges": [{"from": "UI", "to": "users", "label": "reads"}]
//	}
//
// Unknown fields are rejected. Structural errors from [diagram.Builder]
// are returned wrapped, so errors.Is works with the diagram sentinels.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*diagram.Diagram, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.toDiagram()
}

// ImportJSON reads a JSON file at path and returns the decoded diagram.
func ImportJSON(path string) (*diagram.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
