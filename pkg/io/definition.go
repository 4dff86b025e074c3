package io

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sysarch/pkg/diagram"
)

// ErrUnsupportedFile is returned by [ReadFile] for an unknown extension.
var ErrUnsupportedFile = errors.New("unsupported definition file")

// ReadTOML decodes a TOML diagram definition:
//
//	name = "Example"
//
//	[[clusters]]
//	name = "Web"
//	  [[clusters.nodes]]
//	  label = "UI"
//
//	[[edges]]
//	from = "UI"
//	to = "users"
//	label = "reads"
//
// Keys that do not map to a field are rejected.
func ReadTOML(r io.Reader) (*diagram.Diagram, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode: unknown keys %v", undecoded)
	}
	return doc.toDiagram()
}

// ReadYAML decodes a YAML diagram definition with the same layout as
// [ReadJSON]. Unknown keys are rejected.
func ReadYAML(r io.Reader) (*diagram.Diagram, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode: empty document")
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.toDiagram()
}

// ReadFile loads a diagram definition, choosing the decoder from the file
// extension: .json, .toml, .yaml or .yml.
func ReadFile(path string) (*diagram.Diagram, error) {
	var read func(io.Reader) (*diagram.Diagram, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		read = ReadJSON
	case ".toml":
		read = ReadTOML
	case ".yaml", ".yml":
		read = ReadYAML
	default:
		return nil, fmt.Errorf("%w: %q (want .json, .toml, .yaml)", ErrUnsupportedFile, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
