package io

import (
	"fmt"

	"github.com/matzehuels/sysarch/pkg/diagram"
)

// document is the serialized form shared by every supported encoding.
// Nodes are nested under their cluster so a definition file reads like the
// picture it describes.
type document struct {
	Name      string    `json:"name" toml:"name" yaml:"name"`
	Filename  string    `json:"filename,omitempty" toml:"filename" yaml:"filename,omitempty"`
	Direction string    `json:"direction,omitempty" toml:"direction" yaml:"direction,omitempty"`
	Clusters  []cluster `json:"clusters" toml:"clusters" yaml:"clusters"`
	Edges     []edge    `json:"edges" toml:"edges" yaml:"edges"`
}

type cluster struct {
	ID       string `json:"id,omitempty" toml:"id" yaml:"id,omitempty"`
	Name     string `json:"name" toml:"name" yaml:"name"`
	Subtitle string `json:"subtitle,omitempty" toml:"subtitle" yaml:"subtitle,omitempty"`
	BgColor  string `json:"bgcolor,omitempty" toml:"bgcolor" yaml:"bgcolor,omitempty"`
	Nodes    []node `json:"nodes" toml:"nodes" yaml:"nodes"`
}

type node struct {
	ID         string `json:"id,omitempty" toml:"id" yaml:"id,omitempty"`
	Label      string `json:"label" toml:"label" yaml:"label"`
	Shape      string `json:"shape,omitempty" toml:"shape" yaml:"shape,omitempty"`
	FontWeight string `json:"fontweight,omitempty" toml:"fontweight" yaml:"fontweight,omitempty"`
	FillColor  string `json:"fillcolor,omitempty" toml:"fillcolor" yaml:"fillcolor,omitempty"`
}

type edge struct {
	From  string `json:"from" toml:"from" yaml:"from"`
	To    string `json:"to" toml:"to" yaml:"to"`
	Label string `json:"label" toml:"label" yaml:"label"`
}

var shapes = map[string]diagram.Shape{
	"":         diagram.ShapeRack,
	"rack":     diagram.ShapeRack,
	"database": diagram.ShapeDatabase,
}

var weights = map[string]diagram.FontWeight{
	"":       diagram.FontNormal,
	"normal": diagram.FontNormal,
	"bold":   diagram.FontBold,
}

func fromDiagram(d *diagram.Diagram) document {
	doc := document{
		Name:      d.Name(),
		Filename:  d.Filename(),
		Direction: string(d.Direction()),
		Clusters:  make([]cluster, 0, len(d.Clusters())),
		Edges:     make([]edge, 0, d.EdgeCount()),
	}
	for _, c := range d.Clusters() {
		out := cluster{ID: c.ID, Name: c.Name, Subtitle: c.Subtitle, BgColor: c.BgColor, Nodes: make([]node, 0, len(c.Nodes))}
		for _, id := range c.Nodes {
			n, _ := d.Node(id)
			out.Nodes = append(out.Nodes, node{
				ID:         n.ID,
				Label:      n.Label,
				Shape:      string(n.Shape),
				FontWeight: string(n.Style.FontWeight),
				FillColor:  n.Style.FillColor,
			})
		}
		doc.Clusters = append(doc.Clusters, out)
	}
	for _, e := range d.Edges() {
		doc.Edges = append(doc.Edges, edge{From: e.From, To: e.To, Label: e.Label})
	}
	return doc
}

// toDiagram replays a document through [diagram.Builder], so decoded
// diagrams satisfy the same invariants as declared ones.
//
// Edge endpoints may name a node ID or, when it is unambiguous, a node label.
func (doc document) toDiagram() (*diagram.Diagram, error) {
	var opts []diagram.Option
	if doc.Filename != "" {
		opts = append(opts, diagram.WithFilename(doc.Filename))
	}
	if doc.Direction != "" {
		dir, err := diagram.ParseDirection(doc.Direction)
		if err != nil {
			return nil, err
		}
		opts = append(opts, diagram.WithDirection(dir))
	}

	b := diagram.NewBuilder(doc.Name, opts...)
	ids := make(map[string]bool)
	byLabel := make(map[string][]string)

	for _, c := range doc.Clusters {
		cid := b.Cluster(diagram.Cluster{ID: c.ID, Name: c.Name, Subtitle: c.Subtitle, BgColor: c.BgColor})
		for _, n := range c.Nodes {
			shape, ok := shapes[n.Shape]
			if !ok {
				return nil, fmt.Errorf("node %q: unknown shape %q", n.Label, n.Shape)
			}
			weight, ok := weights[n.FontWeight]
			if !ok {
				return nil, fmt.Errorf("node %q: unknown font weight %q", n.Label, n.FontWeight)
			}
			id := b.Node(diagram.Node{
				ID:      n.ID,
				Label:   n.Label,
				Cluster: cid,
				Shape:   shape,
				Style:   diagram.Style{FontWeight: weight, FillColor: n.FillColor},
			})
			ids[id] = true
			byLabel[n.Label] = append(byLabel[n.Label], id)
		}
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	resolve := func(ref string) (string, error) {
		if ids[ref] {
			return ref, nil
		}
		switch matches := byLabel[ref]; len(matches) {
		case 0:
			return ref, nil
		case 1:
			return matches[0], nil
		default:
			return "", fmt.Errorf("ambiguous node label %q (matches %v); use a node ID", ref, matches)
		}
	}
	for _, e := range doc.Edges {
		from, err := resolve(e.From)
		if err != nil {
			return nil, err
		}
		to, err := resolve(e.To)
		if err != nil {
			return nil, err
		}
		b.Connect(from, to, e.Label)
	}

	return b.Build()
}
