// Package mermaid exports architecture diagrams as Mermaid flowcharts,
// which render inline in Markdown on most code hosts.
package mermaid

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/sysarch/pkg/diagram"
)

// Options configures Mermaid generation.
type Options struct {
	// Direction overrides the diagram's own layout direction when set.
	Direction diagram.Direction
}

// Generate returns the diagram as a Mermaid "flowchart" definition.
// Clusters become subgraphs, databases use the cylinder shape and bold
// nodes share a "bold" class.
func Generate(d *diagram.Diagram, opts Options) string {
	dir := d.Direction()
	if opts.Direction != "" {
		dir = opts.Direction
	}

	ids := make(map[string]string, d.NodeCount())
	for i, n := range d.Nodes() {
		ids[n.ID] = fmt.Sprintf("n%d", i)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "---\ntitle: %s\n---\n", d.Name())
	fmt.Fprintf(&b, "flowchart %s\n", dir)

	var bold []string
	for i, c := range d.Clusters() {
		fmt.Fprintf(&b, "  subgraph c%d[\"%s\"]\n", i, escape(c.Title()))
		for _, id := range c.Nodes {
			n, _ := d.Node(id)
			fmt.Fprintf(&b, "    %s%s\n", ids[id], shape(n))
			if n.Style.FontWeight == diagram.FontBold {
				bold = append(bold, ids[id])
			}
		}
		b.WriteString("  end\n")
	}

	for _, e := range d.Edges() {
		fmt.Fprintf(&b, "  %s -->|\"%s\"| %s\n", ids[e.From], escape(e.Label), ids[e.To])
	}

	for i, c := range d.Clusters() {
		if c.BgColor != "" {
			fmt.Fprintf(&b, "  style c%d fill:%s\n", i, c.BgColor)
		}
	}
	for _, n := range d.Nodes() {
		if n.Style.FillColor != "" {
			fmt.Fprintf(&b, "  style %s fill:%s\n", ids[n.ID], n.Style.FillColor)
		}
	}
	if len(bold) > 0 {
		b.WriteString("  classDef bold font-weight:bold\n")
		fmt.Fprintf(&b, "  class %s bold\n", strings.Join(bold, ","))
	}
	return b.String()
}

func shape(n diagram.Node) string {
	label := escape(n.Label)
	if n.Shape == diagram.ShapeDatabase {
		return "[(\"" + label + "\")]"
	}
	return "[\"" + label + "\"]"
}

// escape replaces double quotes, which cannot appear inside a quoted
// Mermaid label, with the #quot; entity.
func escape(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
