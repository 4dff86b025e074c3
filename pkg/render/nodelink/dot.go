package nodelink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sysarch/pkg/diagram"
	"github.com/matzehuels/sysarch/pkg/render"
)

// ErrBackendUnavailable is returned when the Graphviz engine cannot be
// initialized.
var ErrBackendUnavailable = errors.New("graphviz backend unavailable")

// Attribute defaults, matching the look of the documentation diagrams.
const (
	fontName     = "Helvetica"
	fontNameBold = "Helvetica-Bold"
	edgeColor    = "#7B8894"
	clusterPen   = "#AEB6BE"
)

// Options configures DOT generation.
type Options struct {
	// Direction overrides the diagram's own layout direction when set.
	Direction diagram.Direction
	// Transparent drops the white page background.
	Transparent bool
}

// ToDOT converts a diagram to Graphviz DOT source.
// The resulting DOT string can be rendered using [RenderPNG], [RenderSVG], or [RenderPDF].
//
// Each cluster becomes a "cluster_N" subgraph so Graphviz draws it as a
// shaded box; racks are drawn as 3D boxes and databases as cylinders.
// Output follows declaration order and is identical across runs.
func ToDOT(d *diagram.Diagram, opts Options) string {
	dir := d.Direction()
	if opts.Direction != "" {
		dir = opts.Direction
	}
	bg := "white"
	if opts.Transparent {
		bg = "transparent"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", d.Name())
	fmt.Fprintf(&buf, "  graph [label=%q, labelloc=t, fontname=%q, fontsize=15, rankdir=%s, bgcolor=%q, pad=2.0, nodesep=0.60, ranksep=0.75];\n",
		d.Name(), fontName, dir, bg)
	fmt.Fprintf(&buf, "  node [shape=box, style=filled, fillcolor=white, fontname=%q, fontsize=13, margin=\"0.2,0.1\"];\n", fontName)
	fmt.Fprintf(&buf, "  edge [color=%q, fontcolor=\"#2D3436\", fontname=%q, fontsize=13];\n", edgeColor, fontName)

	for i, c := range d.Clusters() {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		for _, attr := range clusterAttrs(c) {
			fmt.Fprintf(&buf, "    %s;\n", attr)
		}
		for _, id := range c.Nodes {
			n, _ := d.Node(id)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(fmtAttrs(n), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func clusterAttrs(c diagram.Cluster) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", c.Title()),
		"labeljust=l",
		"style=\"rounded,filled\"",
		fmt.Sprintf("pencolor=%q", clusterPen),
		"fontsize=12",
	}
	if c.BgColor != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c.BgColor))
	} else {
		attrs = append(attrs, "fillcolor=\"#E5F5FD\"")
	}
	return attrs
}

func fmtAttrs(n diagram.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.Label)}
	switch n.Shape {
	case diagram.ShapeDatabase:
		attrs = append(attrs, "shape=cylinder")
	default:
		attrs = append(attrs, "shape=box3d")
	}
	if n.Style.FontWeight == diagram.FontBold {
		attrs = append(attrs, fmt.Sprintf("fontname=%q", fontNameBold))
	}
	if n.Style.FillColor != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Style.FillColor))
	}
	return attrs
}

// Render lays out a DOT graph and writes it in the given Graphviz format.
func Render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := Render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG.
//
// At scale 1 the image comes straight from Graphviz. Any other scale goes
// through SVG and [render.ToPNG], which needs librsvg:
// brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	if scale <= 0 || scale == 1 {
		return Render(ctx, dot, graphviz.PNG)
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
