// Package nodelink renders architecture diagrams as Graphviz node-link
// drawings.
//
// # Overview
//
// A [diagram.Diagram] is converted to DOT source with [ToDOT]. Clusters
// become shaded "cluster_N" subgraphs, compute nodes are drawn as 3D boxes,
// storage nodes as cylinders, and every edge carries its label.
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	png, err := nodelink.RenderPNG(ctx, dot, 1)
//
// For other formats:
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//
// # Options
//
//   - Direction: overrides the diagram's rank direction (LR, RL, TB, BT)
//   - Transparent: renders without the white page background
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process layout and
// PNG/SVG rendering; no Graphviz installation is needed. PDF output and PNG
// at a scale other than 1 need librsvg (rsvg-convert).
package nodelink
