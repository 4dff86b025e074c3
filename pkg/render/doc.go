// Package render turns architecture diagrams into images and text exports.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Use [Available] to check
// for it before asking for PDF output.
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Subpackages
//
//   - [nodelink]: Graphviz DOT generation and in-process PNG/SVG rendering
//   - [mermaid]: Mermaid flowchart text for Markdown documentation
//
// [nodelink]: github.com/matzehuels/sysarch/pkg/render/nodelink
// [mermaid]: github.com/matzehuels/sysarch/pkg/render/mermaid
package render
