// Package pkg provides the core libraries for sysarch diagram rendering.
//
// # Overview
//
// Sysarch declares the System Architecture diagram (five layered clusters of
// components, plus the request path through them) and renders it with
// Graphviz. The pkg directory is organized into four areas:
//
//  1. [diagram] and [architecture] - the data model and the built-in declaration
//  2. [io] - definition files (JSON, TOML, YAML) for diagrams other than the built-in one
//  3. [render] - DOT generation, Graphviz rendering, Mermaid export, SVG conversion
//  4. [pipeline] - orchestration (load → render → write) used by the CLI
//
// # Architecture
//
// The typical data flow through sysarch:
//
//	architecture.New() or io.ReadFile(path)
//	         ↓
//	    [diagram] (clusters, nodes, edges in declaration order)
//	         ↓
//	    [render/nodelink] (DOT source, then PNG/SVG/PDF)
//	         ↓
//	    system_architecture.png
//
// # Quick Start
//
// Render the built-in diagram to PNG:
//
//	d, _ := architecture.New()
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	png, _ := nodelink.RenderPNG(ctx, dot, 1)
//
// Or let the pipeline do it, including the atomic write:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Formats: []string{"png", "svg"}}
//	result, _ := runner.Execute(ctx, opts)
//	paths, _ := runner.Write(result, opts)
//
// # Supporting Packages
//
// [errors] - coded errors with user-facing messages.
//
// [observability] - hooks for load, render and converter events.
//
// [buildinfo] - version information set at build time.
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/sysarch/pkg/diagram
// [architecture]: https://pkg.go.dev/github.com/matzehuels/sysarch/pkg/architecture
// [io]: https://pkg.go.dev/github.com/matzehuels/sysarch/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/sysarch/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/sysarch/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sysarch/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/sysarch/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sysarch/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sysarch/pkg/buildinfo
package pkg
