// Package diagram models an architecture diagram as labeled nodes grouped
// into clusters and joined by labeled directed edges.
//
// # Model
//
// A [Cluster] is one architectural layer drawn as a shaded box. A [Node]
// belongs to exactly one cluster and is identified there by its label; the
// same label may appear in two different clusters. An [Edge] points from
// one node to another and always carries a label describing the
// relationship ("requests", "stores", ...).
//
// # Building
//
// Diagrams are declared through a [Builder] and frozen by [Builder.Build],
// which runs [Diagram.Validate]. Every accessor on [Diagram] returns
// copies, so a built diagram can be shared freely:
//
//	b := diagram.NewBuilder("System Architecture")
//	app := b.Cluster(diagram.Cluster{Name: "Application Layer", BgColor: "#90EE90"})
//	router := b.Rack(app, "Request Router", diagram.Style{FontWeight: diagram.FontBold})
//	...
//	d, err := b.Build()
//
// Declaration order is preserved everywhere, which keeps rendered output
// byte-for-byte reproducible.
package diagram
