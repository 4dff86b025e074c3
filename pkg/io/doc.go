// Package io reads and writes architecture diagrams.
//
// # Overview
//
// Besides the built-in System Architecture declaration, any diagram can be
// described in a definition file and rendered by the same pipeline. This
// package decodes those files and exports built diagrams as JSON:
//
//   - [ReadJSON], [ImportJSON], [WriteJSON], [ExportJSON]: JSON round trip
//   - [ReadTOML]: TOML definitions (github.com/BurntSushi/toml)
//   - [ReadYAML]: YAML definitions (gopkg.in/yaml.v3)
//   - [ReadFile]: picks a decoder from the file extension
//
// # Format
//
// All encodings share one layout. Nodes are nested in their cluster:
//
//	{
//	  "name": "System Architecture",
//	  "direction": "LR",
//	  "clusters": [
//	    {
//	      "name": "Presentation Layer",
//	      "subtitle": "React.js + Redux",
//	      "bgcolor": "#ADD8E6",
//	      "nodes": [{"label": "Search Interface", "fontweight": "bold"}]
//	    },
//	    {
//	      "name": "Data Storage",
//	      "nodes": [{"label": "recommendation", "shape": "database"}]
//	    }
//	  ],
//	  "edges": [
//	    {"from": "Search Interface", "to": "recommendation", "label": "stores"}
//	  ]
//	}
//
// # Node Fields
//
//   - label: required, unique within the cluster
//   - id: optional, defaults to "<cluster id>/<label>"
//   - shape: "rack" (default) or "database"
//   - fontweight: "bold" or "normal"
//   - fillcolor: optional background color
//
// # Edge References
//
// Edge "from" and "to" accept a node ID or a node label. A label that
// appears in more than one cluster is rejected as ambiguous; use the ID.
//
// # Validation
//
// Decoded documents are replayed through [diagram.Builder], so the same
// sentinel errors apply (for example [diagram.ErrUnknownTargetNode] when an
// edge names an undeclared node). Unknown fields are rejected in every
// encoding.
package io
