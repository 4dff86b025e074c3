package diagram

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidLabel is returned when a node or cluster is declared with an
	// empty label.
	ErrInvalidLabel = errors.New("label must not be empty")

	// ErrDuplicateLabel is returned when two nodes in the same cluster share
	// a label. Labels identify nodes within their cluster.
	ErrDuplicateLabel = errors.New("duplicate node label in cluster")

	// ErrDuplicateNodeID is returned when an explicit node ID is reused.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateCluster is returned when a cluster ID is declared twice.
	ErrDuplicateCluster = errors.New("duplicate cluster")

	// ErrUnknownCluster is returned when a node names a cluster that was
	// never declared.
	ErrUnknownCluster = errors.New("unknown cluster")

	// ErrUnknownSourceNode is returned when an edge starts at an undeclared node.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned when an edge ends at an undeclared node.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrEmptyEdgeLabel is returned when an edge carries no label.
	ErrEmptyEdgeLabel = errors.New("edge label must not be empty")

	// ErrInvalidDirection is returned for a layout direction other than
	// LR, RL, TB or BT.
	ErrInvalidDirection = errors.New("invalid layout direction")
)

// Direction is the Graphviz rank direction of the rendered diagram.
type Direction string

const (
	LeftToRight Direction = "LR"
	RightToLeft Direction = "RL"
	TopToBottom Direction = "TB"
	BottomToTop Direction = "BT"
)

// ParseDirection accepts a direction in any letter case.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case LeftToRight, RightToLeft, TopToBottom, BottomToTop:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q (must be one of LR, RL, TB, BT)", ErrInvalidDirection, s)
}

// Shape selects the box drawn for a node.
type Shape string

const (
	// ShapeRack is a compute component: a service, controller or UI part.
	ShapeRack Shape = "rack"
	// ShapeDatabase is a storage table.
	ShapeDatabase Shape = "database"
)

// FontWeight is the weight of a node's label text.
type FontWeight string

const (
	FontNormal FontWeight = ""
	FontBold   FontWeight = "bold"
)

// Style holds optional per-node formatting.
type Style struct {
	FontWeight FontWeight
	FillColor  string
}

// Cluster is a visual grouping of nodes, one per architectural layer.
type Cluster struct {
	ID       string
	Name     string // e.g. "Presentation Layer"
	Subtitle string // technology note, e.g. "React.js + Redux"
	BgColor  string
	Nodes    []string // member node IDs in declaration order
}

// Title is the text drawn on the cluster: the name followed by the
// subtitle in parentheses when one is set.
func (c Cluster) Title() string {
	if c.Subtitle == "" {
		return c.Name
	}
	return c.Name + " (" + c.Subtitle + ")"
}

// Node is a labeled box inside a cluster.
type Node struct {
	ID      string
	Label   string
	Cluster string
	Shape   Shape
	Style   Style
}

// Edge is a labeled directed arrow between two nodes.
type Edge struct {
	From  string
	To    string
	Label string
}

// Diagram is a complete declaration of clusters, nodes and edges.
// It is produced by [Builder.Build] and not modified afterwards; all
// accessors return copies.
type Diagram struct {
	name      string
	filename  string
	direction Direction

	clusters  []Cluster
	clusterIx map[string]int
	nodes     []Node
	nodeIx    map[string]int
	edges     []Edge
}

// Name returns the diagram title.
func (d *Diagram) Name() string { return d.name }

// Filename returns the output file name without extension.
func (d *Diagram) Filename() string { return d.filename }

// Direction returns the layout direction.
func (d *Diagram) Direction() Direction { return d.direction }

// Clusters returns the clusters in declaration order.
func (d *Diagram) Clusters() []Cluster {
	out := make([]Cluster, len(d.clusters))
	for i, c := range d.clusters {
		c.Nodes = slices.Clone(c.Nodes)
		out[i] = c
	}
	return out
}

// Nodes returns all nodes in declaration order.
func (d *Diagram) Nodes() []Node { return slices.Clone(d.nodes) }

// Edges returns all edges in declaration order.
func (d *Diagram) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the diagram.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the diagram.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Cluster returns the cluster with the given ID.
func (d *Diagram) Cluster(id string) (Cluster, bool) {
	i, ok := d.clusterIx[id]
	if !ok {
		return Cluster{}, false
	}
	c := d.clusters[i]
	c.Nodes = slices.Clone(c.Nodes)
	return c, true
}

// ClusterByName returns the first cluster whose Name matches.
func (d *Diagram) ClusterByName(name string) (Cluster, bool) {
	for _, c := range d.clusters {
		if c.Name == name {
			c.Nodes = slices.Clone(c.Nodes)
			return c, true
		}
	}
	return Cluster{}, false
}

// Node returns the node with the given ID.
func (d *Diagram) Node(id string) (Node, bool) {
	i, ok := d.nodeIx[id]
	if !ok {
		return Node{}, false
	}
	return d.nodes[i], true
}

// NodesByLabel returns every node carrying label, across all clusters.
func (d *Diagram) NodesByLabel(label string) []Node {
	var out []Node
	for _, n := range d.nodes {
		if n.Label == label {
			out = append(out, n)
		}
	}
	return out
}

// Labels returns the labels of a cluster's nodes in declaration order.
// Returns nil if the cluster does not exist.
func (d *Diagram) Labels(clusterID string) []string {
	i, ok := d.clusterIx[clusterID]
	if !ok {
		return nil
	}
	ids := d.clusters[i].Nodes
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, d.nodes[d.nodeIx[id]].Label)
	}
	return labels
}

// Validate checks every structural invariant: non-empty labels, unique
// labels within each cluster, known clusters, labeled edges, and edge
// endpoints that refer to declared nodes. [Builder.Build] runs it before
// handing out a diagram.
func (d *Diagram) Validate() error {
	if _, err := ParseDirection(string(d.direction)); err != nil {
		return err
	}
	seen := make(map[string]map[string]bool, len(d.clusters))
	for _, c := range d.clusters {
		if c.Name == "" {
			return fmt.Errorf("cluster %s: %w", c.ID, ErrInvalidLabel)
		}
		seen[c.ID] = make(map[string]bool)
	}
	for _, n := range d.nodes {
		if n.Label == "" {
			return fmt.Errorf("node %s: %w", n.ID, ErrInvalidLabel)
		}
		labels, ok := seen[n.Cluster]
		if !ok {
			return fmt.Errorf("node %s: %w %q", n.ID, ErrUnknownCluster, n.Cluster)
		}
		if labels[n.Label] {
			return fmt.Errorf("node %s: %w", n.ID, ErrDuplicateLabel)
		}
		labels[n.Label] = true
	}
	for _, e := range d.edges {
		if _, ok := d.nodeIx[e.From]; !ok {
			return fmt.Errorf("edge %s->%s: %w", e.From, e.To, ErrUnknownSourceNode)
		}
		if _, ok := d.nodeIx[e.To]; !ok {
			return fmt.Errorf("edge %s->%s: %w", e.From, e.To, ErrUnknownTargetNode)
		}
		if e.Label == "" {
			return fmt.Errorf("edge %s->%s: %w", e.From, e.To, ErrEmptyEdgeLabel)
		}
	}
	return nil
}
