package diagram

import (
	"fmt"
	"strings"
	"unicode"
)

// Option configures a [Builder].
type Option func(*Diagram)

// WithFilename overrides the output file name (without extension).
// The default is the diagram name in lower snake case.
func WithFilename(name string) Option {
	return func(d *Diagram) { d.filename = name }
}

// WithDirection sets the layout direction. The default is [LeftToRight].
func WithDirection(dir Direction) Option {
	return func(d *Diagram) { d.direction = dir }
}

// Builder declares a diagram one statement at a time.
//
// The first failing call latches its error; every later call becomes a
// no-op and [Builder.Build] returns that error. Declaration code can
// therefore be written as a flat list without checking each step:
//
//	b := diagram.NewBuilder("System Architecture")
//	web := b.Cluster(diagram.Cluster{Name: "Presentation Layer"})
//	db := b.Cluster(diagram.Cluster{Name: "Data Storage"})
//	ui := b.Rack(web, "Search Interface", diagram.Style{})
//	t := b.Database(db, "users", diagram.Style{})
//	b.Connect(ui, t, "reads")
//	d, err := b.Build()
//
// A Builder is not safe for concurrent use.
type Builder struct {
	d     *Diagram
	err   error
	built bool
}

// NewBuilder starts a diagram titled name.
func NewBuilder(name string, opts ...Option) *Builder {
	d := &Diagram{
		name:      name,
		filename:  Slug(name),
		direction: LeftToRight,
		clusterIx: make(map[string]int),
		nodeIx:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return &Builder{d: d}
}

// Err returns the latched error, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) usable() bool {
	if b.built {
		b.fail(fmt.Errorf("diagram %q already built", b.d.name))
	}
	return b.err == nil
}

// Cluster declares a cluster and returns its ID. When c.ID is empty the ID
// is derived from c.Name. Any Nodes set on c are ignored; members are
// attached with [Builder.Node].
func (b *Builder) Cluster(c Cluster) string {
	if !b.usable() {
		return ""
	}
	if c.Name == "" {
		b.fail(fmt.Errorf("cluster: %w", ErrInvalidLabel))
		return ""
	}
	if c.ID == "" {
		c.ID = Slug(c.Name)
	}
	if _, exists := b.d.clusterIx[c.ID]; exists {
		b.fail(fmt.Errorf("cluster %s: %w", c.ID, ErrDuplicateCluster))
		return ""
	}
	c.Nodes = nil
	b.d.clusterIx[c.ID] = len(b.d.clusters)
	b.d.clusters = append(b.d.clusters, c)
	return c.ID
}

// Node declares a node and returns its ID. When n.ID is empty it becomes
// "<cluster>/<label>". A missing Shape defaults to [ShapeRack].
func (b *Builder) Node(n Node) string {
	if !b.usable() {
		return ""
	}
	if n.Label == "" {
		b.fail(fmt.Errorf("node in cluster %s: %w", n.Cluster, ErrInvalidLabel))
		return ""
	}
	ci, ok := b.d.clusterIx[n.Cluster]
	if !ok {
		b.fail(fmt.Errorf("node %q: %w %q", n.Label, ErrUnknownCluster, n.Cluster))
		return ""
	}
	for _, id := range b.d.clusters[ci].Nodes {
		if b.d.nodes[b.d.nodeIx[id]].Label == n.Label {
			b.fail(fmt.Errorf("node %q in cluster %s: %w", n.Label, n.Cluster, ErrDuplicateLabel))
			return ""
		}
	}
	if n.ID == "" {
		n.ID = n.Cluster + "/" + n.Label
	}
	if _, exists := b.d.nodeIx[n.ID]; exists {
		b.fail(fmt.Errorf("node %s: %w", n.ID, ErrDuplicateNodeID))
		return ""
	}
	if n.Shape == "" {
		n.Shape = ShapeRack
	}
	b.d.nodeIx[n.ID] = len(b.d.nodes)
	b.d.nodes = append(b.d.nodes, n)
	b.d.clusters[ci].Nodes = append(b.d.clusters[ci].Nodes, n.ID)
	return n.ID
}

// Rack declares a compute node in cluster.
func (b *Builder) Rack(cluster, label string, style Style) string {
	return b.Node(Node{Label: label, Cluster: cluster, Shape: ShapeRack, Style: style})
}

// Database declares a storage node in cluster.
func (b *Builder) Database(cluster, label string, style Style) string {
	return b.Node(Node{Label: label, Cluster: cluster, Shape: ShapeDatabase, Style: style})
}

// Connect declares a labeled edge from one node ID to another.
func (b *Builder) Connect(from, to, label string) {
	if !b.usable() {
		return
	}
	if _, ok := b.d.nodeIx[from]; !ok {
		b.fail(fmt.Errorf("edge %s->%s: %w", from, to, ErrUnknownSourceNode))
		return
	}
	if _, ok := b.d.nodeIx[to]; !ok {
		b.fail(fmt.Errorf("edge %s->%s: %w", from, to, ErrUnknownTargetNode))
		return
	}
	if label == "" {
		b.fail(fmt.Errorf("edge %s->%s: %w", from, to, ErrEmptyEdgeLabel))
		return
	}
	b.d.edges = append(b.d.edges, Edge{From: from, To: to, Label: label})
}

// Build validates and returns the diagram. The Builder cannot be used
// afterwards.
func (b *Builder) Build() (*Diagram, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.built = true
	if err := b.d.Validate(); err != nil {
		return nil, err
	}
	return b.d, nil
}

// Slug lowercases s and replaces every run of characters other than
// letters and digits with a single underscore:
// "System Architecture" becomes "system_architecture".
func Slug(s string) string {
	var sb strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pending = false
			sb.WriteRune(r)
			continue
		}
		pending = true
	}
	return sb.String()
}
