package architecture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sysarch/pkg/diagram"
)

func mustNew(t *testing.T) *diagram.Diagram {
	t.Helper()
	d, err := New()
	require.NoError(t, err)
	return d
}

func TestNew_Header(t *testing.T) {
	d := mustNew(t)
	require.Equal(t, "System Architecture", d.Name())
	require.Equal(t, "system_architecture", d.Filename())
	require.Equal(t, diagram.LeftToRight, d.Direction())
}

func TestNew_Clusters(t *testing.T) {
	d := mustNew(t)

	var names []string
	for _, c := range d.Clusters() {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{
		"Presentation Layer",
		"Application Layer",
		"Business Logic Layer",
		"Data Access Layer",
		"Data Storage",
	}, names)
}

func TestNew_ClusterMembers(t *testing.T) {
	want := map[string][]string{
		Presentation: {"Search Interface", "Leaderboard Display", "Plan Generator UI", "User Dashboard"},
		Application: {"User Session Manager", "Request Router", "Bio Validator",
			"Investment Planner", "RL Handler", "Signal Controller"},
		BusinessLogic: {"Bio Rating Engine", "Recommendation Generator", "Regime Detector (MRD)",
			"Signal Processor", "RL Weight Tuner (TD3)"},
		DataAccess: {"Bio Score Service", "User Profile Service", "Regime Sequence Service",
			"Stock Data Service", "News Sentiment API", "Yahoo Finance API", "NSDL/ETF Feeds",
			"Alpha Vantage API", "RL Model Store"},
		DataStorage: {"bio_home", "user", "regime_label", "signal_values", "stock_prices",
			"rl_weights", "recommendation"},
	}

	d := mustNew(t)
	total := 0
	for name, labels := range want {
		c, ok := d.ClusterByName(name)
		require.True(t, ok, "cluster %q missing", name)
		require.ElementsMatch(t, labels, d.Labels(c.ID), "cluster %q", name)
		total += len(labels)
	}
	require.Equal(t, total, d.NodeCount())
}

func TestNew_Styles(t *testing.T) {
	d := mustNew(t)
	storage, _ := d.ClusterByName(DataStorage)

	for _, n := range d.Nodes() {
		require.Equal(t, diagram.FontBold, n.Style.FontWeight, "node %q", n.Label)
		if n.Cluster == storage.ID {
			require.Equal(t, diagram.ShapeDatabase, n.Shape, "node %q", n.Label)
		} else {
			require.Equal(t, diagram.ShapeRack, n.Shape, "node %q", n.Label)
		}
	}

	colors := map[string]string{
		Presentation:  "#ADD8E6",
		Application:   "#90EE90",
		BusinessLogic: "#FFFFE0",
		DataAccess:    "#FFB6C1",
		DataStorage:   "#D3D3D3",
	}
	for name, color := range colors {
		c, _ := d.ClusterByName(name)
		require.Equal(t, color, c.BgColor, "cluster %q", name)
	}
}

func TestNew_Edges(t *testing.T) {
	type labeled struct{ from, to, label string }
	want := []labeled{
		{"Search Interface", "Request Router", "requests"},
		{"Request Router", "Bio Validator", "validates"},
		{"Bio Validator", "Investment Planner", "plans"},
		{"Investment Planner", "Recommendation Generator", "generates"},
		{"Recommendation Generator", "recommendation", "stores"},
	}

	d := mustNew(t)
	var got []labeled
	for _, e := range d.Edges() {
		from, ok := d.Node(e.From)
		require.True(t, ok, "edge source %s undeclared", e.From)
		to, ok := d.Node(e.To)
		require.True(t, ok, "edge target %s undeclared", e.To)
		require.NotEmpty(t, e.Label)
		got = append(got, labeled{from.Label, to.Label, e.Label})
	}
	require.Equal(t, want, got)
}

func TestNew_Idempotent(t *testing.T) {
	a := mustNew(t)
	b := mustNew(t)

	require.Equal(t, a.Clusters(), b.Clusters())
	require.Equal(t, a.Nodes(), b.Nodes())
	require.Equal(t, a.Edges(), b.Edges())
}

func TestBuild_Direction(t *testing.T) {
	d, err := Build(diagram.TopToBottom)
	require.NoError(t, err)
	require.Equal(t, diagram.TopToBottom, d.Direction())
	require.Equal(t, 5, d.EdgeCount())
}
