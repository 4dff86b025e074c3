// Package architecture declares the System Architecture diagram of the
// stock recommendation platform: five layers from the React front end down
// to the PostgreSQL tables, and the request path that links them.
package architecture

import "github.com/matzehuels/sysarch/pkg/diagram"

// Title and output file name of the diagram.
const (
	Title    = "System Architecture"
	Filename = "system_architecture"
)

// Cluster names, top layer first.
const (
	Presentation  = "Presentation Layer"
	Application   = "Application Layer"
	BusinessLogic = "Business Logic Layer"
	DataAccess    = "Data Access Layer"
	DataStorage   = "Data Storage"
)

var bold = diagram.Style{FontWeight: diagram.FontBold}

// New declares the diagram. It returns an error only if the declaration
// itself is inconsistent.
func New() (*diagram.Diagram, error) {
	return Build(diagram.LeftToRight)
}

// Build declares the diagram laid out in dir.
func Build(dir diagram.Direction) (*diagram.Diagram, error) {
	b := diagram.NewBuilder(Title, diagram.WithFilename(Filename), diagram.WithDirection(dir))

	web := b.Cluster(diagram.Cluster{Name: Presentation, Subtitle: "React.js + Redux", BgColor: "#ADD8E6"})
	search := b.Rack(web, "Search Interface", bold)
	b.Rack(web, "Leaderboard Display", bold)
	b.Rack(web, "Plan Generator UI", bold)
	b.Rack(web, "User Dashboard", bold)

	app := b.Cluster(diagram.Cluster{Name: Application, Subtitle: "Controllers & Services", BgColor: "#90EE90"})
	b.Rack(app, "User Session Manager", bold)
	router := b.Rack(app, "Request Router", bold)
	validator := b.Rack(app, "Bio Validator", bold)
	planner := b.Rack(app, "Investment Planner", bold)
	b.Rack(app, "RL Handler", bold)
	b.Rack(app, "Signal Controller", bold)

	core := b.Cluster(diagram.Cluster{Name: BusinessLogic, Subtitle: "Core Engine", BgColor: "#FFFFE0"})
	b.Rack(core, "Bio Rating Engine", bold)
	reco := b.Rack(core, "Recommendation Generator", bold)
	b.Rack(core, "Regime Detector (MRD)", bold)
	b.Rack(core, "Signal Processor", bold)
	b.Rack(core, "RL Weight Tuner (TD3)", bold)

	access := b.Cluster(diagram.Cluster{Name: DataAccess, Subtitle: "Standalone APIs", BgColor: "#FFB6C1"})
	b.Rack(access, "Bio Score Service", bold)
	b.Rack(access, "User Profile Service", bold)
	b.Rack(access, "Regime Sequence Service", bold)
	b.Rack(access, "Stock Data Service", bold)
	b.Rack(access, "News Sentiment API", bold)
	b.Rack(access, "Yahoo Finance API", bold)
	b.Rack(access, "NSDL/ETF Feeds", bold)
	b.Rack(access, "Alpha Vantage API", bold)
	b.Rack(access, "RL Model Store", bold)

	store := b.Cluster(diagram.Cluster{Name: DataStorage, Subtitle: "PostgreSQL", BgColor: "#D3D3D3"})
	b.Database(store, "bio_home", bold)
	b.Database(store, "user", bold)
	b.Database(store, "regime_label", bold)
	b.Database(store, "signal_values", bold)
	b.Database(store, "stock_prices", bold)
	b.Database(store, "rl_weights", bold)
	recommendation := b.Database(store, "recommendation", bold)

	b.Connect(search, router, "requests")
	b.Connect(router, validator, "validates")
	b.Connect(validator, planner, "plans")
	b.Connect(planner, reco, "generates")
	b.Connect(reco, recommendation, "stores")

	return b.Build()
}
