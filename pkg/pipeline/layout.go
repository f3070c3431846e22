package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/layout/force"
	"github.com/matzehuels/ontograph/pkg/observability"
	"github.com/matzehuels/ontograph/pkg/schema"
)

// LayoutOptions configures the force simulation.
type LayoutOptions struct {
	// Ticks bounds the run. Zero uses force.DefaultTicks.
	Ticks int

	// Clock paces the run. Nil steps as fast as possible; pass a
	// force.TickerClock to animate in real time.
	Clock force.Clock

	// OnTick receives every intermediate layout.
	OnTick func(graph.Layout)
}

// LayoutGraph positions the nodes of g.
func LayoutGraph(ctx context.Context, g graph.Graph, opts LayoutOptions) (graph.Layout, error) {
	nodes := make([]graph.Position, len(g.Nodes))
	for i, n := range g.Nodes {
		label := n.Name
		if label == "" {
			label = n.Code
		}
		nodes[i] = graph.Position{ID: n.ID, Label: label}
	}
	return Layout(ctx, nodes, g.Links, opts)
}

// LayoutSchema positions the entities of a parsed diagram. Entity names are
// the node IDs and each relationship becomes a link categorized by its kind.
func LayoutSchema(ctx context.Context, s *schema.Schema, opts LayoutOptions) (graph.Layout, error) {
	nodes := make([]graph.Position, len(s.Entities))
	for i, e := range s.Entities {
		nodes[i] = graph.Position{ID: e.Name, Label: e.Name}
	}
	links := make([]graph.Link, len(s.Relationships))
	for i, r := range s.Relationships {
		links[i] = graph.Link{SourceID: r.From, TargetID: r.To, Category: string(r.Kind)}
	}
	return Layout(ctx, nodes, links, opts)
}

// Layout runs a bounded simulation over nodes and links. Only the IDs and
// labels of nodes are read. On cancellation the last completed tick is
// returned together with ctx.Err().
func Layout(ctx context.Context, nodes []graph.Position, links []graph.Link, opts LayoutOptions) (graph.Layout, error) {
	ids := make([]string, len(nodes))
	labels := make(map[string]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
		labels[n.ID] = n.Label
	}
	edges := make([]force.Edge, len(links))
	for i, l := range links {
		edges[i] = force.Edge{Source: l.SourceID, Target: l.TargetID}
	}

	clock := opts.Clock
	if clock == nil {
		clock = force.InstantClock{}
	}
	ticks := opts.Ticks
	if ticks <= 0 {
		ticks = force.DefaultTicks
	}
	sim := force.Simulation{Clock: clock, Ticks: ticks}
	if opts.OnTick != nil {
		sim.OnTick = func(s force.State) { opts.OnTick(toLayout(s, labels, links)) }
	}

	start := time.Now()
	final, err := sim.Run(ctx, force.Init(ids, edges))
	observability.Engine().OnLayout(ctx, len(ids), final.Tick, time.Since(start), err)
	return toLayout(final, labels, links), err
}

func toLayout(s force.State, labels map[string]string, links []graph.Link) graph.Layout {
	l := graph.Layout{
		Width:  force.Width,
		Height: force.Height,
		Ticks:  s.Tick,
		Nodes:  make([]graph.Position, len(s.Nodes)),
		Links:  links,
	}
	if l.Links == nil {
		l.Links = []graph.Link{}
	}
	for i, n := range s.Nodes {
		l.Nodes[i] = graph.Position{ID: n.ID, Label: labels[n.ID], X: n.X, Y: n.Y}
	}
	return l
}
