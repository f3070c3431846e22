package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/observability"
	"github.com/matzehuels/ontograph/pkg/ontology"
	"github.com/matzehuels/ontograph/pkg/registry"
	"github.com/matzehuels/ontograph/pkg/schema"
	"github.com/matzehuels/ontograph/pkg/tree"
)

// Runner loads registry data and derives views from it.
//
// The Runner is stateless except for its source and logger: it never keeps
// a loaded model between calls, so every view reflects the registry (or the
// source's response cache) at call time. Multiple goroutines can safely use
// the same Runner.
type Runner struct {
	Source registry.Source
	Logger *log.Logger

	// Limit caps every collection. Zero uses registry.DefaultLimit.
	Limit int

	// Policy resolves classification conflicts.
	Policy ontology.ConflictPolicy
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(src registry.Source, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Source: src, Logger: logger}
}

// Model is one loaded and classified registry snapshot.
type Model struct {
	Data        *registry.Data
	Index       *ontology.Index
	Assignments *ontology.Assignments
}

// Empty reports whether the registry returned nothing usable.
func (m *Model) Empty() bool { return m.Index.Total() == 0 }

// Tree builds the forest.
func (m *Model) Tree(opts tree.Options) *tree.Result {
	return tree.BuildIndexed(m.Index, m.Assignments, opts)
}

// Graph builds the full graph.
func (m *Model) Graph() graph.Graph {
	return graph.Build(m.Index, m.Assignments)
}

// Load fetches and classifies the registry.
func (r *Runner) Load(ctx context.Context) (*Model, error) {
	data, err := registry.Load(ctx, r.Source, registry.LoadOptions{Limit: r.Limit, Logger: r.Logger})
	if err != nil {
		return nil, err
	}
	idx := data.Index()
	a := ontology.Assign(data.Edges, idx, r.Policy)

	for _, d := range idx.Duplicates() {
		r.Logger.Debug("duplicate code ignored", "kind", d.Kind, "code", d.Code)
	}
	for _, c := range a.Conflicts {
		r.Logger.Debug("conflicting assignment", "slot", c.Slot, "child", c.Child, "kept", c.Kept)
	}
	r.Logger.Info("loaded registry",
		"source", r.Source.Name(),
		"nodes", idx.Total(),
		"edges", len(data.Edges),
		"unclassified", a.Unclassified,
		"failed", len(data.Failed))

	return &Model{Data: data, Index: idx, Assignments: a}, nil
}

// Tree loads the registry and builds the forest.
func (r *Runner) Tree(ctx context.Context, opts tree.Options) (*tree.Result, error) {
	m, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res := m.Tree(opts)

	size := 0
	res.Walk(func(*tree.Node, int) bool { size++; return true })
	observability.Engine().OnBuild(ctx, "tree", size, time.Since(start))
	return res, nil
}

// Graph loads the registry, builds the graph and scopes it to root.
// An empty root returns the full graph.
func (r *Runner) Graph(ctx context.Context, root string) (graph.Graph, error) {
	if err := errors.ValidateNodeID(root); err != nil {
		return graph.Graph{}, err
	}
	m, err := r.Load(ctx)
	if err != nil {
		return graph.Graph{}, err
	}
	start := time.Now()
	g := graph.Filter(m.Graph(), root)
	observability.Engine().OnBuild(ctx, "graph", len(g.Nodes), time.Since(start))
	return g, nil
}

// EntitySchema parses the schema definition of the entity with the given
// code, using the entity's code as the diagram focus. An entity without a
// definition yields an empty schema.
func (r *Runner) EntitySchema(ctx context.Context, code string) (*schema.Schema, error) {
	if err := errors.ValidateCode(code); err != nil {
		return nil, err
	}
	m, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	n, ok := m.Index.Get(ontology.KindEntity, code)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "entity %q not found", code)
	}
	return ParseSchema(ctx, n.SchemaDefinition(), n.Code), nil
}

// ParseSchema parses diagram text and reports the build to the engine hooks.
func ParseSchema(ctx context.Context, text, focus string) *schema.Schema {
	start := time.Now()
	s := schema.Parse(text, focus)
	observability.Engine().OnBuild(ctx, "schema", len(s.Relationships), time.Since(start))
	return s
}
