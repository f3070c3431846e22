package registry

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ontograph/pkg/observability"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Source serves registry collections.
type Source interface {
	// Name identifies the source in logs and cache keys.
	Name() string

	// Nodes returns up to limit records of kind. A limit of 0 means no limit.
	Nodes(ctx context.Context, kind ontology.Kind, limit int) ([]ontology.Node, error)

	// Relationships returns up to limit edge records.
	Relationships(ctx context.Context, limit int) ([]ontology.Edge, error)
}

// LoadOptions configures [Load].
type LoadOptions struct {
	// Limit caps every collection. Zero uses [DefaultLimit].
	Limit int

	// Logger receives one warning per degraded collection. Nil discards.
	Logger *log.Logger
}

// Data is the outcome of a load.
type Data struct {
	Collections map[ontology.Kind][]ontology.Node
	Edges       []ontology.Edge

	// Failed lists the collections that degraded to empty.
	Failed []string
}

// NodeCount returns the number of nodes over all kinds.
func (d *Data) NodeCount() int {
	n := 0
	for _, nodes := range d.Collections {
		n += len(nodes)
	}
	return n
}

// Empty reports whether nothing was loaded.
func (d *Data) Empty() bool {
	return d.NodeCount() == 0 && len(d.Edges) == 0
}

// Index builds the case-insensitive code index over the loaded nodes.
func (d *Data) Index() *ontology.Index {
	return ontology.NewIndex(d.Collections)
}

// Load fetches all collections from src concurrently.
//
// A collection that fails is logged, recorded in Data.Failed and left empty.
// A missing collection ([ErrNotFound]) is empty without counting as a failure.
// The returned error is non-nil only when ctx is cancelled.
func Load(ctx context.Context, src Source, opts LoadOptions) (*Data, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	hooks := observability.Engine()
	hooks.OnLoadStart(ctx, src.Name())
	start := time.Now()

	data := &Data{Collections: make(map[ontology.Kind][]ontology.Node, len(ontology.Kinds))}
	var mu sync.Mutex

	degrade := func(collection string, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ErrNotFound) {
			logger.Debug("collection not found", "source", src.Name(), "collection", collection)
			return nil
		}
		logger.Warn("collection unavailable", "source", src.Name(), "collection", collection, "err", err)
		mu.Lock()
		data.Failed = append(data.Failed, collection)
		mu.Unlock()
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range ontology.Kinds {
		g.Go(func() error {
			nodes, err := src.Nodes(gctx, kind, limit)
			if err != nil {
				return degrade(Collection(kind), err)
			}
			mu.Lock()
			data.Collections[kind] = nodes
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		edges, err := src.Relationships(gctx, limit)
		if err != nil {
			return degrade(Relationships, err)
		}
		mu.Lock()
		data.Edges = edges
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	hooks.OnLoadComplete(ctx, src.Name(), data.NodeCount(), len(data.Edges), len(data.Failed), time.Since(start))
	logger.Debug("registry loaded", "source", src.Name(), "nodes", data.NodeCount(), "edges", len(data.Edges), "failed", len(data.Failed))
	return data, nil
}
