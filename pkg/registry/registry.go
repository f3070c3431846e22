// Package registry loads ontology collections from an external metadata
// registry.
//
// # Sources
//
// A [Source] serves one collection per node kind plus the relationship
// collection:
//
//   - [HTTPSource]: GET {base}/{collection}?limit=N, cached and retried
//   - [FileSource]: a JSON or YAML snapshot on disk
//   - [MongoSource]: one MongoDB collection per kind
//
// # Best-Available Loading
//
// [Load] fetches every collection concurrently. A collection that fails to
// load is logged and treated as empty, so the engine always works with the
// best data available. Only context cancellation aborts a load.
//
//	src, _ := registry.NewHTTPSource(registry.HTTPOptions{BaseURL: "https://registry.example.com"})
//	data, err := registry.Load(ctx, src, registry.LoadOptions{Limit: 500})
package registry

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/ontograph/pkg/httputil"
	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Relationships is the collection holding edge records.
const Relationships = "relationships"

// DefaultLimit caps the number of records fetched per collection.
const DefaultLimit = 1000

var (
	// ErrNotFound is returned when the registry has no such collection.
	ErrNotFound = httputil.ErrNotFound

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = httputil.ErrNetwork
)

var collections = map[ontology.Kind]string{
	ontology.KindValueChain: "value_chains",
	ontology.KindModule:     "modules",
	ontology.KindMetric:     "metrics",
	ontology.KindEntity:     "entities",
	ontology.KindActor:      "actors",
}

// Collection returns the registry collection name for kind.
func Collection(kind ontology.Kind) string {
	if c, ok := collections[kind]; ok {
		return c
	}
	return string(kind) + "s"
}

// Record is one loosely typed registry document.
type Record = map[string]any

func decodeNodes(kind ontology.Kind, recs []Record) []ontology.Node {
	nodes := make([]ontology.Node, 0, len(recs))
	for _, rec := range recs {
		if n, ok := ontology.NodeFromRecord(kind, rec); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func decodeEdges(recs []Record) []ontology.Edge {
	edges := make([]ontology.Edge, 0, len(recs))
	for _, rec := range recs {
		if e, ok := ontology.EdgeFromRecord(rec); ok {
			edges = append(edges, e)
		}
	}
	return edges
}

// decodeBody accepts either a bare JSON array or an envelope {"data": [...]}.
func decodeBody(body []byte) ([]Record, error) {
	var recs []Record
	if err := json.Unmarshal(body, &recs); err == nil {
		return recs, nil
	}
	var env struct {
		Data []Record `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}
	return env.Data, nil
}

func truncate(recs []Record, limit int) []Record {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}
