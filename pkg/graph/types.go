package graph

import (
	"strings"

	"github.com/matzehuels/ontograph/pkg/ontology"
)

// =============================================================================
// Constants
// =============================================================================

// Link categories. Hierarchy links point from parent to child; association
// links point from a metric to an entity it uses.
const (
	CategoryValueChainModule = "value_chain_module"
	CategoryModuleMetric     = "module_metric"
	CategoryValueChainMetric = "value_chain_metric"
	CategoryMetricEntity     = "metric_entity"
)

// FilterDepth is the number of forward hops [Filter] walks from the root:
// value chain → module → metric → entity.
const FilterDepth = 3

// =============================================================================
// Graph
// =============================================================================

// Graph is the node-link object handed to interactive diagram views.
// It is also the file format read and written by MarshalGraph and ReadGraph.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Links []Link `json:"links" bson:"links"`
}

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// Node looks up a node by ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// IDs returns the node IDs in graph order.
func (g Graph) IDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Children returns the targets of links leaving id, in link order.
func (g Graph) Children(id string) []string {
	var out []string
	for _, l := range g.Links {
		if l.SourceID == id {
			out = append(out, l.TargetID)
		}
	}
	return out
}

// =============================================================================
// Node
// =============================================================================

// Node is a registry record as seen by the diagram view.
type Node struct {
	ID          string        `json:"id" bson:"id"`
	Code        string        `json:"code" bson:"code"`
	Kind        ontology.Kind `json:"kind" bson:"kind"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
}

// NodeID returns the graph ID of a registry node: "<kind>:<code>".
// Codes are folded so IDs are case-insensitive like the codes themselves.
func NodeID(kind ontology.Kind, code string) string {
	return string(kind) + ":" + ontology.Fold(code)
}

// ParseNodeID splits a graph ID into kind and code.
func ParseNodeID(id string) (ontology.Kind, string, bool) {
	kind, code, ok := strings.Cut(id, ":")
	if !ok || code == "" {
		return "", "", false
	}
	k, err := ontology.ParseKind(kind)
	if err != nil {
		return "", "", false
	}
	return k, code, true
}

// =============================================================================
// Link
// =============================================================================

// Link is a directed edge between two graph nodes.
type Link struct {
	SourceID string `json:"source_id" bson:"source_id"`
	TargetID string `json:"target_id" bson:"target_id"`
	Category string `json:"relationship_category" bson:"relationship_category"`
}
