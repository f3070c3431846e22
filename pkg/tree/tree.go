// Package tree folds registry collections and classified relationships into
// the value chain → module → metric forest used for hierarchical browsing.
//
// Items that cannot be placed end up in synthetic orphan buckets
// ("Unassigned Modules", "Unassigned KPIs", "Unassigned Entities"), which are
// appended after the ordinary top-level value chains and only when non-empty.
//
// Ordering rules are deliberately asymmetric: top-level value chains and
// ordinary children keep input order, while bucket contents are sorted by
// display name.
package tree

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Bucket codes and labels for the synthetic orphan nodes.
const (
	BucketModules  = "__unassigned_modules__"
	BucketMetrics  = "__unassigned_kpis__"
	BucketEntities = "__unassigned_entities__"

	LabelModules  = "Unassigned Modules"
	LabelMetrics  = "Unassigned KPIs"
	LabelEntities = "Unassigned Entities"
)

// Options selects the presentation shape of the forest.
type Options struct {
	// AttachEntitiesToMetrics nests each used entity under every placed
	// metric that uses it. When false, placed metrics stay leaves and list
	// their entities in Node.Uses instead. Metrics in the "Unassigned KPIs"
	// bucket carry their entities in both modes.
	AttachEntitiesToMetrics bool

	// Policy resolves classification conflicts. The zero value is
	// ontology.LastWriteWins.
	Policy ontology.ConflictPolicy
}

// Node is one element of the forest.
type Node struct {
	Node     ontology.Node
	Children []*Node

	// IsOrphanBucket marks the synthetic grouping nodes.
	IsOrphanBucket bool

	// DescendantMetricCount is the number of metrics below this node.
	DescendantMetricCount int

	// Uses lists the codes of entities a metric references.
	Uses []string
}

// Code returns the wrapped node's code.
func (n *Node) Code() string { return n.Node.Code }

// Kind returns the wrapped node's kind.
func (n *Node) Kind() ontology.Kind { return n.Node.Kind }

// Label returns the display name of the wrapped node.
func (n *Node) Label() string { return n.Node.DisplayName() }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// MarshalJSON flattens the wrapped registry node into the tree node.
func (n *Node) MarshalJSON() ([]byte, error) {
	type wire struct {
		Code                  string        `json:"code"`
		Kind                  ontology.Kind `json:"kind"`
		Name                  string        `json:"name"`
		Description           string        `json:"description,omitempty"`
		IsOrphanBucket        bool          `json:"is_orphan_bucket,omitempty"`
		DescendantMetricCount int           `json:"descendant_metric_count"`
		Uses                  []string      `json:"uses,omitempty"`
		Children              []*Node       `json:"children,omitempty"`
	}
	return json.Marshal(wire{
		Code:                  n.Node.Code,
		Kind:                  n.Node.Kind,
		Name:                  n.Label(),
		Description:           n.Node.Description,
		IsOrphanBucket:        n.IsOrphanBucket,
		DescendantMetricCount: n.DescendantMetricCount,
		Uses:                  n.Uses,
		Children:              n.Children,
	})
}

// Result is the output of [Build].
type Result struct {
	Roots       []*Node
	Assignments *ontology.Assignments
}

// Empty reports whether the forest has nothing to show. Callers should treat
// an empty result as "data unavailable" rather than as an error.
func (r *Result) Empty() bool { return len(r.Roots) == 0 }

// Walk visits every node depth-first, parents before children.
// Returning false from fn skips the node's subtree.
func (r *Result) Walk(fn func(n *Node, depth int) bool) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, root := range r.Roots {
		visit(root, 0)
	}
}

// Bucket returns the orphan bucket with the given code, if present.
func (r *Result) Bucket(code string) (*Node, bool) {
	for _, root := range r.Roots {
		if root.IsOrphanBucket && root.Node.Code == code {
			return root, true
		}
	}
	return nil, false
}

// Build constructs the forest from node collections and relationship edges.
// It never fails: unknown codes and unmatched relationship types are dropped.
func Build(collections map[ontology.Kind][]ontology.Node, edges []ontology.Edge, opts Options) *Result {
	idx := ontology.NewIndex(collections)
	return BuildIndexed(idx, ontology.Assign(edges, idx, opts.Policy), opts)
}

// BuildIndexed is Build for callers that already hold an index and
// assignments, e.g. to reuse them for the graph view.
func BuildIndexed(idx *ontology.Index, a *ontology.Assignments, opts Options) *Result {
	b := &builder{idx: idx, a: a, opts: opts}
	return &Result{Roots: b.build(), Assignments: a}
}

type builder struct {
	idx  *ontology.Index
	a    *ontology.Assignments
	opts Options
}

func (b *builder) build() []*Node {
	valueChains := make(map[string]*Node, b.idx.Len(ontology.KindValueChain))
	var roots []*Node
	for _, vc := range b.idx.Nodes(ontology.KindValueChain) {
		n := &Node{Node: *vc}
		valueChains[ontology.Fold(vc.Code)] = n
		roots = append(roots, n)
	}

	modules := make(map[string]*Node, b.idx.Len(ontology.KindModule))
	var orphanModules []*Node
	for _, m := range b.idx.Nodes(ontology.KindModule) {
		n := &Node{Node: *m}
		key := ontology.Fold(m.Code)
		modules[key] = n
		if parent, ok := valueChains[b.a.ModuleValueChain[key]]; ok {
			parent.Children = append(parent.Children, n)
		} else {
			orphanModules = append(orphanModules, n)
		}
	}

	var orphanMetrics []*Node
	for _, k := range b.idx.Nodes(ontology.KindMetric) {
		key := ontology.Fold(k.Code)
		if parent, ok := modules[b.a.MetricModule[key]]; ok {
			parent.Children = append(parent.Children, b.metricNode(k, b.opts.AttachEntitiesToMetrics))
		} else if parent, ok := valueChains[b.a.MetricValueChain[key]]; ok {
			parent.Children = append(parent.Children, b.metricNode(k, b.opts.AttachEntitiesToMetrics))
		} else {
			// Orphaned metrics always carry their entities so the bucket
			// still shows what they measure.
			orphanMetrics = append(orphanMetrics, b.metricNode(k, true))
		}
	}

	used := make(map[string]bool)
	for _, entities := range b.a.MetricEntities {
		for _, e := range entities {
			used[e] = true
		}
	}
	var orphanEntities []*Node
	for _, e := range b.idx.Nodes(ontology.KindEntity) {
		if !used[ontology.Fold(e.Code)] {
			orphanEntities = append(orphanEntities, &Node{Node: *e})
		}
	}

	roots = appendBucket(roots, BucketModules, LabelModules, ontology.KindModule, orphanModules)
	roots = appendBucket(roots, BucketMetrics, LabelMetrics, ontology.KindMetric, orphanMetrics)
	roots = appendBucket(roots, BucketEntities, LabelEntities, ontology.KindEntity, orphanEntities)

	for _, root := range roots {
		countMetrics(root)
	}
	return roots
}

func (b *builder) metricNode(k *ontology.Node, attach bool) *Node {
	n := &Node{Node: *k}
	for _, code := range b.a.MetricEntities[ontology.Fold(k.Code)] {
		entity, ok := b.idx.Get(ontology.KindEntity, code)
		if !ok {
			continue
		}
		n.Uses = append(n.Uses, entity.Code)
		if attach {
			n.Children = append(n.Children, &Node{Node: *entity})
		}
	}
	return n
}

func appendBucket(roots []*Node, code, label string, kind ontology.Kind, children []*Node) []*Node {
	if len(children) == 0 {
		return roots
	}
	slices.SortStableFunc(children, func(a, b *Node) int {
		return strings.Compare(a.Label(), b.Label())
	})
	return append(roots, &Node{
		Node:           ontology.Node{Code: code, Name: label, Kind: kind},
		Children:       children,
		IsOrphanBucket: true,
	})
}

// countMetrics fills DescendantMetricCount bottom-up and returns the number of
// metrics in n's subtree including n itself.
func countMetrics(n *Node) int {
	total := 0
	for _, c := range n.Children {
		total += countMetrics(c)
	}
	n.DescendantMetricCount = total
	if n.Node.Kind == ontology.KindMetric && !n.IsOrphanBucket {
		return total + 1
	}
	return total
}
