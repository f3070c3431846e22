package graph

import "github.com/matzehuels/ontograph/pkg/ontology"

// =============================================================================
// Construction
// =============================================================================

// Build assembles the full graph from indexed registry nodes and classified
// assignments. Nodes appear in kind order, then input order. Links whose
// endpoints are not indexed are omitted, so every link endpoint is a node.
func Build(idx *ontology.Index, a *ontology.Assignments) Graph {
	g := Graph{Nodes: []Node{}, Links: []Link{}}
	for _, kind := range ontology.Kinds {
		for _, n := range idx.Nodes(kind) {
			g.Nodes = append(g.Nodes, Node{
				ID:          NodeID(kind, n.Code),
				Code:        n.Code,
				Kind:        kind,
				Name:        n.DisplayName(),
				Description: n.Description,
			})
		}
	}

	link := func(parentKind ontology.Kind, parent string, childKind ontology.Kind, child, category string) {
		if !idx.Has(parentKind, parent) || !idx.Has(childKind, child) {
			return
		}
		g.Links = append(g.Links, Link{
			SourceID: NodeID(parentKind, parent),
			TargetID: NodeID(childKind, child),
			Category: category,
		})
	}

	for _, m := range idx.Nodes(ontology.KindModule) {
		key := ontology.Fold(m.Code)
		if vc, ok := a.ModuleValueChain[key]; ok {
			link(ontology.KindValueChain, vc, ontology.KindModule, key, CategoryValueChainModule)
		}
	}
	for _, k := range idx.Nodes(ontology.KindMetric) {
		key := ontology.Fold(k.Code)
		if m, ok := a.MetricModule[key]; ok {
			link(ontology.KindModule, m, ontology.KindMetric, key, CategoryModuleMetric)
		}
		if vc, ok := a.MetricValueChain[key]; ok {
			link(ontology.KindValueChain, vc, ontology.KindMetric, key, CategoryValueChainMetric)
		}
		for _, e := range a.MetricEntities[key] {
			link(ontology.KindMetric, key, ontology.KindEntity, e, CategoryMetricEntity)
		}
	}
	return g
}
