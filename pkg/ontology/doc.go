// Package ontology defines the domain model of the metadata registry and the
// rules that turn flat relationship records into hierarchy assignments.
//
// # Core Types
//
//   - [Node]: a typed registry record (value chain, module, metric, entity, actor)
//   - [Fields]: the kind-specific part of a node, one struct per [Kind]
//   - [Edge]: an immutable relationship record between two node codes
//   - [Index]: case-insensitive, per-kind lookup built from node collections
//
// # Classification
//
// [Classify] maps a single edge onto a hierarchy slot:
//
//	idx := ontology.NewIndex(nodes)
//	c := ontology.Classify(edge, idx)
//	if c.Slot == ontology.SlotMetricInModule {
//	    // c.Child is the metric code, c.Parent the module code
//	}
//
// [Assign] folds a whole edge list into [Assignments], the per-slot maps the
// tree builder consumes. A later edge for the same child overwrites an earlier
// one unless the caller selects [FirstWriteWins]; every overwrite with a
// different parent is recorded in [Assignments.Conflicts].
//
// Edges that reference unknown codes, or whose relationship type matches no
// rule, classify as [SlotUnclassified] and are ignored.
package ontology
