// Package nodelink renders ontology views as node-link diagrams.
//
// # Overview
//
// This package produces Graphviz DOT for three views:
//
//   - [TreeToDOT]: the value chain → module → metric forest
//   - [GraphToDOT]: a (possibly filtered) {nodes, links} graph
//   - [SchemaToDOT]: a parsed entity relationship diagram
//
// DOT text can be saved for external Graphviz tools or rendered in-process:
//
//	dot := nodelink.SchemaToDOT(s, nodelink.Options{Focus: "Invoice"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Schema Notation
//
// Relationship kinds map onto the usual class-diagram arrowheads: a filled
// diamond for composition, a hollow diamond for aggregation, a hollow
// triangle for generalization and a dashed open arrow for dependency.
// Associations are plain lines. Cardinality and text labels become edge
// labels.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
