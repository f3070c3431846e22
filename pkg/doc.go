// Package pkg provides the core libraries for Ontograph ontology exploration.
//
// # Overview
//
// Ontograph reads a business-ontology registry (value chains, modules,
// metrics, entities and the typed relationships between them) and turns it
// into navigable views. The pkg directory is organized into four areas:
//
//  1. Domain logic: [ontology], [tree], [graph], [schema], [layout/force]
//  2. Infrastructure: [registry], [cache], [httputil], [config], [observability]
//  3. Orchestration: [pipeline] (load, classify, build, render)
//  4. Output: [render/nodelink] and [render/sink]
//
// # Architecture
//
// The typical data flow:
//
//	Registry (HTTP API, MongoDB or snapshot file)
//	         ↓
//	    [registry] package (fetch collections, cache responses)
//	         ↓
//	    [ontology] package (classify relationships into assignments)
//	         ↓
//	    [tree] / [graph] / [schema] packages (hierarchy, filtered graph, diagrams)
//	         ↓
//	    [layout/force] package (force-directed positions)
//	         ↓
//	    JSON/DOT/SVG output
//
// # Quick Start
//
// Load a registry snapshot and build the hierarchy:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/ontograph/pkg/pipeline"
//	    "github.com/matzehuels/ontograph/pkg/registry"
//	    "github.com/matzehuels/ontograph/pkg/tree"
//	)
//
//	src, err := registry.OpenFile("snapshot.json")
//	runner := pipeline.NewRunner(src, nil)
//	res, err := runner.Tree(context.Background(), tree.Options{})
//
// Parse an entity relationship diagram and lay it out:
//
//	s := pipeline.ParseSchema(ctx, text, "Invoice")
//	l, err := pipeline.LayoutSchema(ctx, s, pipeline.LayoutOptions{})
//	svg, err := pipeline.RenderLayout(l, pipeline.FormatSVG)
//
// [ontology]: github.com/matzehuels/ontograph/pkg/ontology
// [tree]: github.com/matzehuels/ontograph/pkg/tree
// [graph]: github.com/matzehuels/ontograph/pkg/graph
// [schema]: github.com/matzehuels/ontograph/pkg/schema
// [layout/force]: github.com/matzehuels/ontograph/pkg/layout/force
// [registry]: github.com/matzehuels/ontograph/pkg/registry
// [cache]: github.com/matzehuels/ontograph/pkg/cache
// [httputil]: github.com/matzehuels/ontograph/pkg/httputil
// [config]: github.com/matzehuels/ontograph/pkg/config
// [observability]: github.com/matzehuels/ontograph/pkg/observability
// [pipeline]: github.com/matzehuels/ontograph/pkg/pipeline
// [render/nodelink]: github.com/matzehuels/ontograph/pkg/render/nodelink
// [render/sink]: github.com/matzehuels/ontograph/pkg/render/sink
package pkg
