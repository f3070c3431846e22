// Package pipeline wires the registry to the ontology engine.
//
// This package implements the load → classify → build → layout → render
// flow shared by the CLI and the API server. By centralizing it, both entry
// points classify, filter and lay out the same way.
//
// # Architecture
//
//  1. Load: fetch every collection from a [registry.Source]
//  2. Classify: index nodes and fold relationships into assignments
//  3. Build: derive the tree, the graph or an entity's schema diagram
//  4. Layout: run the bounded force simulation on a graph or diagram
//  5. Render: produce JSON, DOT or SVG
//
// Derived structures are recomputed on every call. Only raw registry
// responses are cached, inside the registry source.
//
// # Usage
//
//	src, closeSrc, err := pipeline.OpenSource(ctx, cfg, pipeline.SourceOptions{})
//	defer closeSrc()
//	runner := pipeline.NewRunner(src, logger)
//
//	res, err := runner.Tree(ctx, tree.Options{AttachEntitiesToMetrics: true})
//	g, err := runner.Graph(ctx, "module:billing")
//	l, err := pipeline.LayoutGraph(ctx, g, pipeline.LayoutOptions{})
//	svg, err := pipeline.RenderLayout(l, pipeline.FormatSVG)
package pipeline

import (
	"github.com/matzehuels/ontograph/pkg/errors"
)

// =============================================================================
// Formats
// =============================================================================

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// Formats accepted per view.
var (
	TreeFormats   = []string{FormatJSON, FormatDOT, FormatSVG}
	GraphFormats  = []string{FormatJSON, FormatDOT, FormatSVG}
	SchemaFormats = []string{FormatJSON, FormatDOT, FormatSVG}
	LayoutFormats = []string{FormatJSON, FormatSVG}
)

// ValidateFormat checks format against the formats a view supports.
func ValidateFormat(format string, allowed []string) error {
	return errors.ValidateFormat(format, allowed...)
}
