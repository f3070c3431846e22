// Package sink renders force-directed layouts.
//
// A "sink" turns a computed [graph.Layout] into a final output format:
//
//   - [RenderSVG]: standalone SVG with optional hover highlighting
//   - [RenderJSON]: the layout itself, for external renderers
//
// Basic usage:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithHighlight("entity:invoice"),
//	    sink.WithInteraction(),
//	)
//
// Nodes are drawn as labelled circles at their simulated positions and links
// as straight lines from source to target. Links whose endpoints are missing
// from the layout are skipped.
//
// [graph.Layout]: github.com/matzehuels/ontograph/pkg/graph.Layout
package sink
