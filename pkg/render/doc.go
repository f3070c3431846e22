// Package render groups the output renderers for ontology views.
//
//   - [nodelink]: Graphviz DOT and SVG for trees, graphs and schema diagrams
//   - [sink]: SVG and JSON for force-directed layouts
//
// Node-link diagrams let Graphviz place nodes; sinks draw the positions
// computed by the force simulation as they are.
//
//	dot := nodelink.SchemaToDOT(s, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
//	svg := sink.RenderSVG(layout, sink.WithInteraction())
//
// [nodelink]: github.com/matzehuels/ontograph/pkg/render/nodelink
// [sink]: github.com/matzehuels/ontograph/pkg/render/sink
package render
