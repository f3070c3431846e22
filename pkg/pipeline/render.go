package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/render/nodelink"
	"github.com/matzehuels/ontograph/pkg/render/sink"
	"github.com/matzehuels/ontograph/pkg/schema"
	"github.com/matzehuels/ontograph/pkg/tree"
)

// RenderTree renders a forest as JSON, DOT or SVG.
func RenderTree(ctx context.Context, res *tree.Result, format string, opts nodelink.Options) ([]byte, error) {
	if err := ValidateFormat(format, TreeFormats); err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return json.MarshalIndent(res.Roots, "", "  ")
	}
	return dotOrSVG(ctx, nodelink.TreeToDOT(res, opts), format)
}

// RenderGraph renders a graph as JSON, DOT or SVG.
func RenderGraph(ctx context.Context, g graph.Graph, format string, opts nodelink.Options) ([]byte, error) {
	if err := ValidateFormat(format, GraphFormats); err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return graph.MarshalGraph(g)
	}
	return dotOrSVG(ctx, nodelink.GraphToDOT(g, opts), format)
}

// RenderSchema renders a parsed diagram as JSON, DOT or SVG.
func RenderSchema(ctx context.Context, s *schema.Schema, format string, opts nodelink.Options) ([]byte, error) {
	if err := ValidateFormat(format, SchemaFormats); err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return json.MarshalIndent(s, "", "  ")
	}
	return dotOrSVG(ctx, nodelink.SchemaToDOT(s, opts), format)
}

// RenderLayout renders positions as JSON or SVG.
func RenderLayout(l graph.Layout, format string, opts ...sink.SVGOption) ([]byte, error) {
	if err := ValidateFormat(format, LayoutFormats); err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return sink.RenderJSON(l)
	}
	return sink.RenderSVG(l, opts...), nil
}

func dotOrSVG(ctx context.Context, dot, format string) ([]byte, error) {
	if format == FormatDOT {
		return []byte(dot), nil
	}
	return nodelink.RenderSVG(ctx, dot)
}
