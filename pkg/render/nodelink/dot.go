package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/ontology"
	"github.com/matzehuels/ontograph/pkg/schema"
	"github.com/matzehuels/ontograph/pkg/tree"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the node code and metric counts to labels.
	Detailed bool

	// Focus highlights one schema entity. Matching is case-insensitive.
	Focus string
}

var kindFill = map[ontology.Kind]string{
	ontology.KindValueChain: "#dbeafe",
	ontology.KindModule:     "#dcfce7",
	ontology.KindMetric:     "#fef9c3",
	ontology.KindEntity:     "#f3e8ff",
	ontology.KindActor:      "#fee2e2",
}

func header(buf *bytes.Buffer, rankdir string) {
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
}

// TreeToDOT converts a forest to DOT. Orphan buckets are drawn dashed and
// grey; entity leaves repeated under several metrics get one node per
// occurrence.
func TreeToDOT(res *tree.Result, opts Options) string {
	var buf bytes.Buffer
	header(&buf, "LR")

	var edges []string
	seq := 0
	var visit func(n *tree.Node, parent string)
	visit = func(n *tree.Node, parent string) {
		id := fmt.Sprintf("n%d", seq)
		seq++

		attrs := []string{fmt.Sprintf("label=%q", treeLabel(n, opts.Detailed))}
		if n.IsOrphanBucket {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		} else if fill, ok := kindFill[n.Kind()]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(attrs, ", "))

		if parent != "" {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", parent, id))
		}
		for _, c := range n.Children {
			visit(c, id)
		}
	}
	for _, root := range res.Roots {
		visit(root, "")
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func treeLabel(n *tree.Node, detailed bool) string {
	if !detailed || n.IsOrphanBucket {
		return n.Label()
	}
	label := n.Label()
	if n.Code() != label {
		label += "\n" + n.Code()
	}
	if !n.IsLeaf() {
		label += fmt.Sprintf("\nmetrics: %d", n.DescendantMetricCount)
	}
	return label
}

// GraphToDOT converts a graph to DOT. Links are labelled with their category
// when opts.Detailed is set.
func GraphToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	header(&buf, "TB")

	for _, n := range g.Nodes {
		label := n.Name
		if label == "" {
			label = n.Code
		}
		if opts.Detailed {
			label += "\n" + string(n.Kind)
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if fill, ok := kindFill[n.Kind]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.SourceID, l.TargetID, string(l.Category))
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", l.SourceID, l.TargetID)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// SchemaToDOT converts a parsed diagram to DOT.
func SchemaToDOT(s *schema.Schema, opts Options) string {
	var buf bytes.Buffer
	header(&buf, "LR")

	for _, e := range s.Entities {
		attrs := []string{fmt.Sprintf("label=%q", e.Name)}
		if opts.Focus != "" && strings.EqualFold(e.Name, opts.Focus) {
			attrs = append(attrs, "fillcolor=\"#f3e8ff\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", e.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range s.Relationships {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", r.From, r.To, strings.Join(relAttrs(r), ", "))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func relAttrs(r schema.Relationship) []string {
	var attrs []string
	switch r.Kind {
	case schema.Composition:
		attrs = append(attrs, "dir=back", "arrowtail=diamond")
	case schema.Aggregation:
		attrs = append(attrs, "dir=back", "arrowtail=odiamond")
	case schema.Generalization:
		attrs = append(attrs, "arrowhead=onormal")
		if r.Direction == schema.Backward {
			attrs = append(attrs, "dir=back", "arrowtail=onormal")
		}
	case schema.Dependency:
		attrs = append(attrs, "style=dashed", "arrowhead=vee")
	default:
		attrs = append(attrs, "dir=none")
	}

	var label []string
	if r.CardinalityLabel != "" {
		label = append(label, r.CardinalityLabel)
	}
	if r.TextLabel != "" {
		label = append(label, r.TextLabel)
	}
	if len(label) > 0 {
		attrs = append(attrs, fmt.Sprintf("label=%q", strings.Join(label, "\n")))
	}
	return attrs
}

// RenderSVG renders DOT to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// viewBox-only one so the SVG scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
