package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/ontograph/pkg/graph"
)

const nodeInteractionCSS = `
    .node circle { transition: stroke-width 0.2s ease; }
    .node.highlight circle { stroke-width: 3; }
    .link.highlight { stroke: #334155; stroke-width: 2; }`

const nodeInteractionJS = `
    function highlight(id) {
      document.querySelectorAll('.link').forEach(l => l.classList.toggle('highlight', l.dataset.source === id || l.dataset.target === id));
      document.querySelectorAll('.node').forEach(n => n.classList.toggle('highlight', n.dataset.id === id));
    }
    function clearHighlight() {
      document.querySelectorAll('.node, .link').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.id));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// DefaultRadius is the node circle radius in diagram units.
const DefaultRadius = 18.0

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	radius      float64
	highlight   string
	interactive bool
}

// WithRadius overrides [DefaultRadius].
func WithRadius(r float64) SVGOption { return func(s *svgRenderer) { s.radius = r } }

// WithHighlight draws the node with the given ID emphasized.
func WithHighlight(id string) SVGOption { return func(s *svgRenderer) { s.highlight = id } }

// WithInteraction embeds CSS and script for hover highlighting.
func WithInteraction() SVGOption { return func(s *svgRenderer) { s.interactive = true } }

// RenderSVG draws l in its own frame.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{radius: DefaultRadius}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nodeInteractionCSS)
	}

	for _, link := range l.Links {
		src, ok1 := l.Position(link.SourceID)
		dst, ok2 := l.Position(link.TargetID)
		if !ok1 || !ok2 {
			continue
		}
		fmt.Fprintf(&buf, `  <line class="link" data-source="%s" data-target="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#94a3b8" stroke-width="1"/>`+"\n",
			html.EscapeString(link.SourceID), html.EscapeString(link.TargetID), src.X, src.Y, dst.X, dst.Y)
	}

	for _, p := range l.Nodes {
		fill, stroke := "#ffffff", "#475569"
		if p.ID == r.highlight {
			fill, stroke = "#f3e8ff", "#7c3aed"
		}
		label := p.Label
		if label == "" {
			label = p.ID
		}
		fmt.Fprintf(&buf, `  <g class="node" data-id="%s">`+"\n", html.EscapeString(p.ID))
		fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			p.X, p.Y, r.radius, fill, stroke)
		fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="11">%s</text>`+"\n",
			p.X, p.Y+r.radius+12, html.EscapeString(label))
		buf.WriteString("  </g>\n")
	}

	if r.interactive {
		fmt.Fprintf(&buf, "  <script><![CDATA[%s\n  ]]></script>\n", nodeInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
