package schema

import "strings"

// matcher recognizes one line grammar.
type matcher struct {
	kind      Kind
	connector string
	// cards allows quoted cardinalities on both sides of the connector.
	cards bool
	// label allows a trailing ": text" label.
	label bool
	// implicitLabel is used as the text label when the grammar has none.
	implicitLabel string
}

// matchers in precedence order. The first one that accepts a line wins.
var matchers = []matcher{
	{kind: Composition, connector: "*--", cards: true, label: true},
	{kind: Aggregation, connector: "o--", cards: true, label: true},
	{kind: Generalization, connector: "--|>", implicitLabel: "inherits from"},
	{kind: Dependency, connector: "..>", label: true},
	{kind: Association, connector: "--", cards: true, label: true},
}

// match reports whether toks form a complete line of m's grammar:
//
//	Name ["card"] connector ["card"] Name [: label]
//
// Every token must be consumed.
func (m matcher) match(toks []token, focus string) (Relationship, bool) {
	var rel Relationship
	var left, right string
	p := &cursor{toks: toks}

	from, ok := p.take(tokName)
	if !ok {
		return rel, false
	}
	if m.cards {
		left, _ = p.take(tokCard)
	}
	if conn, ok := p.take(tokConnector); !ok || conn != m.connector {
		return rel, false
	}
	if m.cards {
		right, _ = p.take(tokCard)
	}
	to, ok := p.take(tokName)
	if !ok {
		return rel, false
	}
	text := m.implicitLabel
	if m.label {
		if l, ok := p.take(tokLabel); ok {
			text = cleanLabel(l)
		}
	}
	if !p.done() {
		return rel, false
	}

	rel = Relationship{
		From:      from,
		To:        to,
		Kind:      m.kind,
		TextLabel: text,
		Direction: m.direction(from, focus),
	}
	if left != "" && right != "" {
		rel.CardinalityLabel = left + " to " + right
	}
	return rel, true
}

func (m matcher) direction(from, focus string) Direction {
	switch m.kind {
	case Generalization:
		if focus != "" && strings.EqualFold(from, focus) {
			return Forward
		}
		return Backward
	case Dependency:
		return Forward
	default:
		return Bidirectional
	}
}

// cleanLabel drops a trailing reading-direction marker such as "generates >".
func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "<>")
	return strings.TrimSpace(s)
}

type cursor struct {
	toks []token
	pos  int
}

func (c *cursor) take(kind tokenKind) (string, bool) {
	if c.pos >= len(c.toks) || c.toks[c.pos].kind != kind {
		return "", false
	}
	c.pos++
	return c.toks[c.pos-1].value, true
}

func (c *cursor) done() bool { return c.pos == len(c.toks) }
