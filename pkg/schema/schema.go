// Package schema parses the relationship-diagram text stored on entity
// records into entities and typed relationships.
//
// The grammar is line based. Each non-blank line that does not start with
// the comment marker "%%" is tokenized and offered to five line grammars in a
// fixed precedence order:
//
//	Account "1" *-- "1..*" Address : owns       composition
//	Account "1" o-- "0..*" Contact              aggregation
//	Customer --|> Account                       generalization
//	Invoice ..> Currency : priced in            dependency
//	Account "1" -- "0..*" Lead : generates >    association
//
// The first grammar that consumes the whole line wins; lines no grammar
// accepts are skipped. Parsing never fails and never yields a partial
// relationship.
//
// Entities have no declaration syntax; they are the relationship endpoints,
// de-duplicated in first-seen order.
package schema

import (
	"bufio"
	"io"
	"strings"
)

// CommentMarker starts a line that the parser ignores.
const CommentMarker = "%%"

// Kind is the relationship type.
type Kind string

const (
	Association    Kind = "association"
	Composition    Kind = "composition"
	Aggregation    Kind = "aggregation"
	Generalization Kind = "generalization"
	Dependency     Kind = "dependency"
)

// Direction tells the renderer which way to draw the arrow.
type Direction string

const (
	Forward       Direction = "forward"
	Backward      Direction = "backward"
	Bidirectional Direction = "bidirectional"
)

// Entity is a diagram endpoint.
type Entity struct {
	Name string `json:"name"`
}

// Relationship is one parsed diagram line.
type Relationship struct {
	From             string    `json:"from"`
	To               string    `json:"to"`
	Kind             Kind      `json:"kind"`
	CardinalityLabel string    `json:"cardinality_label,omitempty"`
	TextLabel        string    `json:"text_label,omitempty"`
	Direction        Direction `json:"direction"`
}

// Schema is the result of parsing a diagram.
type Schema struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// Empty reports whether the diagram produced no relationships.
func (s *Schema) Empty() bool { return len(s.Relationships) == 0 }

// EntityNames returns the entity names in first-seen order.
func (s *Schema) EntityNames() []string {
	names := make([]string, len(s.Entities))
	for i, e := range s.Entities {
		names[i] = e.Name
	}
	return names
}

// Parse parses diagram text. focus is the name of the entity the diagram is
// shown for; it decides the direction of generalizations.
func Parse(text, focus string) *Schema {
	b := newBuilder(focus)
	for line := range strings.Lines(text) {
		b.line(line)
	}
	return b.s
}

// ParseReader is like [Parse] but reads the diagram from r. Lines of any
// length are read whole. The only errors it returns come from r; the
// schema parsed up to that point is returned alongside.
func ParseReader(r io.Reader, focus string) (*Schema, error) {
	b := newBuilder(focus)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			b.line(line)
		}
		if err == io.EOF {
			return b.s, nil
		}
		if err != nil {
			return b.s, err
		}
	}
}

// builder accumulates relationships and first-seen entities.
type builder struct {
	s     *Schema
	focus string
	seen  map[string]bool
}

func newBuilder(focus string) *builder {
	return &builder{
		s:     &Schema{Entities: []Entity{}, Relationships: []Relationship{}},
		focus: focus,
		seen:  make(map[string]bool),
	}
}

func (b *builder) line(line string) {
	rel, ok := ParseLine(line, b.focus)
	if !ok {
		return
	}
	b.s.Relationships = append(b.s.Relationships, rel)
	b.entity(rel.From)
	b.entity(rel.To)
}

func (b *builder) entity(name string) {
	if !b.seen[name] {
		b.seen[name] = true
		b.s.Entities = append(b.s.Entities, Entity{Name: name})
	}
}

// ParseLine parses a single diagram line. It reports false for blank lines,
// comments, and lines no grammar accepts.
func ParseLine(line, focus string) (Relationship, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, CommentMarker) {
		return Relationship{}, false
	}
	toks, ok := tokenize(line)
	if !ok {
		return Relationship{}, false
	}
	for _, m := range matchers {
		if rel, ok := m.match(toks, focus); ok {
			return rel, true
		}
	}
	return Relationship{}, false
}
