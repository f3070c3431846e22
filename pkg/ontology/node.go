package ontology

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Kind identifies the node collection a record belongs to.
type Kind string

const (
	KindValueChain Kind = "value_chain"
	KindModule     Kind = "module"
	KindMetric     Kind = "metric"
	KindEntity     Kind = "entity"
	KindActor      Kind = "actor"
)

// Kinds lists every known kind in hierarchy order.
var Kinds = []Kind{KindValueChain, KindModule, KindMetric, KindEntity, KindActor}

// ParseKind converts a string into a Kind. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Node is a single registry record.
//
// Fields holds the kind-specific attributes; its dynamic type always matches
// Kind. Extra keeps record keys that no Fields struct recognizes so nothing
// the registry sends is silently lost.
type Node struct {
	Code        string
	Kind        Kind
	Name        string
	Description string
	Fields      Fields
	Extra       map[string]any
}

// DisplayName returns Name, falling back to Code.
func (n Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Code
}

// SchemaDefinition returns the diagram text of an entity node, or "".
func (n Node) SchemaDefinition() string {
	if f, ok := n.Fields.(EntityFields); ok {
		return f.SchemaDefinition
	}
	return ""
}

// Fields is the kind-specific part of a Node.
type Fields interface {
	Kind() Kind
}

// ValueChainFields are the attributes of a value chain.
type ValueChainFields struct {
	Owner    string
	Sequence int
}

// ModuleFields are the attributes of a module (business process).
type ModuleFields struct {
	Owner  string
	Status string
}

// MetricFields are the attributes of a metric (KPI).
type MetricFields struct {
	Unit      string
	Formula   string
	Frequency string
	Target    string
}

// EntityFields are the attributes of an entity (object model).
type EntityFields struct {
	SchemaDefinition string
	Domain           string
}

// ActorFields are the attributes of an actor.
type ActorFields struct {
	Role string
}

func (ValueChainFields) Kind() Kind { return KindValueChain }
func (ModuleFields) Kind() Kind     { return KindModule }
func (MetricFields) Kind() Kind     { return KindMetric }
func (EntityFields) Kind() Kind     { return KindEntity }
func (ActorFields) Kind() Kind      { return KindActor }

// Record keys shared by every kind.
const (
	keyCode        = "code"
	keyName        = "name"
	keyDescription = "description"
)

// NodeFromRecord decodes a loosely typed registry record into a Node.
// Keys known for the kind populate Fields; everything else lands in Extra.
// The second return value is false when the record carries no code, in which
// case the record cannot take part in any relationship and is skipped.
func NodeFromRecord(kind Kind, rec map[string]any) (Node, bool) {
	rest := maps.Clone(rec)
	if rest == nil {
		rest = map[string]any{}
	}
	n := Node{
		Kind:        kind,
		Code:        strings.TrimSpace(take(rest, keyCode)),
		Name:        take(rest, keyName),
		Description: take(rest, keyDescription),
	}
	if n.Code == "" {
		return Node{}, false
	}

	switch kind {
	case KindValueChain:
		f := ValueChainFields{Owner: take(rest, "owner")}
		if raw, ok := rest["sequence"]; ok {
			seq, err := strconv.Atoi(take(rest, "sequence"))
			if err != nil {
				rest["sequence"] = raw
			}
			f.Sequence = seq
		}
		n.Fields = f
	case KindModule:
		n.Fields = ModuleFields{Owner: take(rest, "owner"), Status: take(rest, "status")}
	case KindMetric:
		n.Fields = MetricFields{
			Unit:      take(rest, "unit"),
			Formula:   take(rest, "formula"),
			Frequency: take(rest, "frequency"),
			Target:    take(rest, "target"),
		}
	case KindEntity:
		n.Fields = EntityFields{
			SchemaDefinition: take(rest, "schema_definition"),
			Domain:           take(rest, "domain"),
		}
	case KindActor:
		n.Fields = ActorFields{Role: take(rest, "role")}
	}

	if len(rest) > 0 {
		n.Extra = rest
	}
	return n, true
}

// Record is the inverse of NodeFromRecord.
func (n Node) Record() map[string]any {
	rec := make(map[string]any, len(n.Extra)+8)
	maps.Copy(rec, n.Extra)
	rec[keyCode] = n.Code
	put(rec, keyName, n.Name)
	put(rec, keyDescription, n.Description)

	switch f := n.Fields.(type) {
	case ValueChainFields:
		put(rec, "owner", f.Owner)
		if f.Sequence != 0 {
			rec["sequence"] = f.Sequence
		}
	case ModuleFields:
		put(rec, "owner", f.Owner)
		put(rec, "status", f.Status)
	case MetricFields:
		put(rec, "unit", f.Unit)
		put(rec, "formula", f.Formula)
		put(rec, "frequency", f.Frequency)
		put(rec, "target", f.Target)
	case EntityFields:
		put(rec, "schema_definition", f.SchemaDefinition)
		put(rec, "domain", f.Domain)
	case ActorFields:
		put(rec, "role", f.Role)
	}
	return rec
}

// take removes key from m and returns its value rendered as a string.
func take(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	delete(m, key)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func put(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
