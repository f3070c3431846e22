package ontology

import (
	"strings"
	"time"
)

// Relationship types understood by the classifier. Matching is case-insensitive.
const (
	RelBelongsTo           = "belongs_to"
	RelBelongsToValueChain = "belongs_to_value_chain"
	RelBelongsToModule     = "belongs_to_module"
	RelContains            = "contains"
	RelUses                = "uses"
	RelUsesEntity          = "uses_entity"
)

// Edge is a directed relationship record from the registry.
// Edges are facts: classification never writes back onto them.
type Edge struct {
	From      string
	To        string
	Type      string
	CreatedBy string
	CreatedAt time.Time
}

// NormalizedType returns the relationship type lower-cased and trimmed.
func (e Edge) NormalizedType() string {
	return strings.ToLower(strings.TrimSpace(e.Type))
}

// EdgeFromRecord decodes a relationship record. Both the registry's long
// field names (from_entity_code) and the short ones (from_code) are accepted.
// Records missing either endpoint are rejected.
func EdgeFromRecord(rec map[string]any) (Edge, bool) {
	e := Edge{
		From:      firstString(rec, "from_entity_code", "from_code", "from"),
		To:        firstString(rec, "to_entity_code", "to_code", "to"),
		Type:      firstString(rec, "relationship_type", "type"),
		CreatedBy: firstString(rec, "created_by"),
	}
	if ts := firstString(rec, "created_at"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.CreatedAt = t
		}
	}
	if t, ok := rec["created_at"].(time.Time); ok {
		e.CreatedAt = t
	}
	if e.From == "" || e.To == "" {
		return Edge{}, false
	}
	return e, true
}

func firstString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
