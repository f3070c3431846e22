package ontology

import "strings"

// Index provides case-insensitive lookups of nodes by (kind, code).
//
// Codes are unique per kind; when a collection contains duplicates that differ
// only in case, the first record wins and later ones are reported by
// [Index.Duplicates].
type Index struct {
	byKind     map[Kind]map[string]*Node
	order      map[Kind][]*Node
	duplicates []Node
}

// NewIndex builds an Index over the given collections. The slice order of
// each kind is preserved and available through [Index.Nodes].
func NewIndex(collections map[Kind][]Node) *Index {
	idx := &Index{
		byKind: make(map[Kind]map[string]*Node, len(collections)),
		order:  make(map[Kind][]*Node, len(collections)),
	}
	for _, kind := range Kinds {
		idx.add(kind, collections[kind])
	}
	for kind, nodes := range collections {
		if _, seen := idx.byKind[kind]; !seen {
			idx.add(kind, nodes)
		}
	}
	return idx
}

func (idx *Index) add(kind Kind, nodes []Node) {
	m := make(map[string]*Node, len(nodes))
	idx.byKind[kind] = m
	for i := range nodes {
		n := nodes[i]
		key := Fold(n.Code)
		if _, dup := m[key]; dup {
			idx.duplicates = append(idx.duplicates, n)
			continue
		}
		n.Kind = kind
		m[key] = &n
		idx.order[kind] = append(idx.order[kind], &n)
	}
}

// Fold returns the case-insensitive lookup key for a code.
func Fold(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Has reports whether a node of the given kind exists with that code.
func (idx *Index) Has(kind Kind, code string) bool {
	_, ok := idx.byKind[kind][Fold(code)]
	return ok
}

// Get returns the node of the given kind with that code.
func (idx *Index) Get(kind Kind, code string) (*Node, bool) {
	n, ok := idx.byKind[kind][Fold(code)]
	return n, ok
}

// Nodes returns the nodes of a kind in input order, duplicates removed.
// The returned pointers refer to the index's own copies.
func (idx *Index) Nodes(kind Kind) []*Node {
	return idx.order[kind]
}

// Len returns the number of indexed nodes of a kind.
func (idx *Index) Len(kind Kind) int {
	return len(idx.order[kind])
}

// Total returns the number of indexed nodes across all kinds.
func (idx *Index) Total() int {
	total := 0
	for _, nodes := range idx.order {
		total += len(nodes)
	}
	return total
}

// Duplicates returns records dropped because their code collided
// case-insensitively with an earlier record of the same kind.
func (idx *Index) Duplicates() []Node {
	return idx.duplicates
}
