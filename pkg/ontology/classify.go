package ontology

// Slot is the hierarchy position an edge assigns.
type Slot int

const (
	// SlotUnclassified means no rule matched; the edge is ignored.
	SlotUnclassified Slot = iota
	// SlotModuleInValueChain places a module under a value chain.
	SlotModuleInValueChain
	// SlotMetricInModule places a metric under a module.
	SlotMetricInModule
	// SlotMetricInValueChain places a metric directly under a value chain.
	SlotMetricInValueChain
	// SlotMetricUsesEntity records a metric↔entity association (not a tree edge).
	SlotMetricUsesEntity
)

func (s Slot) String() string {
	switch s {
	case SlotModuleInValueChain:
		return "module_parent_of:value_chain"
	case SlotMetricInModule:
		return "metric_parent_of:module"
	case SlotMetricInValueChain:
		return "metric_parent_of:value_chain"
	case SlotMetricUsesEntity:
		return "metric_uses_entity"
	default:
		return "unclassified"
	}
}

// Classification is the result of classifying one edge.
// Child and Parent are folded codes (see [Fold]); for SlotMetricUsesEntity
// Child is the metric and Parent the entity.
type Classification struct {
	Slot   Slot
	Child  string
	Parent string
}

// Classify maps one edge to a hierarchy slot using the endpoint kinds in idx.
// It is a pure function of its inputs.
func Classify(e Edge, idx *Index) Classification {
	from, to := Fold(e.From), Fold(e.To)
	none := Classification{Slot: SlotUnclassified}

	switch e.NormalizedType() {
	case RelBelongsTo, RelBelongsToValueChain:
		if idx.Has(KindModule, from) && idx.Has(KindValueChain, to) {
			return Classification{Slot: SlotModuleInValueChain, Child: from, Parent: to}
		}
		if idx.Has(KindMetric, from) && !idx.Has(KindModule, to) {
			return Classification{Slot: SlotMetricInValueChain, Child: from, Parent: to}
		}
	case RelBelongsToModule:
		if idx.Has(KindMetric, from) && idx.Has(KindModule, to) {
			return Classification{Slot: SlotMetricInModule, Child: from, Parent: to}
		}
	case RelContains:
		if idx.Has(KindModule, from) && idx.Has(KindMetric, to) {
			return Classification{Slot: SlotMetricInModule, Child: to, Parent: from}
		}
	case RelUses, RelUsesEntity:
		if idx.Has(KindMetric, from) {
			return Classification{Slot: SlotMetricUsesEntity, Child: from, Parent: to}
		}
	}
	return none
}

// ConflictPolicy decides what happens when two edges assign different parents
// to the same child in the same slot.
type ConflictPolicy int

const (
	// LastWriteWins keeps the parent from the later edge in input order.
	LastWriteWins ConflictPolicy = iota
	// FirstWriteWins keeps the parent from the earlier edge.
	FirstWriteWins
)

// Conflict records a child that was assigned more than one parent in a slot.
type Conflict struct {
	Slot     Slot
	Child    string
	Previous string
	Current  string
	Kept     string
}

// Assignments holds the classified view of an edge list.
// All keys and values are folded codes.
type Assignments struct {
	ModuleValueChain map[string]string
	MetricModule     map[string]string
	MetricValueChain map[string]string
	// MetricEntities lists entity codes per metric in first-seen order.
	MetricEntities map[string][]string
	// Conflicts lists overwrites (or rejected overwrites under FirstWriteWins).
	Conflicts []Conflict
	// Unclassified counts edges no rule accepted.
	Unclassified int
}

// NewAssignments returns empty, ready-to-use Assignments.
func NewAssignments() *Assignments {
	return &Assignments{
		ModuleValueChain: make(map[string]string),
		MetricModule:     make(map[string]string),
		MetricValueChain: make(map[string]string),
		MetricEntities:   make(map[string][]string),
	}
}

// Apply records one classification. Applying the same classification twice
// leaves the maps unchanged.
func (a *Assignments) Apply(c Classification, policy ConflictPolicy) {
	switch c.Slot {
	case SlotModuleInValueChain:
		a.set(a.ModuleValueChain, c, policy)
	case SlotMetricInModule:
		a.set(a.MetricModule, c, policy)
	case SlotMetricInValueChain:
		a.set(a.MetricValueChain, c, policy)
	case SlotMetricUsesEntity:
		for _, existing := range a.MetricEntities[c.Child] {
			if existing == c.Parent {
				return
			}
		}
		a.MetricEntities[c.Child] = append(a.MetricEntities[c.Child], c.Parent)
	default:
		a.Unclassified++
	}
}

func (a *Assignments) set(m map[string]string, c Classification, policy ConflictPolicy) {
	prev, exists := m[c.Child]
	if !exists {
		m[c.Child] = c.Parent
		return
	}
	if prev == c.Parent {
		return
	}
	kept := c.Parent
	if policy == FirstWriteWins {
		kept = prev
	}
	m[c.Child] = kept
	a.Conflicts = append(a.Conflicts, Conflict{
		Slot:     c.Slot,
		Child:    c.Child,
		Previous: prev,
		Current:  c.Parent,
		Kept:     kept,
	})
}

// IsUsed reports whether any metric references the entity.
func (a *Assignments) IsUsed(entity string) bool {
	key := Fold(entity)
	for _, entities := range a.MetricEntities {
		for _, e := range entities {
			if e == key {
				return true
			}
		}
	}
	return false
}

// Assign classifies every edge independently and folds the results.
func Assign(edges []Edge, idx *Index, policy ConflictPolicy) *Assignments {
	a := NewAssignments()
	for _, e := range edges {
		a.Apply(Classify(e, idx), policy)
	}
	return a
}
