// Package graph provides the node-link view of the registry and its
// serialization types.
//
// # Core Types
//
//   - [Graph]: nodes plus directed, categorized links
//   - [Node]: a registry record identified by "<kind>:<code>"
//   - [Link]: source_id, target_id and relationship_category
//   - [Layout]: a graph with computed 2D positions
//
// # Building and Filtering
//
// [Build] turns classified assignments into a graph whose hierarchy links run
// from parent to child and whose association links run from a metric to the
// entities it uses:
//
//	idx := ontology.NewIndex(collections)
//	g := graph.Build(idx, ontology.Assign(edges, idx, ontology.LastWriteWins))
//	scoped := graph.Filter(g, "value_chain:o2c")
//
// [Filter] walks three hops forward from the root (value chain → module →
// metric → entity) and keeps the links between visited nodes.
//
// # Serialization
//
//	{
//	  "nodes": [{"id": "module:bil", "code": "BIL", "kind": "module", "name": "Billing"}],
//	  "links": [{"source_id": "value_chain:o2c", "target_id": "module:bil",
//	             "relationship_category": "value_chain_module"}]
//	}
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
