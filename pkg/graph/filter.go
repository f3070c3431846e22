package graph

// =============================================================================
// Subgraph Filtering
// =============================================================================

// Filter returns the part of g reachable from root.
//
// An empty root returns g unchanged. Otherwise a breadth-first walk follows
// links forward for exactly [FilterDepth] hops; a link is kept only when both
// endpoints were visited. Root IDs match case-insensitively; a root that is
// not a node of g yields an empty graph. The result's nodes and links are
// always subsets of g's, in g's order.
func Filter(g Graph, root string) Graph {
	if root == "" {
		return g
	}
	if kind, code, ok := ParseNodeID(root); ok {
		root = NodeID(kind, code)
	}
	out := Graph{Nodes: []Node{}, Links: []Link{}}
	if _, ok := g.Node(root); !ok {
		return out
	}

	adj := make(map[string][]string)
	for _, l := range g.Links {
		adj[l.SourceID] = append(adj[l.SourceID], l.TargetID)
	}

	visited := map[string]bool{root: true}
	frontier := []string{root}
	for hop := 0; hop < FilterDepth && len(frontier) > 0; hop++ {
		var next []string
		for _, id := range frontier {
			for _, child := range adj[id] {
				if !visited[child] {
					visited[child] = true
					next = append(next, child)
				}
			}
		}
		frontier = next
	}

	for _, n := range g.Nodes {
		if visited[n.ID] {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, l := range g.Links {
		if visited[l.SourceID] && visited[l.TargetID] {
			out.Links = append(out.Links, l)
		}
	}
	return out
}
