package sink

import "github.com/matzehuels/ontograph/pkg/graph"

// RenderJSON exports the layout as indented JSON.
func RenderJSON(l graph.Layout) ([]byte, error) {
	return graph.MarshalLayout(l)
}
