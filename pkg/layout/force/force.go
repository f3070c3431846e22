package force

import (
	"math"
	"time"
)

// Simulation constants. Positions and distances are in diagram units.
const (
	CenterX = 300.0
	CenterY = 200.0

	MinX = 50.0
	MaxX = 550.0
	MinY = 50.0
	MaxY = 350.0

	// Width and Height are the frame the clamp box sits in.
	Width  = MaxX + MinX
	Height = MaxY + MinY

	Repulsion = 500.0
	Spring    = 0.01
	Centering = 0.001
	Damping   = 0.8

	maxRadius  = 200.0
	baseRadius = 50.0
	radiusStep = 10.0
)

// Period and Duration define the default bounded run: one tick every 50ms
// for 3s.
const (
	Period   = 50 * time.Millisecond
	Duration = 3000 * time.Millisecond
)

// DefaultTicks is the number of ticks in a default run.
const DefaultTicks = int(Duration / Period)

// Node is a simulated node.
type Node struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// Edge pulls its source toward its target.
type Edge struct {
	Source string `json:"source_id"`
	Target string `json:"target_id"`
}

// State is one snapshot of the simulation.
type State struct {
	Nodes []Node
	Edges []Edge
	Tick  int
}

// Node returns the node with the given ID.
func (s State) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Init places ids on a circle of radius min(200, 50+10n) around the center,
// node i at angle i/n·2π, with zero velocity. Starting positions are clamped
// to the frame like every later position.
func Init(ids []string, edges []Edge) State {
	n := len(ids)
	s := State{Nodes: make([]Node, n), Edges: append([]Edge(nil), edges...)}
	radius := math.Min(maxRadius, baseRadius+radiusStep*float64(n))
	for i, id := range ids {
		angle := float64(i) / float64(n) * 2 * math.Pi
		s.Nodes[i] = Node{
			ID: id,
			X:  clamp(CenterX+radius*math.Cos(angle), MinX, MaxX),
			Y:  clamp(CenterY+radius*math.Sin(angle), MinY, MaxY),
		}
	}
	return s
}

// Step advances the simulation by one tick. It does not modify s.
//
// All forces read positions from the start of the tick. Velocities are
// accumulated from pairwise repulsion, edge springs (applied to the source
// only) and a pull toward the center, then damped, integrated, and the
// resulting positions clamped to the frame.
func Step(s State) State {
	if len(s.Nodes) == 0 {
		return s
	}
	next := State{
		Nodes: append([]Node(nil), s.Nodes...),
		Edges: s.Edges,
		Tick:  s.Tick + 1,
	}
	cur, nodes := s.Nodes, next.Nodes

	for i := range nodes {
		for j := range cur {
			if i == j {
				continue
			}
			dx, dy := cur[i].X-cur[j].X, cur[i].Y-cur[j].Y
			dist := math.Hypot(dx, dy)
			var ux, uy float64
			if dist == 0 {
				// Coincident nodes: push apart along x, higher index to the right.
				ux = -1
				if i > j {
					ux = 1
				}
			} else {
				ux, uy = dx/dist, dy/dist
			}
			d := math.Max(dist, 1)
			f := Repulsion / (d * d)
			nodes[i].VX += f * ux
			nodes[i].VY += f * uy
		}
	}

	index := make(map[string]int, len(cur))
	for i, n := range cur {
		index[n.ID] = i
	}
	for _, e := range s.Edges {
		src, ok1 := index[e.Source]
		dst, ok2 := index[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		nodes[src].VX += (cur[dst].X - cur[src].X) * Spring
		nodes[src].VY += (cur[dst].Y - cur[src].Y) * Spring
	}

	for i := range nodes {
		n := &nodes[i]
		n.VX += (CenterX - cur[i].X) * Centering
		n.VY += (CenterY - cur[i].Y) * Centering
		n.VX *= Damping
		n.VY *= Damping
		n.X = clamp(cur[i].X+n.VX, MinX, MaxX)
		n.Y = clamp(cur[i].Y+n.VY, MinY, MaxY)
	}
	return next
}

// Simulate runs ticks steps without a clock.
func Simulate(s State, ticks int) State {
	for i := 0; i < ticks; i++ {
		s = Step(s)
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
