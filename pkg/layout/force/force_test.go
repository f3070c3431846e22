package force

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"
)

func inBounds(n Node) bool {
	return n.X >= MinX && n.X <= MaxX && n.Y >= MinY && n.Y <= MaxY
}

func TestInit(t *testing.T) {
	s := Init([]string{"a", "b", "c", "d"}, nil)
	radius := 90.0 // 50 + 10*4

	want := [][2]float64{
		{CenterX + radius, CenterY},
		{CenterX, CenterY + radius},
		{CenterX - radius, CenterY},
		{CenterX, CenterY - radius},
	}
	for i, n := range s.Nodes {
		if math.Abs(n.X-want[i][0]) > 1e-9 || math.Abs(n.Y-want[i][1]) > 1e-9 {
			t.Errorf("node %s at (%.3f, %.3f), want (%.3f, %.3f)", n.ID, n.X, n.Y, want[i][0], want[i][1])
		}
		if n.VX != 0 || n.VY != 0 {
			t.Errorf("node %s has initial velocity", n.ID)
		}
	}
}

func TestInitRadiusCapped(t *testing.T) {
	ids := make([]string, 40)
	for i := range ids {
		ids[i] = fmt.Sprintf("n%d", i)
	}
	s := Init(ids, nil)
	if got := s.Nodes[0].X; math.Abs(got-(CenterX+200)) > 1e-9 {
		t.Errorf("first node x = %.3f, want %.3f", got, CenterX+200)
	}
	for _, n := range s.Nodes {
		if !inBounds(n) {
			t.Errorf("node %s starts out of bounds at (%.1f, %.1f)", n.ID, n.X, n.Y)
		}
	}
}

func TestStepZeroNodes(t *testing.T) {
	s := Step(State{})
	if len(s.Nodes) != 0 || s.Tick != 0 {
		t.Errorf("Step(empty) = %+v", s)
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	s := Init([]string{"a", "b"}, []Edge{{Source: "a", Target: "b"}})
	before := append([]Node(nil), s.Nodes...)
	_ = Step(s)
	for i := range before {
		if s.Nodes[i] != before[i] {
			t.Fatalf("Step modified its input: %+v -> %+v", before[i], s.Nodes[i])
		}
	}
}

func TestSingleNodeConverges(t *testing.T) {
	s := Init([]string{"only"}, nil)
	if s.Nodes[0].X != CenterX+60 {
		t.Fatalf("start x = %.3f, want %.3f", s.Nodes[0].X, CenterX+60)
	}

	prevX := s.Nodes[0].X
	prevSpeed, peaked := 0.0, false
	for i := 0; i < 3000; i++ {
		s = Step(s)
		n := s.Nodes[0]
		if n.X > prevX+1e-12 {
			t.Fatalf("tick %d: x moved away from center: %.6f -> %.6f", s.Tick, prevX, n.X)
		}
		if n.X < CenterX-1e-9 {
			t.Fatalf("tick %d: x overshot center: %.6f", s.Tick, n.X)
		}
		if n.Y != CenterY {
			t.Fatalf("tick %d: y drifted to %.6f", s.Tick, n.Y)
		}
		speed := math.Hypot(n.VX, n.VY)
		if speed < prevSpeed {
			peaked = true
		} else if peaked && speed > prevSpeed+1e-12 {
			t.Fatalf("tick %d: speed grew after peak: %.9f -> %.9f", s.Tick, prevSpeed, speed)
		}
		prevX, prevSpeed = n.X, speed
	}
	if d := math.Abs(s.Nodes[0].X - CenterX); d > 0.01 {
		t.Errorf("after 3000 ticks distance to center = %.4f", d)
	}
}

func TestBoundedness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(15)
		s := State{}
		for i := 0; i < n; i++ {
			s.Nodes = append(s.Nodes, Node{
				ID: fmt.Sprintf("n%d", i),
				X:  rng.Float64()*1000 - 200,
				Y:  rng.Float64()*1000 - 200,
				VX: rng.NormFloat64() * 100,
				VY: rng.NormFloat64() * 100,
			})
		}
		for i := 0; i < n; i++ {
			s.Edges = append(s.Edges, Edge{Source: s.Nodes[rng.Intn(n)].ID, Target: s.Nodes[rng.Intn(n)].ID})
		}
		for tick := 0; tick < 200; tick++ {
			s = Step(s)
			for _, node := range s.Nodes {
				if !inBounds(node) {
					t.Fatalf("trial %d tick %d: %s at (%.2f, %.2f)", trial, s.Tick, node.ID, node.X, node.Y)
				}
			}
		}
	}
}

func TestCoincidentNodesSeparate(t *testing.T) {
	s := State{Nodes: []Node{{ID: "a", X: 300, Y: 200}, {ID: "b", X: 300, Y: 200}}}
	s = Step(s)
	a, _ := s.Node("a")
	b, _ := s.Node("b")
	if !(b.X > a.X) {
		t.Errorf("a.X = %.2f, b.X = %.2f, want b right of a", a.X, b.X)
	}
	if a.Y != b.Y {
		t.Errorf("coincident nodes separated off-axis: %.2f vs %.2f", a.Y, b.Y)
	}
}

func TestSpringPullsSourceOnly(t *testing.T) {
	// Far apart so repulsion is negligible compared to the spring.
	s := State{
		Nodes: []Node{{ID: "src", X: 100, Y: 200}, {ID: "dst", X: 500, Y: 200}},
		Edges: []Edge{{Source: "src", Target: "dst"}},
	}
	without := Step(State{Nodes: s.Nodes})
	with := Step(s)

	srcWith, _ := with.Node("src")
	srcWithout, _ := without.Node("src")
	if got, want := srcWith.VX-srcWithout.VX, 400*Spring*Damping; math.Abs(got-want) > 1e-9 {
		t.Errorf("spring contribution on source = %.6f, want %.6f", got, want)
	}
	dstWith, _ := with.Node("dst")
	dstWithout, _ := without.Node("dst")
	if dstWith != dstWithout {
		t.Errorf("target affected by spring: %+v vs %+v", dstWith, dstWithout)
	}
}

func TestStepIgnoresDanglingEdges(t *testing.T) {
	s := Init([]string{"a"}, []Edge{{Source: "a", Target: "missing"}})
	got := Step(s)
	want := Step(Init([]string{"a"}, nil))
	if got.Nodes[0] != want.Nodes[0] {
		t.Errorf("dangling edge changed the result: %+v vs %+v", got.Nodes[0], want.Nodes[0])
	}
}

func TestTicksFor(t *testing.T) {
	if got := TicksFor(Duration, Period); got != 60 {
		t.Errorf("TicksFor(Duration, Period) = %d, want 60", got)
	}
	if DefaultTicks != 60 {
		t.Errorf("DefaultTicks = %d, want 60", DefaultTicks)
	}
	if got := TicksFor(time.Second, 0); got != 0 {
		t.Errorf("TicksFor(1s, 0) = %d, want 0", got)
	}
}

func TestSimulationRunBounded(t *testing.T) {
	clock := NewManualClock()
	clock.Advance(DefaultTicks + 10)

	start := Init([]string{"a", "b", "c"}, []Edge{{Source: "a", Target: "b"}})
	sim := &Simulation{Clock: clock}
	got, err := sim.Run(context.Background(), start)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Tick != DefaultTicks {
		t.Errorf("Tick = %d, want %d", got.Tick, DefaultTicks)
	}

	want := Simulate(start, DefaultTicks)
	for i := range want.Nodes {
		if got.Nodes[i] != want.Nodes[i] {
			t.Errorf("node %d = %+v, want %+v", i, got.Nodes[i], want.Nodes[i])
		}
	}
}

func TestSimulationCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := NewManualClock()
	clock.Advance(5)

	var seen int
	sim := &Simulation{
		Clock: clock,
		OnTick: func(s State) {
			seen++
			if s.Tick == 5 {
				cancel()
			}
		},
	}
	got, err := sim.Run(ctx, Init([]string{"a", "b"}, nil))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got.Tick != 5 || seen != 5 {
		t.Errorf("stopped at tick %d after %d callbacks, want 5", got.Tick, seen)
	}
}

func TestSimulationZeroNodes(t *testing.T) {
	sim := &Simulation{}
	got, err := sim.Run(context.Background(), State{})
	if err != nil || got.Tick != 0 {
		t.Errorf("Run(empty) = %+v, %v", got, err)
	}
}

func TestTickerClock(t *testing.T) {
	sim := &Simulation{Clock: NewTickerClock(time.Millisecond), Ticks: 3}
	got, err := sim.Run(context.Background(), Init([]string{"a"}, nil))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Tick != 3 {
		t.Errorf("Tick = %d, want 3", got.Tick)
	}
}

func TestInstantClockHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sim := &Simulation{Clock: InstantClock{}}
	got, err := sim.Run(ctx, Init([]string{"a"}, nil))
	if !errors.Is(err, context.Canceled) || got.Tick != 0 {
		t.Errorf("Run(cancelled) = tick %d, %v", got.Tick, err)
	}
}
