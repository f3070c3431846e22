package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/ontograph/pkg/config"
	"github.com/matzehuels/ontograph/pkg/errors"
	"github.com/matzehuels/ontograph/pkg/graph"
	"github.com/matzehuels/ontograph/pkg/layout/force"
)

func TestLayoutSettings(t *testing.T) {
	engine := config.Default().Engine

	tests := []struct {
		name      string
		engine    config.Engine
		opts      layoutOpts
		wantTicks int
	}{
		{"from config", engine, layoutOpts{}, 60},
		{"flag wins", engine, layoutOpts{ticks: 7}, 7},
		{"custom period", config.Engine{LayoutDuration: config.Duration(time.Second), LayoutPeriod: config.Duration(100 * time.Millisecond)}, layoutOpts{}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo := layoutSettings(tt.engine, tt.opts)
			if lo.Ticks != tt.wantTicks {
				t.Errorf("ticks = %d, want %d", lo.Ticks, tt.wantTicks)
			}
			if lo.Clock != nil {
				t.Error("clock should be left to the instant default")
			}
		})
	}

	lo := layoutSettings(engine, layoutOpts{animate: true})
	clock, ok := lo.Clock.(*force.TickerClock)
	if !ok {
		t.Fatalf("animate clock = %T, want *force.TickerClock", lo.Clock)
	}
	clock.Stop()
}

func TestLayoutCommandGraph(t *testing.T) {
	snap := writeSnapshot(t)
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "graph.json")
	layoutPath := filepath.Join(dir, "layout.json")

	if _, err := runCLI(t, "", "graph", "--source", snap, "-o", graphPath); err != nil {
		t.Fatalf("graph: %v", err)
	}
	if _, err := runCLI(t, "", "layout", graphPath, "--ticks", "20", "-o", layoutPath); err != nil {
		t.Fatalf("layout: %v", err)
	}

	g, _ := graph.ReadGraphFile(graphPath)
	l, err := graph.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if len(l.Nodes) != len(g.Nodes) {
		t.Errorf("layout has %d nodes, graph %d", len(l.Nodes), len(g.Nodes))
	}
	for _, p := range l.Nodes {
		if p.X < force.MinX || p.X > force.MaxX || p.Y < force.MinY || p.Y > force.MaxY {
			t.Errorf("%s at (%.1f, %.1f) is outside the frame", p.ID, p.X, p.Y)
		}
	}
}

func TestLayoutCommandDiagramSVG(t *testing.T) {
	dir := t.TempDir()
	diagram := filepath.Join(dir, "invoice.mmd")
	if err := os.WriteFile(diagram, []byte(testDiagram), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "layout.svg")

	args := []string{"layout", diagram, "--diagram", "--focus", "Invoice", "-f", "svg", "--highlight", "Invoice", "--ticks", "10", "-o", out}
	if _, err := runCLI(t, "", args...); err != nil {
		t.Fatalf("layout: %v", err)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "<svg") || !strings.Contains(string(data), "InvoiceLine") {
		t.Errorf("unexpected SVG:\n%.200s", data)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{not json"), 0644)

	if _, err := runCLI(t, "", "layout", bad, "-f", "dot"); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("dot layout: err = %v, want INVALID_FORMAT", err)
	}
	if _, err := runCLI(t, "", "layout", bad); err == nil {
		t.Error("malformed graph should fail")
	}
	if _, err := runCLI(t, "", "layout", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing input should fail")
	}
}
