package force_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/ontograph/pkg/layout/force"
)

func ExampleSimulation_Run() {
	s := force.Init([]string{"Account", "Lead", "Campaign"}, []force.Edge{
		{Source: "Account", Target: "Lead"},
		{Source: "Lead", Target: "Campaign"},
	})

	sim := &force.Simulation{Clock: force.InstantClock{}}
	s, err := sim.Run(context.Background(), s)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	inside := true
	for _, n := range s.Nodes {
		inside = inside && n.X >= force.MinX && n.X <= force.MaxX && n.Y >= force.MinY && n.Y <= force.MaxY
	}
	fmt.Println("ticks:", s.Tick)
	fmt.Println("inside frame:", inside)
	// Output:
	// ticks: 60
	// inside frame: true
}
