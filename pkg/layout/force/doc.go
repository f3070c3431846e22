// Package force computes 2D node positions with an iterative force
// simulation.
//
// The engine is a pure transition function: [Step] maps one [State] to the
// next and never touches a clock. Pacing is owned by a [Simulation] and a
// swappable [Clock]:
//
//	s := force.Init(ids, edges)
//	sim := &force.Simulation{Clock: force.InstantClock{}}
//	s, err := sim.Run(ctx, s)
//
// [TickerClock] plays the run out in real time (one tick per [Period] for
// [Duration]); [ManualClock] ticks only when advanced, which makes bounded
// runs deterministic in tests. Cancelling the context stops the run at a
// tick boundary.
//
// A new node set needs a fresh [Init]; there is no incremental re-layout.
//
// # Forces
//
// Every tick each node accumulates repulsion 500/max(d,1)² from every other
// node, a spring pull of d·0.01 toward the target of each edge it is the
// source of, and a centering pull of 0.001·(center−pos). Velocities are then
// damped by 0.8, positions integrated and clamped to [50,550]×[50,350].
package force
