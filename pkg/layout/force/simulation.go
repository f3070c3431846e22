package force

import (
	"context"
	"time"
)

// Simulation drives [Step] from a [Clock] for a bounded number of ticks.
type Simulation struct {
	// Clock paces the run. Nil means a real-time [TickerClock] at Period.
	Clock Clock

	// Ticks bounds the run. Zero means Duration / Period.
	Ticks int

	// OnTick, if set, receives every intermediate state.
	OnTick func(State)
}

// TicksFor returns the number of ticks that fit in duration at period.
func TicksFor(duration, period time.Duration) int {
	if period <= 0 {
		return 0
	}
	return int(duration / period)
}

// Run steps s until the tick budget is spent or ctx is cancelled. Ticks are
// atomic: on cancellation Run returns the last completed state together with
// ctx.Err(). A state without nodes is returned unchanged without waiting.
func (sim *Simulation) Run(ctx context.Context, s State) (State, error) {
	if len(s.Nodes) == 0 {
		return s, nil
	}
	clock := sim.Clock
	if clock == nil {
		clock = NewTickerClock(Period)
	}
	defer clock.Stop()

	ticks := sim.Ticks
	if ticks <= 0 {
		ticks = DefaultTicks
	}

	for i := 0; i < ticks; i++ {
		if err := clock.Next(ctx); err != nil {
			return s, err
		}
		s = Step(s)
		if sim.OnTick != nil {
			sim.OnTick(s)
		}
	}
	return s, nil
}
