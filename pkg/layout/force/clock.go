package force

import (
	"context"
	"sync"
	"time"
)

// Clock paces a [Simulation]. Next blocks until the next tick is due or ctx
// is done, in which case it returns ctx.Err().
type Clock interface {
	Next(ctx context.Context) error
	Stop()
}

// =============================================================================
// TickerClock
// =============================================================================

// TickerClock ticks in real time.
type TickerClock struct {
	ticker *time.Ticker
}

// NewTickerClock returns a clock ticking every period.
func NewTickerClock(period time.Duration) *TickerClock {
	return &TickerClock{ticker: time.NewTicker(period)}
}

func (c *TickerClock) Next(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		return nil
	}
}

func (c *TickerClock) Stop() { c.ticker.Stop() }

// =============================================================================
// InstantClock
// =============================================================================

// InstantClock ticks immediately. Use it to compute a final layout without
// waiting for the animation to play out.
type InstantClock struct{}

func (InstantClock) Next(ctx context.Context) error { return ctx.Err() }

func (InstantClock) Stop() {}

// =============================================================================
// ManualClock
// =============================================================================

// ManualClock ticks only when advanced. It makes runs deterministic in tests.
type ManualClock struct {
	mu      sync.Mutex
	pending int
	notify  chan struct{}
}

// NewManualClock returns a clock with no pending ticks.
func NewManualClock() *ManualClock {
	return &ManualClock{notify: make(chan struct{}, 1)}
}

// Advance releases n ticks.
func (c *ManualClock) Advance(n int) {
	c.mu.Lock()
	c.pending += n
	c.mu.Unlock()
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

func (c *ManualClock) Next(ctx context.Context) error {
	for {
		c.mu.Lock()
		if c.pending > 0 {
			c.pending--
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.notify:
		}
	}
}

func (c *ManualClock) Stop() {}
