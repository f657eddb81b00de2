// Package clock implements Saktris's per-side countdown chess clock with
// increment, driven by the host's frame loop (spec.md §4.4).
package clock

import "github.com/tomgun/saktris/pkg/piece"

// Clock tracks remaining time for both sides plus a shared increment. It is
// advanced externally via Tick(dt) rather than owning a timer of its own, so
// it can be driven by a game loop, a test, or a headless batch runner alike.
type Clock struct {
	remaining [piece.NumSide]float64 // seconds
	increment float64                // seconds, applied on switch_side
	active    piece.Side
	running   bool
}

// New builds a Clock with equal starting time for both sides. It starts
// paused; the caller starts it explicitly once the game begins.
func New(startSeconds, incrementSeconds float64, first piece.Side) *Clock {
	c := &Clock{increment: incrementSeconds, active: first}
	c.remaining[piece.White] = startSeconds
	c.remaining[piece.Black] = startSeconds
	return c
}

func (c *Clock) Start() { c.running = true }
func (c *Clock) Pause() { c.running = false }
func (c *Clock) IsRunning() bool { return c.running }

// Tick deducts dt seconds from the active side's remaining time. It is a
// no-op while paused or once the active side has already expired.
func (c *Clock) Tick(dt float64) {
	if !c.running {
		return
	}
	if c.remaining[c.active] <= 0 {
		return
	}
	c.remaining[c.active] -= dt
	if c.remaining[c.active] < 0 {
		c.remaining[c.active] = 0
	}
}

// SwitchSide credits the side that just moved with the full increment, then
// flips the active side (spec.md §4.4).
func (c *Clock) SwitchSide() {
	c.remaining[c.active] += c.increment
	c.active = c.active.Opponent()
}

// Remaining returns the side's remaining time in seconds.
func (c *Clock) Remaining(s piece.Side) float64 { return c.remaining[s] }

// Active returns the side currently being deducted from.
func (c *Clock) Active() piece.Side { return c.active }

// Expired reports whether the side has run out of time. This is terminal:
// once true for a side, that side has lost on time (spec.md §4.4).
func (c *Clock) Expired(s piece.Side) bool { return c.remaining[s] <= 0 }

// Increment returns the per-switch increment in seconds.
func (c *Clock) Increment() float64 { return c.increment }

// Restore rebuilds a Clock from its persisted fields (spec.md §6).
func Restore(whiteRemaining, blackRemaining, increment float64, active piece.Side, running bool) *Clock {
	c := &Clock{increment: increment, active: active, running: running}
	c.remaining[piece.White] = whiteRemaining
	c.remaining[piece.Black] = blackRemaining
	return c
}
