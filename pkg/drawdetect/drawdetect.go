// Package drawdetect implements the 50-move rule, threefold repetition and
// insufficient-material draw checks (spec.md §4.3).
package drawdetect

import "github.com/tomgun/saktris/pkg/board"

const (
	repetitionLimit  = 3
	noProgressLimit  = 100 // half-moves
)

// Reason names why a draw was detected. None means "no draw".
type Reason uint8

const (
	None Reason = iota
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

func (r Reason) String() string {
	switch r {
	case FiftyMoveRule:
		return "50-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "none"
	}
}

// Detector tracks position repetition counts and the no-progress clock.
type Detector struct {
	positions      map[board.ZobristHash]int
	halfmoveClock  int
}

func New() *Detector {
	return &Detector{positions: map[board.ZobristHash]int{}}
}

// RecordPosition registers a position hash for repetition counting.
func (d *Detector) RecordPosition(hash board.ZobristHash) {
	d.positions[hash]++
}

// OnMoveMade resets the halfmove clock on any capture or pawn move,
// increments it otherwise (spec.md §4.3).
func (d *Detector) OnMoveMade(wasCapture, wasPawnMove bool) {
	if wasCapture || wasPawnMove {
		d.halfmoveClock = 0
		return
	}
	d.halfmoveClock++
}

func (d *Detector) HalfmoveClock() int {
	return d.halfmoveClock
}

// State returns the position-repetition table and halfmove clock a
// persisted snapshot must round-trip (spec.md §6).
func (d *Detector) State() (positions map[board.ZobristHash]int, halfmoveClock int) {
	out := make(map[board.ZobristHash]int, len(d.positions))
	for h, n := range d.positions {
		out[h] = n
	}
	return out, d.halfmoveClock
}

// Restore rebuilds a Detector from a prior State() call.
func Restore(positions map[board.ZobristHash]int, halfmoveClock int) *Detector {
	d := New()
	for h, n := range positions {
		d.positions[h] = n
	}
	d.halfmoveClock = halfmoveClock
	return d
}

// CheckAllDraws evaluates all three draw conditions in a fixed priority
// order. suppressInsufficientMaterial is set by the caller whenever either
// side still has pending arrivals — new material may yet appear, so a
// materially-bare board is not actually a dead position (spec.md §4.3).
func (d *Detector) CheckAllDraws(hash board.ZobristHash, pos *board.Position, suppressInsufficientMaterial bool) Reason {
	if d.halfmoveClock >= noProgressLimit {
		return FiftyMoveRule
	}
	if d.positions[hash] >= repetitionLimit {
		return ThreefoldRepetition
	}
	if !suppressInsufficientMaterial && pos.HasInsufficientMaterial() {
		return InsufficientMaterial
	}
	return None
}
