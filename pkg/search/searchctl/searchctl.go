// Package searchctl wires search.Searcher into the two concurrency variants
// the AI runs under (spec.md §4.9): Cooperative, which yields to the host's
// frame loop every YieldEveryNNodes evaluated nodes, and Native, which runs
// the search on a worker and polls for completion with a watchdog timeout.
package searchctl

import (
	"context"
	"time"

	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/search"
)

// YieldEveryNNodes is the cooperative launcher's yield cadence (spec.md §4.9).
const YieldEveryNNodes = 50

// NativeWatchdog is how long the native launcher's poll loop waits for a
// worker before treating the search as aborted (spec.md §4.9).
const NativeWatchdog = 10 * time.Second

// Request bundles everything a launcher needs to run a search without
// touching the live GameState (spec.md §4.9: "all inputs are copies").
type Request struct {
	Board      *board.Board // already a Clone(), owned by the launcher
	Side       piece.Side
	Depth      int
	Current    piece.Kind
	HasCurrent bool
}

// Progress reports cooperative search progress: fraction in [0,1], or the
// final Result once Done is true.
type Progress struct {
	Fraction float64
	Done     bool
	Result   search.Result
}

// Launcher launches an AI search from a snapshot and returns a Handle plus a
// channel of progress updates, closed when the search finishes or is halted.
type Launcher interface {
	Launch(ctx context.Context, searcher search.Searcher, req Request) (Handle, <-chan Progress)
}

// Handle lets the caller halt a running search. Idempotent.
//
// Advance acknowledges a non-Done Progress and lets the search continue for
// another YieldEveryNNodes nodes. It is the crux of the cooperative variant;
// Native's implementation is a no-op since a native search never yields
// mid-flight — the caller simply keeps polling the Progress channel.
type Handle interface {
	Halt()
	Advance()
}
