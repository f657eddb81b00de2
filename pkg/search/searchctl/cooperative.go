package searchctl

import (
	"context"
	"sync"

	"github.com/tomgun/saktris/pkg/search"
)

// Cooperative runs the search on a goroutine that suspends at every
// YieldEveryNNodes node boundary until the host calls Handle.Advance,
// modeling the single-threaded host's frame loop from spec.md §4.9. Like
// Native, it searches the Board carried in the Request, which the caller
// supplies as a clone of the live board.
type Cooperative struct{}

func (Cooperative) Launch(ctx context.Context, searcher search.Searcher, req Request) (Handle, <-chan Progress) {
	progress := make(chan Progress)
	resume := make(chan bool, 1) // buffered: Advance/Halt never block on goroutine timing
	h := &cooperativeHandle{resume: resume}

	searcher.YieldEvery = YieldEveryNNodes
	searcher.Yield = func(nodes uint64) bool {
		select {
		case progress <- Progress{Fraction: estimateFraction(nodes, searcher.Budget)}:
		case <-ctx.Done():
			return false
		}
		select {
		case ok := <-resume:
			return ok
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(progress)
		res := searcher.FindBestMove(ctx, req.Board, req.Side, req.Depth, req.Current, req.HasCurrent)
		select {
		case progress <- Progress{Fraction: 1, Done: true, Result: res}:
		case <-ctx.Done():
		}
	}()

	return h, progress
}

// estimateFraction gives the host a rough progress bar fill from the node
// budget; time-only budgets report 0 (unknown) until the final update.
func estimateFraction(nodes uint64, budget search.Budget) float64 {
	if budget.MaxNodes == 0 {
		return 0
	}
	f := float64(nodes) / float64(budget.MaxNodes)
	if f > 1 {
		f = 1
	}
	return f
}

type cooperativeHandle struct {
	resume chan bool
	once   sync.Once
}

// Advance lets the host acknowledge a yield and resume the search for
// another YieldEveryNNodes nodes. It must be called once per Progress
// received on the channel that isn't Done.
func (h *cooperativeHandle) Advance() {
	h.resume <- true
}

func (h *cooperativeHandle) Halt() {
	h.once.Do(func() {
		h.resume <- false
	})
}
