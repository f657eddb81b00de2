// Package search implements the Saktris AI's negamax/alpha-beta move and
// placement search, with node-count and wall-clock abort guards (spec.md
// §4.8). It mutates its own search board via make_move/undo_move and never
// copies it mid-search.
package search

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/eval"
	"github.com/tomgun/saktris/pkg/piece"
)

// Difficulty maps to a fixed search depth (spec.md §4.8).
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) Depth() int {
	switch d {
	case Easy:
		return 1
	case Hard:
		return 4
	default:
		return 3
	}
}

// Budget bounds a single search: it aborts once either limit is hit
// (spec.md §4.8's MAX_NODES / environment time budget).
type Budget struct {
	MaxNodes uint64
	MaxTime  time.Duration
}

// Result is the outcome of a completed or aborted search: either a move or
// a back-row placement, never both.
type Result struct {
	Move        board.Move
	HasMove     bool
	Column      int // back-row file, valid iff IsPlacement
	IsPlacement bool
	Score       eval.Score
	Nodes       uint64
	Elapsed     time.Duration
	Aborted     bool
}

func (r Result) String() string {
	if r.IsPlacement {
		return fmt.Sprintf("placement col=%v score=%v nodes=%v aborted=%v", r.Column, r.Score, r.Nodes, r.Aborted)
	}
	return fmt.Sprintf("move=%v score=%v nodes=%v aborted=%v", r.Move, r.Score, r.Nodes, r.Aborted)
}

// Searcher is the synchronous entry point shared by both concurrency
// variants (spec.md §4.9): the cooperative launcher runs it to completion
// between yields, the native launcher runs it inside a worker goroutine.
// Rand must be seeded deterministically by the caller for reproducible
// root-move shuffles and placement tie-breaks (spec.md §5).
// YieldFn is called periodically from inside the search with the node count
// so far. Returning false aborts the search at that point (spec.md §4.9's
// cooperative yield). Nil means "never yield".
type YieldFn func(nodes uint64) (resume bool)

type Searcher struct {
	Eval   eval.Evaluator
	Rand   *rand.Rand
	Budget Budget

	// Yield, if set, is invoked every YieldEvery nodes.
	Yield      YieldFn
	YieldEvery uint64
}

// FindBestMove returns the side's placement if a current arrival piece
// exists and any legal placement column is available; otherwise it runs a
// fixed-depth negamax/alpha-beta search and returns the best legal move
// (spec.md §4.8).
func (s Searcher) FindBestMove(ctx context.Context, b *board.Board, side piece.Side, depth int, current piece.Kind, hasCurrent bool) Result {
	start := time.Now()

	if hasCurrent {
		if r, ok := s.findBestPlacement(b, side, current); ok {
			r.Elapsed = time.Since(start)
			return r
		}
		// No legal placement: fall through to move search (spec.md §4.8).
	}

	run := &run{eval: s.Eval, start: start, budget: s.Budget, yield: s.Yield, yieldEvery: s.YieldEvery}

	moves := b.AllLegalMoves(side)
	shuffleMoves(moves, s.Rand)
	if len(moves) == 0 {
		return Result{Elapsed: time.Since(start)}
	}

	best := moves[0]
	bestScore := eval.NegInf
	aborted := false

	for _, m := range moves {
		if run.shouldAbort(ctx) {
			aborted = true
			break
		}
		b.MakeMove(m)
		score := -run.negamax(ctx, b, depth-1, eval.NegInf, -bestScore)
		b.UndoMove()

		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	if run.shouldAbort(ctx) {
		aborted = true
	}

	return Result{
		Move:    best,
		HasMove: true,
		Score:   bestScore,
		Nodes:   run.nodes,
		Elapsed: time.Since(start),
		Aborted: aborted,
	}
}

type run struct {
	eval       eval.Evaluator
	nodes      uint64
	start      time.Time
	budget     Budget
	yield      YieldFn
	yieldEvery uint64
	yielded    bool // sticky: once a yield declines to resume, stay aborted
}

func (r *run) shouldAbort(ctx context.Context) bool {
	if r.yielded {
		return true
	}
	if ctx.Err() != nil {
		return true
	}
	if r.budget.MaxNodes > 0 && r.nodes >= r.budget.MaxNodes {
		return true
	}
	if r.budget.MaxTime > 0 && time.Since(r.start) >= r.budget.MaxTime {
		return true
	}
	if r.yield != nil && r.yieldEvery > 0 && r.nodes%r.yieldEvery == 0 {
		if !r.yield(r.nodes) {
			r.yielded = true
			return true
		}
	}
	return false
}

// negamax returns the score of b.Turn()'s position, from b.Turn()'s
// perspective, searched to depth plies with alpha-beta pruning.
func (r *run) negamax(ctx context.Context, b *board.Board, depth int, alpha, beta eval.Score) eval.Score {
	r.nodes++
	if r.shouldAbort(ctx) {
		return 0
	}

	turn := b.Turn()
	moves := b.AllLegalMoves(turn)
	if len(moves) == 0 {
		if b.IsInCheck(turn) {
			return -eval.Inf // mated: terminal, worst possible for the side to move
		}
		return 0 // stalemate
	}

	if depth == 0 {
		return eval.Unit(turn) * r.eval.Evaluate(ctx, b)
	}

	best := eval.NegInf
	ordered := board.NewMoveList(moves, capturePriority)
	for {
		m, ok := ordered.Next()
		if !ok {
			break
		}

		b.MakeMove(m)
		score := -r.negamax(ctx, b, depth-1, -beta, -alpha)
		b.UndoMove()

		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta || r.shouldAbort(ctx) {
			break
		}
	}
	return best
}

// capturePriority orders captures of more valuable pieces first (MVV),
// so alpha-beta sees strong moves earlier and prunes more of the tree
// (spec.md §4.8).
func capturePriority(m board.Move) board.MovePriority {
	if m.Capture == piece.NoKind {
		return 0
	}
	return board.MovePriority(eval.NominalValue(m.Capture))
}

// shuffleMoves performs an in-place Fisher-Yates shuffle using rng, so root
// move order varies for tie-breaking while staying reproducible given a
// fixed seed (spec.md §4.8, §5). A nil rng leaves the order untouched.
func shuffleMoves(moves []board.Move, rng *rand.Rand) {
	if rng == nil {
		return
	}
	rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
}
