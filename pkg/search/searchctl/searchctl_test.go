package searchctl_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/eval"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/search"
	"github.com/tomgun/saktris/pkg/search/searchctl"
)

func simpleRequest() searchctl.Request {
	b := board.NewBoard(piece.White)
	b.PlacePiece(board.NewSquare(4, 0), piece.New(piece.King, piece.White))
	b.PlacePiece(board.NewSquare(4, 7), piece.New(piece.King, piece.Black))
	b.PlacePiece(board.NewSquare(0, 0), piece.New(piece.Rook, piece.White))
	return searchctl.Request{Board: b, Side: piece.White, Depth: 2}
}

func TestCooperativeYieldsThenCompletes(t *testing.T) {
	s := search.Searcher{
		Eval:   eval.Standard(),
		Rand:   rand.New(rand.NewSource(1)),
		Budget: search.Budget{MaxNodes: 1000000, MaxTime: 2 * time.Second},
	}

	h, progress := (searchctl.Cooperative{}).Launch(context.Background(), s, simpleRequest())

	var sawYield, sawDone bool
	for p := range progress {
		if p.Done {
			sawDone = true
			assert.True(t, p.Result.HasMove)
			break
		}
		sawYield = true
		h.Advance()
	}
	assert.True(t, sawDone)
	_ = sawYield // depth-2/few-piece searches may finish within the first yield window
}

func TestCooperativeHaltStopsEarly(t *testing.T) {
	s := search.Searcher{
		Eval:   eval.Standard(),
		Rand:   rand.New(rand.NewSource(1)),
		Budget: search.Budget{MaxNodes: 1000000000},
	}
	req := simpleRequest()
	for f := 1; f < 7; f++ {
		req.Board.PlacePiece(board.NewSquare(f, 1), piece.New(piece.Pawn, piece.White))
		req.Board.PlacePiece(board.NewSquare(f, 6), piece.New(piece.Pawn, piece.Black))
	}
	req.Depth = 4

	h, progress := (searchctl.Cooperative{}).Launch(context.Background(), s, req)
	p := <-progress
	assert.False(t, p.Done)
	h.Halt()

	for range progress {
		// drain until closed
	}
}

func TestNativeCompletesWithinWatchdog(t *testing.T) {
	s := search.Searcher{
		Eval:   eval.Standard(),
		Rand:   rand.New(rand.NewSource(1)),
		Budget: search.Budget{MaxNodes: 100000, MaxTime: time.Second},
	}

	_, progress := (searchctl.Native{}).Launch(context.Background(), s, simpleRequest())
	p := <-progress
	assert.True(t, p.Done)
	assert.True(t, p.Result.HasMove)
}
