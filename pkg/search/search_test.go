package search_test

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
)

func TestFindBestMoveTakesFreeQueen(t *testing.T) {
	b := board.NewBoard(piece.White)
	b.PlacePiece(board.NewSquare(4, 0), piece.New(piece.King, piece.White))
	b.PlacePiece(board.NewSquare(4, 7), piece.New(piece.King, piece.Black))
	b.PlacePiece(board.NewSquare(0, 0), piece.New(piece.Rook, piece.White))
	b.PlacePiece(board.NewSquare(0, 7), piece.New(piece.Queen, piece.Black))

	s := search.Searcher{
		Eval:   eval.Standard(),
		Rand:   rand.New(rand.NewSource(1)),
		Budget: search.Budget{MaxNodes: 100000, MaxTime: 2 * time.Second},
	}
	res := s.FindBestMove(context.Background(), b, piece.White, 2, piece.NoKind, false)

	assert.True(t, res.HasMove)
	assert.Equal(t, board.NewSquare(0, 0), res.Move.From)
	assert.Equal(t, board.NewSquare(0, 7), res.Move.To)
}

func TestFindBestMovePrefersPlacementWhenCurrentPieceExists(t *testing.T) {
	b := board.NewBoard(piece.White)
	b.PlacePiece(board.NewSquare(4, 0), piece.New(piece.King, piece.White))
	b.PlacePiece(board.NewSquare(4, 7), piece.New(piece.King, piece.Black))

	s := search.Searcher{
		Eval:   eval.Standard(),
		Rand:   rand.New(rand.NewSource(1)),
		Budget: search.Budget{MaxNodes: 1000, MaxTime: time.Second},
	}
	res := s.FindBestMove(context.Background(), b, piece.White, 2, piece.Queen, true)

	assert.True(t, res.IsPlacement)
	assert.GreaterOrEqual(t, res.Column, 0)
	assert.Less(t, res.Column, 8)
}

func TestSearchRespectsNodeBudget(t *testing.T) {
	b := board.NewBoard(piece.White)
	for f := 0; f < 8; f++ {
		b.PlacePiece(board.NewSquare(f, 1), piece.New(piece.Pawn, piece.White))
		b.PlacePiece(board.NewSquare(f, 6), piece.New(piece.Pawn, piece.Black))
	}
	b.PlacePiece(board.NewSquare(4, 0), piece.New(piece.King, piece.White))
	b.PlacePiece(board.NewSquare(4, 7), piece.New(piece.King, piece.Black))

	s := search.Searcher{
		Eval:   eval.Standard(),
		Rand:   rand.New(rand.NewSource(1)),
		Budget: search.Budget{MaxNodes: 5},
	}
	res := s.FindBestMove(context.Background(), b, piece.White, 4, piece.NoKind, false)
	assert.True(t, res.Aborted)
	assert.True(t, res.HasMove) // deterministic fallback: first shuffled move
}

func TestFindBestMoveDeliversMate(t *testing.T) {
	b := board.NewBoard(piece.White)
	// Back-rank mate setup: a white rook delivers mate on the black king
	// trapped on the back rank behind its own pawns.
	b.PlacePiece(board.NewSquare(0, 0), piece.New(piece.King, piece.White))
	b.PlacePiece(board.NewSquare(4, 7), piece.New(piece.King, piece.Black))
	b.PlacePiece(board.NewSquare(3, 6), piece.New(piece.Pawn, piece.Black))
	b.PlacePiece(board.NewSquare(4, 6), piece.New(piece.Pawn, piece.Black))
	b.PlacePiece(board.NewSquare(5, 6), piece.New(piece.Pawn, piece.Black))
	b.PlacePiece(board.NewSquare(0, 6), piece.New(piece.Rook, piece.White))

	s := search.Searcher{
		Eval:   eval.Standard(),
		Rand:   rand.New(rand.NewSource(1)),
		Budget: search.Budget{MaxNodes: 100000, MaxTime: 2 * time.Second},
	}
	res := s.FindBestMove(context.Background(), b, piece.White, 1, piece.NoKind, false)
	assert.True(t, res.HasMove)
	assert.Equal(t, board.NewSquare(0, 7), res.Move.To)
}
