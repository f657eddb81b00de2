package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/piece"
)

func TestHasAnyLegalPlacementFalseWhenBackRowFull(t *testing.T) {
	s := newTestGame(t, baseSettings())
	rank := piece.White.BackRank()
	for col := 0; col < 8; col++ {
		s.b.PlacePiece(board.NewSquare(col, rank), piece.New(piece.Pawn, piece.White))
	}

	assert.False(t, s.hasAnyLegalPlacement(piece.White, piece.Rook))
}

func TestHasAnyLegalPlacementTrueWhenColumnOpen(t *testing.T) {
	s := newTestGame(t, baseSettings())
	rank := piece.White.BackRank()
	for col := 0; col < 7; col++ {
		s.b.PlacePiece(board.NewSquare(col, rank), piece.New(piece.Pawn, piece.White))
	}

	assert.True(t, s.hasAnyLegalPlacement(piece.White, piece.Rook))
}

// A rook check along the back rank can be broken by interposing the pending
// piece on any empty square between the rook and the king (spec.md §4.5(c)).
func TestHasResolvingPlacementTrueWhenInterpositionBlocksCheck(t *testing.T) {
	s := newTestGame(t, baseSettings())
	rank := piece.White.BackRank()
	king := board.NewSquare(6, rank)
	rook := board.NewSquare(0, rank)
	s.b.PlacePiece(king, piece.New(piece.King, piece.White))
	s.b.PlacePiece(rook, piece.New(piece.Rook, piece.Black))

	assert.True(t, s.b.IsInCheck(piece.White))
	assert.True(t, s.hasResolvingPlacement(piece.White, piece.Pawn))
}

// A knight check cannot be blocked by interposition, so no back-row
// placement extinguishes it even though open columns exist.
func TestHasResolvingPlacementFalseWhenCheckIsUnblockable(t *testing.T) {
	s := newTestGame(t, baseSettings())
	rank := piece.White.BackRank()
	king := board.NewSquare(3, rank)
	knight := board.NewSquare(1, rank+1)
	s.b.PlacePiece(king, piece.New(piece.King, piece.White))
	s.b.PlacePiece(knight, piece.New(piece.Knight, piece.Black))

	assert.True(t, s.b.IsInCheck(piece.White))
	assert.False(t, s.hasResolvingPlacement(piece.White, piece.Pawn))
}

// bumpColumn shifts a column's occupants one rank further from the back
// rank, capturing only the piece pushed past the far edge (spec.md §4.7).
func TestBumpColumnShiftsOccupantsAndCapturesFarPiece(t *testing.T) {
	s := newTestGame(t, baseSettings())
	col := 2

	far := board.NewSquare(col, 7)
	mid := board.NewSquare(col, 1)
	s.b.PlacePiece(far, piece.New(piece.Rook, piece.White))
	s.b.PlacePiece(mid, piece.New(piece.Pawn, piece.White))

	var bumped ActionPieceBumpedOff
	s.Subscribe(func(e Event) {
		if b, ok := e.(ActionPieceBumpedOff); ok {
			bumped = b
		}
	})

	ended := s.bumpColumn(context.Background(), col, piece.White)
	assert.False(t, ended)

	assert.Equal(t, piece.Rook, bumped.Piece.Kind)
	_, stillAtFar := s.b.PieceAt(far)
	assert.False(t, stillAtFar, "the piece pushed past the far edge must be removed")

	_, stillAtMid := s.b.PieceAt(mid)
	assert.False(t, stillAtMid)
	shifted, ok := s.b.PieceAt(board.NewSquare(col, 2))
	assert.True(t, ok, "the middle piece must shift one rank further from the back rank")
	assert.Equal(t, piece.Pawn, shifted.Kind)

	_, backRowOccupied := s.b.PieceAt(board.NewSquare(col, 0))
	assert.False(t, backRowOccupied, "the cascade must empty the back-rank square for the new arrival")
}

// A king ejected off the far edge by the column bump loses the game
// immediately (spec.md §4.7, §6, §7 KingLost), the win condition that was
// previously unreachable.
func TestBumpColumnEjectedKingEndsGame(t *testing.T) {
	s := newTestGame(t, baseSettings())
	col := 4
	far := board.NewSquare(col, 0) // far edge for Black is rank 0, across the board from its rank-7 back rank
	s.b.PlacePiece(far, piece.New(piece.King, piece.Black))

	var over GameOver
	s.Subscribe(func(e Event) {
		if g, ok := e.(GameOver); ok {
			over = g
		}
	})

	ended := s.bumpColumn(context.Background(), col, piece.Black)
	assert.True(t, ended)
	assert.Equal(t, Checkmate, s.Status())
	assert.Equal(t, ReasonKingBumpedOff, over.Reason)
	assert.Equal(t, piece.White, over.Winner)
}
