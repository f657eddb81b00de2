package eval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/eval"
	"github.com/tomgun/saktris/pkg/piece"
)

func TestMaterialFavorsExtraPiece(t *testing.T) {
	b := board.NewBoard(piece.White)
	b.PlacePiece(board.NewSquare(4, 0), piece.New(piece.King, piece.White))
	b.PlacePiece(board.NewSquare(4, 7), piece.New(piece.King, piece.Black))
	b.PlacePiece(board.NewSquare(3, 0), piece.New(piece.Queen, piece.White))

	s := eval.Material{}.Evaluate(context.Background(), b)
	assert.Equal(t, eval.NominalValue(piece.Queen), s)
}

func TestTacticalPenalizesOwnCheck(t *testing.T) {
	b := board.NewBoard(piece.White)
	b.PlacePiece(board.NewSquare(4, 0), piece.New(piece.King, piece.White))
	b.PlacePiece(board.NewSquare(4, 7), piece.New(piece.Rook, piece.Black))

	s := eval.Tactical{}.Evaluate(context.Background(), b)
	assert.Equal(t, eval.Score(-50), s)
}

func TestPositionalRewardsCentralPawnAdvancement(t *testing.T) {
	b := board.NewBoard(piece.White)
	back := board.NewSquare(4, 1)
	advanced := board.NewSquare(4, 5)

	backScore := eval.Positional{}.Evaluate(context.Background(), withPawnAt(b, back, piece.White))
	advancedScore := eval.Positional{}.Evaluate(context.Background(), withPawnAt(board.NewBoard(piece.White), advanced, piece.White))

	assert.Greater(t, advancedScore, backScore)
}

func withPawnAt(b *board.Board, sq board.Square, side piece.Side) *board.Board {
	b.PlacePiece(sq, piece.New(piece.Pawn, side))
	return b
}

func TestRandomWithinBounds(t *testing.T) {
	r := eval.NewRandom(20, 7)
	b := board.NewBoard(piece.White)
	s := r.Evaluate(context.Background(), b)
	assert.LessOrEqual(t, s, eval.Score(10))
	assert.GreaterOrEqual(t, s, eval.Score(-10))
}

func TestRandomZeroLimitIsZero(t *testing.T) {
	r := eval.NewRandom(0, 7)
	b := board.NewBoard(piece.White)
	assert.Equal(t, eval.Score(0), r.Evaluate(context.Background(), b))
}
