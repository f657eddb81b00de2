package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/piece"
)

func TestPawnPushAndJumpSetsEnPassant(t *testing.T) {
	b := board.NewBoard(piece.White)
	e2 := board.NewSquare(4, 1)
	b.PlacePiece(e2, piece.New(piece.Pawn, piece.White))

	moves := b.LegalMoves(e2)
	assert.Len(t, moves, 2) // push one, jump two

	e4 := board.NewSquare(4, 3)
	var jump board.Move
	for _, m := range moves {
		if m.To == e4 {
			jump = m
		}
	}
	b.MakeMove(jump)

	ep, ok := b.Position().EnPassant()
	assert.True(t, ok)
	assert.Equal(t, board.NewSquare(4, 2), ep)
}

func TestEnPassantRoundTrip(t *testing.T) {
	b := board.NewBoard(piece.White)
	whitePawn := board.NewSquare(4, 4) // e5
	blackPawn := board.NewSquare(3, 6) // d7
	b.PlacePiece(whitePawn, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(blackPawn, piece.New(piece.Pawn, piece.Black))

	before := b.Position().String()

	jump, ok := b.FindLegalMove(blackPawn, board.NewSquare(3, 4), piece.NoKind)
	assert.True(t, ok)
	assert.Equal(t, board.Jump, jump.Type)
	b.MakeMove(jump)

	ep, ok := b.FindLegalMove(whitePawn, board.NewSquare(3, 5), piece.NoKind)
	assert.True(t, ok)
	assert.Equal(t, board.EnPassant, ep.Type)
	b.MakeMove(ep)

	_, whiteStillThere := b.PieceAt(board.NewSquare(3, 5))
	assert.True(t, whiteStillThere)
	_, blackGone := b.PieceAt(board.NewSquare(3, 4)) // d5, the captured pawn
	assert.False(t, blackGone)

	b.UndoMove()
	b.UndoMove()
	assert.Equal(t, before, b.Position().String())
}

func TestCastlingRoundTrip(t *testing.T) {
	b := board.NewBoard(piece.White)
	e1 := board.NewSquare(4, 0)
	h1 := board.NewSquare(7, 0)
	b.PlacePiece(e1, piece.New(piece.King, piece.White))
	b.PlacePiece(h1, piece.New(piece.Rook, piece.White))

	before := b.Position().String()

	m, ok := b.FindLegalMove(e1, board.NewSquare(6, 0), piece.NoKind)
	assert.True(t, ok)
	assert.Equal(t, board.KingSideCastle, m.Type)
	b.MakeMove(m)

	rook, ok := b.PieceAt(board.NewSquare(5, 0))
	assert.True(t, ok)
	assert.Equal(t, piece.Rook, rook.Kind)

	b.UndoMove()
	assert.Equal(t, before, b.Position().String())
}

func TestBishopColorPlacementRule(t *testing.T) {
	b := board.NewBoard(piece.White)
	dark := board.NewSquare(2, 0) // c1, dark square
	light := board.NewSquare(5, 0) // f1, light square

	assert.True(t, b.CanPlacePieceAt(dark, piece.New(piece.Bishop, piece.White)))
	b.PlacePiece(dark, piece.New(piece.Bishop, piece.White))

	assert.False(t, b.CanPlacePieceAt(light, piece.New(piece.Bishop, piece.White)))
}

func TestCheckDetection(t *testing.T) {
	b := board.NewBoard(piece.White)
	wk := board.NewSquare(4, 0)
	br := board.NewSquare(4, 7)
	b.PlacePiece(wk, piece.New(piece.King, piece.White))
	b.PlacePiece(br, piece.New(piece.Rook, piece.Black))

	assert.True(t, b.IsInCheck(piece.White))
}
