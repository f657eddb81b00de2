package triplet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/triplet"
)

func TestFindTripletAtHorizontalRow(t *testing.T) {
	b := board.NewBoard(piece.White)
	a4 := board.NewSquare(0, 3)
	b4 := board.NewSquare(1, 3)
	c4 := board.NewSquare(2, 3)
	b.PlacePiece(a4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(b4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(c4, piece.New(piece.Pawn, piece.White))

	w, ok := triplet.FindTripletAt(b, b4)
	assert.True(t, ok)
	assert.ElementsMatch(t, []board.Square{a4, b4, c4}, []board.Square{w[0], w[1], w[2]})
}

func TestResolvePushesAwayFromPusherAndFindsVictim(t *testing.T) {
	b := board.NewBoard(piece.White)
	a4 := board.NewSquare(0, 3)
	b4 := board.NewSquare(1, 3)
	c4 := board.NewSquare(2, 3)
	victimSq := board.NewSquare(3, 3) // d4, beyond c4 away from a4

	// c4 and b4 are placed (never moved); a4 arrives last via a move, so it
	// is the pusher and direction points from a4 toward c4 (away from a4).
	b.PlacePiece(c4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(b4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(board.NewSquare(0, 1), piece.New(piece.Pawn, piece.White))
	mv, ok := b.FindLegalMove(board.NewSquare(0, 1), a4, piece.NoKind)
	assert.True(t, ok)
	b.MakeMove(mv)

	b.PlacePiece(victimSq, piece.New(piece.Pawn, piece.Black))

	w, ok := triplet.FindTripletAt(b, c4)
	assert.True(t, ok)

	res := triplet.Resolve(b, w)
	assert.Equal(t, triplet.Direction{DFile: 1, DRank: 0}, res.Direction)
	assert.True(t, res.HasVictim)
	assert.Equal(t, victimSq, res.Victim)
}

func TestResolvePushesAwayFromFresherEndWhenPusherIsMiddle(t *testing.T) {
	b := board.NewBoard(piece.White)
	a4 := board.NewSquare(0, 3)
	b4 := board.NewSquare(1, 3)
	c4 := board.NewSquare(2, 3)

	// a4 is touched first, then c4 (making c4 the fresher of the two ends),
	// then b4 last of all three (making the middle square the pusher). The
	// push direction must go toward the opposite end of the fresher one,
	// i.e. away from c4 and toward a4.
	b.PlacePiece(a4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(c4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(b4, piece.New(piece.Pawn, piece.White))

	w, ok := triplet.FindTripletAt(b, b4)
	assert.True(t, ok)

	res := triplet.Resolve(b, w)
	assert.Equal(t, triplet.Direction{DFile: -1, DRank: 0}, res.Direction)
}

func TestClearRemovesTripleAndVictim(t *testing.T) {
	b := board.NewBoard(piece.White)
	a4 := board.NewSquare(0, 3)
	b4 := board.NewSquare(1, 3)
	c4 := board.NewSquare(2, 3)
	d4 := board.NewSquare(3, 3)

	// a4 is touched last, so it is the pusher and the push runs toward d4.
	b.PlacePiece(c4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(b4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(a4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(d4, piece.New(piece.King, piece.Black))

	w, ok := triplet.FindTripletAt(b, b4)
	assert.True(t, ok)
	res := triplet.Resolve(b, w)
	res = triplet.Clear(b, res)

	assert.True(t, res.HasVictim)
	assert.True(t, res.KingCaptured)

	for _, sq := range []board.Square{a4, b4, c4, d4} {
		_, present := b.PieceAt(sq)
		assert.False(t, present)
	}
}

func TestNoTripletWhenMixedSides(t *testing.T) {
	b := board.NewBoard(piece.White)
	a4 := board.NewSquare(0, 3)
	b4 := board.NewSquare(1, 3)
	c4 := board.NewSquare(2, 3)
	b.PlacePiece(a4, piece.New(piece.Pawn, piece.White))
	b.PlacePiece(b4, piece.New(piece.Pawn, piece.Black))
	b.PlacePiece(c4, piece.New(piece.Pawn, piece.White))

	_, ok := triplet.FindTripletAt(b, b4)
	assert.False(t, ok)
}
