package drawdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/drawdetect"
	"github.com/tomgun/saktris/pkg/piece"
)

func TestFiftyMoveRule(t *testing.T) {
	d := drawdetect.New()
	for i := 0; i < 100; i++ {
		d.OnMoveMade(false, false)
	}
	pos := board.NewEmptyPosition()
	assert.Equal(t, drawdetect.FiftyMoveRule, d.CheckAllDraws(0, pos, false))
}

func TestHalfmoveResetsOnCapture(t *testing.T) {
	d := drawdetect.New()
	for i := 0; i < 50; i++ {
		d.OnMoveMade(false, false)
	}
	d.OnMoveMade(true, false)
	assert.Equal(t, 0, d.HalfmoveClock())
}

func TestThreefoldRepetition(t *testing.T) {
	d := drawdetect.New()
	d.RecordPosition(42)
	d.RecordPosition(42)
	d.RecordPosition(42)
	pos := board.NewEmptyPosition()
	assert.Equal(t, drawdetect.ThreefoldRepetition, d.CheckAllDraws(42, pos, false))
}

func TestInsufficientMaterialSuppressedDuringArrivals(t *testing.T) {
	d := drawdetect.New()
	pos := board.NewEmptyPosition()
	pos.Put(board.NewSquare(4, 0), piece.New(piece.King, piece.White))
	pos.Put(board.NewSquare(4, 7), piece.New(piece.King, piece.Black))

	assert.Equal(t, drawdetect.InsufficientMaterial, d.CheckAllDraws(1, pos, false))
	assert.Equal(t, drawdetect.None, d.CheckAllDraws(1, pos, true))
}
