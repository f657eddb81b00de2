package arrival_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomgun/saktris/pkg/arrival"
	"github.com/tomgun/saktris/pkg/piece"
)

func TestFirstArrivalBeforeFirstMove(t *testing.T) {
	m := arrival.Initialize(arrival.Fixed, 1, 1)

	assert.True(t, m.ShouldPieceArrive(piece.White))
	assert.NoError(t, m.QueueNextPiece(piece.White))

	k, ok := m.GetCurrentPiece(piece.White)
	assert.True(t, ok)
	assert.Equal(t, piece.Pawn, k)
}

func TestCadenceRespectsFrequency(t *testing.T) {
	m := arrival.Initialize(arrival.Fixed, 2, 1)
	assert.NoError(t, m.QueueNextPiece(piece.White))
	m.PiecePlaced(piece.White)

	m.RecordMove(piece.White)
	assert.False(t, m.ShouldPieceArrive(piece.White))
	m.RecordMove(piece.White)
	assert.True(t, m.ShouldPieceArrive(piece.White))
}

func TestSelectableRejectsUnknownType(t *testing.T) {
	m := arrival.Initialize(arrival.Selectable, 1, 1)
	assert.NoError(t, m.QueueNextPiece(piece.White)) // no-op: draws from pool directly

	for len(m.Pool(piece.White)) > 0 {
		_ = m.SelectFromPool(piece.White, m.Pool(piece.White)[0])
		m.PiecePlaced(piece.White)
	}

	err := m.SelectFromPool(piece.White, piece.Queen)
	assert.ErrorIs(t, err, arrival.ErrNoSuchType)
}

func TestRandomSameSharesOrder(t *testing.T) {
	m := arrival.Initialize(arrival.RandomSame, 1, 42)
	assert.Equal(t, m.Queue(piece.White), m.Queue(piece.Black))
}

func TestBudgetInvariant(t *testing.T) {
	m := arrival.Initialize(arrival.Fixed, 1, 1)
	total := len(m.Queue(piece.White)) + len(m.Pool(piece.White))
	assert.Equal(t, piece.AllotmentTotal, total)
}
