package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomgun/saktris/pkg/arrival"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/game"
	"github.com/tomgun/saktris/pkg/piece"
)

func newStartedGame(t *testing.T) *game.State {
	t.Helper()
	s := game.New()
	s.StartNewGame(context.Background(), game.Settings{
		GameMode:         game.TwoPlayer,
		ArrivalMode:      arrival.Fixed,
		ArrivalFrequency: 1,
		RNGSeed:          42,
	})
	return s
}

func TestSnapshotRoundTripsThroughGob(t *testing.T) {
	s := newStartedGame(t)

	col := 4
	require.False(t, s.TryPlacePiece(context.Background(), col).Rejected)

	snap := BuildSnapshot(s, "custom")
	data, err := Encode(snap)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, snap.MoveCount, decoded.MoveCount)
	assert.Equal(t, snap.Status, decoded.Status)
	assert.Equal(t, snap.Settings.RNGSeed, decoded.Settings.RNGSeed)
	assert.Equal(t, "custom", decoded.TimeControlPreset)
	assert.ElementsMatch(t, snap.Board.Occupied, decoded.Board.Occupied)
}

func TestRestoreBoardReproducesOccupancyAndCurrentPlayer(t *testing.T) {
	s := newStartedGame(t)
	require.False(t, s.TryPlacePiece(context.Background(), 3).Rejected)

	snap := BuildSnapshot(s, "")
	restored := RestoreBoard(snap.Board)

	sq := board.NewSquare(3, piece.White.BackRank())
	pc, ok := restored.PieceAt(sq)
	require.True(t, ok)
	assert.Equal(t, piece.Pawn, pc.Kind)
	assert.Equal(t, piece.White, restored.Turn())
}

func TestRestoreArrivalsPreservesQueueAndCurrent(t *testing.T) {
	s := newStartedGame(t)
	snap := BuildSnapshot(s, "")

	restored := RestoreArrivals(snap.Arrivals, snap.Settings.RNGSeed)
	kind, ok := restored.GetCurrentPiece(piece.White)
	require.True(t, ok)
	assert.Equal(t, piece.Pawn, kind)
}

func TestRestoreClockNilWhenUntimed(t *testing.T) {
	s := newStartedGame(t)
	snap := BuildSnapshot(s, "")
	assert.Nil(t, RestoreClock(snap.Clock))
}
