// Package store implements Saktris's single-snapshot persistence format
// (spec.md §6): an explicit Snapshot struct round-tripped through
// encoding/gob, optionally committed to an embedded badger/v4 database
// under one fixed key — grounded on hailam-chessplay's storage package,
// the only pack repo with an embedded persistence layer.
package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	"github.com/tomgun/saktris/pkg/arrival"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/clock"
	"github.com/tomgun/saktris/pkg/drawdetect"
	"github.com/tomgun/saktris/pkg/game"
	"github.com/tomgun/saktris/pkg/piece"
)

// SquareEntry is one occupied board square: its piece and has-moved flag.
// Empty squares are simply absent, so an empty starting board encodes as
// an empty slice rather than 64 zero-value entries.
type SquareEntry struct {
	Square   board.Square
	Piece    piece.Piece
	HasMoved bool
}

// BoardState is the occupancy and touch bookkeeping spec.md §6 names:
// "board occupancy + has_moved per piece", plus en passant target and
// castling rights.
type BoardState struct {
	Occupied         []SquareEntry
	Turn             piece.Side
	TouchSeq         uint64
	Touch            [board.NumSquares]uint64
	FirstBishopColor [piece.NumSide]int
	EnPassant        board.Square
	HasEnPassant     bool
	Castling         board.Castling
}

// ArrivalState mirrors arrival.SideState for both sides, plus the mode and
// frequency needed to reconstruct the Manager (spec.md §6: "arrival-manager
// state (mode, frequency, both queues, both pools, both current pieces,
// both counters, RNG state)").
type ArrivalState struct {
	Mode      arrival.Mode
	Frequency int
	Sides     [2]arrival.SideState
}

// DrawState mirrors drawdetect.Detector (spec.md §6: "position history map
// + half-move clock").
type DrawState struct {
	Positions     map[board.ZobristHash]int
	HalfmoveClock int
}

// ClockState mirrors clock.Clock, present only when the game is timed.
type ClockState struct {
	HasClock       bool
	WhiteRemaining float64
	BlackRemaining float64
	Increment      float64
	Active         piece.Side
	Running        bool
}

// Snapshot is the full persisted game record spec.md §6 names. It is the
// only thing store.Encode/Decode and store.KV operate on; GameState never
// serializes itself directly.
type Snapshot struct {
	Board    BoardState
	Arrivals ArrivalState
	Draws    DrawState
	Clock    ClockState

	History []board.MoveRecord

	MoveCount    int
	Status       game.Status
	Settings     game.Settings
	TimeControlPreset string
}

// BuildSnapshot captures everything a fresh GameState needs to resume an
// in-progress game exactly, reading only through each package's exported
// State()/Restore() accessors (spec.md §6).
func BuildSnapshot(s *game.State, presetName string) Snapshot {
	b := s.Board()
	pos := b.Position()

	var occupied []SquareEntry
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		pc, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		occupied = append(occupied, SquareEntry{Square: sq, Piece: pc, HasMoved: pc.HasMoved})
	}
	epSq, hasEP := pos.EnPassant()

	mode, freq, _, sides := s.Arrivals().State()
	positions, halfmove := s.DrawDetector().State()

	snap := Snapshot{
		Board: BoardState{
			Occupied:         occupied,
			Turn:             b.Turn(),
			TouchSeq:         b.Seq(),
			Touch:            b.Touch(),
			FirstBishopColor: b.FirstBishopColor(),
			EnPassant:        epSq,
			HasEnPassant:     hasEP,
			Castling:         pos.Castling(),
		},
		Arrivals: ArrivalState{
			Mode:      mode,
			Frequency: freq,
			Sides:     sides,
		},
		Draws: DrawState{
			Positions:     positions,
			HalfmoveClock: halfmove,
		},
		History:   s.History(),
		MoveCount: s.MoveCount(),
		Status:    s.Status(),
		Settings:  s.Settings(),
		TimeControlPreset: presetName,
	}

	if c := s.Clock(); c != nil {
		snap.Clock = ClockState{
			HasClock:       true,
			WhiteRemaining: c.Remaining(piece.White),
			BlackRemaining: c.Remaining(piece.Black),
			Increment:      c.Increment(),
			Active:         c.Active(),
			Running:        c.IsRunning(),
		}
	}
	return snap
}

// Encode serializes a Snapshot to a stable gob byte stream (spec.md §6).
func Encode(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("store: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode deserializes a Snapshot previously produced by Encode.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("store: decode snapshot: %w", err)
	}
	return snap, nil
}

// RestoreBoard rebuilds a *board.Board from a BoardState.
func RestoreBoard(bs BoardState) *board.Board {
	pos := board.NewEmptyPosition()
	for _, e := range bs.Occupied {
		pos.Put(e.Square, e.Piece)
	}
	pos.SetCastling(bs.Castling)
	if bs.HasEnPassant {
		pos.SetEnPassant(bs.EnPassant)
	}
	return board.Restore(pos, bs.Turn, bs.TouchSeq, bs.Touch, bs.FirstBishopColor)
}

// RestoreArrivals rebuilds an *arrival.Manager from an ArrivalState. The
// seed only affects arrivals not yet drawn (see arrival.Restore).
func RestoreArrivals(as ArrivalState, seed int64) *arrival.Manager {
	return arrival.Restore(as.Mode, as.Frequency, seed, as.Sides)
}

// RestoreClock rebuilds a *clock.Clock from a ClockState, or returns nil
// for an untimed game.
func RestoreClock(cs ClockState) *clock.Clock {
	if !cs.HasClock {
		return nil
	}
	return clock.Restore(cs.WhiteRemaining, cs.BlackRemaining, cs.Increment, cs.Active, cs.Running)
}

// RestoreDraws rebuilds a *drawdetect.Detector from a DrawState.
func RestoreDraws(ds DrawState) *drawdetect.Detector {
	return drawdetect.Restore(ds.Positions, ds.HalfmoveClock)
}

// LoadSnapshot rebuilds every component of snap and installs them onto s,
// replacing its live game in place (spec.md §6).
func LoadSnapshot(ctx context.Context, s *game.State, snap Snapshot) {
	b := RestoreBoard(snap.Board)
	am := RestoreArrivals(snap.Arrivals, snap.Settings.RNGSeed)
	dd := RestoreDraws(snap.Draws)
	clk := RestoreClock(snap.Clock)
	s.RestoreFrom(ctx, snap.Settings, b, am, dd, clk, snap.Status, snap.MoveCount, snap.History)
}
