// Package game implements the Saktris orchestrator: it owns the Board,
// ArrivalManager, DrawDetector, optional Clock and AI wiring, and is the
// only component permitted to mutate the live Board (spec.md §4.5, §5).
package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/seekerror/logw"

	"github.com/tomgun/saktris/pkg/arrival"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/clock"
	"github.com/tomgun/saktris/pkg/drawdetect"
	"github.com/tomgun/saktris/pkg/eval"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/search"
	"github.com/tomgun/saktris/pkg/search/searchctl"
)

// State orchestrates a single Saktris game. All board mutation flows
// through it; external observers read only via emitted events
// (spec.md §2 dependency order).
type State struct {
	settings Settings

	b  *board.Board
	am *arrival.Manager
	dd *drawdetect.Detector
	zt *board.ZobristTable
	clk *clock.Clock

	status      Status
	moveCount   int
	history     []board.MoveRecord

	pendingPromotionFrom board.Square
	pendingPromotionTo   board.Square
	hasPendingPromotion  bool
	promotionSide        piece.Side

	rng *rand.Rand

	listeners []Listener

	// Action-mode runtime state (spec.md §4.7).
	cooldown        [piece.NumSide]float64
	arrivalTimer    float64
	nextArrivalSide piece.Side
	aiReactionWait  float64
	hasAIReaction   bool

	// AI wiring.
	Launcher searchctl.Launcher
	Eval     eval.Evaluator
	aiActive bool
	aiHandle searchctl.Handle
	aiProg   <-chan searchctl.Progress
}

// New constructs an idle State. Call StartNewGame before issuing commands.
func New() *State {
	return &State{
		Launcher: searchctl.Cooperative{},
		Eval:     eval.Standard(),
	}
}

func (s *State) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *State) emit(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

func (s *State) Status() Status          { return s.status }
func (s *State) Board() *board.Board     { return s.b }
func (s *State) CurrentPlayer() piece.Side { return s.b.Turn() }
func (s *State) MoveCount() int          { return s.moveCount }
func (s *State) Settings() Settings      { return s.settings }
func (s *State) Clock() *clock.Clock     { return s.clk }
func (s *State) Arrivals() *arrival.Manager { return s.am }
func (s *State) DrawDetector() *drawdetect.Detector { return s.dd }

// History returns the move record list played so far, in order.
func (s *State) History() []board.MoveRecord {
	return append([]board.MoveRecord(nil), s.history...)
}

func (s *State) positionHash() board.ZobristHash {
	return s.zt.Hash(s.b.Position(), s.b.Turn())
}

func (s *State) logw(ctx context.Context, format string, args ...interface{}) {
	logw.Infof(ctx, format, args...)
}

// aiBudget returns the search budget for the current launcher, per the
// environment split in spec.md §4.8 (web=3s, native=5s).
func (s *State) aiBudget() search.Budget {
	maxTime := 3 * time.Second
	if _, ok := s.Launcher.(searchctl.Native); ok {
		maxTime = 5 * time.Second
	}
	return search.Budget{MaxNodes: 500000, MaxTime: maxTime}
}
