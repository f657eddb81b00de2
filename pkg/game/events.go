package game

import (
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/triplet"
)

// Event is the marker interface for every signal GameState emits (spec.md
// §6 Event API). Events are notifications, not state: a fresh UI attached
// to a loaded snapshot must render correctly without replaying any
// (spec.md §9).
type Event interface {
	isEvent()
}

type base struct{}

func (base) isEvent() {}

type TurnChanged struct {
	base
	Player piece.Side
}

type StatusChanged struct {
	base
	Status Status
}

// GameOverReason names why the game ended (spec.md §6).
type GameOverReason string

const (
	ReasonCheckmate             GameOverReason = "checkmate"
	ReasonStalemate             GameOverReason = "stalemate"
	ReasonTimeout               GameOverReason = "timeout"
	ReasonFiftyMoveRule         GameOverReason = "50-move rule"
	ReasonThreefoldRepetition   GameOverReason = "threefold repetition"
	ReasonInsufficientMaterial  GameOverReason = "insufficient material"
	ReasonTripletClear          GameOverReason = "triplet clear"
	ReasonKingCaptured          GameOverReason = "king captured"
	ReasonKingBumpedOff         GameOverReason = "king bumped off"
)

type GameOver struct {
	base
	Winner piece.Side
	HasWinner bool // false for draws
	Reason GameOverReason
}

type MoveExecuted struct {
	base
	Record board.MoveRecord
}

type PromotionNeeded struct {
	base
	Pos  board.Square
	Side piece.Side
}

type AITurnStarted struct{ base }
type AIThinkingStarted struct{ base }

type AIThinkingFinished struct {
	base
	Aborted bool
}

type AIProgress struct {
	base
	Fraction float64
}

type AIMoveMade struct {
	base
	Record board.MoveRecord
}

type AIPlacementMade struct {
	base
	Side   piece.Side
	Column int
	Piece  piece.Kind
}

type TripletClearing struct {
	base
	Triple    triplet.Triple
	Victim    board.Square
	HasVictim bool
	Direction triplet.Direction
}

type ClockTimeUpdated struct {
	base
	White, Black float64
}

type ClockLowTime struct {
	base
	Side    piece.Side
	Seconds float64
}

type ActionCooldownUpdated struct {
	base
	Side      piece.Side
	Remaining float64
	Max       float64
}

type ActionArrivalWarning struct {
	base
	Side    piece.Side
	Seconds float64
}

type ActionPieceAutoPlaced struct {
	base
	Side   piece.Side
	Column int
	Piece  piece.Kind
}

type ActionPieceBumpedOff struct {
	base
	Pos   board.Square
	Piece piece.Piece
}

// Listener receives events synchronously, in emission order, within a
// single command call (spec.md §5). A listener must not mutate game state.
type Listener func(Event)
