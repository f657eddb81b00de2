package game

import (
	"github.com/tomgun/saktris/pkg/arrival"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/search"
)

// Mode selects the turn-taking discipline.
type Mode int

const (
	TwoPlayer Mode = iota
	VsAI
	Action
)

func (m Mode) String() string {
	switch m {
	case VsAI:
		return "vs-ai"
	case Action:
		return "action"
	default:
		return "two-player"
	}
}

// Settings configures a new game (spec.md §6 start_new_game). It replaces
// the source's process-wide Settings singleton (spec.md §9): every game
// carries its own copy, so multiple GameStates never share configuration.
type Settings struct {
	GameMode Mode

	ArrivalMode      arrival.Mode
	ArrivalFrequency int

	TripletClearEnabled bool

	// TimeControl, if non-zero, seeds a Clock. A zero value means untimed.
	TimeSeconds      float64
	IncrementSeconds float64

	UseAI        bool
	AISide       piece.Side
	AIDifficulty search.Difficulty

	ActionMoveCooldown     float64 // default 3.0
	ActionArrivalInterval  float64 // default 8.0
	ActionAIReactionMin    float64 // default 0.4
	ActionAIReactionMax    float64 // default 1.0

	RNGSeed int64
}

// WithDefaults fills in the Action-mode defaults spec.md §4.7 names when the
// caller left them at their zero value.
func (s Settings) WithDefaults() Settings {
	if s.ActionMoveCooldown == 0 {
		s.ActionMoveCooldown = 3.0
	}
	if s.ActionArrivalInterval == 0 {
		s.ActionArrivalInterval = 8.0
	}
	if s.ActionAIReactionMin == 0 {
		s.ActionAIReactionMin = 0.4
	}
	if s.ActionAIReactionMax == 0 {
		s.ActionAIReactionMax = 1.0
	}
	if s.ArrivalFrequency < 1 {
		s.ArrivalFrequency = 1
	}
	return s
}
