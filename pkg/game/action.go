package game

import (
	"context"

	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/search"
)

// newSearcher builds the Searcher a launcher runs the AI's move/placement
// search with, using the game's own Evaluator and seeded RNG so root-move
// shuffling and placement tie-breaks stay reproducible (spec.md §5).
func newSearcher(s *State) search.Searcher {
	return search.Searcher{
		Eval:   s.Eval,
		Rand:   s.rng,
		Budget: s.aiBudget(),
	}
}

// tickAction advances Action mode's real-time mechanics: per-side move
// cooldowns, the auto-arrival timer and the AI reaction delay (spec.md
// §4.7).
func (s *State) tickAction(ctx context.Context, dt float64) {
	for side := piece.White; side < piece.NumSide; side++ {
		if s.cooldown[side] <= 0 {
			continue
		}
		s.cooldown[side] -= dt
		if s.cooldown[side] < 0 {
			s.cooldown[side] = 0
		}
		s.emit(ActionCooldownUpdated{Side: side, Remaining: s.cooldown[side], Max: s.settings.ActionMoveCooldown})
	}

	s.arrivalTimer -= dt
	switch {
	case s.arrivalTimer <= 0:
		side := s.nextArrivalSide
		s.nextArrivalSide = side.Opponent()
		s.arrivalTimer = s.settings.ActionArrivalInterval
		s.autoArrive(ctx, side)
	case s.arrivalTimer <= 2.0:
		s.emit(ActionArrivalWarning{Side: s.nextArrivalSide, Seconds: s.arrivalTimer})
	}

	s.tickAIReaction(ctx, dt)
}

// autoArrive queues and places side's next piece without waiting for a
// player-issued TryPlacePiece (spec.md §4.7's auto-arrival timer). If every
// back-row column is occupied, a column is chosen and bumped per spec.md
// §4.7's column-shift rule to make room.
func (s *State) autoArrive(ctx context.Context, side piece.Side) {
	if err := s.am.QueueNextPiece(side); err != nil {
		return
	}
	kind, ok := s.am.GetCurrentPiece(side)
	if !ok {
		return
	}

	col, sq, ok := s.chooseAutoColumn(side, kind)
	if !ok {
		col = s.rng.Intn(8)
		sq = board.NewSquare(col, side.BackRank())
		if s.bumpColumn(ctx, col, side) {
			return // a bumped king already ended the game
		}
	}

	pc := piece.New(kind, side)
	if !s.b.CanPlacePieceAt(sq, pc) {
		return
	}
	s.b.PlacePiece(sq, pc)
	s.am.PiecePlaced(side)
	s.emit(ActionPieceAutoPlaced{Side: side, Column: col, Piece: kind})
	s.checkTripletsFrom(ctx, sq)
}

// centerOutColumns lists back-row files ordered by distance from the center,
// the auto-placement heuristic's base preference (spec.md §4.7).
var centerOutColumns = [8]int{3, 4, 2, 5, 1, 6, 0, 7}

// chooseAutoColumn picks an open back-row column for kind, breaking ties
// among the closest-to-center candidates with the game's seeded RNG
// (spec.md §5's determinism requirement).
func (s *State) chooseAutoColumn(side piece.Side, kind piece.Kind) (int, board.Square, bool) {
	rank := side.BackRank()
	pc := piece.New(kind, side)

	var open []int
	for _, col := range centerOutColumns {
		sq := board.NewSquare(col, rank)
		if s.b.CanPlacePieceAt(sq, pc) {
			open = append(open, col)
		}
	}
	if len(open) == 0 {
		return 0, 0, false
	}
	top := open
	if len(top) > 3 {
		top = top[:3]
	}
	col := top[s.rng.Intn(len(top))]
	return col, board.NewSquare(col, rank), true
}

// bumpColumn implements spec.md §4.7's column-shift mechanic: traversing
// col from the rank farthest from side's back rank toward the back rank,
// shifting every occupant one rank further away from the back rank. A
// piece standing on the far-edge rank is pushed off the board and captured
// — a king ends the game immediately, reported via the return value. The
// cascade always empties the back-rank square itself, making
// room for the newly arrived piece.
func (s *State) bumpColumn(ctx context.Context, col int, side piece.Side) bool {
	backRank := side.BackRank()
	dir, farEdge := 1, 7
	if side == piece.Black {
		dir, farEdge = -1, 0
	}

	for r := farEdge; ; r -= dir {
		sq := board.NewSquare(col, r)
		if pc, ok := s.b.PieceAt(sq); ok {
			targetRank := r + dir
			if targetRank < 0 || targetRank > 7 {
				s.b.RemovePieceAt(sq)
				s.emit(ActionPieceBumpedOff{Pos: sq, Piece: pc})
				if pc.Kind == piece.King {
					s.finishWithWinner(ctx, side.Opponent(), ReasonKingBumpedOff)
					return true
				}
			} else {
				s.b.RelocatePiece(sq, board.NewSquare(col, targetRank))
			}
		}
		if r == backRank {
			break
		}
	}
	return false
}

// tickAIReaction samples and counts down a human-like reaction delay before
// the AI acts on its turn in Action mode (spec.md §4.7, §4.9).
func (s *State) tickAIReaction(ctx context.Context, dt float64) {
	if s.settings.GameMode != Action || !s.settings.UseAI {
		return
	}
	if s.b.Turn() != s.settings.AISide || s.aiActive {
		return
	}
	if !s.hasAIReaction {
		lo, hi := s.settings.ActionAIReactionMin, s.settings.ActionAIReactionMax
		s.aiReactionWait = lo + s.rng.Float64()*(hi-lo)
		s.hasAIReaction = true
		return
	}
	s.aiReactionWait -= dt
	if s.aiReactionWait <= 0 {
		s.hasAIReaction = false
		s.RequestAIMove(ctx)
	}
}

// pollAI drains a pending AI search's progress channel without blocking.
// Called from Tick; in Cooperative mode it also resumes the search after
// acknowledging each non-final progress report (spec.md §4.9).
func (s *State) pollAI(ctx context.Context) {
	select {
	case prog, ok := <-s.aiProg:
		if !ok {
			s.aiActive = false
			return
		}
		if !prog.Done {
			s.emit(AIProgress{Fraction: prog.Fraction})
			s.aiHandle.Advance()
			return
		}
		s.aiActive = false
		s.emit(AIThinkingFinished{Aborted: prog.Result.Aborted})
		s.applyAIResult(ctx, prog.Result)
	default:
	}
}

func (s *State) applyAIResult(ctx context.Context, result search.Result) {
	side := s.b.Turn()

	if result.IsPlacement {
		kind, ok := s.am.GetCurrentPiece(side)
		if !ok {
			return
		}
		sq := board.NewSquare(result.Column, side.BackRank())
		pc := piece.New(kind, side)
		if !s.b.CanPlacePieceAt(sq, pc) {
			return
		}
		s.b.PlacePiece(sq, pc)
		s.am.PiecePlaced(side)
		s.emit(AIPlacementMade{Side: side, Column: result.Column, Piece: kind})
		s.checkTripletsFrom(ctx, sq)
		return
	}

	if result.HasMove {
		s.applyMove(ctx, result.Move)
		if n := len(s.history); n > 0 {
			s.emit(AIMoveMade{Record: s.history[n-1]})
		}
	}
}
