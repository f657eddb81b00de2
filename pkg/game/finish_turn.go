package game

import (
	"context"

	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/drawdetect"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/triplet"
)

// applyMove commits a legal move and runs the full post-move sequence
// (spec.md §4.5): MoveExecuted, draw-detector bookkeeping, triplet-clear,
// status update, clock switch and next-turn arrival/AI kickoff.
func (s *State) applyMove(ctx context.Context, mv board.Move) {
	mover := s.b.Turn()
	rec := s.b.MakeMove(mv)
	s.history = append(s.history, rec)
	s.moveCount++
	s.am.RecordMove(mover)
	if s.settings.GameMode == Action {
		s.cooldown[mover] = s.settings.ActionMoveCooldown
	}
	s.emit(MoveExecuted{Record: rec})

	wasCapture := rec.CapturedAt != board.NoSquare
	wasPawnMove := mv.Piece == piece.Pawn
	s.dd.OnMoveMade(wasCapture, wasPawnMove)

	if s.checkTripletsFrom(ctx, mv.To) {
		return // game ended via a cascading king capture
	}
	s.finishTurn(ctx)
}

// checkTripletsFrom runs the triplet-clear check centered on sq (spec.md
// §4.6). It reports whether the clear ended the game via king capture.
func (s *State) checkTripletsFrom(ctx context.Context, sq board.Square) bool {
	if !s.settings.TripletClearEnabled {
		return false
	}
	tri, ok := triplet.FindTripletAt(s.b, sq)
	if !ok {
		return false
	}
	owner, _ := s.b.PieceAt(tri[0])

	res := triplet.Resolve(s.b, tri)
	s.emit(TripletClearing{
		Triple:    res.Triple,
		Victim:    res.Victim,
		HasVictim: res.HasVictim,
		Direction: res.Direction,
	})
	res = triplet.Clear(s.b, res)

	if res.KingCaptured {
		s.finishWithWinner(ctx, owner.Side, ReasonKingCaptured)
		return true
	}
	return false
}

// finishTurn runs spec.md §4.5's status/draw/clock/arrival sequence for the
// side now to move. It assumes the board's turn pointer already reflects
// that side (Board.MakeMove flips it internally).
func (s *State) finishTurn(ctx context.Context) {
	side := s.b.Turn()

	if s.updateStatusFor(ctx, side) {
		return // checkmate or stalemate ended the game
	}

	if reason := s.checkDraws(); reason != drawdetect.None {
		s.finishWithDraw(ctx, drawReasonToGameOver(reason))
		return
	}

	if s.clk != nil {
		s.clk.SwitchSide()
	}

	s.emit(TurnChanged{Player: side})
	s.maybeQueueArrival(ctx, side)
	s.maybeStartAITurn(ctx)
}

// checkDraws evaluates the draw detector against the current position,
// suppressing the insufficient-material check while either side still has
// arrivals pending (spec.md §4.3).
func (s *State) checkDraws() drawdetect.Reason {
	hash := s.positionHash()
	s.dd.RecordPosition(hash)
	suppress := s.am.HasPendingArrivals(piece.White) || s.am.HasPendingArrivals(piece.Black)
	return s.dd.CheckAllDraws(hash, s.b.Position(), suppress)
}

func drawReasonToGameOver(r drawdetect.Reason) GameOverReason {
	switch r {
	case drawdetect.FiftyMoveRule:
		return ReasonFiftyMoveRule
	case drawdetect.ThreefoldRepetition:
		return ReasonThreefoldRepetition
	default:
		return ReasonInsufficientMaterial
	}
}

// updateStatusFor determines Playing/Check/Checkmate/Stalemate for side and
// applies it, reporting whether the game ended. A pending placement can
// keep a side alive with no legal move, but only conditionally (spec.md
// §4.5(c)): in check, only a placement that actually extinguishes the
// check counts as blocking/interposing; out of check, any open back-row
// column is enough to stay in play. The pending piece is the side's
// current piece or, in Selectable mode with nothing selected yet, any kind
// left in its pool. A fully-occupied back row with no legal move is
// checkmate (in check) or stalemate (not) like any other dead end.
func (s *State) updateStatusFor(ctx context.Context, side piece.Side) bool {
	inCheck := s.b.IsInCheck(side)

	if len(s.b.AllLegalMoves(side)) > 0 {
		s.setStatus(checkOrPlaying(inCheck))
		return false
	}

	pending := s.am.Pool(side) // non-empty only in Selectable mode
	if kind, hasCurrent := s.am.GetCurrentPiece(side); hasCurrent {
		pending = []piece.Kind{kind}
	}
	for _, kind := range pending {
		if inCheck {
			if s.hasResolvingPlacement(side, kind) {
				s.setStatus(Check)
				return false
			}
		} else if s.hasAnyLegalPlacement(side, kind) {
			s.setStatus(Playing)
			return false
		}
	}

	if inCheck {
		s.finishWithWinner(ctx, side.Opponent(), ReasonCheckmate)
	} else {
		s.finishWithReason(ctx, Stalemate, ReasonStalemate)
	}
	return true
}

// hasAnyLegalPlacement reports whether any back-row column would currently
// accept side's current piece, ignoring whether it would resolve check.
func (s *State) hasAnyLegalPlacement(side piece.Side, kind piece.Kind) bool {
	rank := side.BackRank()
	pc := piece.New(kind, side)
	for col := 0; col < 8; col++ {
		if s.b.CanPlacePieceAt(board.NewSquare(col, rank), pc) {
			return true
		}
	}
	return false
}

// hasResolvingPlacement reports whether placing side's current piece on
// some back-row column would leave side's king out of check (spec.md
// §4.5(c): "try every back-row square with the opponent's current piece
// ... and see if any extinguishes the check"). It simulates each candidate
// placement directly on the Position, bypassing Board.PlacePiece's touch
// and bishop-lineage bookkeeping so the probe leaves no trace.
func (s *State) hasResolvingPlacement(side piece.Side, kind piece.Kind) bool {
	rank := side.BackRank()
	pc := piece.New(kind, side)
	pos := s.b.Position()

	for col := 0; col < 8; col++ {
		sq := board.NewSquare(col, rank)
		if !s.b.CanPlacePieceAt(sq, pc) {
			continue
		}
		pos.Put(sq, pc)
		stillInCheck := s.b.IsInCheck(side)
		pos.Remove(sq)
		if !stillInCheck {
			return true
		}
	}
	return false
}

func checkOrPlaying(inCheck bool) Status {
	if inCheck {
		return Check
	}
	return Playing
}

func (s *State) setStatus(status Status) {
	if s.status == status {
		return
	}
	s.status = status
	s.emit(StatusChanged{Status: status})
}

func (s *State) finishWithReason(ctx context.Context, status Status, reason GameOverReason) {
	s.status = status
	s.emit(StatusChanged{Status: status})
	s.emit(GameOver{Reason: reason})
	s.logw(ctx, "game over: status=%v reason=%v", status, reason)
}

func (s *State) finishWithWinner(ctx context.Context, winner piece.Side, reason GameOverReason) {
	s.status = Checkmate
	s.emit(StatusChanged{Status: s.status})
	s.emit(GameOver{Winner: winner, HasWinner: true, Reason: reason})
	s.logw(ctx, "game over: winner=%v reason=%v", winner, reason)
}

func (s *State) finishWithDraw(ctx context.Context, reason GameOverReason) {
	s.finishWithReason(ctx, Draw, reason)
}

func (s *State) finishWithTimeout(ctx context.Context, expired piece.Side) {
	if s.clk != nil {
		s.clk.Pause()
	}
	s.status = Timeout
	s.emit(StatusChanged{Status: s.status})
	s.emit(GameOver{Winner: expired.Opponent(), HasWinner: true, Reason: ReasonTimeout})
	s.logw(ctx, "game over: timeout side=%v", expired)
}

// maybeQueueArrival advances side's arrival queue if a piece is due
// (spec.md §4.2).
func (s *State) maybeQueueArrival(ctx context.Context, side piece.Side) {
	if s.status.IsTerminal() {
		return
	}
	if !s.am.ShouldPieceArrive(side) {
		return
	}
	_ = s.am.QueueNextPiece(side)
}

// maybeStartAITurn emits AITurnStarted when it becomes the configured AI
// side's turn (spec.md §4.9). The host is responsible for calling
// RequestAIMove in response.
func (s *State) maybeStartAITurn(ctx context.Context) {
	if s.status.IsTerminal() {
		return
	}
	if !s.settings.UseAI || (s.settings.GameMode != VsAI && s.settings.GameMode != Action) {
		return
	}
	if s.b.Turn() != s.settings.AISide {
		return
	}
	s.hasAIReaction = false
	s.emit(AITurnStarted{})
}
