package game

import (
	"context"
	"math/rand"

	"github.com/tomgun/saktris/pkg/arrival"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/clock"
	"github.com/tomgun/saktris/pkg/drawdetect"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/search/searchctl"
)

// StartNewGame resets State to a fresh game under the given Settings
// (spec.md §6). It always succeeds.
func (s *State) StartNewGame(ctx context.Context, settings Settings) {
	settings = settings.WithDefaults()
	s.settings = settings

	s.b = board.NewBoard(piece.White)
	s.zt = board.NewZobristTable(settings.RNGSeed)
	s.am = arrival.Initialize(settings.ArrivalMode, settings.ArrivalFrequency, settings.RNGSeed)
	s.dd = drawdetect.New()
	s.rng = rand.New(rand.NewSource(settings.RNGSeed))

	s.clk = nil
	if settings.TimeSeconds > 0 {
		s.clk = clock.New(settings.TimeSeconds, settings.IncrementSeconds, piece.White)
		s.clk.Start()
	}

	s.status = Playing
	s.moveCount = 0
	s.history = nil
	s.hasPendingPromotion = false

	for side := piece.White; side < piece.NumSide; side++ {
		s.cooldown[side] = 0 // both sides may act immediately at kickoff
	}
	s.arrivalTimer = settings.ActionArrivalInterval
	s.nextArrivalSide = piece.White
	s.hasAIReaction = false
	s.aiActive = false

	s.dd.RecordPosition(s.positionHash())

	s.logw(ctx, "new game: mode=%v arrivals=%v triplet=%v", settings.GameMode, settings.ArrivalMode, settings.TripletClearEnabled)
	s.emit(StatusChanged{Status: s.status})
	s.emit(TurnChanged{Player: s.b.Turn()})
	for side := piece.White; side < piece.NumSide; side++ {
		s.maybeQueueArrival(ctx, side) // both sides hold their first arrival before any move
	}
	s.maybeStartAITurn(ctx)
}

// TryMove attempts a legal move for the side to move. Promotions without an
// explicit promo Kind pause at PromotionNeeded until CompletePromotion
// supplies one (spec.md §4.5).
func (s *State) TryMove(ctx context.Context, from, to board.Square, promo piece.Kind) Result {
	if !s.status.CanAct() {
		return Reject(WrongPhase)
	}
	if s.hasPendingPromotion {
		return Reject(WrongPhase)
	}
	if _, hasCurrent := s.am.GetCurrentPiece(s.b.Turn()); hasCurrent {
		return Reject(WrongPhase)
	}
	if s.settings.GameMode == Action && s.cooldown[s.b.Turn()] > 0 {
		return Reject(CooldownActive)
	}

	if promo == piece.NoKind && s.b.NeedsPromotionChoice(from, to) {
		if _, ok := s.b.FindLegalMove(from, to, piece.Queen); !ok {
			return Reject(IllegalMove)
		}
		s.pendingPromotionFrom = from
		s.pendingPromotionTo = to
		s.promotionSide = s.b.Turn()
		s.hasPendingPromotion = true
		s.emit(PromotionNeeded{Pos: to, Side: s.promotionSide})
		return Success()
	}

	mv, ok := s.b.FindLegalMove(from, to, promo)
	if !ok {
		return Reject(IllegalMove)
	}
	s.applyMove(ctx, mv)
	return Success()
}

// CompletePromotion supplies the deferred promotion Kind for a move that
// paused at PromotionNeeded (spec.md §6).
func (s *State) CompletePromotion(ctx context.Context, promo piece.Kind) Result {
	if !s.hasPendingPromotion {
		return Reject(WrongPhase)
	}
	if promo != piece.Queen && promo != piece.Rook && promo != piece.Bishop && promo != piece.Knight {
		return Reject(PromotionMissing)
	}
	from, to := s.pendingPromotionFrom, s.pendingPromotionTo
	mv, ok := s.b.FindLegalMove(from, to, promo)
	if !ok {
		return Reject(IllegalMove)
	}
	s.hasPendingPromotion = false
	s.applyMove(ctx, mv)
	return Success()
}

// TryPlacePiece places the side's currently queued arrival on its back row
// (spec.md §4.4). Placement does not end the turn; a move still follows.
func (s *State) TryPlacePiece(ctx context.Context, col int) Result {
	if !s.status.CanAct() {
		return Reject(WrongPhase)
	}
	if s.hasPendingPromotion {
		return Reject(WrongPhase)
	}
	side := s.b.Turn()
	kind, ok := s.am.GetCurrentPiece(side)
	if !ok {
		return Reject(WrongPhase)
	}
	sq := board.NewSquare(col, side.BackRank())
	pc := piece.New(kind, side)
	if !s.b.CanPlacePieceAt(sq, pc) {
		return Reject(IllegalPlacement)
	}
	s.b.PlacePiece(sq, pc)
	s.am.PiecePlaced(side)
	s.checkTripletsFrom(ctx, sq)
	return Success()
}

// RequestAIMove launches an asynchronous search for the AI side (spec.md
// §4.9). The caller must keep calling Tick, which polls the search in every
// game mode, until AIThinkingFinished is emitted.
func (s *State) RequestAIMove(ctx context.Context) Result {
	if !s.status.CanAct() {
		return Reject(WrongPhase)
	}
	if s.aiActive {
		return Reject(WrongPhase)
	}
	side := s.b.Turn()
	current, hasCurrent := s.am.GetCurrentPiece(side)

	searcher := newSearcher(s)
	req := searchctl.Request{
		Board:      s.b.Clone(),
		Side:       side,
		Depth:      s.settings.AIDifficulty.Depth(),
		Current:    current,
		HasCurrent: hasCurrent,
	}
	s.emit(AIThinkingStarted{})
	handle, progress := s.Launcher.Launch(ctx, searcher, req)
	s.aiActive = true
	s.aiHandle = handle
	s.aiProg = progress
	return Success()
}

// RestoreFrom replaces State's live board, arrival manager, draw detector
// and clock with the given components and bookkeeping, then re-emits the
// events a fresh attach needs to render correctly — "a fresh UI attached
// to a loaded snapshot must render correctly without replaying events"
// (spec.md §6, §9). Callers build the components via pkg/store's
// RestoreBoard/RestoreArrivals/RestoreDraws/RestoreClock.
func (s *State) RestoreFrom(ctx context.Context, settings Settings, b *board.Board, am *arrival.Manager, dd *drawdetect.Detector, clk *clock.Clock, status Status, moveCount int, history []board.MoveRecord) {
	s.settings = settings
	s.b = b
	s.am = am
	s.dd = dd
	s.zt = board.NewZobristTable(settings.RNGSeed)
	s.clk = clk
	s.status = status
	s.moveCount = moveCount
	s.history = append([]board.MoveRecord(nil), history...)
	s.hasPendingPromotion = false
	s.rng = rand.New(rand.NewSource(settings.RNGSeed))
	s.aiActive = false

	s.logw(ctx, "loaded snapshot: status=%v move=%v", status, moveCount)
	s.emit(StatusChanged{Status: s.status})
	s.emit(TurnChanged{Player: s.b.Turn()})
}

// Tick advances real-time state: the Clock, Action-mode cooldowns and
// arrival timer, and any outstanding AI search (spec.md §4.7, §4.9).
func (s *State) Tick(ctx context.Context, dt float64) {
	if s.status.IsTerminal() {
		return
	}
	if s.clk != nil {
		s.clk.Tick(dt)
		s.emit(ClockTimeUpdated{White: s.clk.Remaining(piece.White), Black: s.clk.Remaining(piece.Black)})
		for side := piece.White; side < piece.NumSide; side++ {
			if s.clk.Expired(side) {
				s.finishWithTimeout(ctx, side)
				return
			}
		}
	}
	if s.aiActive {
		s.pollAI(ctx)
	}
	if s.settings.GameMode == Action {
		s.tickAction(ctx, dt)
	}
}
