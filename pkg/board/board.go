// Package board contains the Saktris board representation, pseudo/legal
// move generation and make/undo execution.
package board

import (
	"fmt"

	"github.com/tomgun/saktris/pkg/piece"
)

// Board wraps a Position with the mutation history and per-square touch
// bookkeeping TripletClear needs to resolve a pusher. Not thread-safe;
// share only copies (Clone) across goroutines (spec.md §4.9).
type Board struct {
	pos  *Position
	turn piece.Side

	history []MoveRecord
	seq     uint64
	touch   [NumSquares]uint64

	firstBishopColor [piece.NumSide]int // -1 == unset, else 0/1 (squareColor)
}

// NewBoard returns an empty Saktris board (no pieces — they arrive from
// queues) with the given side to move first.
func NewBoard(turn piece.Side) *Board {
	b := &Board{
		pos:  NewEmptyPosition(),
		turn: turn,
	}
	b.firstBishopColor[piece.White] = -1
	b.firstBishopColor[piece.Black] = -1
	return b
}

func (b *Board) Position() *Position {
	return b.pos
}

func (b *Board) Turn() piece.Side {
	return b.turn
}

func (b *Board) PieceAt(sq Square) (piece.Piece, bool) {
	return b.pos.PieceAt(sq)
}

// LastTouch returns the sequence number of the last mutation (move,
// placement or bump) that touched sq, and whether it has ever been touched.
func (b *Board) LastTouch(sq Square) (uint64, bool) {
	s := b.touch[sq]
	return s, s != 0
}

func (b *Board) nextSeq() uint64 {
	b.seq++
	return b.seq
}

// Seq returns the current touch-sequence counter, so a restored board
// issues fresh touch numbers that never collide with persisted ones.
func (b *Board) Seq() uint64 {
	return b.seq
}

// Touch returns the full per-square touch-sequence table a persisted
// snapshot must round-trip so a restored board's triplet-clear pusher
// resolution matches the live game exactly (spec.md §6).
func (b *Board) Touch() [NumSquares]uint64 {
	return b.touch
}

// FirstBishopColor returns each side's locked bishop-square color
// (squareColor(sq), or -1 if unset), the lineage constraint CanPlacePieceAt
// enforces (spec.md §4.4, §6).
func (b *Board) FirstBishopColor() [piece.NumSide]int {
	return b.firstBishopColor
}

// Restore rebuilds a Board from its persisted fields (spec.md §6). pos is
// taken by reference, not cloned — callers pass a freshly built Position.
func Restore(pos *Position, turn piece.Side, seq uint64, touch [NumSquares]uint64, firstBishopColor [piece.NumSide]int) *Board {
	return &Board{
		pos:              pos,
		turn:             turn,
		seq:              seq,
		touch:            touch,
		firstBishopColor: firstBishopColor,
	}
}

// PseudoLegalMoves returns the pseudo-legal moves for the piece on sq.
func (b *Board) PseudoLegalMoves(sq Square) []Move {
	return b.pos.PseudoLegalMoves(sq)
}

// LegalMoves filters PseudoLegalMoves(sq) by "does not leave own king in
// check", via temporary MakeMove/UndoMove (spec.md §4.1).
func (b *Board) LegalMoves(sq Square) []Move {
	pc, ok := b.pos.PieceAt(sq)
	if !ok {
		return nil
	}

	var ret []Move
	for _, m := range b.pos.PseudoLegalMoves(sq) {
		b.MakeMove(m)
		if !b.pos.IsChecked(pc.Side) {
			ret = append(ret, m)
		}
		b.UndoMove()
	}
	return ret
}

// AllLegalMoves returns every legal move for the given side.
func (b *Board) AllLegalMoves(s piece.Side) []Move {
	var ret []Move
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if pc, ok := b.pos.PieceAt(sq); ok && pc.Side == s {
			ret = append(ret, b.LegalMoves(sq)...)
		}
	}
	return ret
}

// FindLegalMove returns the legal move from->to, preferring the given
// promotion kind when the destination requires promotion. ok is false if
// no legal move matches, or if a promotion is required but promo is
// piece.NoKind (the caller must ask again via CompletePromotion).
func (b *Board) FindLegalMove(from, to Square, promo piece.Kind) (Move, bool) {
	var anyPromotion bool
	for _, m := range b.LegalMoves(from) {
		if m.To != to {
			continue
		}
		if m.Type == Promotion || m.Type == CapturePromotion {
			anyPromotion = true
			if m.Promotion == promo {
				return m, true
			}
			continue
		}
		return m, true
	}
	if anyPromotion {
		return Move{}, false
	}
	return Move{}, false
}

// NeedsPromotionChoice reports whether from->to is only reachable via a
// pending promotion, i.e. FindLegalMove needs a non-zero promo kind.
func (b *Board) NeedsPromotionChoice(from, to Square) bool {
	for _, m := range b.LegalMoves(from) {
		if m.To == to && (m.Type == Promotion || m.Type == CapturePromotion) {
			return true
		}
	}
	return false
}

// IsInCheck reports whether the side's king is attacked.
func (b *Board) IsInCheck(s piece.Side) bool {
	return b.pos.IsChecked(s)
}

// IsSquareAttacked reports whether sq is attacked by the opponent of ownSide.
func (b *Board) IsSquareAttacked(sq Square, ownSide piece.Side) bool {
	return b.pos.IsAttacked(ownSide, sq)
}

// MakeMove applies a move without emitting events, for search and internal
// legality checks. Always paired with UndoMove.
func (b *Board) MakeMove(m Move) MoveRecord {
	rec := MoveRecord{
		Move:           m,
		PriorEnPassant: b.mustEnPassant(),
		PriorCastling:  b.pos.Castling(),
		CapturedAt:     NoSquare,
		PriorTouch:     map[Square]uint64{},
	}

	mover, _ := b.pos.PieceAt(m.From)
	rec.MovedHasMoved = mover.HasMoved

	rec.PriorTouch[m.From] = b.touch[m.From]
	rec.PriorTouch[m.To] = b.touch[m.To]

	b.pos.SetEnPassant(NoSquare)

	switch m.Type {
	case EnPassant:
		victim, _ := b.pos.Remove(m.EnPassant)
		rec.CapturedPiece = victim
		rec.CapturedAt = m.EnPassant
		rec.PriorTouch[m.EnPassant] = b.touch[m.EnPassant]
		b.touch[m.EnPassant] = 0
		b.move(m.From, m.To, mover)

	case Jump:
		b.move(m.From, m.To, mover)
		mid := Square((int(m.From) + int(m.To)) / 2)
		b.pos.SetEnPassant(mid)

	case KingSideCastle, QueenSideCastle:
		rank := mover.Side.BackRank()
		var rookFrom, rookTo Square
		if m.Type == KingSideCastle {
			rookFrom, rookTo = NewSquare(7, rank), NewSquare(5, rank)
		} else {
			rookFrom, rookTo = NewSquare(0, rank), NewSquare(3, rank)
		}
		rook, _ := b.pos.PieceAt(rookFrom)
		rec.RookFrom, rec.RookTo = rookFrom, rookTo
		rec.RookHasMoved = rook.HasMoved
		rec.PriorTouch[rookFrom] = b.touch[rookFrom]
		rec.PriorTouch[rookTo] = b.touch[rookTo]

		b.move(m.From, m.To, mover)
		b.move(rookFrom, rookTo, rook)
		b.clearCastlingRights(mover.Side)

	case Capture, CapturePromotion:
		victim, _ := b.pos.Remove(m.To)
		rec.CapturedPiece = victim
		rec.CapturedAt = m.To
		if m.Type == CapturePromotion {
			mover.Kind = m.Promotion
		}
		b.move(m.From, m.To, mover)

	case Promotion:
		mover.Kind = m.Promotion
		b.move(m.From, m.To, mover)

	default: // Normal, Push
		b.move(m.From, m.To, mover)
	}

	if mover.Kind == piece.King || mover.Kind == piece.Rook {
		b.updateCastlingRightsForMoveFrom(mover.Side, m.From)
	}

	rec.PriorHalfmove = 0 // halfmove clock lives in drawdetect, not Board.
	b.history = append(b.history, rec)
	b.turn = b.turn.Opponent()
	return rec
}

// UndoMove reverses the most recent MakeMove.
func (b *Board) UndoMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	rec := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	m := rec.Move

	b.turn = b.turn.Opponent()

	mover, _ := b.pos.Remove(m.To)
	if m.Type == Promotion || m.Type == CapturePromotion {
		mover.Kind = piece.Pawn
	}
	mover.HasMoved = rec.MovedHasMoved
	b.pos.Put(m.From, mover)

	switch m.Type {
	case EnPassant:
		b.pos.Put(rec.CapturedAt, rec.CapturedPiece)
	case Capture, CapturePromotion:
		b.pos.Put(rec.CapturedAt, rec.CapturedPiece)
	case KingSideCastle, QueenSideCastle:
		rook, _ := b.pos.Remove(rec.RookTo)
		rook.HasMoved = rec.RookHasMoved
		b.pos.Put(rec.RookFrom, rook)
	}

	b.pos.SetEnPassant(rec.PriorEnPassant)
	b.pos.SetCastling(rec.PriorCastling)
	for sq, seq := range rec.PriorTouch {
		b.touch[sq] = seq
	}
	return m, true
}

func (b *Board) move(from, to Square, mover piece.Piece) {
	b.pos.Remove(from)
	mover.HasMoved = true
	b.pos.Put(to, mover)
	s := b.nextSeq()
	b.touch[from] = s
	b.touch[to] = s
}

func (b *Board) mustEnPassant() Square {
	if ep, ok := b.pos.EnPassant(); ok {
		return ep
	}
	return NoSquare
}

func (b *Board) clearCastlingRights(s piece.Side) {
	ks, qs := castlingRights(s)
	b.pos.SetCastling(b.pos.Castling() &^ (ks | qs))
}

func (b *Board) updateCastlingRightsForMoveFrom(s piece.Side, from Square) {
	rank := s.BackRank()
	ks, qs := castlingRights(s)
	switch from {
	case NewSquare(4, rank):
		b.clearCastlingRights(s)
	case NewSquare(7, rank):
		b.pos.SetCastling(b.pos.Castling() &^ ks)
	case NewSquare(0, rank):
		b.pos.SetCastling(b.pos.Castling() &^ qs)
	}
}

// CanPlacePieceAt reports whether p can be placed at sq: empty square, on
// the correct back rank, and — for bishops — matching the side's
// established bishop-color square (spec.md §4.1).
func (b *Board) CanPlacePieceAt(sq Square, p piece.Piece) bool {
	if sq.Rank() != p.Side.BackRank() {
		return false
	}
	if !b.pos.IsEmpty(sq) {
		return false
	}
	if p.Kind == piece.Bishop {
		if c := b.firstBishopColor[p.Side]; c != -1 && c != squareColor(sq) {
			return false
		}
	}
	return true
}

// PlacePiece places an arrived piece on the back row, recording bishop
// color lineage and touch bookkeeping.
func (b *Board) PlacePiece(sq Square, p piece.Piece) {
	b.pos.Put(sq, p)
	if p.Kind == piece.Bishop && b.firstBishopColor[p.Side] == -1 {
		b.firstBishopColor[p.Side] = squareColor(sq)
	}
	b.touch[sq] = b.nextSeq()
}

// RemovePieceAt removes a piece regardless of legality — used by
// TripletClear and Action-mode column bumps.
func (b *Board) RemovePieceAt(sq Square) (piece.Piece, bool) {
	p, ok := b.pos.Remove(sq)
	b.touch[sq] = 0
	return p, ok
}

// RelocatePiece moves a piece between two squares outside normal move
// semantics (Action-mode column bump), updating touch bookkeeping.
func (b *Board) RelocatePiece(from, to Square) {
	p, ok := b.pos.Remove(from)
	if !ok {
		return
	}
	b.pos.Put(to, p)
	b.touch[from] = 0
	b.touch[to] = b.nextSeq()
}

// Clone returns an independent copy safe to hand to a concurrent AI worker.
func (b *Board) Clone() *Board {
	cp := &Board{
		pos:              b.pos.Clone(),
		turn:             b.turn,
		seq:              b.seq,
		touch:            b.touch,
		firstBishopColor: b.firstBishopColor,
	}
	cp.history = append([]MoveRecord(nil), b.history...)
	return cp
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, turn=%v}", b.pos, b.turn)
}
