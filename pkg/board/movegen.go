package board

import "github.com/tomgun/saktris/pkg/piece"

var (
	bishopDirs = []Delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs   = []Delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	queenDirs  = append(append([]Delta{}, bishopDirs...), rookDirs...)
	knightDirs = []Delta{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDirs   = queenDirs
)

// PseudoLegalMoves returns every pseudo-legal move for the piece on sq,
// ignoring whether the mover's own king ends up in check (spec.md §4.1).
func (p *Position) PseudoLegalMoves(sq Square) []Move {
	pc, ok := p.PieceAt(sq)
	if !ok {
		return nil
	}

	switch pc.Kind {
	case piece.Bishop:
		return p.slidingMoves(sq, pc, bishopDirs)
	case piece.Rook:
		return p.slidingMoves(sq, pc, rookDirs)
	case piece.Queen:
		return p.slidingMoves(sq, pc, queenDirs)
	case piece.Knight:
		return p.steppingMoves(sq, pc, knightDirs)
	case piece.King:
		return p.kingMoves(sq, pc)
	case piece.Pawn:
		return p.pawnMoves(sq, pc)
	default:
		return nil
	}
}

// AllPseudoLegalMoves returns the pseudo-legal moves for every piece of the
// given side.
func (p *Position) AllPseudoLegalMoves(s piece.Side) []Move {
	var ret []Move
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if pc, ok := p.PieceAt(sq); ok && pc.Side == s {
			ret = append(ret, p.PseudoLegalMoves(sq)...)
		}
	}
	return ret
}

func (p *Position) slidingMoves(from Square, pc piece.Piece, dirs []Delta) []Move {
	var ret []Move
	for _, d := range dirs {
		for to, ok := from.Add(d); ok; to, ok = to.Add(d) {
			if target, occupied := p.PieceAt(to); occupied {
				if target.Side != pc.Side {
					ret = append(ret, Move{Type: Capture, From: from, To: to, Piece: pc.Kind, Capture: target.Kind})
				}
				break
			}
			ret = append(ret, Move{Type: Normal, From: from, To: to, Piece: pc.Kind})
		}
	}
	return ret
}

func (p *Position) steppingMoves(from Square, pc piece.Piece, dirs []Delta) []Move {
	var ret []Move
	for _, d := range dirs {
		to, ok := from.Add(d)
		if !ok {
			continue
		}
		if target, occupied := p.PieceAt(to); occupied {
			if target.Side != pc.Side {
				ret = append(ret, Move{Type: Capture, From: from, To: to, Piece: pc.Kind, Capture: target.Kind})
			}
			continue
		}
		ret = append(ret, Move{Type: Normal, From: from, To: to, Piece: pc.Kind})
	}
	return ret
}

func (p *Position) kingMoves(from Square, pc piece.Piece) []Move {
	ret := p.steppingMoves(from, pc, kingDirs)

	rank := pc.Side.BackRank()
	if from != NewSquare(4, rank) || pc.HasMoved {
		return ret
	}

	ks, qs := castlingRights(pc.Side)

	// Kingside castle: rook on h-file, f/g empty, e/f/g not attacked.
	if p.Castling().IsAllowed(ks) {
		rookSq := NewSquare(7, rank)
		if rookPc, ok := p.PieceAt(rookSq); ok && rookPc.Kind == piece.Rook && !rookPc.HasMoved {
			f, g := NewSquare(5, rank), NewSquare(6, rank)
			if p.IsEmpty(f) && p.IsEmpty(g) &&
				!p.IsAttacked(pc.Side, from) && !p.IsAttacked(pc.Side, f) && !p.IsAttacked(pc.Side, g) {
				ret = append(ret, Move{Type: KingSideCastle, From: from, To: g, Piece: piece.King})
			}
		}
	}
	// Queenside castle: rook on a-file, b/c/d empty, e/d/c not attacked.
	if p.Castling().IsAllowed(qs) {
		rookSq := NewSquare(0, rank)
		if rookPc, ok := p.PieceAt(rookSq); ok && rookPc.Kind == piece.Rook && !rookPc.HasMoved {
			d, c, b := NewSquare(3, rank), NewSquare(2, rank), NewSquare(1, rank)
			if p.IsEmpty(d) && p.IsEmpty(c) && p.IsEmpty(b) &&
				!p.IsAttacked(pc.Side, from) && !p.IsAttacked(pc.Side, d) && !p.IsAttacked(pc.Side, c) {
				ret = append(ret, Move{Type: QueenSideCastle, From: from, To: c, Piece: piece.King})
			}
		}
	}
	return ret
}

func castlingRights(s piece.Side) (kingSide, queenSide Castling) {
	if s == piece.White {
		return WhiteKingSideCastle, WhiteQueenSideCastle
	}
	return BlackKingSideCastle, BlackQueenSideCastle
}

func (p *Position) pawnMoves(from Square, pc piece.Piece) []Move {
	var ret []Move

	dir := 1
	startRank, promoRank := 1, 7
	if pc.Side == piece.Black {
		dir, startRank, promoRank = -1, 6, 0
	}

	addForwardOrPromotion := func(to Square, mtype MoveType, capture piece.Kind) {
		if to.Rank() == promoRank {
			pt := Promotion
			if mtype == Capture {
				pt = CapturePromotion
			}
			for _, promo := range []piece.Kind{piece.Queen, piece.Rook, piece.Bishop, piece.Knight} {
				ret = append(ret, Move{Type: pt, From: from, To: to, Piece: piece.Pawn, Promotion: promo, Capture: capture})
			}
			return
		}
		ret = append(ret, Move{Type: mtype, From: from, To: to, Piece: piece.Pawn, Capture: capture})
	}

	if one, ok := from.Add(Delta{0, dir}); ok && p.IsEmpty(one) {
		addForwardOrPromotion(one, Push, piece.NoKind)
		if from.Rank() == startRank {
			if two, ok2 := from.Add(Delta{0, 2 * dir}); ok2 && p.IsEmpty(two) {
				ret = append(ret, Move{Type: Jump, From: from, To: two, Piece: piece.Pawn})
			}
		}
	}

	ep, hasEP := p.EnPassant()
	for _, df := range []int{-1, 1} {
		to, ok := from.Add(Delta{df, dir})
		if !ok {
			continue
		}
		if target, occupied := p.PieceAt(to); occupied {
			if target.Side != pc.Side {
				addForwardOrPromotion(to, Capture, target.Kind)
			}
			continue
		}
		if hasEP && to == ep {
			behind, _ := to.Add(Delta{0, -dir})
			ret = append(ret, Move{Type: EnPassant, From: from, To: to, Piece: piece.Pawn, Capture: piece.Pawn, EnPassant: behind})
		}
	}
	return ret
}

// IsAttacked returns true iff sq is attacked by the opponent of s. Does not
// consider en passant (a pawn cannot "attack" an empty square for check
// purposes).
func (p *Position) IsAttacked(s piece.Side, sq Square) bool {
	opp := s.Opponent()

	for _, d := range bishopDirs {
		if t, ok := firstOccupant(p, sq, d); ok {
			if pc, _ := p.PieceAt(t); pc.Side == opp && (pc.Kind == piece.Bishop || pc.Kind == piece.Queen) {
				return true
			}
		}
	}
	for _, d := range rookDirs {
		if t, ok := firstOccupant(p, sq, d); ok {
			if pc, _ := p.PieceAt(t); pc.Side == opp && (pc.Kind == piece.Rook || pc.Kind == piece.Queen) {
				return true
			}
		}
	}
	for _, d := range knightDirs {
		if t, ok := sq.Add(d); ok {
			if pc, occ := p.PieceAt(t); occ && pc.Side == opp && pc.Kind == piece.Knight {
				return true
			}
		}
	}
	for _, d := range kingDirs {
		if t, ok := sq.Add(d); ok {
			if pc, occ := p.PieceAt(t); occ && pc.Side == opp && pc.Kind == piece.King {
				return true
			}
		}
	}

	dir := -1
	if opp == piece.Black {
		dir = 1
	}
	for _, df := range []int{-1, 1} {
		if t, ok := sq.Add(Delta{df, dir}); ok {
			if pc, occ := p.PieceAt(t); occ && pc.Side == opp && pc.Kind == piece.Pawn {
				return true
			}
		}
	}
	return false
}

func firstOccupant(p *Position, from Square, d Delta) (Square, bool) {
	for to, ok := from.Add(d); ok; to, ok = to.Add(d) {
		if !p.IsEmpty(to) {
			return to, true
		}
	}
	return 0, false
}

// IsChecked reports whether the side's king is currently attacked.
func (p *Position) IsChecked(s piece.Side) bool {
	k, ok := p.FindKing(s)
	if !ok {
		return false
	}
	return p.IsAttacked(s, k)
}
