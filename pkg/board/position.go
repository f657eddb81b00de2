package board

import (
	"fmt"
	"strings"

	"github.com/tomgun/saktris/pkg/piece"
)

// Position is the 8x8 grid of optional pieces plus the metadata needed for
// move generation: castling rights and the en passant target (spec.md §3).
// It does not track game-level metadata (halfmove clock, repetition) — that
// lives in pkg/drawdetect.
type Position struct {
	squares   [NumSquares]piece.Piece
	present   [NumSquares]bool
	castling  Castling
	enpassant Square // NoSquare if the last move was not a pawn two-step
}

// NewEmptyPosition returns a position with an empty board, full castling
// rights and no en passant target — the Saktris starting position, since
// pieces arrive from queues rather than starting pre-placed (spec.md §1).
func NewEmptyPosition() *Position {
	return &Position{castling: FullCastingRights, enpassant: NoSquare}
}

// Clone returns an independent copy, safe to hand to a concurrent AI worker
// (spec.md §4.9).
func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

func (p *Position) PieceAt(sq Square) (piece.Piece, bool) {
	if !p.present[sq] {
		return piece.Piece{}, false
	}
	return p.squares[sq], true
}

func (p *Position) IsEmpty(sq Square) bool {
	return !p.present[sq]
}

// Put places a piece on a square, overwriting any prior occupant. Callers
// must ensure the square was vacated first if they care about the old piece.
func (p *Position) Put(sq Square, pc piece.Piece) {
	p.squares[sq] = pc
	p.present[sq] = true
}

// Remove clears a square and returns its prior occupant, if any.
func (p *Position) Remove(sq Square) (piece.Piece, bool) {
	pc, ok := p.PieceAt(sq)
	p.present[sq] = false
	p.squares[sq] = piece.Piece{}
	return pc, ok
}

func (p *Position) Castling() Castling {
	return p.castling
}

func (p *Position) SetCastling(c Castling) {
	p.castling = c
}

// EnPassant returns the target en passant square, if the previous move was a
// pawn two-step. For example after e2e4 the target square is e3.
func (p *Position) EnPassant() (Square, bool) {
	return p.enpassant, p.enpassant != NoSquare
}

func (p *Position) SetEnPassant(sq Square) {
	p.enpassant = sq
}

// FindKing returns the square of the side's king, if one is on the board.
// A side with no king has lost (spec.md §3 invariant).
func (p *Position) FindKing(s piece.Side) (Square, bool) {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if pc, ok := p.PieceAt(sq); ok && pc.Kind == piece.King && pc.Side == s {
			return sq, true
		}
	}
	return 0, false
}

// HasInsufficientMaterial reports K-vs-K, K+minor-vs-K, or same-colored
// K+B-vs-K+B (spec.md §4.3). Callers are responsible for suppressing this
// while arrivals remain pending.
func (p *Position) HasInsufficientMaterial() bool {
	var minors [piece.NumSide][]piece.Kind
	var bishopSquares [piece.NumSide]Square

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		pc, ok := p.PieceAt(sq)
		if !ok || pc.Kind == piece.King {
			continue
		}
		if pc.Kind != piece.Bishop && pc.Kind != piece.Knight {
			return false // any pawn/rook/queen means sufficient material
		}
		minors[pc.Side] = append(minors[pc.Side], pc.Kind)
		if pc.Kind == piece.Bishop {
			bishopSquares[pc.Side] = sq
		}
	}

	total := len(minors[piece.White]) + len(minors[piece.Black])
	switch total {
	case 0:
		return true // K vs K
	case 1:
		return true // K+minor vs K
	case 2:
		if len(minors[piece.White]) == 1 && len(minors[piece.Black]) == 1 &&
			minors[piece.White][0] == piece.Bishop && minors[piece.Black][0] == piece.Bishop {
			return squareColor(bishopSquares[piece.White]) == squareColor(bishopSquares[piece.Black])
		}
		return false
	default:
		return false
	}
}

func squareColor(sq Square) int {
	return (sq.File() + sq.Rank()) % 2
}

func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			if pc, ok := p.PieceAt(sq); ok {
				sb.WriteString(pc.String())
			} else {
				sb.WriteString("-")
			}
		}
		if rank > 0 {
			sb.WriteRune('/')
		}
	}
	ep := "-"
	if p.enpassant != NoSquare {
		ep = p.enpassant.String()
	}
	return fmt.Sprintf("%v %v(%v)", sb.String(), p.castling, ep)
}
