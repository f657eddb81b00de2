// Package piece contains Saktris piece identity: kind, side and the
// has-moved flag consulted by castling and the pawn two-step rule.
package piece

import "fmt"

// Kind represents a chess piece kind with no side. Closed sum of 6 variants.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// ZeroKind and NumKind bound the valid Kind range, excluding NoKind.
const (
	ZeroKind Kind = Pawn
	NumKind  Kind = King + 1
)

func ParseKind(r rune) (Kind, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoKind, false
	}
}

func (k Kind) IsValid() bool {
	return Pawn <= k && k <= King
}

func (k Kind) String() string {
	switch k {
	case NoKind:
		return "-"
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// Side represents the playing side: White or Black.
type Side uint8

const (
	White Side = iota
	Black
)

const (
	ZeroSide Side = White
	NumSide  Side = Black + 1
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// BackRank returns the side's home rank: 0 for White, 7 for Black.
func (s Side) BackRank() int {
	if s == White {
		return 0
	}
	return 7
}

// IsWhite reports whether s is White.
func (s Side) IsWhite() bool {
	return s == White
}

func (s Side) String() string {
	if s == White {
		return "w"
	}
	return "b"
}

// Piece is the (kind, side, has-moved) triple owned exclusively by at most
// one board square, or by an ArrivalManager's current-piece slot.
type Piece struct {
	Kind     Kind
	Side     Side
	HasMoved bool
}

func New(k Kind, s Side) Piece {
	return Piece{Kind: k, Side: s}
}

func (p Piece) IsValid() bool {
	return p.Kind.IsValid()
}

func (p Piece) String() string {
	if p.Side == White {
		return fmt.Sprintf("%c", []rune(p.Kind.String())[0]-32)
	}
	return p.Kind.String()
}

// Allotment is the per-side starting piece count, keyed by kind.
// 8 Pawn, 2 Knight, 2 Bishop, 1 King, 2 Rook, 1 Queen == 16 pieces.
func Allotment() map[Kind]int {
	return map[Kind]int{
		Pawn:   8,
		Knight: 2,
		Bishop: 2,
		Rook:   2,
		Queen:  1,
		King:   1,
	}
}

// AllotmentTotal is the fixed per-side starting piece budget.
const AllotmentTotal = 16
