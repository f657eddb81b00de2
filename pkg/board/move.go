package board

import (
	"fmt"

	"github.com/tomgun/saktris/pkg/piece"
)

// MoveType indicates the type of move. The no-progress counter is reset by captures and pawn moves;
// castling does not reset it.
type MoveType uint8

const (
	Normal MoveType = iota
	Push            // Pawn move
	Jump            // Pawn 2-square move
	EnPassant       // Implicitly a pawn capture
	QueenSideCastle
	KingSideCastle
	Capture
	Promotion
	CapturePromotion
)

// Move represents a not-necessarily-legal move along with contextual metadata.
type Move struct {
	Type       MoveType
	From, To   Square
	Piece      piece.Kind // the moved piece's kind
	Promotion  piece.Kind // desired piece for promotion, if any
	Capture    piece.Kind // captured piece's kind, if any
	EnPassant  Square     // the en passant victim square, if Type == EnPassant
	Score      Score
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move does not contain contextual information like castling or en passant;
// Board.FindLegalMove resolves that from the board state.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: %q: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: %q: %w", str, err)
	}

	if len(runes) == 5 {
		promo, ok := piece.ParseKind(runes[4])
		if !ok || promo == piece.Pawn || promo == piece.King {
			return Move{}, fmt.Errorf("invalid promotion: %q", str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}
	return Move{From: from, To: to}, nil
}

func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion || m.Type == EnPassant
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// MoveRecord captures everything needed to undo an executed move without
// copying the board: the move itself plus prior board metadata. Pushed by
// Board.MakeMove and popped by Board.UndoMove (spec.md §3, §9).
type MoveRecord struct {
	Move Move

	MovedHasMoved    bool // the moved piece's HasMoved flag before the move
	CapturedPiece    piece.Piece
	CapturedAt       Square // differs from Move.To only for en passant

	RookFrom, RookTo Square // set iff castling
	RookHasMoved     bool

	PriorEnPassant Square
	PriorCastling  Castling
	PriorHalfmove  int

	// PriorTouch restores the lastTouch sequence number of every square this
	// move modified (From, To, RookFrom/RookTo, CapturedAt), so UndoMove can
	// exactly reverse the touch bookkeeping TripletClear depends on.
	PriorTouch map[Square]uint64
}
