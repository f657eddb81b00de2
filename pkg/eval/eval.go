// Package eval contains static position evaluation for the Saktris AI:
// material, positional and tactical scoring in centipawns (spec.md §4.8).
package eval

import (
	"context"

	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/piece"
)

// Evaluator is a static position evaluator. Scores are White-relative
// (positive favors White); callers fold in side-to-move via Unit.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) Score
}

// NominalValue is the standard centipawn value of a piece kind. The King's
// value is large but finite so king-adjacent material swings still compare
// sanely against MaxScore-bounded mate scores.
func NominalValue(k piece.Kind) Score {
	switch k {
	case piece.Pawn:
		return 100
	case piece.Knight:
		return 320
	case piece.Bishop:
		return 330
	case piece.Rook:
		return 500
	case piece.Queen:
		return 900
	case piece.King:
		return 20000
	default:
		return 0
	}
}

// Material sums nominal piece values, White minus Black.
type Material struct{}

func (Material) Evaluate(ctx context.Context, b *board.Board) Score {
	var s Score
	pos := b.Position()
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		pc, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		s += Unit(pc.Side) * NominalValue(pc.Kind)
	}
	return s
}

// centralBonus rewards occupying the central four-by-four, tapering with
// distance from the board's center.
func centralBonus(sq board.Square) Score {
	df := distanceFromCenter(sq.File())
	dr := distanceFromCenter(sq.Rank())
	return Score(6 - df - dr)
}

// distanceFromCenter returns the distance from coord to the nearer of the
// two center files/ranks (3 or 4), in [0,3].
func distanceFromCenter(coord int) int {
	if coord <= 3 {
		return 3 - coord
	}
	return coord - 4
}

// advancementBonus rewards a pawn's progress toward its promotion rank.
func advancementBonus(sq board.Square, side piece.Side) Score {
	rank := sq.Rank()
	if side == piece.Black {
		rank = 7 - rank
	}
	return Score(rank * 8)
}

// Positional adds a small central-control bonus per piece plus a pawn
// advancement bonus, White minus Black.
type Positional struct{}

func (Positional) Evaluate(ctx context.Context, b *board.Board) Score {
	var s Score
	pos := b.Position()
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		pc, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		bonus := centralBonus(sq)
		if pc.Kind == piece.Pawn {
			bonus += advancementBonus(sq, pc.Side)
		}
		s += Unit(pc.Side) * bonus
	}
	return s
}

// Tactical adds a check bonus: +50 if Black is in check, -50 if White is
// (symmetric in the White-relative convention: being in check is bad for
// the side that's in it).
type Tactical struct{}

func (Tactical) Evaluate(ctx context.Context, b *board.Board) Score {
	var s Score
	if b.IsInCheck(piece.Black) {
		s += 50
	}
	if b.IsInCheck(piece.White) {
		s -= 50
	}
	return s
}

// Composite sums a fixed weighted set of evaluators. Weight 1 reproduces a
// plain sum; callers may scale individual terms (e.g. to mute Positional at
// low difficulty).
type Composite struct {
	Terms []WeightedEvaluator
}

type WeightedEvaluator struct {
	Evaluator Evaluator
	Weight    Score
}

func (c Composite) Evaluate(ctx context.Context, b *board.Board) Score {
	var s Score
	for _, t := range c.Terms {
		s += t.Weight * t.Evaluator.Evaluate(ctx, b)
	}
	return Crop(s)
}

// Standard is the default evaluator used at every difficulty: material,
// positional and tactical terms at unit weight.
func Standard() Evaluator {
	return Composite{Terms: []WeightedEvaluator{
		{Material{}, 1},
		{Positional{}, 1},
		{Tactical{}, 1},
	}}
}
