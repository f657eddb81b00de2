package search

import (
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/eval"
	"github.com/tomgun/saktris/pkg/piece"
)

// findBestPlacement scores every legal back-row column for side's current
// piece and returns the best one, per spec.md §4.8's placement heuristic:
// central columns generally, edges/corners for rooks, a protected central
// square for the king, and a penalty proportional to piece value if the
// destination is attacked.
func (s Searcher) findBestPlacement(b *board.Board, side piece.Side, current piece.Kind) (Result, bool) {
	rank := side.BackRank()

	bestCol := -1
	bestScore := eval.NegInf
	for col := 0; col < 8; col++ {
		sq := board.NewSquare(col, rank)
		pc := piece.New(current, side)
		if !b.CanPlacePieceAt(sq, pc) {
			continue
		}

		score := placementHeuristic(b, sq, current, side)
		if bestCol == -1 || score > bestScore {
			bestCol, bestScore = col, score
		}
	}
	if bestCol == -1 {
		return Result{}, false
	}

	return Result{
		Column:      bestCol,
		IsPlacement: true,
		Score:       bestScore,
	}, true
}

func placementHeuristic(b *board.Board, sq board.Square, k piece.Kind, side piece.Side) eval.Score {
	var score eval.Score

	switch k {
	case piece.Rook:
		score += edgeBonus(sq)
	case piece.King:
		score += centerProtectionBonus(b, sq, side)
	default:
		score += centerColumnBonus(sq)
	}

	if b.IsSquareAttacked(sq, side) {
		score -= eval.NominalValue(k)
	}
	return score
}

func centerColumnBonus(sq board.Square) eval.Score {
	d := sq.File() - 3
	if d < 0 {
		d = -d
	}
	if sq.File() >= 4 {
		d = sq.File() - 4
	}
	return eval.Score(4 - d)
}

func edgeBonus(sq board.Square) eval.Score {
	if sq.File() == 0 || sq.File() == 7 {
		return 4
	}
	return 0
}

// centerProtectionBonus favors placing the king behind friendly pieces in
// the center files, where it is less likely to be immediately attacked.
func centerProtectionBonus(b *board.Board, sq board.Square, side piece.Side) eval.Score {
	score := centerColumnBonus(sq)
	guards, _ := sq.Add(board.Delta{DFile: 0, DRank: forwardDir(side)})
	if pc, ok := b.PieceAt(guards); ok && pc.Side == side {
		score += 2
	}
	return score
}

func forwardDir(side piece.Side) int {
	if side == piece.White {
		return 1
	}
	return -1
}
