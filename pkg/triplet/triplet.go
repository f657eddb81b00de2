// Package triplet implements the Saktris triplet-clear rule: three
// same-side pieces in a line are removed and a victim beyond the line is
// pushed off, resolved via move-log history (spec.md §4.6).
package triplet

import (
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/piece"
)

// Triple names the three collinear squares that clear, in axis order.
type Triple [3]board.Square

// Direction is a unit step along the clearing axis.
type Direction struct {
	DFile, DRank int
}

// Result describes a resolved triplet-clear.
type Result struct {
	Triple       Triple
	Direction    Direction
	Victim       board.Square // board.NoSquare if HasVictim is false
	HasVictim    bool
	KingCaptured bool
}

// windowsThrough returns the candidate windows of 3 consecutive squares
// along (dfile, drank) that include t.
func windowsThrough(t board.Square, dfile, drank int) []Triple {
	var ret []Triple
	for offset := -2; offset <= 0; offset++ {
		var sqs [3]board.Square
		ok := true
		for i := 0; i < 3; i++ {
			s, valid := t.Add(board.Delta{DFile: dfile * (offset + i), DRank: drank * (offset + i)})
			if !valid {
				ok = false
				break
			}
			sqs[i] = s
		}
		if ok {
			ret = append(ret, Triple(sqs))
		}
	}
	return ret
}

// FindTripletAt searches the row and column through t for three consecutive
// same-side pieces that include t. If several candidate triples exist, the
// one whose pieces are most recently touched (by summed LastTouch) is
// preferred, per spec.md §4.6's "implementation is free to pick any
// deterministic tie-breaker" allowance.
func FindTripletAt(b *board.Board, t board.Square) (Triple, bool) {
	pc, ok := b.PieceAt(t)
	if !ok {
		return Triple{}, false
	}

	var candidates []Triple
	for _, axis := range [][2]int{{1, 0}, {0, 1}} {
		for _, w := range windowsThrough(t, axis[0], axis[1]) {
			if sameSideTriple(b, w, pc.Side) {
				candidates = append(candidates, w)
			}
		}
	}
	if len(candidates) == 0 {
		return Triple{}, false
	}

	best := candidates[0]
	bestTouch := tripleTouchSum(b, best)
	for _, c := range candidates[1:] {
		if s := tripleTouchSum(b, c); s > bestTouch {
			best, bestTouch = c, s
		}
	}
	return best, true
}

func sameSideTriple(b *board.Board, w Triple, side piece.Side) bool {
	for _, sq := range w {
		pc, ok := b.PieceAt(sq)
		if !ok || pc.Side != side {
			return false
		}
	}
	return true
}

func tripleTouchSum(b *board.Board, w Triple) uint64 {
	var sum uint64
	for _, sq := range w {
		if seq, ok := b.LastTouch(sq); ok {
			sum += seq
		}
	}
	return sum
}

// Resolve computes the pusher, push direction and victim for a triple found
// at t, per spec.md §4.6 steps 1-3. It does not mutate the board.
func Resolve(b *board.Board, w Triple) Result {
	dfile, drank := axisOf(w)

	pusherIdx := pickPusher(b, w)
	var dir Direction
	switch pusherIdx {
	case 0:
		dir = Direction{dfile, drank}
	case 2:
		dir = Direction{-dfile, -drank}
	default: // middle is pusher: push toward the opposite end of the most
		// recently touched of the two remaining (end) pieces.
		if mostRecentEnd(b, w) == 0 {
			dir = Direction{dfile, drank} // fresher end is 0: push toward 2
		} else {
			dir = Direction{-dfile, -drank} // fresher end is 2: push toward 0
		}
	}

	res := Result{Triple: w, Direction: dir, Victim: board.NoSquare}

	far := w[farEndIndex(dir, dfile, drank)]
	cur := far
	for {
		next, ok := cur.Add(board.Delta{DFile: dir.DFile, DRank: dir.DRank})
		if !ok {
			break
		}
		if _, occupied := b.PieceAt(next); occupied {
			res.Victim = next
			res.HasVictim = true
			break
		}
		cur = next
	}
	return res
}

func axisOf(w Triple) (int, int) {
	f0, r0 := w[0].File(), w[0].Rank()
	f1, r1 := w[1].File(), w[1].Rank()
	df, dr := 0, 0
	if f1 != f0 {
		df = 1
	}
	if r1 != r0 {
		dr = 1
	}
	return df, dr
}

// farEndIndex returns which end of the triple (0 or 2) scanning for a
// victim continues from, given the push direction runs along (dfile,drank).
func farEndIndex(dir Direction, dfile, drank int) int {
	if dir.DFile == dfile && dir.DRank == drank {
		return 2
	}
	return 0
}

// pickPusher implements spec.md §4.6 step 1: the square last touched (moved
// or placed to) among the three is the pusher.
func pickPusher(b *board.Board, w Triple) int {
	best := 0
	var bestSeq uint64
	haveAny := false
	for i, sq := range w {
		seq, ok := b.LastTouch(sq)
		if !ok {
			continue
		}
		if !haveAny || seq > bestSeq {
			best, bestSeq, haveAny = i, seq, true
		}
	}
	return best
}

// mostRecentEnd returns which end (0 or 2) of the triple was most recently
// touched, used when the pusher resolves to the middle square.
func mostRecentEnd(b *board.Board, w Triple) int {
	s0, _ := b.LastTouch(w[0])
	s2, _ := b.LastTouch(w[2])
	if s2 > s0 {
		return 2
	}
	return 0
}

// Clear removes the triple and, if found, the victim. It reports whether the
// victim was a king — a cascading win condition the caller must act on.
func Clear(b *board.Board, res Result) Result {
	for _, sq := range res.Triple {
		b.RemovePieceAt(sq)
	}
	if res.HasVictim {
		victimPiece, _ := b.PieceAt(res.Victim)
		b.RemovePieceAt(res.Victim)
		res.KingCaptured = victimPiece.Kind == piece.King
	}
	return res
}
