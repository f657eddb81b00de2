package eval

import (
	"context"
	"math/rand"

	"github.com/tomgun/saktris/pkg/board"
)

// Random adds a small amount of noise to evaluations, in centipawns, within
// [-limit/2; limit/2]. Used for root move-ordering variety when scores tie
// (spec.md §4.8: "shuffle of root moves ... for variety"). limit <= 0 always
// returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(ctx context.Context, b *board.Board) Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}
