// perft is a movegen debugging tool for the Saktris board package, adapted
// from the teacher's classical-chess perft to a fully-populated Saktris
// starting layout (every piece placed up front, bypassing the arrival
// queues) so move generation and make/unmake correctness can be checked the
// same way: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/seekerror/logw"

	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/piece"
)

var (
	depth  = flag.Int("depth", 4, "Search depth")
	divide = flag.Bool("divide", false, "Print per-root-move counts at the final depth")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	b := standardLayout()

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := search(b, i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v\n", i, nodes, duration.Microseconds())
	}
	logw.Infof(ctx, "perft complete to depth %v", *depth)
}

// standardLayout places a full standard chess starting position directly,
// skipping the arrival queues — perft exercises move generation, not
// placement.
func standardLayout() *board.Board {
	b := board.NewBoard(piece.White)
	backRank := []piece.Kind{
		piece.Rook, piece.Knight, piece.Bishop, piece.Queen,
		piece.King, piece.Bishop, piece.Knight, piece.Rook,
	}
	for _, side := range []piece.Side{piece.White, piece.Black} {
		rank := side.BackRank()
		pawnRank := rank + 1
		if side == piece.Black {
			pawnRank = rank - 1
		}
		for col, kind := range backRank {
			b.PlacePiece(board.NewSquare(col, rank), piece.New(kind, side))
		}
		for col := 0; col < 8; col++ {
			b.PlacePiece(board.NewSquare(col, pawnRank), piece.New(piece.Pawn, side))
		}
	}
	return b
}

func search(b *board.Board, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range b.AllLegalMoves(b.Turn()) {
		b.MakeMove(m)
		count := search(b, depth-1, false)
		b.UndoMove()

		if d {
			fmt.Printf("%v: %v\n", m, count)
		}
		nodes += count
	}
	return nodes
}
