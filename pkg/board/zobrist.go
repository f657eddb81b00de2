package board

import (
	"math/rand"

	"github.com/tomgun/saktris/pkg/piece"
)

// ZobristHash is a position hash covering board occupancy, side-to-move,
// castling rights and en passant target — the minimum needed so that "same
// position" means "same set of legal continuations" (spec.md §3).
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// ZobristTable is a pseudo-randomized table for computing a position hash.
type ZobristTable struct {
	pieces    [piece.NumSide][piece.NumKind][NumSquares]ZobristHash
	castling  [16]ZobristHash
	enpassant [NumSquares]ZobristHash
	turn      [piece.NumSide]ZobristHash
}

// NewZobristTable builds a table from a seed. The same seed on both
// sides of Random-Same arrival mode, and across a saved/loaded snapshot,
// reproduces identical hashes (spec.md §5 Determinism).
func NewZobristTable(seed int64) *ZobristTable {
	ret := &ZobristTable{}
	r := rand.New(rand.NewSource(seed))

	for s := piece.ZeroSide; s < piece.NumSide; s++ {
		for k := piece.ZeroKind; k < piece.NumKind; k++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				ret.pieces[s][k][sq] = ZobristHash(r.Uint64())
			}
		}
		ret.turn[s] = ZobristHash(r.Uint64())
	}
	for i := range ret.castling {
		ret.castling[i] = ZobristHash(r.Uint64())
	}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		ret.enpassant[sq] = ZobristHash(r.Uint64())
	}
	return ret
}

// Hash computes the zobrist hash for the given position from scratch.
func (z *ZobristTable) Hash(pos *Position, turn piece.Side) ZobristHash {
	var hash ZobristHash

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if p, ok := pos.PieceAt(sq); ok {
			hash ^= z.pieces[p.Side][p.Kind][sq]
		}
	}
	hash ^= z.castling[pos.Castling()&0xF]
	if ep, ok := pos.EnPassant(); ok {
		hash ^= z.enpassant[ep]
	}
	hash ^= z.turn[turn]
	return hash
}
