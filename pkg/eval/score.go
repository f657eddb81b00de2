package eval

import (
	"fmt"

	"github.com/tomgun/saktris/pkg/piece"
)

// Score is a signed centipawn position score. Positive favors White. Mate
// scores are clamped to +/-MaxScore so that arithmetic (negation, alpha-beta
// bounds) never overflows (spec.md §4.8).
type Score int32

const (
	NegInf         = MinScore - 1
	MinScore Score = -1000000
	MaxScore Score = 1000000
	Inf            = MaxScore + 1
)

func (s Score) String() string {
	return fmt.Sprintf("%d", s)
}

// Unit returns the signed unit for the side: 1 for White, -1 for Black. Used
// to fold a side-relative bonus into the White-relative Score convention.
func Unit(s piece.Side) Score {
	if s.IsWhite() {
		return 1
	}
	return -1
}

// Crop clamps a Score into [MinScore;MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
