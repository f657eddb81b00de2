package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tomgun/saktris/pkg/clock"
	"github.com/tomgun/saktris/pkg/piece"
)

func TestTickDeductsFromActiveSideOnly(t *testing.T) {
	c := clock.New(60, 0, piece.White)
	c.Start()
	c.Tick(5)

	assert.Equal(t, 55.0, c.Remaining(piece.White))
	assert.Equal(t, 60.0, c.Remaining(piece.Black))
}

func TestSwitchSideCreditsIncrementThenFlips(t *testing.T) {
	c := clock.New(60, 2, piece.White)
	c.Start()
	c.Tick(10)
	c.SwitchSide()

	assert.Equal(t, 52.0, c.Remaining(piece.White))
	assert.Equal(t, piece.Black, c.Active())
}

func TestExpiredIsTerminal(t *testing.T) {
	c := clock.New(1, 0, piece.White)
	c.Start()
	c.Tick(5)

	assert.True(t, c.Expired(piece.White))
	assert.Equal(t, 0.0, c.Remaining(piece.White))

	c.Tick(5)
	assert.Equal(t, 0.0, c.Remaining(piece.White))
}

func TestPausedClockDoesNotTick(t *testing.T) {
	c := clock.New(60, 0, piece.White)
	c.Tick(10)
	assert.Equal(t, 60.0, c.Remaining(piece.White))
}
