// Package console implements a line-oriented Saktris driver for debugging
// and local play, grounded on the teacher's pkg/engine/console driver: a
// stdin command loop that prints the board after each state change.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/seekerror/logw"

	"github.com/tomgun/saktris/pkg/arrival"
	"github.com/tomgun/saktris/pkg/board"
	"github.com/tomgun/saktris/pkg/game"
	"github.com/tomgun/saktris/pkg/piece"
	"github.com/tomgun/saktris/pkg/store"
)

// Driver reads commands from in and writes output lines to the returned
// channel until "quit" or the input stream closes.
type Driver struct {
	s    *game.State
	out  chan<- string
	done chan struct{}

	kv         *store.KV
	presetName string
}

// NewDriver starts processing in a background goroutine and returns the
// output channel immediately, mirroring the teacher's NewDriver shape.
func NewDriver(ctx context.Context, s *game.State, kv *store.KV, presetName string, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{s: s, out: out, done: make(chan struct{}), kv: kv, presetName: presetName}
	s.Subscribe(d.onEvent)
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) Closed() <-chan struct{} { return d.done }

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer close(d.done)
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")
	d.out <- "saktris console — commands: move <from> <to> [promo], place <col>, newgame, ai, save, load, print, quit"
	d.printBoard()

	for line := range in {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "newgame", "n":
			d.s.StartNewGame(ctx, game.Settings{
				GameMode:         game.TwoPlayer,
				ArrivalMode:      arrival.Fixed,
				ArrivalFrequency: 1,
				TripletClearEnabled: true,
				RNGSeed:          1,
			})
			d.printBoard()

		case "move", "m":
			d.doMove(ctx, args)

		case "place", "p":
			d.doPlace(ctx, args)

		case "ai":
			res := d.s.RequestAIMove(ctx)
			if res.Rejected {
				d.out <- fmt.Sprintf("ai move rejected: %v", res)
			}

		case "save":
			d.doSave()

		case "load":
			d.doLoad(ctx)

		case "print":
			d.printBoard()

		case "quit", "exit", "q":
			return

		default:
			d.out <- fmt.Sprintf("unrecognized command: %v", cmd)
		}
	}
	logw.Infof(ctx, "Input stream broken. Exiting")
}

func (d *Driver) doMove(ctx context.Context, args []string) {
	if len(args) < 2 {
		d.out <- "usage: move <from> <to> [promo]"
		return
	}
	from, err := parseSquare(args[0])
	if err != nil {
		d.out <- err.Error()
		return
	}
	to, err := parseSquare(args[1])
	if err != nil {
		d.out <- err.Error()
		return
	}
	promo := piece.NoKind
	if len(args) > 2 {
		k, ok := piece.ParseKind(rune(args[2][0]))
		if !ok {
			d.out <- fmt.Sprintf("unrecognized promotion kind: %v", args[2])
			return
		}
		promo = k
	}

	res := d.s.TryMove(ctx, from, to, promo)
	if res.Rejected && res.Reason == game.WrongPhase && promo != piece.NoKind {
		// A move reissued with a promo kind completes a pending promotion.
		res = d.s.CompletePromotion(ctx, promo)
	}
	if res.Rejected {
		d.out <- fmt.Sprintf("move rejected: %v", res)
		return
	}
	d.printBoard()
}

func (d *Driver) doPlace(ctx context.Context, args []string) {
	if len(args) < 1 {
		d.out <- "usage: place <col 0-7>"
		return
	}
	col, err := strconv.Atoi(args[0])
	if err != nil || col < 0 || col > 7 {
		d.out <- fmt.Sprintf("invalid column: %v", args[0])
		return
	}
	res := d.s.TryPlacePiece(ctx, col)
	if res.Rejected {
		d.out <- fmt.Sprintf("placement rejected: %v", res)
		return
	}
	d.printBoard()
}

func (d *Driver) doSave() {
	if d.kv == nil {
		d.out <- "save unavailable: no database opened"
		return
	}
	snap := store.BuildSnapshot(d.s, d.presetName)
	if err := d.kv.Save(snap); err != nil {
		d.out <- fmt.Sprintf("save failed: %v", err)
		return
	}
	d.out <- "saved"
}

func (d *Driver) doLoad(ctx context.Context) {
	if d.kv == nil {
		d.out <- "load unavailable: no database opened"
		return
	}
	snap, ok, err := d.kv.Load()
	if err != nil {
		d.out <- fmt.Sprintf("load failed: %v", err)
		return
	}
	if !ok {
		d.out <- "no saved game"
		return
	}
	store.LoadSnapshot(ctx, d.s, snap)
	d.printBoard()
}

func (d *Driver) printBoard() {
	d.out <- d.s.Board().String()
	d.out <- fmt.Sprintf("status=%v turn=%v move=%v", d.s.Status(), d.s.CurrentPlayer(), d.s.MoveCount())
}

func (d *Driver) onEvent(e game.Event) {
	switch ev := e.(type) {
	case game.GameOver:
		if ev.HasWinner {
			d.out <- fmt.Sprintf("game over: %v wins (%v)", ev.Winner, ev.Reason)
		} else {
			d.out <- fmt.Sprintf("game over: draw (%v)", ev.Reason)
		}
	case game.PromotionNeeded:
		d.out <- fmt.Sprintf("promotion needed at %v; reissue move with a promo kind", ev.Pos)
	}
}

func parseSquare(s string) (board.Square, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid square: %v", s)
	}
	return board.ParseSquare(rune(s[0]), rune(s[1]))
}
