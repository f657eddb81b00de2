package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/tomgun/saktris/internal/console"
	"github.com/tomgun/saktris/pkg/arrival"
	"github.com/tomgun/saktris/pkg/config"
	"github.com/tomgun/saktris/pkg/engine"
	"github.com/tomgun/saktris/pkg/game"
	"github.com/tomgun/saktris/pkg/search"
	"github.com/tomgun/saktris/pkg/store"
)

var (
	configPath = flag.String("config", "", "Path to a TOML config file overriding built-in presets")
	preset     = flag.String("preset", "blitz", "Time control preset: bullet, blitz, rapid, classical")
	dbDir      = flag.String("db", "", "Directory for the embedded save-game database (empty disables save/load)")
	seed       = flag.Int64("seed", 1, "RNG seed for arrivals, placement tie-breaks and AI reaction delay")
	useAI      = flag.Bool("ai", false, "Play against the AI as Black")
	difficulty = flag.String("difficulty", "medium", "AI difficulty: easy, medium, hard")
)

var version = build.NewVersion(0, 1, 0)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: saktris [options]

Saktris is a chess/Tetris hybrid rule engine with a console driver for
local play and debugging.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()
	logw.Infof(ctx, "saktris %v", version)

	cfg := config.Load(*configPath)
	tc, ok := config.Lookup(config.Preset(*preset))
	if !ok {
		tc = cfg.Presets[*preset]
	}
	arrivalMode, err := config.ParseArrivalMode(cfg.Game.ArrivalMode)
	if err != nil {
		logw.Errorf(ctx, "config: %v; defaulting to Fixed arrival mode", err)
		arrivalMode = arrival.Fixed
	}

	settings := game.Settings{
		GameMode:            game.TwoPlayer,
		ArrivalMode:         arrivalMode,
		ArrivalFrequency:    cfg.Game.ArrivalFrequency,
		TripletClearEnabled: cfg.Game.TripletClearEnabled,
		TimeSeconds:         tc.TimeSeconds,
		IncrementSeconds:    tc.IncrementSeconds,
		RNGSeed:             *seed,
	}
	if *useAI {
		settings.GameMode = game.VsAI
		settings.UseAI = true
		settings.AISide = 1 // Black
		settings.AIDifficulty = parseDifficulty(*difficulty)
	}

	s := game.New()
	s.StartNewGame(ctx, settings)

	var kv *store.KV
	if *dbDir != "" {
		db, err := store.OpenKV(*dbDir)
		if err != nil {
			logw.Errorf(ctx, "could not open save-game database: %v", err)
		} else {
			kv = db
			defer kv.Close()
		}
	}

	in := engine.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, s, kv, *preset, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
}

func parseDifficulty(s string) search.Difficulty {
	switch s {
	case "easy":
		return search.Easy
	case "hard":
		return search.Hard
	default:
		return search.Medium
	}
}
