// Package config loads Saktris time-control presets from TOML, grounded on
// Mgrdich-TermChess's config file loader and FrankyGo's config package
// (spec.md §6's "[AMBIENT] Settings loading").
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/tomgun/saktris/pkg/arrival"
)

// Preset names the built-in time controls. A custom preset is anything
// loaded from a user-supplied TOML file.
type Preset string

const (
	Bullet    Preset = "bullet"
	Blitz     Preset = "blitz"
	Rapid     Preset = "rapid"
	Classical Preset = "classical"
)

// TimeControl is a named seconds/increment pair.
type TimeControl struct {
	TimeSeconds      float64 `toml:"time_seconds"`
	IncrementSeconds float64 `toml:"increment_seconds"`
}

var builtins = map[Preset]TimeControl{
	Bullet:    {TimeSeconds: 60, IncrementSeconds: 1},
	Blitz:     {TimeSeconds: 180, IncrementSeconds: 2},
	Rapid:     {TimeSeconds: 600, IncrementSeconds: 5},
	Classical: {TimeSeconds: 1800, IncrementSeconds: 30},
}

// Lookup resolves a built-in preset by name. The bool is false for an
// unrecognized name, leaving the caller's Settings.TimeSeconds/
// IncrementSeconds untouched (spec.md §6: "a custom pair always overrides
// a preset").
func Lookup(p Preset) (TimeControl, bool) {
	tc, ok := builtins[p]
	return tc, ok
}

// File is the on-disk shape of a user-supplied TOML config: named presets
// plus Saktris's arrival and triplet-clear defaults.
type File struct {
	Presets map[string]TimeControl `toml:"presets"`
	Game    GameDefaults           `toml:"game"`
}

// GameDefaults are the non-time-control knobs a config file may override.
type GameDefaults struct {
	ArrivalMode         string `toml:"arrival_mode"`
	ArrivalFrequency    int    `toml:"arrival_frequency"`
	TripletClearEnabled bool   `toml:"triplet_clear_enabled"`
}

// DefaultFile returns the built-in presets and defaults, used when no
// config file is present or one fails to parse.
func DefaultFile() File {
	presets := make(map[string]TimeControl, len(builtins))
	for name, tc := range builtins {
		presets[string(name)] = tc
	}
	return File{
		Presets: presets,
		Game: GameDefaults{
			ArrivalMode:         "fixed",
			ArrivalFrequency:    1,
			TripletClearEnabled: true,
		},
	}
}

// Load reads a TOML config file, falling back to DefaultFile on any error
// (missing file, malformed TOML). This mirrors TermChess's LoadConfig: the
// caller always gets a usable configuration, never an error to handle.
func Load(path string) File {
	f := DefaultFile()
	if path == "" {
		return f
	}
	if _, err := os.Stat(path); err != nil {
		return f
	}

	var loaded File
	if _, err := toml.DecodeFile(path, &loaded); err != nil {
		return f
	}
	for name, tc := range loaded.Presets {
		f.Presets[name] = tc
	}
	if loaded.Game.ArrivalMode != "" {
		f.Game = loaded.Game
	}
	return f
}

// ParseArrivalMode maps a config file's arrival_mode string to arrival.Mode.
func ParseArrivalMode(s string) (arrival.Mode, error) {
	switch s {
	case "fixed", "":
		return arrival.Fixed, nil
	case "selectable":
		return arrival.Selectable, nil
	case "random_same":
		return arrival.RandomSame, nil
	case "random_different":
		return arrival.RandomDifferent, nil
	default:
		return arrival.Fixed, fmt.Errorf("config: unknown arrival_mode %q", s)
	}
}
