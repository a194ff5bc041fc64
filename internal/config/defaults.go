package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Gravity: GravityConfig{
			IntervalMS: 1000,
		},
		Rules: RulesConfig{
			Floor:         FloorExact,
			RotationKicks: true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  0.3,
		},
	}
}
