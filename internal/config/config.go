// Package config provides YAML-based configuration loading for the tetris
// engine and its frontends.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Floor rule names accepted in rules.floor.
const (
	FloorExact  = "exact"
	FloorLegacy = "legacy"
)

// Board dimension limits. The minimum still fits every tetromino
// orientation; the maximum keeps grids read from files to a sane size.
const (
	MinBoardWidth  = 4
	MinBoardHeight = 4
	MaxBoardWidth  = 100
	MaxBoardHeight = 100
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// TetrisConfig contains all configuration for the tetris engine.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Gravity GravityConfig `yaml:"gravity"`
	Rules   RulesConfig   `yaml:"rules"`
	Audio   AudioConfig   `yaml:"audio"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GravityConfig defines the automatic descent period.
type GravityConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

// RulesConfig selects placement and rotation behavior.
type RulesConfig struct {
	Floor         string `yaml:"floor"`          // "exact" or "legacy"
	RotationKicks bool   `yaml:"rotation_kicks"` // try small offsets when a rotation is blocked
}

// AudioConfig controls sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
}

// Interval returns the gravity period as a duration.
func (g GravityConfig) Interval() time.Duration {
	return time.Duration(g.IntervalMS) * time.Millisecond
}

// Validate checks the configuration for values the engine cannot run with.
func (c TetrisConfig) Validate() error {
	if err := ValidateBoard(c.Board.Width, c.Board.Height); err != nil {
		return err
	}
	if c.Gravity.IntervalMS <= 0 {
		return fmt.Errorf("%w: gravity interval must be positive, got %dms", ErrInvalid, c.Gravity.IntervalMS)
	}
	switch c.Rules.Floor {
	case FloorExact, FloorLegacy:
	default:
		return fmt.Errorf("%w: unknown floor rule %q", ErrInvalid, c.Rules.Floor)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume %.2f outside [0, 1]", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

// ValidateBoard checks grid dimensions against the supported range.
func ValidateBoard(width, height int) error {
	if width < MinBoardWidth || width > MaxBoardWidth {
		return fmt.Errorf("%w: board width %d outside [%d, %d]", ErrInvalid, width, MinBoardWidth, MaxBoardWidth)
	}
	if height < MinBoardHeight || height > MaxBoardHeight {
		return fmt.Errorf("%w: board height %d outside [%d, %d]", ErrInvalid, height, MinBoardHeight, MaxBoardHeight)
	}
	return nil
}
