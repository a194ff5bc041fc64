package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Gravity period between automatic descents
	Seed         int64         // RNG seed for deterministic piece selection
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: time.Second,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Locked   int  // Pieces merged into the grid so far
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// Event is something observable that happened during one step.
type Event int

const (
	EventMoved Event = iota
	EventRotated
	EventLocked
	EventSpawned
	EventGameOver
	EventRestarted
)

func (e Event) String() string {
	switch e {
	case EventMoved:
		return "moved"
	case EventRotated:
		return "rotated"
	case EventLocked:
		return "locked"
	case EventSpawned:
		return "spawned"
	case EventGameOver:
		return "game_over"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// StepResult is returned after each tick or command.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the step produced the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
