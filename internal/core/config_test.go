package core

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TickInterval != time.Second {
		t.Errorf("TickInterval = %v, expected %v", cfg.TickInterval, time.Second)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, expected 0", cfg.Seed)
	}
}

func TestStepResultHas(t *testing.T) {
	r := StepResult{Events: []Event{EventLocked, EventSpawned}}
	if !r.Has(EventLocked) {
		t.Error("Has(EventLocked) = false, expected true")
	}
	if r.Has(EventGameOver) {
		t.Error("Has(EventGameOver) = true, expected false")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionMoveLeft: "MoveLeft",
		ActionRotate:   "Rotate",
		ActionQuit:     "Quit",
		Action(99):     "Unknown",
	}
	for a, expected := range tests {
		if a.String() != expected {
			t.Errorf("String() = %q, expected %q", a.String(), expected)
		}
	}
}
