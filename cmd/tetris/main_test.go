package main

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func TestPlayGameRejectsBadInput(t *testing.T) {
	saved := flagBackend
	t.Cleanup(func() { flagBackend = saved })

	tests := []struct {
		name    string
		args    []string
		backend string
	}{
		{"unknown variant", []string{"tetris_sideways"}, backendTUI},
		{"unknown backend", nil, "curses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagBackend = tt.backend
			if code := playGame(tt.args); code != 1 {
				t.Errorf("playGame() = %d, expected 1", code)
			}
		})
	}
}

func TestSessionDetail(t *testing.T) {
	out := sessionDetail(storage.Session{
		ID:        "abc",
		Variant:   "tetris_classic",
		Seed:      42,
		Locked:    9,
		Counts:    map[string]int{"I": 2, "O": 1},
		EndReason: storage.EndDisconnect,
		Duration:  75 * time.Second,
		CreatedAt: time.Now(),
	})

	for _, want := range []string{"abc", "tetris_classic", "42", "9", "1m15s", storage.EndDisconnect, "I:2 O:1"} {
		if !strings.Contains(out, want) {
			t.Errorf("sessionDetail() = %q, missing %q", out, want)
		}
	}
}
