package tetris

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid(10, 20)
	if g.Width() != 10 || g.Height() != 20 {
		t.Errorf("size = %dx%d, expected 10x20", g.Width(), g.Height())
	}
	if g.FilledCount() != 0 {
		t.Errorf("FilledCount() = %d, expected 0", g.FilledCount())
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 10; x++ {
			if !g.IsEmpty(x, y) {
				t.Fatalf("IsEmpty(%d, %d) = false on a new grid", x, y)
			}
		}
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(4, 5)
	tests := []struct {
		x, y     int
		expected bool
	}{
		{0, 0, true},
		{3, 4, true},
		{4, 0, false},
		{0, 5, false},
		{-1, 2, false},
		{2, -1, false},
	}
	for _, tc := range tests {
		if got := g.InBounds(tc.x, tc.y); got != tc.expected {
			t.Errorf("InBounds(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
		if !tc.expected && g.IsEmpty(tc.x, tc.y) {
			t.Errorf("IsEmpty(%d, %d) = true outside the grid", tc.x, tc.y)
		}
	}
}

func TestGridOccupy(t *testing.T) {
	g := NewGrid(4, 4)
	g.Occupy(1, 2, core.ColorRed)
	g.Occupy(10, 10, core.ColorRed) // ignored

	if g.IsEmpty(1, 2) {
		t.Error("IsEmpty(1, 2) = true after Occupy")
	}
	if c := g.At(1, 2); !c.Filled || c.Color != core.ColorRed {
		t.Errorf("At(1, 2) = %+v, expected filled red", c)
	}
	if g.FilledCount() != 1 {
		t.Errorf("FilledCount() = %d, expected 1", g.FilledCount())
	}
	if (g.At(-1, 0) != Cell{}) {
		t.Error("At() outside the grid should return an empty cell")
	}

	g.Reset()
	if g.FilledCount() != 0 {
		t.Errorf("FilledCount() after Reset = %d, expected 0", g.FilledCount())
	}
}

func TestGridSnapshotIsCopy(t *testing.T) {
	g := NewGrid(3, 2)
	g.Occupy(2, 1, core.ColorGreen)

	snap := g.Snapshot()
	if len(snap) != 2 || len(snap[0]) != 3 {
		t.Fatalf("snapshot size = %dx%d, expected 2x3", len(snap), len(snap[0]))
	}
	if !snap[1][2].Filled {
		t.Error("snapshot missing occupied cell")
	}

	snap[0][0] = Cell{Filled: true}
	if !g.IsEmpty(0, 0) {
		t.Error("modifying the snapshot changed the grid")
	}
}
