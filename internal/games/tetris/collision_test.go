package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestSpawnCentering(t *testing.T) {
	tests := []struct {
		kind      Kind
		width     int
		expectedX int
	}{
		{I, 10, 3},
		{Square, 10, 4},
		{T, 10, 4},
		{I, 4, 0},
		{L, 7, 2},
	}
	for _, tc := range tests {
		p := Spawn(tc.kind, tc.width)
		assert.Equal(t, tc.expectedX, p.X, "%v on width %d", tc.kind, tc.width)
		assert.Equal(t, 0, p.Y)
		assert.Equal(t, tc.kind, p.Kind)
	}
}

func TestCanPlace(t *testing.T) {
	g := NewGrid(10, 20)
	g.Occupy(5, 5, core.ColorRed)
	sq := BaseShape(Square).Cells

	assert.True(t, CanPlace(g, sq, 0, 0))
	assert.True(t, CanPlace(g, sq, 8, 18))
	assert.False(t, CanPlace(g, sq, 9, 0), "right edge")
	assert.False(t, CanPlace(g, sq, 0, 19), "bottom edge")
	assert.False(t, CanPlace(g, sq, -1, 0), "left edge")
	assert.False(t, CanPlace(g, sq, 4, 4), "overlap")

	// Empty cells of the pattern may hang over settled cells.
	tee := BaseShape(T).Cells
	assert.True(t, CanPlace(g, tee, 5, 5), "only the empty corner covers (5,5)")
}

func TestCanDescendFloorRules(t *testing.T) {
	g := NewGrid(10, 20)
	p := Spawn(Square, 10)

	p.Y = 17
	assert.True(t, CanDescend(g, p, FloorExact))
	assert.False(t, CanDescend(g, p, FloorLegacy), "legacy floor keeps the last row free")

	p.Y = 18
	assert.False(t, CanDescend(g, p, FloorExact))
}

func TestCanDescendBlockedBySettledCell(t *testing.T) {
	g := NewGrid(10, 20)
	g.Occupy(5, 10, core.ColorRed)
	p := Spawn(Square, 10) // columns 4..5

	p.Y = 7
	assert.True(t, CanDescend(g, p, FloorExact))
	p.Y = 8
	assert.False(t, CanDescend(g, p, FloorExact))
}

func TestShiftClampsAtWalls(t *testing.T) {
	g := NewGrid(10, 20)

	p := Spawn(L, 10)
	p.X = 10 - p.Width()
	moved, ok := Shift(g, p, 1)
	assert.False(t, ok)
	assert.Equal(t, 10-p.Width(), moved.X)

	p.X = 0
	moved, ok = Shift(g, p, -1)
	assert.False(t, ok)
	assert.Equal(t, 0, moved.X)

	moved, ok = Shift(g, p, 1)
	assert.True(t, ok)
	assert.Equal(t, 1, moved.X)
}

func TestShiftRejectsOverlap(t *testing.T) {
	g := NewGrid(10, 20)
	p := Spawn(Square, 10)
	g.Occupy(p.X+2, p.Y, core.ColorRed)

	moved, ok := Shift(g, p, 1)
	assert.False(t, ok)
	assert.Equal(t, p.X, moved.X)
}

func TestMerge(t *testing.T) {
	g := NewGrid(10, 20)
	p := Spawn(T, 10)
	p.Y = 18
	Merge(g, p)

	require.Equal(t, 4, g.FilledCount())
	for _, pt := range p.Points() {
		assert.Equal(t, Cell{Filled: true, Color: core.ColorGreen}, g.At(pt.X, pt.Y))
	}
}

func TestParseFloorRule(t *testing.T) {
	f, err := ParseFloorRule("legacy")
	require.NoError(t, err)
	assert.Equal(t, FloorLegacy, f)
	assert.Equal(t, "legacy", f.String())

	f, err = ParseFloorRule("")
	require.NoError(t, err)
	assert.Equal(t, FloorExact, f)

	_, err = ParseFloorRule("ceiling")
	assert.Error(t, err)
}
