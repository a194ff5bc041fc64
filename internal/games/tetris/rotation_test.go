package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func pieceAt(k Kind, x, y int) Piece {
	p := Spawn(k, 10)
	p.X, p.Y = x, y
	return p
}

func TestRotateSquareIsIdentity(t *testing.T) {
	g := NewGrid(10, 20)
	p := pieceAt(Square, 8, 18)
	for i := 0; i < 5; i++ {
		next, ok := Rotate(g, p, true)
		assert.False(t, ok)
		assert.True(t, next.Shape.Equal(p.Shape))
		assert.Equal(t, p.X, next.X)
		assert.Equal(t, p.Y, next.Y)
		p = next
	}
}

func TestRotatePeriods(t *testing.T) {
	tests := []struct {
		kind   Kind
		period int
	}{
		{I, 2},
		{S, 2},
		{Z, 2},
		{L, 4},
		{J, 4},
		{T, 4},
	}

	g := NewGrid(10, 20)
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			start := pieceAt(tc.kind, 3, 5)
			p := start
			for i := 1; i <= tc.period; i++ {
				var ok bool
				p, ok = Rotate(g, p, false)
				require.True(t, ok, "rotation %d", i)
				if i < tc.period {
					assert.False(t, p.Shape.Equal(start.Shape), "returned to start after %d rotations", i)
				}
			}
			assert.True(t, p.Shape.Equal(start.Shape), "shape after %d rotations = %s", tc.period, p.Shape)
			assert.Equal(t, tc.kind, p.Kind, "kind tag survives rotation")
		})
	}
}

func TestRotateIToggles(t *testing.T) {
	g := NewGrid(10, 20)
	p := pieceAt(I, 3, 5)

	p, ok := Rotate(g, p, false)
	require.True(t, ok)
	assert.Equal(t, "#/#/#/#", p.Shape.String())

	p, ok = Rotate(g, p, false)
	require.True(t, ok)
	assert.Equal(t, "####", p.Shape.String())
}

func TestRotateSKeepsChirality(t *testing.T) {
	g := NewGrid(10, 20)
	p, ok := Rotate(g, pieceAt(S, 3, 5), false)
	require.True(t, ok)
	assert.Equal(t, "#./##/.#", p.Shape.String())

	p, ok = Rotate(g, pieceAt(Z, 3, 5), false)
	require.True(t, ok)
	assert.Equal(t, ".#/##/#.", p.Shape.String())
}

func TestRotateIAtRightWall(t *testing.T) {
	g := NewGrid(10, 20)
	p := pieceAt(I, 6, 0)

	p, ok := Rotate(g, p, true)
	require.True(t, ok)
	assert.Equal(t, 1, p.Width())
	assert.Equal(t, 6, p.X, "vertical I should not move left")
	assert.LessOrEqual(t, p.X, 9)
}

func TestRotateClampsToWalls(t *testing.T) {
	g := NewGrid(10, 20)

	// Vertical I in the last column turning horizontal.
	p := pieceAt(I, 3, 5)
	p, _ = Rotate(g, p, false)
	p.X = 9
	p, ok := Rotate(g, p, false)
	require.True(t, ok)
	assert.Equal(t, 6, p.X)

	// Horizontal I on the bottom row turning vertical.
	p = pieceAt(I, 3, 19)
	p, ok = Rotate(g, p, false)
	require.True(t, ok)
	assert.Equal(t, 16, p.Y)
}

func TestRotateRejectsOverlapWithoutKicks(t *testing.T) {
	g := NewGrid(10, 20)
	g.Occupy(4, 7, core.ColorRed)
	p := pieceAt(T, 4, 5)

	next, ok := Rotate(g, p, false)
	assert.False(t, ok)
	assert.True(t, next.Shape.Equal(p.Shape))
	assert.Equal(t, 4, next.X)
}

func TestRotateKicksLeft(t *testing.T) {
	g := NewGrid(10, 20)
	g.Occupy(4, 7, core.ColorRed)
	p := pieceAt(T, 4, 5)

	next, ok := Rotate(g, p, true)
	require.True(t, ok)
	assert.Equal(t, 3, next.X)
	assert.Equal(t, 5, next.Y)
	assert.True(t, CanPlace(g, next.Shape, next.X, next.Y))
}
