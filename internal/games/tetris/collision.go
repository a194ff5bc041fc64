package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// FloorRule decides how far down a piece may fall.
type FloorRule int

const (
	// FloorExact lets a piece rest on the bottom row.
	FloorExact FloorRule = iota
	// FloorLegacy stops a piece as soon as its next row would reach the
	// last grid row, leaving that row permanently unused.
	FloorLegacy
)

func (f FloorRule) String() string {
	if f == FloorLegacy {
		return config.FloorLegacy
	}
	return config.FloorExact
}

// ParseFloorRule maps a config rule name to a FloorRule.
func ParseFloorRule(name string) (FloorRule, error) {
	switch name {
	case config.FloorExact, "":
		return FloorExact, nil
	case config.FloorLegacy:
		return FloorLegacy, nil
	default:
		return FloorExact, fmt.Errorf("tetris: unknown floor rule %q", name)
	}
}

// CanPlace reports whether every occupied cell of m, anchored at (x, y),
// lies on the grid over an empty cell.
func CanPlace(g *Grid, m Matrix, x, y int) bool {
	for r, row := range m {
		for c, v := range row {
			if v && !g.IsEmpty(x+c, y+r) {
				return false
			}
		}
	}
	return true
}

// CanDescend reports whether p can move one row down.
func CanDescend(g *Grid, p Piece, floor FloorRule) bool {
	limit := g.Height()
	if floor == FloorLegacy {
		limit--
	}
	for _, pt := range p.Points() {
		ny := pt.Y + 1
		if ny >= limit || !g.IsEmpty(pt.X, ny) {
			return false
		}
	}
	return true
}

// ClampX keeps a piece of the given width within the grid columns.
func ClampX(g *Grid, x, width int) int {
	return core.Clamp(x, 0, core.Max(0, g.Width()-width))
}

// Shift moves p horizontally by dx columns. The target column is clamped to
// the grid first. It reports false, leaving p unchanged, when the clamped
// position equals the current one or overlaps settled cells.
func Shift(g *Grid, p Piece, dx int) (Piece, bool) {
	nx := ClampX(g, p.X+dx, p.Width())
	if nx == p.X || !CanPlace(g, p.Shape, nx, p.Y) {
		return p, false
	}
	p.X = nx
	return p, true
}

// Merge writes every occupied cell of p into the grid with p's color.
func Merge(g *Grid, p Piece) {
	for _, pt := range p.Points() {
		g.Occupy(pt.X, pt.Y, p.Color)
	}
}
