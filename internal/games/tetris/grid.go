package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Cell is one grid position. Filled cells carry the identity color of the
// piece that was merged there.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Grid is the W x H playfield of settled cells. Row 0 is the top.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsEmpty reports whether (x, y) is on the grid and unoccupied.
// Out-of-bounds positions are never empty.
func (g *Grid) IsEmpty(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return !g.cells[y*g.width+x].Filled
}

// Occupy marks (x, y) as filled with the given identity color.
// Out-of-bounds writes are ignored.
func (g *Grid) Occupy(x, y int, c core.Color) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = Cell{Filled: true, Color: c}
}

// At returns the cell at (x, y), or an empty cell when out of bounds.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{}
	}
	return g.cells[y*g.width+x]
}

// Snapshot returns a copy of the grid as rows of cells.
func (g *Grid) Snapshot() [][]Cell {
	out := make([][]Cell, g.height)
	for y := range out {
		out[y] = make([]Cell, g.width)
		copy(out[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return out
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// Reset empties every cell.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}
