package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Piece is the falling tetromino: a kind, its current orientation, and the
// grid position of the orientation's top-left corner.
type Piece struct {
	Kind  Kind
	Shape Matrix
	Color core.Color
	X, Y  int
}

// Spawn creates a piece of kind k in canonical orientation, horizontally
// centered at the top of a grid gridW columns wide.
func Spawn(k Kind, gridW int) Piece {
	s := BaseShape(k)
	return Piece{
		Kind:  k,
		Shape: s.Cells,
		Color: s.Color,
		X:     gridW/2 - s.Cells.Cols()/2,
		Y:     0,
	}
}

// Width returns the column count of the current orientation.
func (p Piece) Width() int {
	return p.Shape.Cols()
}

// Height returns the row count of the current orientation.
func (p Piece) Height() int {
	return p.Shape.Rows()
}

// Points returns the absolute grid coordinates of every occupied cell.
func (p Piece) Points() []Point {
	pts := make([]Point, 0, 4)
	for r, row := range p.Shape {
		for c, v := range row {
			if v {
				pts = append(pts, Point{X: p.X + c, Y: p.Y + r})
			}
		}
	}
	return pts
}

// Clone returns a copy that shares no cell storage with p.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}
