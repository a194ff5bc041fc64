package tetris

// rotateFunc produces the next orientation from a kind's canonical
// orientation and its current one.
type rotateFunc func(base, current Matrix) Matrix

var rotations = [...]rotateFunc{
	Square: keep,
	I:      toggle,
	L:      clockwise,
	J:      clockwise,
	T:      clockwise,
	S:      toggle,
	Z:      toggle,
}

func keep(_, current Matrix) Matrix {
	return current
}

func clockwise(_, current Matrix) Matrix {
	return current.RotateCW()
}

// toggle alternates between the canonical orientation and its clockwise
// turn, so I, S and Z have exactly two orientations.
func toggle(base, current Matrix) Matrix {
	if current.Equal(base) {
		return base.RotateCW()
	}
	return base.Clone()
}

// kickOffsets are tried in order when the clamped rotation overlaps.
var kickOffsets = []Point{
	{X: 0, Y: 0},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: -2, Y: 0},
	{X: 2, Y: 0},
	{X: 0, Y: -1},
}

// NextOrientation returns the orientation p would take after one rotation.
func NextOrientation(p Piece) Matrix {
	return rotations[p.Kind](catalog[p.Kind].Cells, p.Shape)
}

// Rotate turns p to its next orientation. The anchor is clamped so the new
// bounding box fits the grid. The result must not overlap settled cells;
// with kicks enabled a few nearby anchors are tried before giving up.
// It reports false, leaving p unchanged, when no placement is legal or the
// kind has a single orientation.
func Rotate(g *Grid, p Piece, kicks bool) (Piece, bool) {
	next := NextOrientation(p)
	if next.Equal(p.Shape) {
		return p, false
	}

	x, y := p.X, p.Y
	if x+next.Cols() > g.Width() {
		x = g.Width() - next.Cols()
	}
	if y+next.Rows() > g.Height() {
		y = g.Height() - next.Rows()
	}

	offsets := kickOffsets[:1]
	if kicks {
		offsets = kickOffsets
	}
	for _, off := range offsets {
		nx, ny := x+off.X, y+off.Y
		if CanPlace(g, next, nx, ny) {
			p.Shape = next
			p.X, p.Y = nx, ny
			return p, true
		}
	}
	return p, false
}
