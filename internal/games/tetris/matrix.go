package tetris

import "strings"

// Matrix is a rectangular occupancy pattern in row-major order.
// All rows have the same length.
type Matrix [][]bool

// ParseMatrix builds a Matrix from rows where '#' marks an occupied cell.
// Any other rune is empty.
func ParseMatrix(rows ...string) Matrix {
	m := make(Matrix, len(rows))
	for r, row := range rows {
		m[r] = make([]bool, len(row))
		for c, ch := range row {
			m[r][c] = ch == '#'
		}
	}
	return m
}

// Rows returns the pattern height.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the pattern width.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// At reports whether (row, col) is occupied. Outside the pattern is empty.
func (m Matrix) At(row, col int) bool {
	if row < 0 || row >= len(m) || col < 0 || col >= len(m[row]) {
		return false
	}
	return m[row][col]
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for r := range m {
		out[r] = append([]bool(nil), m[r]...)
	}
	return out
}

// Equal reports whether both patterns have the same shape and occupancy.
func (m Matrix) Equal(o Matrix) bool {
	if m.Rows() != o.Rows() || m.Cols() != o.Cols() {
		return false
	}
	for r := range m {
		for c := range m[r] {
			if m[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Transpose swaps rows and columns.
func (m Matrix) Transpose() Matrix {
	rows, cols := m.Rows(), m.Cols()
	out := make(Matrix, cols)
	for i := range out {
		out[i] = make([]bool, rows)
		for j := range out[i] {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// RotateCW turns the pattern a quarter turn clockwise.
// An R x C pattern becomes C x R with out[i][j] = m[R-1-j][i].
func (m Matrix) RotateCW() Matrix {
	rows, cols := m.Rows(), m.Cols()
	out := make(Matrix, cols)
	for i := range out {
		out[i] = make([]bool, rows)
		for j := range out[i] {
			out[i][j] = m[rows-1-j][i]
		}
	}
	return out
}

// Count returns the number of occupied cells.
func (m Matrix) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// String renders the pattern as rows of '#' and '.' separated by '/'.
func (m Matrix) String() string {
	var sb strings.Builder
	for r, row := range m {
		if r > 0 {
			sb.WriteByte('/')
		}
		for _, v := range row {
			if v {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
