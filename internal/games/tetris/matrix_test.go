package tetris

import "testing"

func TestMatrixDimensions(t *testing.T) {
	m := ParseMatrix("#..", "###")
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Errorf("dimensions = %dx%d, expected 2x3", m.Rows(), m.Cols())
	}
	if m.Count() != 4 {
		t.Errorf("Count() = %d, expected 4", m.Count())
	}
	if (Matrix{}).Cols() != 0 {
		t.Error("empty matrix should have zero columns")
	}
}

func TestMatrixAt(t *testing.T) {
	m := ParseMatrix(".#", "#.")
	tests := []struct {
		r, c     int
		expected bool
	}{
		{0, 0, false},
		{0, 1, true},
		{1, 0, true},
		{-1, 0, false},
		{0, 2, false},
		{2, 0, false},
	}
	for _, tc := range tests {
		if got := m.At(tc.r, tc.c); got != tc.expected {
			t.Errorf("At(%d, %d) = %v, expected %v", tc.r, tc.c, got, tc.expected)
		}
	}
}

func TestMatrixRotateCW(t *testing.T) {
	tests := []struct {
		name     string
		in       Matrix
		expected string
	}{
		{"L", ParseMatrix("#..", "###"), "##/#./#."},
		{"J", ParseMatrix("..#", "###"), "#./#./##"},
		{"T", ParseMatrix(".#.", "###"), "#./##/#."},
		{"I", ParseMatrix("####"), "#/#/#/#"},
		{"S", ParseMatrix(".##", "##."), "#./##/.#"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.RotateCW().String(); got != tc.expected {
				t.Errorf("RotateCW() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestMatrixTranspose(t *testing.T) {
	m := ParseMatrix("##.", ".##")
	if got := m.Transpose().String(); got != "#./##/.#" {
		t.Errorf("Transpose() = %q, expected %q", got, "#./##/.#")
	}
	if !m.Transpose().Transpose().Equal(m) {
		t.Error("double transpose should be identity")
	}
}

func TestMatrixCloneIsIndependent(t *testing.T) {
	m := ParseMatrix("##")
	c := m.Clone()
	c[0][0] = false
	if !m[0][0] {
		t.Error("modifying clone changed original")
	}
	if m.Equal(c) {
		t.Error("Equal() = true after modifying clone")
	}
}

func TestMatrixEqualDifferentShapes(t *testing.T) {
	if ParseMatrix("####").Equal(ParseMatrix("#", "#", "#", "#")) {
		t.Error("horizontal and vertical I should not be equal")
	}
}
