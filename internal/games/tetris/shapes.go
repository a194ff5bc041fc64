package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Kind identifies one of the seven tetrominoes. The zero value is not a
// valid kind.
type Kind int

const (
	KindNone Kind = iota
	Square
	I
	L
	J
	T
	S
	Z
)

// Shape is a catalog entry: the canonical orientation of a kind and the
// color that identifies its cells once merged into the grid.
type Shape struct {
	Kind  Kind
	Cells Matrix
	Color core.Color
}

var catalog = [...]Shape{
	Square: {Kind: Square, Cells: ParseMatrix("##", "##"), Color: core.ColorBlue},
	I:      {Kind: I, Cells: ParseMatrix("####"), Color: core.ColorCyan},
	L:      {Kind: L, Cells: ParseMatrix("#..", "###"), Color: core.ColorYellow},
	J:      {Kind: J, Cells: ParseMatrix("..#", "###"), Color: core.ColorMagenta},
	T:      {Kind: T, Cells: ParseMatrix(".#.", "###"), Color: core.ColorGreen},
	S:      {Kind: S, Cells: ParseMatrix(".##", "##."), Color: core.ColorRed},
	Z:      {Kind: Z, Cells: ParseMatrix("##.", ".##"), Color: core.ColorWhite},
}

var kindNames = [...]string{
	KindNone: "None",
	Square:   "Square",
	I:        "I",
	L:        "L",
	J:        "J",
	T:        "T",
	S:        "S",
	Z:        "Z",
}

// Letter returns a one-character label for board dumps. Square uses 'O'
// so it does not collide with S.
func (k Kind) Letter() byte {
	if k == Square {
		return 'O'
	}
	if !k.Valid() {
		return '?'
	}
	return kindNames[k][0]
}

// Kinds returns all seven kinds in catalog order.
func Kinds() []Kind {
	return []Kind{Square, I, L, J, T, S, Z}
}

// Valid reports whether k names a catalog entry.
func (k Kind) Valid() bool {
	return k > KindNone && int(k) < len(catalog)
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// BaseShape returns the catalog entry for k with a private copy of its cells.
// It panics on an invalid kind.
func BaseShape(k Kind) Shape {
	if !k.Valid() {
		panic("tetris: invalid kind " + k.String())
	}
	s := catalog[k]
	s.Cells = s.Cells.Clone()
	return s
}

// KindByColor returns the kind whose identity color is c.
func KindByColor(c core.Color) (Kind, bool) {
	for _, k := range Kinds() {
		if catalog[k].Color == c {
			return k, true
		}
	}
	return KindNone, false
}
