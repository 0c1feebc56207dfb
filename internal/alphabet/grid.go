package alphabet

// Grid is a square Polybius-style grid built from a keyed alphabet. A 5x5
// grid merges I and J into one cell; a 6x6 grid appends the digits 0-9 after
// the letters.
type Grid struct {
	size  int
	cells []rune
	pos   map[rune]int
}

// NewGrid5 lays the keyed alphabet into a 5x5 grid row-major, I/J merged.
func NewGrid5(keyword string) *Grid {
	return newGrid(keyedFrom(keyword, Letters, true), 5)
}

// NewGrid6 lays the keyed alphabet plus digits into a 6x6 grid row-major.
func NewGrid6(keyword string) *Grid {
	return newGrid(keyedFrom(keyword, Letters+Digits, false), 6)
}

func newGrid(cells string, size int) *Grid {
	g := &Grid{
		size:  size,
		cells: []rune(cells),
		pos:   make(map[rune]int, len(cells)),
	}
	for i, r := range g.cells {
		g.pos[r] = i
	}
	return g
}

// Size returns the grid dimension (5 or 6).
func (g *Grid) Size() int { return g.size }

// At returns the rune at (row, col).
func (g *Grid) At(row, col int) rune {
	return g.cells[row*g.size+col]
}

// Position locates an uppercase rune in the grid. On a 5x5 grid J resolves
// to I's cell.
func (g *Grid) Position(r rune) (row, col int, ok bool) {
	if g.size == 5 && r == 'J' {
		r = 'I'
	}
	i, ok := g.pos[r]
	if !ok {
		return 0, 0, false
	}
	return i / g.size, i % g.size, true
}
