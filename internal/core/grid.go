package core

import "strings"

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ByteGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Set marks the cell at (x, y) alive (1) or dead (0), wrapping coordinates.
func (g *ByteGrid) Set(x, y int, alive bool) {
	x, y = g.Wrap(x, y)
	g.data[g.Index(x, y)] = 0
	if alive {
		g.data[g.Index(x, y)] = 1
	}
}

// Alive reports whether the cell at (x, y) is non-zero, wrapping coordinates.
func (g *ByteGrid) Alive(x, y int) bool {
	x, y = g.Wrap(x, y)
	return g.data[g.Index(x, y)] != 0
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Neighborhood returns the neighborhood string of (x, y) with toroidal
// wrapping. dim 1 reads the three cells left, center, right on row y; dim 2
// reads the 3x3 Moore block row by row. The cell itself lands at index n/2.
func (g *ByteGrid) Neighborhood(x, y, dim int) string {
	var b strings.Builder
	write := func(nx, ny int) {
		if g.Alive(nx, ny) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	if dim == 1 {
		for dx := -1; dx <= 1; dx++ {
			write(x+dx, y)
		}
		return b.String()
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			write(x+dx, y+dy)
		}
	}
	return b.String()
}
