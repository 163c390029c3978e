package core

import "fmt"

// Grid stores a 2D grid of cell values in row-major order (index y*W+x).
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: (%d,%d) outside %dx%d", x, y, g.W, g.H))
	}
	return y*g.W + x
}

// Coords converts a linear index back into (x, y).
func (g *Grid[T]) Coords(i int) (int, int) { return i % g.W, i / g.W }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns a pointer to the cell at (x, y). Out-of-range access panics.
func (g *Grid[T]) At(x, y int) *T { return &g.data[g.Index(x, y)] }

// Get returns a copy of the cell at (x, y).
func (g *Grid[T]) Get(x, y int) T { return g.data[g.Index(x, y)] }

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) { g.data[g.Index(x, y)] = v }

// CopyFrom overwrites the contents of g with src. Dimensions must match.
func (g *Grid[T]) CopyFrom(src *Grid[T]) {
	if src.W != g.W || src.H != g.H {
		panic(fmt.Sprintf("grid: copy %dx%d into %dx%d", src.W, src.H, g.W, g.H))
	}
	copy(g.data, src.data)
}

// Clone returns an independent copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{W: g.W, H: g.H, data: make([]T, len(g.data))}
	copy(c.data, g.data)
	return c
}

// Clear resets every cell to the zero value.
func (g *Grid[T]) Clear() {
	var zero T
	for i := range g.data {
		g.data[i] = zero
	}
}
