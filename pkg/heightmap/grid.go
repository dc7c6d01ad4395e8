// Package heightmap synthesizes square fractal heightmaps with the
// diamond-square algorithm and derives per-vertex surface normals from them.
package heightmap

import (
	"errors"
	"fmt"
	"math"
)

// Grid errors.
var (
	ErrInvalidSize   = errors.New("invalid grid size: expected 2^n+1 with n >= 1")
	ErrOutOfBounds   = errors.New("grid index out of bounds")
	ErrNonFiniteCell = errors.New("grid cell is not finite")
)

// Grid is a square buffer of size x size heights stored row-major.
// The zero value is an empty grid: every index is out of bounds and
// generators reject it with ErrInvalidSize.
type Grid struct {
	size  int
	cells []float32
}

// ValidSize reports whether size has the form 2^n+1 with n >= 1.
func ValidSize(size int) bool {
	n := size - 1
	return n >= 2 && n&(n-1) == 0
}

// NewGrid returns a zero-initialized grid.
func NewGrid(size int) (*Grid, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return &Grid{
		size:  size,
		cells: make([]float32, size*size),
	}, nil
}

// Size returns the number of rows (and columns).
func (g *Grid) Size() int {
	return g.size
}

// Get returns the height at (row, col).
func (g *Grid) Get(row, col int) (float32, error) {
	if !g.inBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) outside [0, %d)", ErrOutOfBounds, row, col, g.size)
	}
	return g.cells[row*g.size+col], nil
}

// Set stores the height at (row, col).
func (g *Grid) Set(row, col int, value float32) error {
	if !g.inBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) outside [0, %d)", ErrOutOfBounds, row, col, g.size)
	}
	g.cells[row*g.size+col] = value
	return nil
}

// Row returns a read-only view of one row. Callers must not modify it.
func (g *Grid) Row(row int) []float32 {
	return g.cells[row*g.size : (row+1)*g.size]
}

// Range returns the minimum and maximum height in the grid, or zeros for
// an empty grid.
func (g *Grid) Range() (min, max float32) {
	if len(g.cells) == 0 {
		return 0, 0
	}
	min, max = g.cells[0], g.cells[0]
	for _, h := range g.cells {
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	return min, max
}

// CheckFinite returns an error naming the first NaN or infinite cell.
func (g *Grid) CheckFinite() error {
	for i, h := range g.cells {
		if math.IsNaN(float64(h)) || math.IsInf(float64(h), 0) {
			return fmt.Errorf("%w: (%d, %d) = %v", ErrNonFiniteCell, i/g.size, i%g.size, h)
		}
	}
	return nil
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.size && col < g.size
}

// at and put skip bounds checks; callers have already validated indices.
func (g *Grid) at(row, col int) float32 {
	return g.cells[row*g.size+col]
}

func (g *Grid) put(row, col int, value float32) {
	g.cells[row*g.size+col] = value
}
