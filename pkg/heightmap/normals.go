package heightmap

import (
	gomath "math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Up is the normal assigned to degenerate (zero-length) gradients.
var Up = math.Vec3{X: 0, Y: 0, Z: 1}

// NormalEstimator derives per-vertex normals from central differences.
// Columns map to X and rows map to Y; heights map to Z.
type NormalEstimator struct {
	// ScaleX and ScaleY convert a height difference per grid cell into a
	// slope in exported space.
	ScaleX float32
	ScaleY float32
}

// NewNormalEstimator returns an estimator for a grid of the given size that
// will be exported with the given scale factors. A grid spanning [-1, 1]
// has cells (size-1)/2 apart per unit, so the slope factor along X is
// heightScale / xScale * (size-1) / 2.
func NewNormalEstimator(size int, xScale, yScale, heightScale float32) NormalEstimator {
	half := float32(size-1) / 2
	return NormalEstimator{
		ScaleX: heightScale / xScale * half,
		ScaleY: heightScale / yScale * half,
	}
}

// At returns the unit normal at (row, col).
func (e NormalEstimator) At(g *Grid, row, col int) math.Vec3 {
	dx := difference(g, row, col, 0, 1)
	dy := difference(g, row, col, 1, 0)

	n := math.Vec3{X: -dx * e.ScaleX, Y: -dy * e.ScaleY, Z: 1}
	l := n.Length()
	if l == 0 || gomath.IsNaN(float64(l)) || gomath.IsInf(float64(l), 0) {
		return Up
	}
	return n.Scale(1 / l)
}

// difference is the central difference along (dr, dc), falling back to a
// one-sided difference with divisor 1 at the grid boundary.
func difference(g *Grid, row, col, dr, dc int) float32 {
	lo, hi := g.at(row, col), g.at(row, col)
	divisor := float32(0)
	if g.inBounds(row-dr, col-dc) {
		lo = g.at(row-dr, col-dc)
		divisor++
	}
	if g.inBounds(row+dr, col+dc) {
		hi = g.at(row+dr, col+dc)
		divisor++
	}
	return (hi - lo) / divisor
}

// Estimate computes the normal of every cell in row-major order, splitting
// rows across up to workers goroutines (0 means GOMAXPROCS).
func (e NormalEstimator) Estimate(g *Grid, workers int) []math.Vec3 {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	normals := make([]math.Vec3, g.size*g.size)

	var eg errgroup.Group
	eg.SetLimit(workers)
	for row := range g.size {
		eg.Go(func() error {
			out := normals[row*g.size : (row+1)*g.size]
			for col := range g.size {
				out[col] = e.At(g, row, col)
			}
			return nil
		})
	}
	_ = eg.Wait()
	return normals
}
