package heightmap

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ErrNilRandomSource is returned when a generator has no random source.
var ErrNilRandomSource = errors.New("generator requires a random source")

// Params controls displacement during generation.
type Params struct {
	// Roughness is the decay exponent: scale is divided by 2^Roughness after
	// every pass. 1 halves the scale each pass.
	Roughness float32
	// InitialScale is the displacement scale of the first pass.
	InitialScale float32
	// CornerHeight multiplies the uniform draws used for the four corners.
	CornerHeight float32
}

// DefaultParams returns roughness 1 with unit initial scale and corner height.
func DefaultParams() Params {
	return Params{
		Roughness:    1,
		InitialScale: 1,
		CornerHeight: 1,
	}
}

// Pass describes one diamond+square iteration.
type Pass struct {
	Step     int
	HalfStep int
	Scale    float32
}

// Schedule returns the passes run for a grid of the given size, coarsest first.
func Schedule(size int, p Params) ([]Pass, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	var passes []Pass
	scale := p.InitialScale
	for step := size - 1; step > 1; step /= 2 {
		passes = append(passes, Pass{Step: step, HalfStep: step / 2, Scale: scale})
		scale = decay(scale, p.Roughness)
	}
	return passes, nil
}

func decay(scale, roughness float32) float32 {
	if roughness == 1 {
		return scale / 2
	}
	return float32(float64(scale) / math.Pow(2, float64(roughness)))
}

// Generator fills grids using the diamond-square algorithm.
// A Generator is not safe for concurrent use: it consumes its RandomSource
// in a fixed order so that identical sources produce identical grids.
type Generator struct {
	rng    RandomSource
	params Params
	log    *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for per-pass debug output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// NewGenerator returns a generator drawing from rng.
func NewGenerator(rng RandomSource, p Params, opts ...Option) *Generator {
	g := &Generator{
		rng:    rng,
		params: p,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate creates a grid of the given size and fills it.
func (g *Generator) Generate(size int) (*Grid, error) {
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	if err := g.Fill(grid); err != nil {
		return nil, err
	}
	return grid, nil
}

// Fill overwrites every cell of grid with fractal heights.
func (g *Generator) Fill(grid *Grid) error {
	if g.rng == nil {
		return ErrNilRandomSource
	}
	passes, err := Schedule(grid.size, g.params)
	if err != nil {
		return err
	}

	g.initCorners(grid)
	for _, p := range passes {
		g.log.Debug("diamond-square pass",
			zap.Int("step", p.Step),
			zap.Int("halfstep", p.HalfStep),
			zap.Float32("scale", p.Scale),
		)
		g.diamond(grid, p)
		g.square(grid, p)
	}
	return nil
}

func (g *Generator) initCorners(grid *Grid) {
	last := grid.size - 1
	for _, c := range [4][2]int{{0, 0}, {0, last}, {last, 0}, {last, last}} {
		grid.put(c[0], c[1], float32(g.rng.Uniform())*g.params.CornerHeight)
	}
}

// diamond sets the center of every step x step block from its four corners.
func (g *Generator) diamond(grid *Grid, p Pass) {
	for row := p.HalfStep; row < grid.size; row += p.Step {
		for col := p.HalfStep; col < grid.size; col += p.Step {
			g.displace(grid, row, col, gather(grid, row, col, p.HalfStep, &diagonalOffsets), p.Scale)
		}
	}
}

// square sets the edge midpoints of every block from their orthogonal
// neighbors. Diamond centers alternate parity between rows, so edge
// midpoints on step-aligned rows and on half-step rows are two passes.
func (g *Generator) square(grid *Grid, p Pass) {
	for row := 0; row < grid.size; row += p.Step {
		for col := p.HalfStep; col < grid.size; col += p.Step {
			g.displace(grid, row, col, gather(grid, row, col, p.HalfStep, &orthogonalOffsets), p.Scale)
		}
	}
	for row := p.HalfStep; row < grid.size; row += p.Step {
		for col := 0; col < grid.size; col += p.Step {
			g.displace(grid, row, col, gather(grid, row, col, p.HalfStep, &orthogonalOffsets), p.Scale)
		}
	}
}

func (g *Generator) displace(grid *Grid, row, col int, acc accumulator, scale float32) {
	grid.put(row, col, acc.mean()+float32(g.rng.Gaussian())*scale)
}
