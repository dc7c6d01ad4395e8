package heightmap

import "math/rand/v2"

// RandomSource supplies the random draws consumed by the generator.
// Gaussian must return unscaled standard-normal samples; the generator
// applies the displacement scale itself.
type RandomSource interface {
	Uniform() float64  // [0, 1)
	Gaussian() float64 // mean 0, standard deviation 1
}

// PCGSource is a seedable RandomSource backed by a PCG generator.
type PCGSource struct {
	seed uint64
	pcg  *rand.PCG
	rng  *rand.Rand
}

// NewPCGSource returns a source whose sequence is fully determined by seed.
func NewPCGSource(seed uint64) *PCGSource {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &PCGSource{
		seed: seed,
		pcg:  pcg,
		rng:  rand.New(pcg),
	}
}

// Seed returns the seed the source was created with.
func (s *PCGSource) Seed() uint64 {
	return s.seed
}

// Uniform returns a float in [0, 1).
func (s *PCGSource) Uniform() float64 {
	return s.rng.Float64()
}

// Gaussian returns a standard-normal sample.
func (s *PCGSource) Gaussian() float64 {
	return s.rng.NormFloat64()
}

// Clone returns an independent source positioned at the same point in the
// sequence. Draws from the clone do not advance the original.
func (s *PCGSource) Clone() *PCGSource {
	state := *s.pcg
	return &PCGSource{
		seed: s.seed,
		pcg:  &state,
		rng:  rand.New(&state),
	}
}
