// Package random provides the deterministic random source every market stage
// draws from. Two sources built from the same seed yield the same stream.
package random

import "math/rand"

// Source wraps a seeded math/rand generator.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// New creates a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic seed for reproducible markets
	}
}

// NewFromSource wraps a caller-supplied generator. seed is reported by Seed
// only; src is used as given.
func NewFromSource(seed int64, src rand.Source) *Source {
	return &Source{seed: seed, rng: rand.New(src)}
}

// Seed returns the seed the source was built with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Intn returns a value in [0, n). It returns 0 when n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// Between returns an int in [lo, hi], inclusive on both ends.
func (s *Source) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Uniform returns a float in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// Noise returns symmetric noise in [-amplitude, amplitude).
func (s *Source) Noise(amplitude float64) float64 {
	if amplitude <= 0 {
		return 0
	}
	return (s.rng.Float64()*2 - 1) * amplitude
}

// Read fills p with pseudo-random bytes so the source can feed uuid generation.
func (s *Source) Read(p []byte) (int, error) {
	return s.rng.Read(p)
}
