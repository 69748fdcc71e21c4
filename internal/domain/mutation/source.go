// Package mutation advances the shared raw-rate state of one curve by
// small bounded random steps, one tick at a time.
package mutation

import "math/rand"

// DefaultSeed seeds the random source when no seed is configured, keeping
// mutation sequences reproducible for a given call order.
const DefaultSeed = 42

// Source is the randomness capability consumed by the Mutator. Test
// doubles implement the same interface; the Mutator serialises all calls
// under its own lock, so implementations need no internal locking.
type Source interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int

	// Pick returns k distinct indices drawn uniformly from [0, n)
	// without replacement.
	Pick(k, n int) []int

	// Float returns a uniform float64 in [lo, hi).
	Float(lo, hi float64) float64
}

// randSource implements Source on top of math/rand.
type randSource struct {
	rng *rand.Rand
}

// NewSource returns a Source backed by a math/rand generator with the
// given seed.
func NewSource(seed int64) Source {
	return &randSource{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // deterministic seed for reproducible mutation sequences
}

func (s *randSource) IntN(n int) int {
	return s.rng.Intn(n)
}

func (s *randSource) Pick(k, n int) []int {
	return s.rng.Perm(n)[:k]
}

func (s *randSource) Float(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
