package mutation

import (
	"math"
	"sync"

	"github.com/okian/curvecast/internal/domain/curve"
)

// Default mutation bounds.
const (
	// DefaultMaxMutatedPoints caps how many tenors move in one tick.
	DefaultMaxMutatedPoints = 2
	// DefaultMaxFraction is the maximum relative step size per tick; it
	// also sets the band around the base curve a rate may drift within.
	DefaultMaxFraction = 0.20
	// DefaultFloor is the absolute rate floor in percent.
	DefaultFloor = 1.5
)

// Mutator owns the mutable raw-rate state for one curve instance. The base
// curve is computed once from the tenor grid; the current rates start as a
// copy of it and drift via Advance. The lock lives on the object, so
// independent curve instances never contend.
type Mutator struct {
	mu      sync.Mutex
	tenors  []float64
	base    []float64
	current []float64

	source      Source
	maxPoints   int
	maxFraction float64
	floor       float64
}

// NewMutator seeds the state from the base curve shape over the given
// tenor grid. The grid must be non-empty.
func NewMutator(tenors []float64, opts ...Option) *Mutator {
	m := &Mutator{
		tenors:      append([]float64(nil), tenors...),
		source:      NewSource(DefaultSeed),
		maxPoints:   DefaultMaxMutatedPoints,
		maxFraction: DefaultMaxFraction,
		floor:       DefaultFloor,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.maxPoints > len(m.tenors) {
		m.maxPoints = len(m.tenors)
	}

	m.base = curve.Shape(m.tenors)
	m.current = append([]float64(nil), m.base...)
	return m
}

// TenorYears returns a copy of the tenor grid the state is keyed on.
func (m *Mutator) TenorYears() []float64 {
	return append([]float64(nil), m.tenors...)
}

// Base returns a copy of the base curve the state was seeded from.
func (m *Mutator) Base() []float64 {
	return append([]float64(nil), m.base...)
}

// Current returns a copy of the current raw rates without advancing them.
func (m *Mutator) Current() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.current...)
}

// Advance applies one mutation tick and returns a copy of the full
// raw-rate sequence. Between 1 and maxPoints distinct tenors move; each
// proposed rate current[i]*(1+delta) is clamped to the band
// [max(base[i]*(1-maxFraction), floor), base[i]*(1+maxFraction)].
// The whole read-modify-write runs under the lock, so concurrent callers
// observe consistent before/after states with no partial updates.
func (m *Mutator) Advance() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 1 + m.source.IntN(m.maxPoints)
	for _, i := range m.source.Pick(count, len(m.current)) {
		delta := m.source.Float(-m.maxFraction, m.maxFraction)
		proposed := m.current[i] * (1 + delta)
		lower := math.Max(m.base[i]*(1-m.maxFraction), m.floor)
		upper := m.base[i] * (1 + m.maxFraction)
		m.current[i] = clamp(proposed, lower, upper)
	}

	out := make([]float64, len(m.current))
	copy(out, m.current)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
