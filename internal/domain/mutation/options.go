package mutation

// Option applies a configuration option to the Mutator.
type Option func(*Mutator)

// WithSource injects the randomness source. Deterministic test doubles
// plug in here instead of patching the default generator.
func WithSource(src Source) Option {
	return func(m *Mutator) {
		if src != nil {
			m.source = src
		}
	}
}

// WithSeed is shorthand for WithSource(NewSource(seed)).
func WithSeed(seed int64) Option {
	return func(m *Mutator) {
		m.source = NewSource(seed)
	}
}

// WithMaxMutatedPoints caps how many tenors may move in a single tick.
func WithMaxMutatedPoints(n int) Option {
	return func(m *Mutator) {
		if n > 0 {
			m.maxPoints = n
		}
	}
}

// WithMaxFraction sets the maximum relative step size per tick.
func WithMaxFraction(f float64) Option {
	return func(m *Mutator) {
		if f > 0 {
			m.maxFraction = f
		}
	}
}

// WithFloor sets the absolute rate floor.
func WithFloor(f float64) Option {
	return func(m *Mutator) {
		if f > 0 {
			m.floor = f
		}
	}
}
