package service

import (
	"github.com/okian/curvecast/internal/adapters/repository"
	"github.com/okian/curvecast/internal/domain/mutation"
	"github.com/okian/curvecast/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed seeds the mutation random source.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithSource injects a randomness source directly, overriding the seed.
// Intended for deterministic test doubles.
func WithSource(src mutation.Source) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithFitDegree sets the polynomial degree of the published fit.
func WithFitDegree(degree int) Option {
	return func(s *Service) {
		if degree > 0 {
			s.degree = degree
		}
	}
}

// WithMaxMutatedPoints caps how many tenors may move per tick.
func WithMaxMutatedPoints(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPoints = n
		}
	}
}

// WithMaxMutationFraction sets the maximum relative step size per tick.
func WithMaxMutationFraction(f float64) Option {
	return func(s *Service) {
		if f > 0 {
			s.maxFraction = f
		}
	}
}

// WithHistoryCapacity bounds how many snapshots the history store retains.
func WithHistoryCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.history = repository.NewRingStore(repository.WithCapacity(n))
		}
	}
}

// WithMinCurveRate sets the absolute rate floor.
func WithMinCurveRate(f float64) Option {
	return func(s *Service) {
		if f > 0 {
			s.floor = f
		}
	}
}
