// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file and environment variables.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"github.com/okian/curvecast/internal/adapters/repository"
	"github.com/okian/curvecast/internal/domain/mutation"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Seed seeds the mutation random source. Mutation sequences are
	// reproducible for a given seed and call order.
	Seed int64 `koanf:"seed"`

	// MaxMutatedPoints caps how many tenors may move per tick.
	MaxMutatedPoints int `koanf:"max_mutated_points"`

	// MaxMutationFraction is the maximum relative step size per tick.
	MaxMutationFraction float64 `koanf:"max_mutation_fraction"`

	// MinCurveRate is the absolute rate floor in percent.
	MinCurveRate float64 `koanf:"min_curve_rate"`

	// FitDegree is the polynomial degree of the published fit.
	FitDegree int `koanf:"fit_degree"`

	// DefaultIntervalSeconds is the stream tick interval used when a
	// consumer does not supply one.
	DefaultIntervalSeconds float64 `koanf:"default_interval_seconds"`

	// HistorySize bounds the in-memory snapshot history.
	HistorySize int `koanf:"history_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":8080",
		Seed:                   mutation.DefaultSeed,
		MaxMutatedPoints:       mutation.DefaultMaxMutatedPoints,
		MaxMutationFraction:    mutation.DefaultMaxFraction,
		MinCurveRate:           mutation.DefaultFloor,
		FitDegree:              4,
		DefaultIntervalSeconds: 1.0,
		HistorySize:            repository.DefaultCapacity,
	}
}
