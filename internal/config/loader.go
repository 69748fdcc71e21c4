package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CURVECAST_CONFIG is set
//  3. env (prefix CURVECAST_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CURVECAST_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: CURVECAST_ADDR, CURVECAST_SEED, ...
	// Map env keys like CURVECAST_MAX_MUTATED_POINTS -> max_mutated_points
	// (flat keys); underscores are preserved to match the koanf tags.
	envProvider := env.Provider("CURVECAST_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "curvecast_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// An unparsable seed falls back to the default rather than failing the
	// whole boot; the seed only picks a reproducible mutation sequence.
	if raw := k.String("seed"); raw != "" {
		if _, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err != nil {
			k.Delete("seed")
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxMutatedPoints < 1:
		return fmt.Errorf("%w: max_mutated_points must be at least 1", ErrInvalidConfig)
	case c.MaxMutationFraction <= 0 || c.MaxMutationFraction >= 1:
		return fmt.Errorf("%w: max_mutation_fraction must be in (0, 1)", ErrInvalidConfig)
	case c.MinCurveRate <= 0:
		return fmt.Errorf("%w: min_curve_rate must be positive", ErrInvalidConfig)
	case c.FitDegree < 1:
		return fmt.Errorf("%w: fit_degree must be at least 1", ErrInvalidConfig)
	case c.DefaultIntervalSeconds <= 0:
		return fmt.Errorf("%w: default_interval_seconds must be positive", ErrInvalidConfig)
	case c.HistorySize < 1:
		return fmt.Errorf("%w: history_size must be at least 1", ErrInvalidConfig)
	}
	return nil
}
