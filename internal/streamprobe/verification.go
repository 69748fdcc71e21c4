package streamprobe

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/okian/curvecast/internal/domain/curve"
	"github.com/okian/curvecast/internal/domain/fitting"
	"github.com/okian/curvecast/internal/domain/model"
	"github.com/okian/curvecast/pkg/logger"
)

// VerifySnapshot checks one decoded snapshot against the published contract:
// timestamp format, grid sizes, fitted polynomial order and raw rates kept
// inside the mutation bounds derived from the base curve.
func VerifySnapshot(config *Config, snap model.Snapshot) error {
	if _, err := time.Parse(time.RFC3339Nano, snap.Timestamp); err != nil {
		return fmt.Errorf("%w: timestamp %q not RFC 3339", ErrContractViolation, snap.Timestamp)
	}

	if len(snap.TenorYears) != curve.TenorGridSize {
		return fmt.Errorf("%w: %d tenor points, want %d", ErrContractViolation, len(snap.TenorYears), curve.TenorGridSize)
	}
	if len(snap.RawRates) != curve.TenorGridSize {
		return fmt.Errorf("%w: %d raw rates, want %d", ErrContractViolation, len(snap.RawRates), curve.TenorGridSize)
	}
	if len(snap.Fit.GridYears) != curve.EvalGridSize {
		return fmt.Errorf("%w: %d fit grid points, want %d", ErrContractViolation, len(snap.Fit.GridYears), curve.EvalGridSize)
	}
	if len(snap.Fit.Rates) != curve.EvalGridSize {
		return fmt.Errorf("%w: %d fitted rates, want %d", ErrContractViolation, len(snap.Fit.Rates), curve.EvalGridSize)
	}
	if want := fitting.DefaultDegree + 1; len(snap.Fit.Coefficients) != want {
		return fmt.Errorf("%w: %d coefficients, want %d", ErrContractViolation, len(snap.Fit.Coefficients), want)
	}

	for i, t := range snap.TenorYears {
		if want := curve.TenorYears()[i]; t != want {
			return fmt.Errorf("%w: tenor[%d]=%g, want %g", ErrContractViolation, i, t, want)
		}
	}

	base := curve.Shape(snap.TenorYears)
	for i, rate := range snap.RawRates {
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: raw rate[%d] not finite", ErrContractViolation, i)
		}
		lower := math.Max(base[i]*(1-config.MaxMutationFraction), config.MinCurveRate)
		upper := base[i] * (1 + config.MaxMutationFraction)
		if rate < lower-boundsTolerance || rate > upper+boundsTolerance {
			return fmt.Errorf("%w: raw rate[%d]=%g outside [%g, %g]", ErrContractViolation, i, rate, lower, upper)
		}
	}

	for i, rate := range snap.Fit.Rates {
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: fitted rate[%d] not finite", ErrContractViolation, i)
		}
	}
	return nil
}

// boundsTolerance absorbs float formatting round trips through JSON.
const boundsTolerance = 1e-9

// verifyFrames validates every collected frame and checks timestamps are
// strictly increasing across the run.
func verifyFrames(ctx context.Context, config *Config, frames []frame) error {
	log := logger.Get().Named("probe")

	var previous time.Time
	for i, f := range frames {
		if err := VerifySnapshot(config, f.snapshot); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}

		ts, _ := time.Parse(time.RFC3339Nano, f.snapshot.Timestamp)
		if i > 0 && !ts.After(previous) {
			return fmt.Errorf("frame %d: %w: timestamp %s not after %s",
				i+1, ErrContractViolation, f.snapshot.Timestamp, previous.Format(time.RFC3339Nano))
		}
		previous = ts

		if config.Verbose {
			log.Info(ctx, "frame verified",
				logger.Int("frame", i+1),
				logger.String("timestamp", f.snapshot.Timestamp),
				logger.Float64("firstRate", f.snapshot.RawRates[0]),
			)
		}
	}

	log.Info(ctx, "all frames verified", logger.Int("frames", len(frames)))
	return nil
}
