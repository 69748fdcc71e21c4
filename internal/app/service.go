// Package service provides the core snapshot pipeline behind the HTTP
// adapters: one curve state advanced per tick, fitted and stamped into
// immutable snapshots.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/curvecast/internal/adapters/repository"
	"github.com/okian/curvecast/internal/domain/curve"
	"github.com/okian/curvecast/internal/domain/fitting"
	"github.com/okian/curvecast/internal/domain/model"
	"github.com/okian/curvecast/internal/domain/mutation"
	"github.com/okian/curvecast/pkg/logger"
	"github.com/okian/curvecast/pkg/metrics"
)

// Service owns one curve instance and builds snapshots from it. Multiple
// stream consumers share the same mutator state; every other value crosses
// the API as a copy.
type Service struct {
	mu sync.RWMutex

	// Core components
	mutator  *mutation.Mutator
	tenors   []float64
	evalGrid []float64
	history  repository.Store

	// Configuration
	seed        int64
	source      mutation.Source
	degree      int
	maxPoints   int
	maxFraction float64
	floor       float64

	// State
	started        bool
	activeStreams  atomic.Int64
	snapshotsBuilt atomic.Int64
	fitFailures    atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		tenors:      curve.TenorYears(),
		evalGrid:    curve.EvalGridYears(),
		seed:        mutation.DefaultSeed,
		degree:      fitting.DefaultDegree,
		maxPoints:   mutation.DefaultMaxMutatedPoints,
		maxFraction: mutation.DefaultMaxFraction,
		floor:       mutation.DefaultFloor,
		history:     repository.NewRingStore(),
		logger:      nil, // resolved on Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start seeds the curve state. Safe to call once; repeat calls are no-ops.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	mutOpts := []mutation.Option{
		mutation.WithSeed(s.seed),
		mutation.WithMaxMutatedPoints(s.maxPoints),
		mutation.WithMaxFraction(s.maxFraction),
		mutation.WithFloor(s.floor),
	}
	if s.source != nil {
		mutOpts = append(mutOpts, mutation.WithSource(s.source))
	}
	s.mutator = mutation.NewMutator(s.tenors, mutOpts...)

	s.started = true
	s.logger.Info(ctx, "curve service started",
		logger.Int64("seed", s.seed),
		logger.Int("tenors", len(s.tenors)),
		logger.Int("gridPoints", len(s.evalGrid)),
		logger.Int("fitDegree", s.degree),
	)
	return nil
}

// Stop discards the curve state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.mutator = nil
	s.started = false
	s.logger.Info(context.Background(), "curve service stopped")
}

// BuildSnapshot advances the shared raw rates by one mutation tick, fits
// the polynomial on the evaluation grid and stamps the result. The
// mutation commits before the fit runs, so a degenerate-fit failure leaves
// the advanced state in place; only the snapshot for this tick is lost.
func (s *Service) BuildSnapshot(ctx context.Context) (model.Snapshot, error) {
	s.mu.RLock()
	mut := s.mutator
	s.mu.RUnlock()
	if mut == nil {
		return model.Snapshot{}, ErrNotStarted
	}

	raw := mut.Advance()
	metrics.RecordMutationTick()

	fitStart := time.Now()
	fit, err := fitting.Fit(s.tenors, raw, s.evalGrid, s.degree)
	metrics.RecordFitDuration(float64(time.Since(fitStart).Microseconds()) / 1e3)
	if err != nil {
		s.fitFailures.Add(1)
		metrics.RecordFitFailure()
		return model.Snapshot{}, fmt.Errorf("build snapshot: %w", err)
	}

	s.snapshotsBuilt.Add(1)
	metrics.RecordSnapshotBuilt()

	snap := model.Snapshot{
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		TenorYears: append([]float64(nil), s.tenors...),
		RawRates:   raw,
		Fit:        fit,
	}
	if err := s.history.Append(ctx, snap); err != nil {
		s.logger.Warn(ctx, "history append failed", logger.Error(err))
	}
	return snap, nil
}

// RecentSnapshots returns up to limit snapshots from the history store,
// newest first.
func (s *Service) RecentSnapshots(ctx context.Context, limit int) ([]model.Snapshot, error) {
	return s.history.Recent(ctx, limit)
}

// Stream emits one snapshot per tick until ctx is cancelled: build, emit,
// suspend for interval. The interval is validated before any state is
// touched. Both returned channels close when the loop ends; a fit failure
// is delivered on the error channel and terminates only this consumer's
// loop, never the shared state.
func (s *Service) Stream(ctx context.Context, interval time.Duration) (<-chan model.Snapshot, <-chan error, error) {
	if interval <= 0 {
		return nil, nil, fmt.Errorf("%w: got %v", ErrInvalidInterval, interval)
	}
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, nil, ErrNotStarted
	}

	snapshots := make(chan model.Snapshot)
	errc := make(chan error, 1)

	go func() {
		defer close(snapshots)
		defer close(errc)

		n := s.activeStreams.Add(1)
		metrics.UpdateActiveStreams(int(n))
		metrics.RecordStreamClient()
		defer func() {
			metrics.UpdateActiveStreams(int(s.activeStreams.Add(-1)))
		}()

		for {
			snap, err := s.BuildSnapshot(ctx)
			if err != nil {
				metrics.RecordStreamError("degenerate_input")
				errc <- err
				return
			}

			select {
			case snapshots <- snap:
			case <-ctx.Done():
				return
			}

			select {
			case <-time.After(interval):
			case <-ctx.Done():
				return
			}
		}
	}()

	return snapshots, errc, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"seed":           s.seed,
		"fitDegree":      s.degree,
		"tenorCount":     len(s.tenors),
		"gridSize":       len(s.evalGrid),
		"historySize":    s.history.Count(context.Background()),
		"snapshotsBuilt": s.snapshotsBuilt.Load(),
		"fitFailures":    s.fitFailures.Load(),
		"activeStreams":  s.activeStreams.Load(),
	}

	metrics.UpdateActiveStreams(int(s.activeStreams.Load()))
	return stats
}
