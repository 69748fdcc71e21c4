package streamprobe

import (
	"context"
	"time"

	"github.com/okian/curvecast/pkg/logger"
)

// latencyStats summarizes the observed gaps between consecutive frames.
type latencyStats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// computeLatency derives inter-frame gap statistics from arrival times.
// It returns false when fewer than two frames were collected.
func computeLatency(frames []frame) (latencyStats, bool) {
	if len(frames) < 2 {
		return latencyStats{}, false
	}

	var stats latencyStats
	var total time.Duration
	for i := 1; i < len(frames); i++ {
		gap := frames[i].received.Sub(frames[i-1].received)
		if i == 1 || gap < stats.Min {
			stats.Min = gap
		}
		if gap > stats.Max {
			stats.Max = gap
		}
		total += gap
	}
	stats.Mean = total / time.Duration(len(frames)-1)
	return stats, true
}

// reportLatency logs the tick cadence seen by the client next to the
// interval that was requested.
func reportLatency(ctx context.Context, config *Config, frames []frame) {
	log := logger.Get().Named("probe")

	stats, ok := computeLatency(frames)
	if !ok {
		log.Warn(ctx, "not enough frames for latency stats", logger.Int("frames", len(frames)))
		return
	}

	log.Info(ctx, "inter-frame latency",
		logger.Float64("requestedSeconds", config.IntervalSeconds),
		logger.Duration("min", stats.Min),
		logger.Duration("max", stats.Max),
		logger.Duration("mean", stats.Mean),
	)
}
