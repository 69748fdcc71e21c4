// Package streamprobe implements a verification client for the curve
// stream: it subscribes, validates the snapshot contract frame by frame
// and reports tick latency.
package streamprobe

import "time"

// Default probe configuration constants.
const (
	DefaultBaseURL         = "http://localhost:8080"
	DefaultFrames          = 20
	DefaultIntervalSeconds = 0.2
	DefaultTimeout         = 30 * time.Second
)

// Config holds the probe run parameters.
type Config struct {
	BaseURL         string
	Frames          int
	IntervalSeconds float64
	Timeout         time.Duration
	LogFile         string
	Verbose         bool

	// Bounds the probe validates raw rates against. These must mirror the
	// mutation settings of the service under test.
	MaxMutationFraction float64
	MinCurveRate        float64
}
