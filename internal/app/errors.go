package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrInvalidInterval rejects a non-positive stream tick interval
	// before any curve state is touched.
	ErrInvalidInterval = errors.New("interval must be positive")

	// ErrNotStarted flags use of the pipeline before Start.
	ErrNotStarted = errors.New("service not started")
)
