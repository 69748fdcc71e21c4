// Package model contains domain records passed between layers.
package model

import "github.com/okian/curvecast/internal/domain/fitting"

// Snapshot is one immutable, timestamped observation of raw and fitted
// curve state. JSON field names are part of the streaming contract.
type Snapshot struct {
	Timestamp  string         `json:"timestamp"`  // UTC, RFC3339
	TenorYears []float64      `json:"tenorYears"` // raw observation x-axis
	RawRates   []float64      `json:"rawRates"`   // one rate per tenor
	Fit        fitting.Result `json:"fit"`        // fitted curve on the dense grid
}
