package fitting

import "errors"

// Sentinel kinds for fitting errors. Callers match with errors.Is.
var (
	// ErrZeroVariance rejects an all-identical rate sample: fitting a
	// polynomial to a constant signal almost always indicates stale
	// state upstream.
	ErrZeroVariance = errors.New("cannot fit curve without variance")

	// ErrInputMismatch flags inconsistent tenor/rate shapes or an
	// underdetermined system for the requested degree.
	ErrInputMismatch = errors.New("invalid fit input")
)
