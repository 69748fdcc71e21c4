package streamprobe

import "errors"

var (
	// ErrMalformedFrame reports an event-stream line that does not carry a
	// decodable snapshot payload.
	ErrMalformedFrame = errors.New("malformed stream frame")

	// ErrContractViolation reports a decoded snapshot that breaks the
	// published snapshot contract.
	ErrContractViolation = errors.New("snapshot contract violation")
)
