package repository

import "errors"

// Sentinel kinds for history errors.
var (
	ErrEmptyHistory = errors.New("snapshot history is empty")
	ErrInvalidLimit = errors.New("invalid history limit")
)
