// Package repository defines the snapshot history store interface and errors.
package repository

import (
	"context"

	"github.com/okian/curvecast/internal/domain/model"
)

// Store provides read/write access to the recent snapshot history.
type Store interface {
	// Append records a snapshot as the newest history entry, evicting the
	// oldest entry once the store is at capacity.
	Append(ctx context.Context, snap model.Snapshot) error

	// Latest returns the most recent snapshot.
	// Returns ErrEmptyHistory when nothing has been recorded yet.
	Latest(ctx context.Context) (model.Snapshot, error)

	// Recent returns up to n snapshots ordered newest first.
	// Returns ErrInvalidLimit when n is not positive.
	Recent(ctx context.Context, n int) ([]model.Snapshot, error)

	// Count returns the number of snapshots currently held.
	Count(ctx context.Context) int
}
