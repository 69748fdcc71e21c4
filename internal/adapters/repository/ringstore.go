package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/curvecast/internal/domain/model"
	"github.com/okian/curvecast/pkg/metrics"
)

// DefaultCapacity is the number of snapshots kept when no capacity option
// is supplied.
const DefaultCapacity = 256

// RingStore is a fixed-capacity, in-memory Store implementation. Snapshots
// arrive in timestamp order from the build pipeline, so recency is simply
// insertion order; once full the oldest entry is overwritten in place.
type RingStore struct {
	mu       sync.RWMutex
	capacity int
	buf      []model.Snapshot
	next     int // index the next Append writes to
	size     int
}

// NewRingStore constructs an empty ring store.
func NewRingStore(opts ...Option) *RingStore {
	s := &RingStore{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	s.buf = make([]model.Snapshot, s.capacity)
	return s
}

// Append implements Store.
func (s *RingStore) Append(_ context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf[s.next] = snap
	s.next = (s.next + 1) % s.capacity
	if s.size < s.capacity {
		s.size++
	}

	metrics.UpdateHistorySize(s.size)
	return nil
}

// Latest implements Store.
func (s *RingStore) Latest(_ context.Context) (model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.size == 0 {
		return model.Snapshot{}, ErrEmptyHistory
	}
	return s.buf[s.index(0)], nil
}

// Recent implements Store.
func (s *RingStore) Recent(_ context.Context, n int) ([]model.Snapshot, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, n)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > s.size {
		n = s.size
	}
	out := make([]model.Snapshot, n)
	for i := 0; i < n; i++ {
		out[i] = s.buf[s.index(i)]
	}
	return out, nil
}

// Count implements Store.
func (s *RingStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// index maps an age offset (0 = newest) to a buffer position. Callers hold
// the lock and guarantee offset < size.
func (s *RingStore) index(offset int) int {
	return ((s.next-1-offset)%s.capacity + s.capacity) % s.capacity
}
