package repository

// Option applies a configuration option to the RingStore.
type Option func(*RingStore)

// WithCapacity sets how many snapshots the store retains before evicting
// the oldest.
func WithCapacity(n int) Option {
	return func(s *RingStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}
