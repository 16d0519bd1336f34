package repository

import "github.com/okian/mergington/pkg/logger"

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithCapacityEnforcement makes Signup fail with ErrActivityFull once an
// activity reaches max_participants. Off by default.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *InMemoryStore) {
		s.enforceCapacity = enabled
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *InMemoryStore) {
		if l != nil {
			s.logger = l
		}
	}
}
