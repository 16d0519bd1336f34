package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// InMemoryStore keeps the catalog in process memory. Activities are fixed at
// construction; participants are only ever appended.
type InMemoryStore struct {
	mu sync.RWMutex

	order      []string
	activities map[string]*model.Activity

	enforceCapacity bool
	logger          logger.Logger
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore builds a store seeded with a copy of seed.
func NewInMemoryStore(seed model.Catalog, opts ...Option) (*InMemoryStore, error) {
	s := &InMemoryStore{
		order:      make([]string, 0, len(seed)),
		activities: make(map[string]*model.Activity, len(seed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("store")
	}

	for _, item := range seed {
		if _, dup := s.activities[item.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, item.Name)
		}
		a := item.Activity.Clone()
		s.order = append(s.order, item.Name)
		s.activities[item.Name] = &a
		metrics.UpdateActivityOccupancy(item.Name, len(a.Participants), a.MaxParticipants)
	}
	metrics.UpdateActivityCount(len(s.order))
	return s, nil
}

// List returns a snapshot of the catalog. Callers may modify it freely.
func (s *InMemoryStore) List(_ context.Context) (model.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(model.Catalog, len(s.order))
	for i, name := range s.order {
		out[i] = model.NamedActivity{Name: name, Activity: s.activities[name].Clone()}
	}
	return out, nil
}

// Get returns a copy of the named activity.
func (s *InMemoryStore) Get(_ context.Context, name string) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrNotFound
	}
	return a.Clone(), nil
}

// Signup checks and appends under one write lock, so concurrent requests for
// the same email cannot both succeed.
func (s *InMemoryStore) Signup(ctx context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return ErrNotFound
	}
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}
	if s.enforceCapacity && a.IsFull() {
		return ErrActivityFull
	}

	a.Participants = append(a.Participants, email)
	metrics.UpdateActivityOccupancy(name, len(a.Participants), a.MaxParticipants)
	s.logger.Debug(ctx, "participant appended",
		logger.String("activity", name),
		logger.Int("participants", len(a.Participants)),
	)
	return nil
}

func (s *InMemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
