// Package service implements the activity signup use cases consumed by the
// HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/mergington/internal/adapters/mq/queue"
	"github.com/okian/mergington/internal/adapters/mq/publisher"
	workerpool "github.com/okian/mergington/internal/adapters/mq/worker"
	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/catalog"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

const (
	defaultQueueSize = 1024
	shutdownTimeout  = 10 * time.Second
)

var (
	// ErrNotStarted is returned by operations called before Start or after Stop.
	ErrNotStarted = errors.New("service not started")

	// ErrStopped is returned by Start once the service has been stopped. Stop
	// closes the publisher, so a Service cannot be restarted.
	ErrStopped = errors.New("service stopped")
)

// SignupResult is the confirmation returned for a successful signup.
type SignupResult struct {
	Message string `json:"message"`
}

// Service implements the API dependencies for the activity catalog.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	eventQueue *eventqueue.InMemoryQueue
	workerPool *workerpool.Pool
	publisher  publisher.Publisher

	// Configuration
	seed            model.Catalog
	enforceCapacity bool
	queueSize       int
	workerCount     int

	signups  atomic.Int64
	rejected atomic.Int64
	dropped  atomic.Int64

	started bool
	stopped bool
	now     func() time.Time
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog replaces the built-in seed catalog.
func WithCatalog(c model.Catalog) Option {
	return func(s *Service) {
		if len(c) > 0 {
			s.seed = c
		}
	}
}

// WithCapacityEnforcement rejects signups for full activities.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *Service) {
		s.enforceCapacity = enabled
	}
}

// WithPublisher sets where signup events are delivered. Defaults to a log publisher.
func WithPublisher(p publisher.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithQueueSize bounds the signup event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of publishing workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// New constructs a Service. Call Start before serving requests.
func New(opts ...Option) *Service {
	s := &Service{
		seed:      catalog.Default(),
		queueSize: defaultQueueSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the store and starts the event workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.stopped {
		return ErrStopped
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.publisher == nil {
		s.publisher = publisher.NewLogPublisher(s.logger.Named("signups"))
	}

	store, err := repository.NewInMemoryStore(s.seed,
		repository.WithCapacityEnforcement(s.enforceCapacity),
		repository.WithLogger(s.logger.Named("store")),
	)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	s.store = store

	s.eventQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.publisher,
		workerpool.WithLogger(s.logger.Named("worker")),
	)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "activity service started",
		logger.Int("activities", store.Count(ctx)),
		logger.Bool("enforceCapacity", s.enforceCapacity),
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop drains pending signup events and releases the publisher. A stopped
// service refuses further Start calls with ErrStopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping activity service...")
	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "signup events not fully drained", logger.Error(err))
	}
	if err := s.publisher.Close(); err != nil {
		s.logger.Error(ctx, "closing publisher failed", logger.Error(err))
	}
	s.started = false
	s.stopped = true
	s.logger.Info(ctx, "activity service stopped")
}

func (s *Service) active() (repository.Store, eventqueue.Queue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.eventQueue, nil
}

// ListActivities returns the full catalog in seed order.
func (s *Service) ListActivities(ctx context.Context) (model.Catalog, error) {
	store, _, err := s.active()
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

// Signup registers email for the named activity. Store sentinels
// (repository.ErrNotFound, ErrAlreadySignedUp, ErrActivityFull) are returned
// unwrapped so callers can match them with errors.Is.
func (s *Service) Signup(ctx context.Context, activity, email string) (SignupResult, error) {
	store, events, err := s.active()
	if err != nil {
		return SignupResult{}, err
	}

	if err := store.Signup(ctx, activity, email); err != nil {
		s.rejected.Add(1)
		metrics.RecordSignupRejected(rejectReason(err))
		s.logger.Debug(ctx, "signup rejected",
			logger.String("activity", activity),
			logger.String("email", email),
			logger.Error(err),
		)
		return SignupResult{}, err
	}

	s.signups.Add(1)
	metrics.RecordSignup(activity)
	s.emit(ctx, events, activity, email, occupancy(ctx, store, activity))

	return SignupResult{Message: fmt.Sprintf("Signed up %s for %s", email, activity)}, nil
}

// emit queues a signup event. A full queue never fails the signup itself.
func (s *Service) emit(ctx context.Context, events eventqueue.Queue, activity, email string, participants int) {
	e := model.SignupEvent{
		ID:           uuid.NewString(),
		Activity:     activity,
		Email:        email,
		Participants: participants,
		OccurredAt:   s.now().UTC(),
	}
	if !events.Enqueue(ctx, e) {
		s.dropped.Add(1)
		s.logger.Warn(ctx, "signup event dropped",
			logger.String("event_id", e.ID),
			logger.String("activity", activity),
		)
	}
}

// occupancy reads the participant count after a signup. Zero if the
// activity cannot be read back.
func occupancy(ctx context.Context, store repository.Store, activity string) int {
	a, err := store.Get(ctx, activity)
	if err != nil {
		return 0
	}
	return len(a.Participants)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrAlreadySignedUp):
		return "duplicate"
	case errors.Is(err, repository.ErrActivityFull):
		return "full"
	default:
		return "error"
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"stopped":         s.stopped,
		"enforceCapacity": s.enforceCapacity,
		"signups":         s.signups.Load(),
		"rejected":        s.rejected.Load(),
		"eventsDropped":   s.dropped.Load(),
		"queueSize":       s.queueSize,
	}
	if s.started {
		ctx := context.Background()
		stats["activities"] = s.store.Count(ctx)
		stats["queueLength"] = s.eventQueue.Len()
		stats["queueClosed"] = s.eventQueue.IsClosed()
		stats["workerCount"] = s.workerPool.Size()
	}
	return stats
}
