// Package worker drains the signup event queue into a publisher.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultPublishTimeout = 5 * time.Second
)

// ErrShutdownTimeout is returned when workers do not drain before the deadline.
var ErrShutdownTimeout = errors.New("worker pool shutdown timed out")

// Event abstracts what workers read off the queue.
type Event = model.SignupEvent

// Publisher delivers one event.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue() <-chan Event
	Close() error
}

// InMemoryWorker publishes events until the queue channel is closed.
type InMemoryWorker struct {
	events         <-chan Event
	publisher      Publisher
	name           string
	publishTimeout time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker reading from q.
func NewInMemoryWorker(q Queue, p Publisher, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		events:         q.Dequeue(),
		publisher:      p,
		name:           "worker",
		publishTimeout: defaultPublishTimeout,
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes events until the queue is closed and drained, or until the
// worker is stopped. Cancelling ctx does not drop queued events.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-w.stop:
			return
		case e, ok := <-w.events:
			if !ok {
				return
			}
			if err := w.process(ctx, e); err != nil {
				w.logger.Error(ctx, "publish failed",
					logger.String("event_id", e.ID),
					logger.String("activity", e.Activity),
					logger.Error(err),
				)
			}
		}
	}
}

// Stop makes Run return without draining. Safe to call more than once.
func (w *InMemoryWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

func (w *InMemoryWorker) process(ctx context.Context, e Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.publishTimeout)
	defer cancel()

	start := time.Now()
	if err := w.publisher.Publish(ctx, e); err != nil {
		metrics.RecordPublishError()
		metrics.RecordErrorByType("publish_error", "high")
		return fmt.Errorf("%s: event %s: %w", w.name, e.ID, err)
	}
	metrics.RecordEventPublished(float64(time.Since(start).Microseconds()) / 1000)
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates workerCount workers. Non-positive counts default to NumCPU.
func NewPool(workerCount int, q Queue, p Publisher, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range pool.workers {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewInMemoryWorker(q, p, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for workers to drain it. Workers still
// running when ctx expires are stopped and ErrShutdownTimeout is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	if err := p.queue.Close(); err != nil {
		p.logger.Error(ctx, "error closing queue", logger.Error(err))
	}

	var pending int
	for _, w := range p.workers {
		select {
		case <-w.Done():
		case <-ctx.Done():
			w.Stop()
			pending++
		}
	}
	if pending > 0 {
		p.logger.Warn(ctx, "workers stopped before draining", logger.Int("pending", pending))
		return fmt.Errorf("%w: %d workers", ErrShutdownTimeout, pending)
	}
	return nil
}
