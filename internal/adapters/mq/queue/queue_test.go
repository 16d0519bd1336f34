package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/mergington/internal/domain/model"
)

func event(id string) model.SignupEvent {
	return model.SignupEvent{ID: id, Activity: "Chess Club", Email: id + "@mergington.edu", OccurredAt: time.Now()}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if !q.Enqueue(ctx, event("zoe")) {
		t.Fatal("expected enqueue to succeed")
	}
	if l := q.Len(); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue()
	if got.ID != "zoe" {
		t.Errorf("expected zoe, got %v", got.ID)
	}
	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, event("a")) || !q.Enqueue(ctx, event("b")) {
		t.Fatal("expected first two enqueues to succeed")
	}
	if q.Enqueue(ctx, event("c")) {
		t.Error("expected enqueue to fail when queue is full")
	}
	if l := q.Len(); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_DefaultCapacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(0))
	if cap(q.events) != defaultCapacity {
		t.Errorf("expected default capacity %d, got %d", defaultCapacity, cap(q.events))
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Buffer space is available, so the send may still win the select.
	// Fill the buffer first to make the outcome deterministic.
	if !q.Enqueue(context.Background(), event("a")) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, event("b")) {
		t.Error("expected enqueue to fail with a full queue and cancelled context")
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	q.Enqueue(ctx, event("a"))
	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}
	if q.Enqueue(ctx, event("b")) {
		t.Error("expected enqueue after close to fail")
	}
	if err := q.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}

	var drained []string
	for e := range q.Dequeue() {
		drained = append(drained, e.ID)
	}
	if len(drained) != 1 || drained[0] != "a" {
		t.Errorf("expected to drain [a], got %v", drained)
	}
}

func TestInMemoryQueue_ConcurrentEnqueue(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Enqueue(ctx, event("x"))
		}()
	}
	wg.Wait()

	if l := q.Len(); l != 100 {
		t.Errorf("expected 100 queued events, got %d", l)
	}
}
