// Package repository holds the activity store.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/model"
)

// Store provides read/write access to the activity catalog.
type Store interface {
	// List returns every activity in catalog order.
	List(ctx context.Context) (model.Catalog, error)

	// Get returns a single activity. Returns ErrNotFound if name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup appends email to the activity's participants.
	// Returns ErrNotFound, ErrAlreadySignedUp or ErrActivityFull.
	Signup(ctx context.Context, name, email string) error

	// Count returns the number of activities.
	Count(ctx context.Context) int
}
