package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound        = errors.New("activity not found")
	ErrAlreadySignedUp = errors.New("already signed up for this activity")
	ErrActivityFull    = errors.New("activity is full")
	ErrDuplicateName   = errors.New("duplicate activity name")
)
