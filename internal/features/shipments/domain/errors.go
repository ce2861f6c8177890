package domain

import "errors"

var (
	// ErrValidation is returned when input breaks a field or timeline rule.
	// The caller has to correct the input; it is never retried.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when no shipment matches an id or tracking code.
	ErrNotFound = errors.New("shipment not found")
	// ErrConflict is returned when a tracking code is already taken.
	// Create is expected to retry with a fresh suffix.
	ErrConflict = errors.New("tracking id already exists")
	// ErrBusy is returned when a shipment stayed contended past the retry budget.
	ErrBusy = errors.New("shipment is being modified concurrently")
)
