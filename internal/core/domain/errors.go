package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedEvent indicates a trigger the dispatcher does not route.
	ErrUnsupportedEvent = errors.New("unsupported event")

	// ErrPartialSync indicates a reconciliation run created some pages but
	// at least one create failed.
	ErrPartialSync = errors.New("partial sync")

	// ErrConfigMissing indicates a required setting was not provided.
	ErrConfigMissing = errors.New("missing configuration")
)
