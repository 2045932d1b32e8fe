package service

import "errors"

// Error categories the handlers map onto HTTP codes. Business outcomes
// like "no match yet" are ordinary return values, not errors.
var (
	// ErrInvalid marks a validation failure; nothing was persisted.
	ErrInvalid = errors.New("invalid input")

	// ErrNotFound marks a missing profile, match, or thread.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an operation on a session the caller is not a
	// participant of.
	ErrForbidden = errors.New("not a participant")

	// ErrAIUnavailable marks a failed or unconfigured AI tutor call.
	// Maps to 502: the upstream's fault, not ours.
	ErrAIUnavailable = errors.New("AI tutor unavailable")
)
