package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingEditor indicates an active editor is required but not set.
	ErrMissingEditor = errors.New("execution context: editor is required")

	// ErrMissingHistory indicates history is required but not set.
	ErrMissingHistory = errors.New("execution context: history is required")

	// ErrReadOnly indicates the buffer is read-only.
	ErrReadOnly = errors.New("execution context: buffer is read-only")
)
