package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for an action.
	ErrNoHandler = errors.New("dispatcher: no handler for action")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrFallbackLoop indicates a fallback deferred again past the limit.
	ErrFallbackLoop = errors.New("dispatcher: fallback deferred too many times")
)
