package handler

import (
	"fmt"

	"github.com/dshills/vhdlalign/internal/engine/buffer"
)

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusCancelled indicates a pre-hook stopped the action.
	StatusCancelled
	// StatusDefer indicates the handler declined the action and the
	// Fallback action should run instead.
	StatusDefer
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	case StatusDefer:
		return "defer"
	default:
		return "unknown"
	}
}

// ViewUpdate describes required view updates.
type ViewUpdate struct {
	// Redraw indicates whether the entire view needs redrawing.
	Redraw bool
	// RedrawLines lists lines whose text changed.
	RedrawLines []uint32
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string

	// Edits contains the line edits that were applied.
	Edits []buffer.LineEdit

	// Fallback is the action to run when Status is StatusDefer.
	Fallback string

	// ViewUpdate indicates required view updates.
	ViewUpdate ViewUpdate

	// Data holds handler-specific return data.
	Data map[string]any
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// IsDeferred returns true if the handler declined the action.
func (r Result) IsDeferred() bool {
	return r.Status == StatusDefer
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Defer creates a result that hands the action over to fallback.
func Defer(fallback string) Result {
	return Result{Status: StatusDefer, Fallback: fallback}
}

// DeferWithMessage creates a deferring result with a reason.
func DeferWithMessage(fallback, msg string) Result {
	return Result{Status: StatusDefer, Fallback: fallback, Message: msg}
}

// CancelledWithMessage creates a cancelled result with a message.
func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithRedraw returns a copy of the result requesting a full redraw.
func (r Result) WithRedraw() Result {
	r.ViewUpdate.Redraw = true
	return r
}

// WithRedrawLines returns a copy of the result with specific lines to redraw.
func (r Result) WithRedrawLines(lines ...uint32) Result {
	r.ViewUpdate.RedrawLines = append(r.ViewUpdate.RedrawLines, lines...)
	return r
}

// WithEdits returns a copy of the result with edits added.
func (r Result) WithEdits(edits []buffer.LineEdit) Result {
	r.Edits = append(r.Edits, edits...)
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value any) Result {
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	r.Data[key] = value
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (any, bool) {
	v, ok := r.Data[key]
	return v, ok
}

// GetDataInt retrieves an int value from the result data.
func (r Result) GetDataInt(key string) int {
	if v, ok := r.GetData(key); ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}
