package event

import (
	"errors"
	"fmt"

	"github.com/dshills/vhdlalign/internal/event/topic"
)

// Errors returned by the bus.
var (
	ErrInvalidEvent         = errors.New("event: topic missing or malformed")
	ErrInvalidTopic         = errors.New("event: invalid topic pattern")
	ErrInvalidSubscription  = errors.New("event: invalid subscription")
	ErrSubscriptionNotFound = errors.New("event: subscription not found")
	ErrHandlerPanic         = errors.New("event: handler panicked")
	ErrNilHandler           = errors.New("event: nil handler")
)

// DeliveryError reports a subscriber that failed while an event was
// published. Err is nil when the handler panicked; Panic and Stack then
// hold the recovered value and the goroutine stack.
type DeliveryError struct {
	Subscription string
	Pattern      topic.Topic
	Err          error
	Panic        any
	Stack        string
}

func (e *DeliveryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("event: subscriber %s (%s) panicked: %v", e.Subscription, e.Pattern, e.Panic)
	}
	return fmt.Sprintf("event: subscriber %s (%s): %v", e.Subscription, e.Pattern, e.Err)
}

// Unwrap returns the handler error, or ErrHandlerPanic after a panic.
func (e *DeliveryError) Unwrap() error {
	if e.Err == nil {
		return ErrHandlerPanic
	}
	return e.Err
}
