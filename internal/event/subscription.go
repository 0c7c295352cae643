package event

import (
	"sync/atomic"

	"github.com/dshills/vhdlalign/internal/event/topic"
)

// Subscription represents an active event subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() topic.Topic

	// IsActive returns true if the subscription can receive events.
	IsActive() bool

	// Cancel permanently cancels the subscription.
	Cancel()
}

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Priority determines execution order (lower values execute first).
	Priority Priority

	// Filter is an optional predicate to filter events.
	Filter FilterFunc

	// Once indicates the subscription should auto-cancel after the first event.
	Once bool
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the handler priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets an event filter.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// Once cancels the subscription after its first delivered event.
func Once() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

type subscription struct {
	id        string
	pattern   topic.Topic
	handler   Handler
	config    SubscriptionConfig
	seq       uint64
	cancelled atomic.Bool
}

func newSubscription(id string, pattern topic.Topic, handler Handler, seq uint64, opts ...SubscriptionOption) *subscription {
	cfg := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &subscription{
		id:      id,
		pattern: pattern,
		handler: handler,
		config:  cfg,
		seq:     seq,
	}
}

func (s *subscription) ID() string         { return s.id }
func (s *subscription) Topic() topic.Topic { return s.pattern }
func (s *subscription) IsActive() bool     { return !s.cancelled.Load() }
func (s *subscription) Cancel()            { s.cancelled.Store(true) }

// shouldDeliver reports whether ev passes the subscription's filter.
func (s *subscription) shouldDeliver(ev any) bool {
	if !s.IsActive() {
		return false
	}
	return s.config.Filter == nil || s.config.Filter(ev)
}
