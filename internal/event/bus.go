package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/vhdlalign/internal/event/topic"
)

// Bus is the central event bus interface.
type Bus interface {
	// Publish delivers an event to every matching subscription on the
	// caller's goroutine, in priority order.
	Publish(ctx context.Context, event any) error

	// Subscription
	Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)
	SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)
	Unsubscribe(sub Subscription) error

	// Status
	Stats() Stats
}

// Stats contains bus statistics.
type Stats struct {
	EventsPublished   uint64
	HandlersExecuted  uint64
	HandlerErrors     uint64
	HandlerPanics     uint64
	ActiveSubscribers int
}

// PanicHandler is called when a handler panics.
type PanicHandler func(event any, recovered any)

// BusOption configures a bus.
type BusOption func(*busConfig)

type busConfig struct {
	panicHandler PanicHandler
}

// WithPanicHandler sets the function called when a handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

// bus is the default Bus implementation.
type bus struct {
	mu   sync.RWMutex
	subs map[string]*subscription
	seq  uint64

	config busConfig

	eventsPublished  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) Bus {
	var config busConfig
	for _, opt := range opts {
		opt(&config)
	}
	return &bus{
		subs:   make(map[string]*subscription),
		config: config,
	}
}

// Publish sends an event synchronously.
// Handler errors are collected and returned together; a panicking handler
// does not stop delivery to the rest.
func (b *bus) Publish(ctx context.Context, event any) error {
	eventTopic := extractTopic(event)
	if !eventTopic.IsValid() {
		return ErrInvalidEvent
	}

	b.eventsPublished.Add(1)

	var errs []error
	for _, sub := range b.match(eventTopic) {
		if !sub.shouldDeliver(event) {
			continue
		}
		if sub.config.Once && !sub.cancelled.CompareAndSwap(false, true) {
			continue
		}
		if sub.config.Once {
			b.remove(sub.id)
		}

		b.handlersExecuted.Add(1)
		if err := b.deliver(ctx, sub, event); err != nil {
			b.handlerErrors.Add(1)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// deliver runs one handler, converting a panic into a DeliveryError.
func (b *bus) deliver(ctx context.Context, sub *subscription, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			if b.config.panicHandler != nil {
				b.config.panicHandler(event, r)
			}
			err = &DeliveryError{
				Subscription: sub.id,
				Pattern:      sub.pattern,
				Panic:        r,
				Stack:        string(debug.Stack()),
			}
		}
	}()

	if herr := sub.handler.Handle(ctx, event); herr != nil {
		return &DeliveryError{Subscription: sub.id, Pattern: sub.pattern, Err: herr}
	}
	return nil
}

// match returns active subscriptions whose pattern matches t, ordered by
// priority and then subscription order.
func (b *bus) match(t topic.Topic) []*subscription {
	b.mu.RLock()
	var out []*subscription
	for _, sub := range b.subs {
		if sub.IsActive() && t.Matches(sub.pattern) {
			out = append(out, sub)
		}
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].config.Priority != out[j].config.Priority {
			return out[i].config.Priority < out[j].config.Priority
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Subscribe creates a new subscription for the given topic pattern.
// This method is safe to call concurrently.
func (b *bus) Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !topicPattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, topicPattern)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	sub := newSubscription(uuid.NewString(), topicPattern, handler, b.seq, opts...)
	b.subs[sub.id] = sub
	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function handler.
func (b *bus) SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(topicPattern, fn, opts...)
}

// Unsubscribe removes a subscription.
// This method is safe to call concurrently.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	sub.Cancel()
	if !b.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (b *bus) remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[id]; !ok {
		return false
	}
	delete(b.subs, id)
	return true
}

// Stats returns current bus statistics.
func (b *bus) Stats() Stats {
	b.mu.RLock()
	active := 0
	for _, sub := range b.subs {
		if sub.IsActive() {
			active++
		}
	}
	b.mu.RUnlock()

	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		HandlersExecuted:  b.handlersExecuted.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: active,
	}
}

// extractTopic extracts the topic from an event.
func extractTopic(event any) topic.Topic {
	if tp, ok := event.(TopicProvider); ok {
		return tp.EventTopic()
	}
	return ""
}
