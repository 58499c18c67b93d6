package main

import (
	"log"
)

// Handler receives a published payload
type Handler func(payload any)

type subscription struct {
	id uint64
	fn Handler
}

// EventBus is a synchronous publish-subscribe channel between the simulation
// and its consumers.
//
// Handler lists are copy-on-write: Publish walks the slice that was current
// when it started, so handlers added or removed during dispatch only affect
// later publishes. The bus is not safe for concurrent use; it lives inside a
// session and is only touched while the session lock is held.
type EventBus struct {
	handlers map[Topic][]subscription
	nextID   uint64
	logger   *log.Logger
}

// NewEventBus creates an empty bus that logs handler panics to the standard logger
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[Topic][]subscription),
		logger:   log.Default(),
	}
}

// SetLogger replaces the logger used for handler failures
func (b *EventBus) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	b.logger = l
}

// Subscribe registers fn for topic and returns a function that removes it.
// The returned function is safe to call more than once.
func (b *EventBus) Subscribe(topic Topic, fn Handler) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID

	cur := b.handlers[topic]
	next := make([]subscription, len(cur), len(cur)+1)
	copy(next, cur)
	b.handlers[topic] = append(next, subscription{id: id, fn: fn})

	return func() { b.remove(topic, id) }
}

func (b *EventBus) remove(topic Topic, id uint64) {
	cur := b.handlers[topic]
	for i, s := range cur {
		if s.id != id {
			continue
		}
		if len(cur) == 1 {
			delete(b.handlers, topic)
			return
		}
		next := make([]subscription, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
		b.handlers[topic] = next
		return
	}
}

// Publish invokes every handler registered for topic at the time of the call.
// A panicking handler is logged and skipped.
func (b *EventBus) Publish(topic Topic, payload any) {
	snapshot := b.handlers[topic]
	for _, s := range snapshot {
		b.dispatch(topic, s.fn, payload)
	}
}

func (b *EventBus) dispatch(topic Topic, fn Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("eventbus: handler for %q panicked: %v", topic, r)
		}
	}()
	fn(payload)
}

// Clear removes every handler for topic
func (b *EventBus) Clear(topic Topic) {
	delete(b.handlers, topic)
}

// ClearAll removes every handler
func (b *EventBus) ClearAll() {
	for t := range b.handlers {
		delete(b.handlers, t)
	}
}

// HandlerCount returns the number of handlers registered for topic
func (b *EventBus) HandlerCount(topic Topic) int {
	return len(b.handlers[topic])
}
