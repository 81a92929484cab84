package event

import (
	"fmt"
	"sync"
	"time"
)

// Handler reacts to a single event firing. Implementations are the actual
// simulation components (queues, pipes, protocol state machines); Consumer
// is the bookkeeping wrapper a Queue schedules.
type Handler interface {
	HandleEvent()
}

// Consumer binds a Handler to a Queue and tracks how many events are still
// outstanding for it. EnqueueAt refuses to schedule an event for a consumer
// that has already been closed, and Close itself refuses to complete while any
// of the consumer's events remain scheduled — this catches a component
// being torn down while it still has timers pending on it.
type Consumer struct {
	mu                sync.Mutex
	queue             Queue
	handler           Handler
	outstandingEvents int
	closed            bool

	name string
}

// NewConsumer registers handler with queue under name (used only for
// diagnostics — e.g. in error messages and String).
func NewConsumer(queue Queue, handler Handler, name string) *Consumer {
	return &Consumer{queue: queue, handler: handler, name: name}
}

// EnqueueAt schedules an event to fire at virtual time at, which must be
// strictly after the queue's current time.
func (c *Consumer) EnqueueAt(at Time) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("event: consumer %q is closed", c.name)
	}
	now := c.queue.CurrentTime()
	if !at.After(now) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s at or before %s", ErrPastDeadline, at, now)
	}
	c.outstandingEvents++
	c.mu.Unlock()

	c.queue.enqueue(at, c)
	return nil
}

// EnqueueIn schedules an event to fire d after the queue's current time. d
// must be strictly positive.
func (c *Consumer) EnqueueIn(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %s", ErrNegativeDelay, d)
	}
	return c.EnqueueAt(c.queue.CurrentTime().Add(d))
}

// handleEventInternal is called by a Queue when one of this consumer's
// scheduled events fires. It decrements the outstanding count before
// invoking the handler, so that a handler which itself calls Close sees an
// accurate count.
func (c *Consumer) handleEventInternal() {
	c.mu.Lock()
	c.outstandingEvents--
	c.mu.Unlock()

	c.handler.HandleEvent()
}

// OutstandingEvents returns the number of events currently scheduled for c
// that have not yet fired.
func (c *Consumer) OutstandingEvents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outstandingEvents
}

// Close marks c as no longer accepting new events. It panics if c still has
// events outstanding: that means some component is being torn down while a
// timer is still pending on it, which callers must fix by evicting c from
// its queue (see Queue.EvictConsumer) first, or waiting for those events to
// fire — not by catching and ignoring the failure.
func (c *Consumer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outstandingEvents > 0 {
		panic(fmt.Sprintf("event: consumer %q closed with %d outstanding events", c.name, c.outstandingEvents))
	}
	c.closed = true
}

// String returns the consumer's diagnostic name.
func (c *Consumer) String() string { return c.name }
