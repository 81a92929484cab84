package event

import (
	"container/heap"
	"sync"
)

// Queue schedules Consumer events in strict time order, breaking ties by
// scheduling order. enqueue is unexported so that only the implementations
// in this package (SimQueue, RealQueue) can satisfy the interface — mirrors
// how a simulation wires Consumers to exactly one queue kind at a time.
type Queue interface {
	// CurrentTime returns the time of the event currently being processed,
	// or the queue's epoch before Run has been called.
	CurrentTime() Time
	// StopTime returns the time Run will stop at, or Zero if none is set.
	StopTime() Time
	// Stop requests that Run return after the event currently firing (if
	// any) completes, without waiting for StopTime.
	Stop()
	// Run processes events until the queue is empty, Stop is called, or
	// StopTime is reached.
	Run() error
	// RunAndStopIn is Run with StopTime set to CurrentTime()+d first.
	RunAndStopIn(d Time) error
	// EvictConsumer cancels every event still scheduled for c without
	// firing them, leaving c free to Close.
	EvictConsumer(c *Consumer)

	enqueue(at Time, c *Consumer)
}

// scheduledEvent is one entry in a queue's priority heap. evicted entries
// are left in place and skipped when popped, rather than removed from the
// middle of the heap.
type scheduledEvent struct {
	at       Time
	consumer *Consumer
	seq      uint64
	evicted  bool
}

type eventHeap []*scheduledEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*scheduledEvent))
}
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// SimQueue is a pure virtual-clock Queue: it advances CurrentTime directly
// to the next scheduled event and fires it with no wall-clock delay,
// suitable for running a simulation as fast as the host can compute it.
type SimQueue struct {
	mu      sync.Mutex
	heap    eventHeap
	now     Time
	stop    Time
	hasStop bool
	stopped bool
	nextSeq uint64
}

// NewSimQueue returns an empty SimQueue at the epoch.
func NewSimQueue() *SimQueue {
	return &SimQueue{}
}

func (q *SimQueue) enqueue(at Time, c *Consumer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.heap, &scheduledEvent{at: at, consumer: c, seq: q.nextSeq})
	q.nextSeq++
}

// CurrentTime returns the time of the event currently being processed.
func (q *SimQueue) CurrentTime() Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.now
}

// StopTime returns the time Run will stop at, or Zero if none is set.
func (q *SimQueue) StopTime() Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stop
}

// Stop requests Run return after the currently firing event, if any.
func (q *SimQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
}

// RunAndStopIn sets the stop time to CurrentTime()+d and runs.
func (q *SimQueue) RunAndStopIn(d Time) error {
	q.mu.Lock()
	q.stop = q.now.Add(d.Duration())
	q.hasStop = true
	q.mu.Unlock()
	return q.Run()
}

// Run processes events in time order until the heap is empty, Stop is
// called, or the configured stop time is reached.
func (q *SimQueue) Run() error {
	for {
		q.mu.Lock()
		if q.stopped {
			q.stopped = false
			q.mu.Unlock()
			return nil
		}
		if q.heap.Len() == 0 {
			q.mu.Unlock()
			return nil
		}
		next := q.heap[0]
		if q.hasStop && next.at.After(q.stop) {
			q.mu.Unlock()
			return nil
		}
		heap.Pop(&q.heap)
		q.now = next.at
		q.mu.Unlock()

		if next.evicted {
			continue
		}
		next.consumer.handleEventInternal()
	}
}

// EvictConsumer marks every event still scheduled for c as evicted and
// decrements its outstanding-event count, without firing the handler.
func (q *SimQueue) EvictConsumer(c *Consumer) {
	q.mu.Lock()
	var n int
	for _, e := range q.heap {
		if e.consumer == c && !e.evicted {
			e.evicted = true
			n++
		}
	}
	q.mu.Unlock()

	if n == 0 {
		return
	}
	c.mu.Lock()
	c.outstandingEvents -= n
	c.mu.Unlock()
}
