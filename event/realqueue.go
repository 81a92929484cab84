package event

import (
	"container/heap"
	"sync"
	"time"
)

// RealQueue is a wall-clock-paced Queue: Run sleeps between events so that
// virtual time tracks actual elapsed time, suitable for driving a
// simulation interactively or replaying it at real speed.
type RealQueue struct {
	mu      sync.Mutex
	heap    eventHeap
	now     Time
	stop    Time
	hasStop bool
	stopped bool
	nextSeq uint64

	startWall time.Time
}

// NewRealQueue returns an empty RealQueue anchored to the current wall
// clock at the epoch.
func NewRealQueue() *RealQueue {
	return &RealQueue{startWall: time.Now()}
}

func (q *RealQueue) enqueue(at Time, c *Consumer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.heap, &scheduledEvent{at: at, consumer: c, seq: q.nextSeq})
	q.nextSeq++
}

// CurrentTime returns the time of the event currently being processed.
func (q *RealQueue) CurrentTime() Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.now
}

// StopTime returns the time Run will stop at, or Zero if none is set.
func (q *RealQueue) StopTime() Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stop
}

// Stop requests Run return after the currently firing event, if any.
func (q *RealQueue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
}

// RunAndStopIn sets the stop time to CurrentTime()+d and runs.
func (q *RealQueue) RunAndStopIn(d Time) error {
	q.mu.Lock()
	q.stop = q.now.Add(d.Duration())
	q.hasStop = true
	q.mu.Unlock()
	return q.Run()
}

// Run processes events in time order, sleeping until each one's scheduled
// virtual time has elapsed on the wall clock, until the heap is empty, Stop
// is called, or the configured stop time is reached.
func (q *RealQueue) Run() error {
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
		q.mu.Unlock()

		if d := time.Until(q.startWall.Add(next.at.Duration())); d > 0 {
			time.Sleep(d)
		}

		q.mu.Lock()
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
func (q *RealQueue) EvictConsumer(c *Consumer) {
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
