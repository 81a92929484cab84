package htsim

import (
	"container/list"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ngvozdiev/netsim/event"
	"github.com/ngvozdiev/netsim/statsutil"
)

// QueueStats tracks a Queue's lifetime packet counters.
type QueueStats struct {
	QueueSizeBytes uint64
	QueueSizePkts  uint64
	PktsSeen       uint64
	PktsDropped    uint64
	BytesSeen      uint64
	BytesDropped   uint64
}

// Queue is the common interface implemented by FIFOQueue and RandomQueue:
// a PacketHandler that drains at a configurable bit rate and can report its
// rate to an Animator.
type Queue interface {
	PacketHandler
	event.Handler
	Connect(handler PacketHandler)
	Stats() QueueStats
	Rate() uint64
	SetRate(rate uint64)
}

type fifoEntry struct {
	pkt        *Packet
	enqueuedAt event.Time
}

// FIFOQueue is a simple FIFO packet queue with a byte capacity and a drain
// rate. Packets that would push it over capacity are dropped.
type FIFOQueue struct {
	evQueue  event.Queue
	consumer *event.Consumer
	other    PacketHandler

	maxSizeBytes uint64

	// shouldDrop decides whether an arriving packet is dropped, given the
	// queue's occupied bytes before it and the packet's size. RandomQueue
	// overrides this with a probabilistic rule; FIFOQueue's own rule is a
	// hard capacity check.
	shouldDrop func(queueSizeBytes, pktSizeBytes uint64) bool

	mu         sync.Mutex
	rate       uint64 // bits per second
	timePerBit time.Duration
	pkts       *list.List
	draining   bool
	stats      QueueStats
	waitTime   statsutil.SummaryStats
}

// NewFIFOQueue returns an empty FIFOQueue draining at rate bits/s, holding
// at most maxSizeBytes.
func NewFIFOQueue(name string, rate, maxSizeBytes uint64, evQueue event.Queue) *FIFOQueue {
	q := &FIFOQueue{
		evQueue:      evQueue,
		maxSizeBytes: maxSizeBytes,
		pkts:         list.New(),
	}
	q.shouldDrop = func(queueSizeBytes, pktSizeBytes uint64) bool {
		return queueSizeBytes+pktSizeBytes > q.maxSizeBytes
	}
	q.consumer = event.NewConsumer(evQueue, q, name)
	q.setRateLocked(rate)
	return q
}

// Connect sets the handler that receives packets as they drain.
func (q *FIFOQueue) Connect(handler PacketHandler) { q.other = handler }

// Stats returns a snapshot of the queue's counters.
func (q *FIFOQueue) Stats() QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stats
}

// WaitTime returns a snapshot of how long packets have spent queued before
// being drained.
func (q *FIFOQueue) WaitTime() statsutil.SummaryStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.waitTime
}

// Rate returns the queue's current drain rate, in bits per second.
func (q *FIFOQueue) Rate() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.rate
}

// SetRate changes the queue's drain rate. The new rate takes effect for the
// next service time computed; a drain already scheduled under the old rate
// runs to completion unchanged.
func (q *FIFOQueue) SetRate(rate uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.setRateLocked(rate)
}

func (q *FIFOQueue) setRateLocked(rate uint64) {
	q.rate = rate
	if rate == 0 {
		q.timePerBit = 0
		return
	}
	q.timePerBit = time.Second / time.Duration(rate)
}

func (q *FIFOQueue) drainTime(pkt *Packet) time.Duration {
	return q.timePerBit * time.Duration(pkt.SizeBytes*8)
}

// ApplyValue implements the Animator target interface by changing the
// queue's drain rate.
func (q *FIFOQueue) ApplyValue(value float64) {
	q.SetRate(uint64(value))
}

// HandlePacket admits pkt to the queue, or drops it and updates the drop
// counters.
func (q *FIFOQueue) HandlePacket(pkt *Packet) {
	q.mu.Lock()
	q.stats.PktsSeen++
	q.stats.BytesSeen += pkt.SizeBytes

	if q.shouldDrop(q.stats.QueueSizeBytes, pkt.SizeBytes) {
		q.stats.PktsDropped++
		q.stats.BytesDropped += pkt.SizeBytes
		q.mu.Unlock()
		ReleasePacket(pkt)
		return
	}

	wasIdle := !q.draining
	q.pkts.PushBack(fifoEntry{pkt: pkt, enqueuedAt: q.evQueue.CurrentTime()})
	q.stats.QueueSizeBytes += pkt.SizeBytes
	q.stats.QueueSizePkts++

	var scheduleAt event.Time
	if wasIdle {
		q.draining = true
		scheduleAt = q.evQueue.CurrentTime().Add(q.drainTime(pkt))
	}
	q.mu.Unlock()

	if wasIdle {
		_ = q.consumer.EnqueueAt(scheduleAt)
	}
}

// HandleEvent drains the head-of-line packet, forwards it downstream, and
// schedules the next drain if the queue is still non-empty.
func (q *FIFOQueue) HandleEvent() {
	q.mu.Lock()
	front := q.pkts.Front()
	if front == nil {
		q.draining = false
		q.mu.Unlock()
		return
	}
	entry := q.pkts.Remove(front).(fifoEntry)
	q.stats.QueueSizeBytes -= entry.pkt.SizeBytes
	q.stats.QueueSizePkts--
	q.waitTime.Add(float64(q.evQueue.CurrentTime().Sub(entry.enqueuedAt)))

	var scheduleAt event.Time
	next := q.pkts.Front()
	if next != nil {
		scheduleAt = q.evQueue.CurrentTime().Add(q.drainTime(next.Value.(fifoEntry).pkt))
	} else {
		q.draining = false
	}
	q.mu.Unlock()

	if next != nil {
		_ = q.consumer.EnqueueAt(scheduleAt)
	}
	if q.other != nil {
		q.other.HandlePacket(entry.pkt)
	}
}

// RandomQueue is a FIFOQueue that starts probabilistically dropping
// packets once occupancy passes a threshold below full capacity, with
// linearly increasing drop probability up to that capacity.
type RandomQueue struct {
	*FIFOQueue
}

// NewRandomQueue returns a RandomQueue draining at rate bits/s, holding at
// most maxSizeBytes, with probabilistic drop starting at
// dropThresholdBytes. seed seeds the queue's drop-decision RNG
// deterministically.
func NewRandomQueue(name string, rate, maxSizeBytes, dropThresholdBytes uint64, seed uint64, evQueue event.Queue) *RandomQueue {
	fq := NewFIFOQueue(name, rate, maxSizeBytes, evQueue)
	rng := rand.New(rand.NewPCG(seed, seed))

	fq.shouldDrop = func(queueSizeBytes, pktSizeBytes uint64) bool {
		if queueSizeBytes+pktSizeBytes > maxSizeBytes {
			return true
		}
		if queueSizeBytes <= dropThresholdBytes {
			return false
		}
		span := float64(maxSizeBytes - dropThresholdBytes)
		prob := float64(queueSizeBytes-dropThresholdBytes) / span
		if prob > 1 {
			prob = 1
		}
		return rng.Float64() < prob
	}
	return &RandomQueue{FIFOQueue: fq}
}
