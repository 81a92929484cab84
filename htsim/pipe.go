package htsim

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"github.com/ngvozdiev/netsim/event"
)

// PipeStats tracks a Pipe's lifetime packet counters.
type PipeStats struct {
	PktsTx        uint64
	BytesTx       uint64
	PktsInFlight  uint64
	BytesInFlight uint64
}

type pipeEntry struct {
	deliverAt event.Time
	pkt       *Packet
}

// Pipe adds a fixed delay to every packet that passes through it. Packets
// in flight are held in a FIFO; HandleEvent flushes every entry whose
// delivery time has arrived.
type Pipe struct {
	delay    time.Duration
	other    PacketHandler
	evQueue  event.Queue
	consumer *event.Consumer

	mu      sync.Mutex
	pending *list.List
	stats   PipeStats
}

// NewPipe returns a Pipe that delays every packet it handles by delay, on
// evQueue. delay must be strictly positive.
func NewPipe(name string, delay time.Duration, evQueue event.Queue) (*Pipe, error) {
	if delay <= 0 {
		return nil, fmt.Errorf("htsim: pipe delay must be positive, got %s", delay)
	}
	p := &Pipe{delay: delay, evQueue: evQueue, pending: list.New()}
	p.consumer = event.NewConsumer(evQueue, p, name)
	return p, nil
}

// Connect sets the handler that receives packets as they exit the pipe.
func (p *Pipe) Connect(handler PacketHandler) { p.other = handler }

// Stats returns a snapshot of the pipe's counters.
func (p *Pipe) Stats() PipeStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// HandlePacket admits pkt to the pipe, scheduling its delivery delay from
// now.
func (p *Pipe) HandlePacket(pkt *Packet) {
	deliverAt := p.evQueue.CurrentTime().Add(p.delay)

	p.mu.Lock()
	p.pending.PushBack(pipeEntry{deliverAt: deliverAt, pkt: pkt})
	p.stats.PktsInFlight++
	p.stats.BytesInFlight += pkt.SizeBytes
	p.mu.Unlock()

	_ = p.consumer.EnqueueAt(deliverAt)
}

// HandleEvent forwards every packet whose delivery time has arrived to the
// connected handler.
func (p *Pipe) HandleEvent() {
	now := p.evQueue.CurrentTime()

	var due []*Packet
	p.mu.Lock()
	for e := p.pending.Front(); e != nil; {
		next := e.Next()
		entry := e.Value.(pipeEntry)
		if entry.deliverAt.After(now) {
			break
		}
		p.pending.Remove(e)
		p.stats.PktsTx++
		p.stats.BytesTx += entry.pkt.SizeBytes
		p.stats.PktsInFlight--
		p.stats.BytesInFlight -= entry.pkt.SizeBytes
		due = append(due, entry.pkt)
		e = next
	}
	p.mu.Unlock()

	for _, pkt := range due {
		if p.other != nil {
			p.other.HandlePacket(pkt)
		}
	}
}
