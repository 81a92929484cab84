package htsim

import (
	"sync"

	"github.com/ngvozdiev/netsim/graph"
)

// TCPInfo carries the TCP-specific fields of a Packet.
type TCPInfo struct {
	SeqNum uint32
	AckNum uint32
	Flags  uint8
}

// UDPInfo carries the UDP-specific fields of a Packet. UDP has no fields
// beyond the five-tuple and size; the type exists so PacketHandlers can
// switch on Packet.UDP != nil the same way they switch on Packet.TCP.
type UDPInfo struct{}

// Packet is a single simulated packet travelling through a Pipe/Queue
// chain. At most one of TCP or UDP is set; NewPacket leaves both nil.
type Packet struct {
	FiveTuple graph.FiveTuple
	SizeBytes uint64

	TCP *TCPInfo
	UDP *UDPInfo
}

var packetPool = sync.Pool{New: func() any { return new(Packet) }}

// NewPacket returns a Packet from a pool, avoiding an allocation on the hot
// path; the caller must pass it to ReleasePacket once it is done with it
// (typically after it has been delivered to its final PacketHandler).
func NewPacket(tuple graph.FiveTuple, sizeBytes uint64) *Packet {
	p := packetPool.Get().(*Packet)
	*p = Packet{FiveTuple: tuple, SizeBytes: sizeBytes}
	return p
}

// ReleasePacket returns p to the pool. p must not be used after this call.
func ReleasePacket(p *Packet) {
	packetPool.Put(p)
}

// PacketHandler receives packets exiting a Pipe or Queue.
type PacketHandler interface {
	HandlePacket(pkt *Packet)
}
