package graph

import "fmt"

// IPAddress is an IPv4 address stored as a 32-bit host-order integer.
type IPAddress uint32

// String renders the address in dotted-quad form.
func (a IPAddress) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}

// AccessLayerPort is a TCP or UDP port number.
type AccessLayerPort uint16

// IPProto is an IP protocol number (e.g. 6 for TCP, 17 for UDP).
type IPProto uint8

const (
	// IPProtoTCP is the IP protocol number for TCP.
	IPProtoTCP IPProto = 6
	// IPProtoUDP is the IP protocol number for UDP.
	IPProtoUDP IPProto = 17
)

// FiveTuple identifies a flow by protocol, address pair, and port pair.
type FiveTuple struct {
	Proto      IPProto
	SrcAddr    IPAddress
	DstAddr    IPAddress
	SrcPort    AccessLayerPort
	DstPort    AccessLayerPort
}

// Hash combines the five fields into a single value suitable for bucketing
// flows, using the same polynomial accumulator the packet-capture ingestion
// pipeline was originally built on.
func (t FiveTuple) Hash() uint64 {
	h := uint64(17)
	h = 37*h + uint64(t.Proto)
	h = 37*h + uint64(t.SrcAddr)
	h = 37*h + uint64(t.DstAddr)
	h = 37*h + uint64(t.SrcPort)
	h = 37*h + uint64(t.DstPort)
	return h
}

// Reverse swaps the source and destination of the tuple, as seen on the
// return path of a flow.
func (t FiveTuple) Reverse() FiveTuple {
	return FiveTuple{
		Proto:   t.Proto,
		SrcAddr: t.DstAddr,
		DstAddr: t.SrcAddr,
		SrcPort: t.DstPort,
		DstPort: t.SrcPort,
	}
}

// String renders the tuple as "proto src:sport->dst:dport".
func (t FiveTuple) String() string {
	return fmt.Sprintf("%d %s:%d->%s:%d", t.Proto, t.SrcAddr, t.SrcPort, t.DstAddr, t.DstPort)
}
