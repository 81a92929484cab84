package pcapingest

import (
	"fmt"
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/ngvozdiev/netsim/event"
	"github.com/ngvozdiev/netsim/graph"
	"github.com/ngvozdiev/netsim/htsim"
)

// Option configures a Generator.
type Option func(*Generator)

// WithMaxInterpacketGap sets the gap at or above which the time between two
// consecutive captured packets is collapsed out of the replay instead of
// being reproduced. The default is to never collapse any gap.
func WithMaxInterpacketGap(gap time.Duration) Option {
	return func(g *Generator) { g.maxInterpacketGap = gap }
}

// WithDownscaling restricts replay to the 1/n shard of flows whose five-tuple
// hashes to index, so a capture can be split across n parallel simulation
// runs without any one of them needing the whole trace.
func WithDownscaling(n, index int) Option {
	return func(g *Generator) {
		if g.downscaleEnabled {
			g.downscaleErr = ErrDownscalingAlreadyEnabled
			return
		}
		g.downscaleErr = validateDownscale(n, index)
		g.downscaleN = n
		g.downscaleIndex = index
		g.downscaleEnabled = true
	}
}

func validateDownscale(n, index int) error {
	if n <= 1 {
		return ErrBadDownscaleN
	}
	if index < 0 || index >= n {
		return ErrBadDownscaleIndex
	}
	return nil
}

// Generator replays the TCP/UDP packets of an offline capture into the
// simulator's virtual time, one call to Next at a time.
type Generator struct {
	source *gopacket.PacketSource

	maxInterpacketGap time.Duration
	haveInit          bool
	initTimestamp     time.Time
	prevTimestamp     time.Time
	timeShift         time.Duration

	downscaleEnabled bool
	downscaleN       int
	downscaleIndex   int
	downscaleErr     error
}

// NewGenerator builds a Generator reading pcap records from r. r must hold a
// classic (non-nanosecond-resolution-required) pcap file, as produced by
// tcpdump/wireshark.
func NewGenerator(r io.Reader, opts ...Option) (*Generator, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("pcapingest: opening capture: %w", err)
	}

	g := &Generator{
		source:            gopacket.NewPacketSource(reader, reader.LinkType()),
		maxInterpacketGap: time.Duration(1<<63 - 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.downscaleErr != nil {
		return nil, g.downscaleErr
	}
	return g, nil
}

// Next decodes and returns the next TCP or UDP packet in the capture, along
// with the virtual time at which it should be injected into the simulation.
// It returns ok=false once the capture is exhausted; packets the downscale
// rule filters out are skipped transparently.
func (g *Generator) Next() (pkt *htsim.Packet, at event.Time, ok bool, err error) {
	for {
		raw, captureErr := g.source.NextPacket()
		if captureErr == io.EOF {
			return nil, event.Zero, false, nil
		}
		if captureErr != nil {
			return nil, event.Zero, false, fmt.Errorf("pcapingest: reading packet: %w", captureErr)
		}

		tuple, sizeBytes, decodeOK := decodeFiveTuple(raw)
		if !decodeOK {
			continue
		}
		if g.downscaleEnabled && tuple.Hash()%uint64(g.downscaleN) != uint64(g.downscaleIndex) {
			continue
		}

		virtualTime, err := g.shiftTimestamp(raw.Metadata().Timestamp)
		if err != nil {
			return nil, event.Zero, false, err
		}

		return htsim.NewPacket(tuple, sizeBytes), virtualTime, true, nil
	}
}

// shiftTimestamp implements the capture-to-virtual-time mapping: the first
// packet's timestamp becomes time zero, and any gap at least as large as
// maxInterpacketGap is collapsed out of every later packet's virtual time.
func (g *Generator) shiftTimestamp(timestamp time.Time) (event.Time, error) {
	if !g.haveInit {
		g.haveInit = true
		g.initTimestamp = timestamp
		g.prevTimestamp = timestamp
		return event.Zero, nil
	}

	if timestamp.Before(g.prevTimestamp) {
		return event.Zero, ErrTimeWentBackwards
	}
	deltaFromLast := timestamp.Sub(g.prevTimestamp)
	if deltaFromLast >= g.maxInterpacketGap {
		g.timeShift += deltaFromLast
	}
	g.prevTimestamp = timestamp

	deltaFromStart := timestamp.Sub(g.initTimestamp)
	return event.Zero.Add(deltaFromStart - g.timeShift), nil
}

func decodeFiveTuple(pkt gopacket.Packet) (graph.FiveTuple, uint64, bool) {
	ipLayer := pkt.Layer(layers.LayerTypeIPv4)
	if ipLayer == nil {
		return graph.FiveTuple{}, 0, false
	}
	ip, ok := ipLayer.(*layers.IPv4)
	if !ok {
		return graph.FiveTuple{}, 0, false
	}

	var proto graph.IPProto
	var srcPort, dstPort graph.AccessLayerPort

	switch {
	case pkt.Layer(layers.LayerTypeTCP) != nil:
		tcp := pkt.Layer(layers.LayerTypeTCP).(*layers.TCP)
		proto = graph.IPProtoTCP
		srcPort, dstPort = graph.AccessLayerPort(tcp.SrcPort), graph.AccessLayerPort(tcp.DstPort)
	case pkt.Layer(layers.LayerTypeUDP) != nil:
		udp := pkt.Layer(layers.LayerTypeUDP).(*layers.UDP)
		proto = graph.IPProtoUDP
		srcPort, dstPort = graph.AccessLayerPort(udp.SrcPort), graph.AccessLayerPort(udp.DstPort)
	default:
		return graph.FiveTuple{}, 0, false
	}

	tuple := graph.FiveTuple{
		Proto:   proto,
		SrcAddr: ipv4ToAddress(ip.SrcIP),
		DstAddr: ipv4ToAddress(ip.DstIP),
		SrcPort: srcPort,
		DstPort: dstPort,
	}
	return tuple, uint64(ip.Length), true
}

func ipv4ToAddress(ip []byte) graph.IPAddress {
	if len(ip) != 4 {
		return 0
	}
	return graph.IPAddress(uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3]))
}
