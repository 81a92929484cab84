package htsim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngvozdiev/netsim/event"
	"github.com/ngvozdiev/netsim/graph"
	"github.com/ngvozdiev/netsim/htsim"
)

type collectingHandler struct {
	pkts []*htsim.Packet
}

func (h *collectingHandler) HandlePacket(pkt *htsim.Packet) {
	h.pkts = append(h.pkts, pkt)
}

func TestPipe_DelaysPacketDelivery(t *testing.T) {
	q := event.NewSimQueue()
	pipe, err := htsim.NewPipe("pipe", 10*time.Millisecond, q)
	require.NoError(t, err)

	sink := &collectingHandler{}
	pipe.Connect(sink)

	pkt := htsim.NewPacket(graph.FiveTuple{}, 100)
	pipe.HandlePacket(pkt)

	require.NoError(t, q.Run())
	require.Len(t, sink.pkts, 1)
	assert.Equal(t, event.Zero.Add(10*time.Millisecond), q.CurrentTime())

	stats := pipe.Stats()
	assert.EqualValues(t, 1, stats.PktsTx)
	assert.EqualValues(t, 100, stats.BytesTx)
	assert.EqualValues(t, 0, stats.PktsInFlight)
}

func TestNewPipe_RejectsNonPositiveDelay(t *testing.T) {
	q := event.NewSimQueue()
	_, err := htsim.NewPipe("pipe", 0, q)
	assert.Error(t, err)
}
