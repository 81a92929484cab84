package htsim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngvozdiev/netsim/graph"
	"github.com/ngvozdiev/netsim/htsim"
)

func TestNewPacket_SetsFieldsAndClearsPoolState(t *testing.T) {
	tuple := graph.FiveTuple{Proto: graph.IPProtoTCP, SrcPort: 1, DstPort: 2}
	pkt := htsim.NewPacket(tuple, 1500)

	assert.Equal(t, tuple, pkt.FiveTuple)
	assert.EqualValues(t, 1500, pkt.SizeBytes)
	assert.Nil(t, pkt.TCP)
	assert.Nil(t, pkt.UDP)

	htsim.ReleasePacket(pkt)

	reused := htsim.NewPacket(graph.FiveTuple{}, 0)
	assert.Nil(t, reused.TCP)
}
