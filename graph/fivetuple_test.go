package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngvozdiev/netsim/graph"
)

func TestFiveTuple_Reverse(t *testing.T) {
	ft := graph.FiveTuple{
		Proto:   graph.IPProtoTCP,
		SrcAddr: 0x0A000001,
		DstAddr: 0x0A000002,
		SrcPort: 1234,
		DstPort: 80,
	}
	rev := ft.Reverse()

	assert.Equal(t, ft.SrcAddr, rev.DstAddr)
	assert.Equal(t, ft.DstAddr, rev.SrcAddr)
	assert.Equal(t, ft.SrcPort, rev.DstPort)
	assert.Equal(t, ft.DstPort, rev.SrcPort)
	assert.Equal(t, ft.Proto, rev.Proto)
}

func TestFiveTuple_HashDeterministic(t *testing.T) {
	ft := graph.FiveTuple{Proto: graph.IPProtoUDP, SrcAddr: 1, DstAddr: 2, SrcPort: 3, DstPort: 4}
	assert.Equal(t, ft.Hash(), ft.Hash())

	other := ft
	other.DstPort = 5
	assert.NotEqual(t, ft.Hash(), other.Hash())
}

func TestIPAddress_String(t *testing.T) {
	addr := graph.IPAddress(0x0A000001)
	assert.Equal(t, "10.0.0.1", addr.String())
}
