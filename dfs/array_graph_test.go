package dfs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngvozdiev/netsim/dfs"
	"github.com/ngvozdiev/netsim/graph"
)

func link(src, dst string, sp, dp uint32, delay time.Duration) graph.LinkDescription {
	return graph.LinkDescription{Src: src, Dst: dst, SrcPort: sp, DstPort: dp, Delay: delay, BandwidthBps: 1_000_000}
}

// diamondGraph builds the classic A->B->D / A->C->D diamond, with the B leg
// faster than the C leg.
func diamondGraph(t *testing.T) (*graph.Storage, *graph.Node, *graph.Node) {
	t.Helper()
	desc := &graph.GraphDescription{
		Links: []graph.LinkDescription{
			link("A", "B", 1, 1, 10*time.Millisecond),
			link("B", "D", 2, 2, 10*time.Millisecond),
			link("A", "C", 3, 3, 30*time.Millisecond),
			link("C", "D", 4, 4, 30*time.Millisecond),
		},
	}
	s, err := graph.LoadGraph(desc)
	require.NoError(t, err)
	a := s.FindNode("A")
	d := s.FindNode("D")
	return s, a, d
}

func TestArrayGraph_DistanceToDestination(t *testing.T) {
	s, a, d := diamondGraph(t)

	ag, err := dfs.NewArrayGraph(s, d)
	require.NoError(t, err)

	dist, ok := ag.DistanceToDestination(a)
	require.True(t, ok)
	assert.Equal(t, 20*time.Millisecond, dist)

	destDist, ok := ag.DistanceToDestination(d)
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), destDist)
}

func TestArrayGraph_UnreachableVertex(t *testing.T) {
	desc := &graph.GraphDescription{
		Links: []graph.LinkDescription{
			link("A", "B", 1, 1, time.Millisecond),
		},
	}
	s, err := graph.LoadGraph(desc)
	require.NoError(t, err)

	// C is never linked to anything; intern it directly.
	_, err = s.InternNode("C")
	require.NoError(t, err)

	b := s.FindNode("B")
	c := s.FindNode("C")

	ag, err := dfs.NewArrayGraph(s, b)
	require.NoError(t, err)

	_, ok := ag.DistanceToDestination(c)
	assert.False(t, ok)
}

func TestNewArrayGraph_DestinationNotFound(t *testing.T) {
	s := graph.NewStorage()
	ghost := &graph.Node{}
	_, err := dfs.NewArrayGraph(s, ghost)
	assert.ErrorIs(t, err, dfs.ErrDestinationNotFound)
}
