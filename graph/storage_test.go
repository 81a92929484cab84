package graph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngvozdiev/netsim/graph"
)

func linkDesc(src, dst string, sp, dp uint32) graph.LinkDescription {
	return graph.LinkDescription{
		Src: src, Dst: dst,
		SrcPort: sp, DstPort: dp,
		Delay:        10 * time.Millisecond,
		BandwidthBps: 1_000_000,
	}
}

func TestInternNode_SameIDReturnsSamePointer(t *testing.T) {
	s := graph.NewStorage()

	a1, err := s.InternNode("A")
	require.NoError(t, err)
	a2, err := s.InternNode("A")
	require.NoError(t, err)

	assert.Same(t, a1, a2)
}

func TestInternNode_EmptyID(t *testing.T) {
	s := graph.NewStorage()
	_, err := s.InternNode("")
	assert.ErrorIs(t, err, graph.ErrEmptyNodeID)
}

func TestInternLink_Deduplicates(t *testing.T) {
	s := graph.NewStorage()

	l1, err := s.InternLink(linkDesc("A", "B", 1, 2))
	require.NoError(t, err)
	l2, err := s.InternLink(linkDesc("A", "B", 1, 2))
	require.NoError(t, err)

	assert.Same(t, l1, l2)
	assert.Equal(t, 1, s.NumLinks())
}

func TestInternLink_ParallelLinksDistinctPorts(t *testing.T) {
	s := graph.NewStorage()

	l1, err := s.InternLink(linkDesc("A", "B", 1, 2))
	require.NoError(t, err)
	l2, err := s.InternLink(linkDesc("A", "B", 3, 4))
	require.NoError(t, err)

	assert.NotSame(t, l1, l2)
	assert.Equal(t, 2, s.NumLinks())
}

func TestInternLink_PortMismatchOnReuse(t *testing.T) {
	s := graph.NewStorage()

	_, err := s.InternLink(linkDesc("A", "B", 1, 2))
	require.NoError(t, err)

	d := linkDesc("A", "B", 1, 2)
	d.Delay = 20 * time.Millisecond
	_, err = s.InternLink(d)
	assert.ErrorIs(t, err, graph.ErrPortMismatch)
}

func TestInternLink_RejectsSelfLoop(t *testing.T) {
	s := graph.NewStorage()
	_, err := s.InternLink(linkDesc("A", "A", 1, 2))
	assert.ErrorIs(t, err, graph.ErrSameSrcDst)
}

func TestInternLink_RejectsZeroPort(t *testing.T) {
	s := graph.NewStorage()
	_, err := s.InternLink(linkDesc("A", "B", 0, 2))
	assert.ErrorIs(t, err, graph.ErrZeroPort)
}

func TestInternLink_ZeroPortsReturnExistingLink(t *testing.T) {
	s := graph.NewStorage()

	want, err := s.InternLink(linkDesc("A", "B", 1, 2))
	require.NoError(t, err)

	got, err := s.InternLink(graph.LinkDescription{
		Src: "A", Dst: "B",
		Delay:        10 * time.Millisecond,
		BandwidthBps: 1_000_000,
	})
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestInternLink_ZeroPortsWithNoExistingLinkIsError(t *testing.T) {
	s := graph.NewStorage()
	_, err := s.InternLink(graph.LinkDescription{
		Src: "A", Dst: "B",
		Delay:        10 * time.Millisecond,
		BandwidthBps: 1_000_000,
	})
	assert.ErrorIs(t, err, graph.ErrZeroPort)
}

func TestFindUniqueReverseLink(t *testing.T) {
	s := graph.NewStorage()

	ab, err := s.InternLink(linkDesc("A", "B", 1, 2))
	require.NoError(t, err)
	ba, err := s.InternLink(linkDesc("B", "A", 2, 1))
	require.NoError(t, err)

	got, err := s.FindUniqueReverseLink(ab)
	require.NoError(t, err)
	assert.Same(t, ba, got)
}

func TestFindUniqueReverseLink_Ambiguous(t *testing.T) {
	s := graph.NewStorage()

	ab, err := s.InternLink(linkDesc("A", "B", 1, 2))
	require.NoError(t, err)
	_, err = s.InternLink(linkDesc("B", "A", 2, 1))
	require.NoError(t, err)
	_, err = s.InternLink(linkDesc("B", "A", 3, 4))
	require.NoError(t, err)

	_, err = s.FindUniqueReverseLink(ab)
	assert.ErrorIs(t, err, graph.ErrAmbiguousReverseLink)
}

func TestPathFromLinks_CookieScopesIdentity(t *testing.T) {
	s := graph.NewStorage()
	ab, _ := s.InternLink(linkDesc("A", "B", 1, 2))
	bc, _ := s.InternLink(linkDesc("B", "C", 3, 4))

	p1, err := s.PathFromLinks(1, graph.Links{ab, bc})
	require.NoError(t, err)
	p2, err := s.PathFromLinks(1, graph.Links{ab, bc})
	require.NoError(t, err)
	p3, err := s.PathFromLinks(2, graph.Links{ab, bc})
	require.NoError(t, err)

	assert.Same(t, p1, p2)
	assert.NotSame(t, p1, p3)
	assert.NotEqual(t, p1.Tag(), p3.Tag())
}

func TestPathFromLinks_EmptyIsSingleton(t *testing.T) {
	s := graph.NewStorage()

	p1, err := s.PathFromLinks(1, nil)
	require.NoError(t, err)
	p2, err := s.PathFromLinks(2, nil)
	require.NoError(t, err)

	assert.Same(t, s.EmptyPath(), p1)
	assert.Same(t, s.EmptyPath(), p2)
	assert.Equal(t, uint32(0), p1.Tag())
}

func TestPathFromLinks_RejectsDiscontiguous(t *testing.T) {
	s := graph.NewStorage()
	ab, _ := s.InternLink(linkDesc("A", "B", 1, 2))
	cd, _ := s.InternLink(linkDesc("C", "D", 3, 4))

	_, err := s.PathFromLinks(1, graph.Links{ab, cd})
	assert.ErrorIs(t, err, graph.ErrDiscontiguousLinks)
}

func TestFindPathByTag(t *testing.T) {
	s := graph.NewStorage()
	ab, _ := s.InternLink(linkDesc("A", "B", 1, 2))

	p, err := s.PathFromLinks(1, graph.Links{ab})
	require.NoError(t, err)

	assert.Same(t, p, s.FindPathByTag(p.Tag()))
	assert.Same(t, s.EmptyPath(), s.FindPathByTag(0))
	assert.Nil(t, s.FindPathByTag(99999))
}

func TestPathFromString_RoundTrips(t *testing.T) {
	desc := &graph.GraphDescription{
		Links: []graph.LinkDescription{
			linkDesc("A", "B", 1, 2),
			linkDesc("B", "C", 3, 4),
		},
	}
	s, err := graph.LoadGraph(desc)
	require.NoError(t, err)

	p, err := s.PathFromString(1, "[A:1->B:2, B:3->C:4]", desc)
	require.NoError(t, err)
	assert.Equal(t, "[A:1->B:2, B:3->C:4]", p.String())
	assert.Equal(t, 20*time.Millisecond, p.Delay())
}

func TestPathFromString_NoPorts(t *testing.T) {
	desc := &graph.GraphDescription{
		Links: []graph.LinkDescription{
			linkDesc("A", "B", 1, 2),
			linkDesc("B", "C", 3, 4),
		},
	}
	s, err := graph.LoadGraph(desc)
	require.NoError(t, err)

	p, err := s.PathFromString(1, "[A->B, B->C]", desc)
	require.NoError(t, err)
	assert.Equal(t, "[A->B->C]", p.StringNoPorts())
}

func TestPathFromString_Empty(t *testing.T) {
	s := graph.NewStorage()
	p, err := s.PathFromString(1, "[]", nil)
	require.NoError(t, err)
	assert.Same(t, s.EmptyPath(), p)
}

func TestLoadGraph_Clustering(t *testing.T) {
	desc := &graph.GraphDescription{
		Links: []graph.LinkDescription{
			linkDesc("A", "B", 1, 2),
			linkDesc("B", "C", 3, 4),
		},
		Clusters: []graph.ClusterDescription{
			{ID: "east", Nodes: []string{"A", "B"}},
			{ID: "west", Nodes: []string{"C"}},
		},
	}
	s, err := graph.LoadGraph(desc)
	require.NoError(t, err)

	inEast, err := s.NodesInCluster("east")
	require.NoError(t, err)
	assert.Len(t, inEast, 2)

	outside := s.NodesOutsideCluster("east")
	assert.Len(t, outside, 1)

	ab, err := s.InternLink(linkDesc("A", "B", 1, 2))
	require.NoError(t, err)
	bc, err := s.InternLink(linkDesc("B", "C", 3, 4))
	require.NoError(t, err)

	assert.True(t, s.IsIntraClusterLink(ab))
	assert.False(t, s.IsIntraClusterLink(bc))
}

func TestLoadGraph_ConflictingClusterAssignment(t *testing.T) {
	desc := &graph.GraphDescription{
		Links: []graph.LinkDescription{
			linkDesc("A", "B", 1, 2),
		},
		Clusters: []graph.ClusterDescription{
			{ID: "east", Nodes: []string{"A"}},
			{ID: "west", Nodes: []string{"A"}},
		},
	}
	_, err := graph.LoadGraph(desc)
	assert.ErrorIs(t, err, graph.ErrAlreadyClustered)
}
