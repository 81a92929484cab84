package dfs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngvozdiev/netsim/dfs"
	"github.com/ngvozdiev/netsim/graph"
)

func TestCompileConstraint_Dummy(t *testing.T) {
	c, err := dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintDummy})
	require.NoError(t, err)
	assert.True(t, c.Complies(graph.LinkSequence{}))
}

func TestCompileConstraint_VisitAndAvoidEdge(t *testing.T) {
	s := graph.NewStorage()
	ab, err := s.InternLink(link("A", "B", 1, 1, time.Millisecond))
	require.NoError(t, err)
	bc, err := s.InternLink(link("B", "C", 2, 2, time.Millisecond))
	require.NoError(t, err)

	seq, err := graph.NewLinkSequence(graph.Links{ab, bc})
	require.NoError(t, err)

	visit, err := dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintVisitEdge, Link: ab})
	require.NoError(t, err)
	assert.True(t, visit.Complies(seq))

	avoid, err := dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintAvoidEdge, Link: ab})
	require.NoError(t, err)
	assert.False(t, avoid.Complies(seq))
}

func TestCompileConstraint_AvoidEdges(t *testing.T) {
	s := graph.NewStorage()
	ab, _ := s.InternLink(link("A", "B", 1, 1, time.Millisecond))
	bc, _ := s.InternLink(link("B", "C", 2, 2, time.Millisecond))
	cd, _ := s.InternLink(link("C", "D", 3, 3, time.Millisecond))

	seq, err := graph.NewLinkSequence(graph.Links{ab, bc})
	require.NoError(t, err)

	c, err := dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintAvoidEdges, Links: graph.Links{cd}})
	require.NoError(t, err)
	assert.True(t, c.Complies(seq))

	c2, err := dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintAvoidEdges, Links: graph.Links{bc, cd}})
	require.NoError(t, err)
	assert.False(t, c2.Complies(seq))
}

func TestCompileConstraint_AndOrNegate(t *testing.T) {
	s := graph.NewStorage()
	ab, _ := s.InternLink(link("A", "B", 1, 1, time.Millisecond))
	bc, _ := s.InternLink(link("B", "C", 2, 2, time.Millisecond))
	seq, err := graph.NewLinkSequence(graph.Links{ab, bc})
	require.NoError(t, err)

	visitAB := dfs.ConstraintDescription{Kind: dfs.ConstraintVisitEdge, Link: ab}
	avoidAB := dfs.ConstraintDescription{Kind: dfs.ConstraintAvoidEdge, Link: ab}

	and, err := dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintAnd, Operands: []dfs.ConstraintDescription{visitAB, avoidAB}})
	require.NoError(t, err)
	assert.False(t, and.Complies(seq))

	or, err := dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintOr, Operands: []dfs.ConstraintDescription{visitAB, avoidAB}})
	require.NoError(t, err)
	assert.True(t, or.Complies(seq))

	neg, err := dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintNegate, Operands: []dfs.ConstraintDescription{visitAB}})
	require.NoError(t, err)
	assert.False(t, neg.Complies(seq))
}

func TestCompileConstraint_MalformedIsError(t *testing.T) {
	_, err := dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintVisitEdge})
	assert.ErrorIs(t, err, dfs.ErrMalformedConstraint)

	_, err = dfs.CompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintAnd, Operands: []dfs.ConstraintDescription{{Kind: dfs.ConstraintDummy}}})
	assert.ErrorIs(t, err, dfs.ErrMalformedConstraint)
}

func TestMustCompileConstraint_PanicsOnMalformed(t *testing.T) {
	assert.Panics(t, func() {
		dfs.MustCompileConstraint(dfs.ConstraintDescription{Kind: dfs.ConstraintAvoidEdges})
	})
}
