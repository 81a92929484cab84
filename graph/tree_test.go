package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngvozdiev/netsim/graph"
)

func TestToTree_Branches(t *testing.T) {
	s := graph.NewStorage()
	ab, err := s.InternLink(linkDesc("A", "B", 1, 2))
	require.NoError(t, err)
	ac, err := s.InternLink(linkDesc("A", "C", 3, 4))
	require.NoError(t, err)
	bd, err := s.InternLink(linkDesc("B", "D", 5, 6))
	require.NoError(t, err)

	root, err := s.InternNode("A")
	require.NoError(t, err)

	tree := graph.ToTree(root, graph.Links{ab, ac, bd})

	require.Len(t, tree.Children, 2)
	require.Nil(t, tree.Link)

	var bNode *graph.TreeNode
	for _, c := range tree.Children {
		if c.Node.ID() == "B" {
			bNode = c
		}
	}
	require.NotNil(t, bNode)
	require.Len(t, bNode.Children, 1)
	require.Equal(t, "D", bNode.Children[0].Node.ID())
}
