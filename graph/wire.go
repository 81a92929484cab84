package graph

import "fmt"

// ClusterDescription assigns a set of node ids to a named cluster. Clusters
// partition the node set for the NodesInCluster/NodesOutsideCluster/
// IsIntraClusterLink queries below; a node absent from every
// ClusterDescription simply belongs to no cluster.
type ClusterDescription struct {
	ID    string
	Nodes []string
}

// GraphDescription is the wire form of a graph: every link plus an optional
// clustering. LoadGraph interns it into a *Storage.
type GraphDescription struct {
	Links    []LinkDescription
	Clusters []ClusterDescription
}

// LoadGraph interns every link and node referenced by desc into a fresh
// Storage, then records its clustering. It is an error for a node to be
// assigned to more than one cluster.
func LoadGraph(desc *GraphDescription) (*Storage, error) {
	s := NewStorage()

	for _, ld := range desc.Links {
		if _, err := s.InternLink(ld); err != nil {
			return nil, err
		}
	}

	for _, cd := range desc.Clusters {
		for _, id := range cd.Nodes {
			if _, err := s.InternNode(id); err != nil {
				return nil, err
			}
			if err := s.assignCluster(id, cd.ID); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// assignCluster records id's cluster membership, rejecting a second,
// different cluster assignment for the same node.
func (s *Storage) assignCluster(id, clusterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.clusters[id]; ok && existing != clusterID {
		return fmt.Errorf("%w: %s already in cluster %s", ErrAlreadyClustered, id, existing)
	}
	s.clusters[id] = clusterID
	return nil
}

// ClusterOf returns the cluster id node belongs to, or "" if it belongs to
// no cluster.
func (s *Storage) ClusterOf(node *Node) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clusters[node.id]
}

// NodesInCluster returns every interned node assigned to clusterID.
func (s *Storage) NodesInCluster(clusterID string) ([]*Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Node
	found := false
	for id, c := range s.clusters {
		if c != clusterID {
			continue
		}
		found = true
		out = append(out, s.nodes[id])
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotInCluster, clusterID)
	}
	return out, nil
}

// NodesOutsideCluster returns every interned node not assigned to
// clusterID, including nodes with no cluster at all.
func (s *Storage) NodesOutsideCluster(clusterID string) []*Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Node, 0, len(s.nodes))
	for id, n := range s.nodes {
		if s.clusters[id] != clusterID {
			out = append(out, n)
		}
	}
	return out
}

// IsIntraClusterLink reports whether l's source and destination belong to
// the same non-empty cluster.
func (s *Storage) IsIntraClusterLink(l *Link) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	srcCluster, ok := s.clusters[l.src.id]
	if !ok || srcCluster == "" {
		return false
	}
	return s.clusters[l.dst.id] == srcCluster
}
