package graph

import "errors"

// Sentinel errors for graph construction and lookup.
var (
	// ErrEmptyNodeID indicates an empty string was used as a node id.
	ErrEmptyNodeID = errors.New("graph: node id is empty")

	// ErrSameSrcDst indicates a link was requested from a node to itself.
	ErrSameSrcDst = errors.New("graph: link source and destination are the same node")

	// ErrZeroDelay indicates a new link was requested with non-positive delay.
	ErrZeroDelay = errors.New("graph: link delay must be positive")

	// ErrZeroBandwidth indicates a new link was requested with non-positive bandwidth.
	ErrZeroBandwidth = errors.New("graph: link bandwidth must be positive")

	// ErrZeroPort indicates a new link was requested with a zero port.
	ErrZeroPort = errors.New("graph: new links require non-zero ports")

	// ErrPortMismatch indicates a link request shares exactly one of its
	// ports with an existing link between the same (src, dst) pair, or
	// matches both of its ports but not its delay or bandwidth.
	ErrPortMismatch = errors.New("graph: link port mismatch with existing link")

	// ErrNoReverseLink indicates FindUniqueReverseLink found zero inverses.
	ErrNoReverseLink = errors.New("graph: no reverse link found")

	// ErrAmbiguousReverseLink indicates FindUniqueReverseLink found more than one inverse.
	ErrAmbiguousReverseLink = errors.New("graph: more than one reverse link found")

	// ErrMissingSource indicates a requested source node is not in the graph.
	ErrMissingSource = errors.New("graph: source node not found")

	// ErrMissingDestination indicates a requested destination node is not in the graph.
	ErrMissingDestination = errors.New("graph: destination node not found")

	// ErrBadPathString indicates a path string failed to parse.
	ErrBadPathString = errors.New("graph: malformed path string")

	// ErrNoSuchEdge indicates a path string referenced an edge absent from
	// the supplied graph description.
	ErrNoSuchEdge = errors.New("graph: no such edge in graph description")

	// ErrDiscontiguousLinks indicates a link sequence is not contiguous.
	ErrDiscontiguousLinks = errors.New("graph: links in sequence are not contiguous")

	// ErrDuplicateLink indicates a link sequence repeats the same link.
	ErrDuplicateLink = errors.New("graph: link appears twice in sequence")

	// ErrNotInCluster indicates NodesInCluster found no node in the
	// requested cluster.
	ErrNotInCluster = errors.New("graph: node is not in any cluster")

	// ErrAlreadyClustered indicates a node was assigned to a second cluster.
	ErrAlreadyClustered = errors.New("graph: node already belongs to a cluster")
)
