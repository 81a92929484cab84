package dfs

import (
	"container/heap"
	"fmt"
	"sort"
	"time"

	"github.com/ngvozdiev/netsim/graph"
)

// InfiniteDistance marks a vertex from which the destination cannot be
// reached.
const InfiniteDistance = time.Duration(1<<63 - 1)

// arrayNeighbor is one outgoing edge of a vertex in an ArrayGraph.
type arrayNeighbor struct {
	link   *graph.Link
	offset int // destination vertex's offset within the ArrayGraph
}

// ArrayGraph is a flattened, destination-scoped adjacency representation
// built once per destination and reused across every Search and PathCache
// lookup for that destination. Every vertex's neighbor list is pre-sorted by
// ascending distance-to-destination, computed once over the reversed graph,
// so that Search can explore the most promising neighbor first.
type ArrayGraph struct {
	storage     *graph.Storage
	destination *graph.Node

	nodes  []*graph.Node
	offset map[*graph.Node]int

	distanceToDest []time.Duration
	neighbors      [][]arrayNeighbor
}

// NewArrayGraph builds the flattened representation of storage scoped to
// destination.
func NewArrayGraph(storage *graph.Storage, destination *graph.Node) (*ArrayGraph, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}

	nodes := storage.AllNodes()
	offset := make(map[*graph.Node]int, len(nodes))
	for i, n := range nodes {
		offset[n] = i
	}
	if _, ok := offset[destination]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDestinationNotFound, destination)
	}

	ag := &ArrayGraph{
		storage:     storage,
		destination: destination,
		nodes:       nodes,
		offset:      offset,
	}

	links := storage.AllLinks()
	ag.distanceToDest = populateDistanceToDestination(offset[destination], len(nodes), links, offset)

	ag.neighbors = make([][]arrayNeighbor, len(nodes))
	for _, l := range links {
		srcOff, ok := offset[l.Src()]
		if !ok {
			continue
		}
		dstOff := offset[l.Dst()]
		ag.neighbors[srcOff] = append(ag.neighbors[srcOff], arrayNeighbor{link: l, offset: dstOff})
	}
	for i := range ag.neighbors {
		ag.orderNeighborsByDistanceToDest(ag.neighbors[i])
	}

	return ag, nil
}

// orderNeighborsByDistanceToDest sorts a vertex's neighbor list by ascending
// distance-to-destination, so Search visits the neighbor closest to
// destination first.
func (ag *ArrayGraph) orderNeighborsByDistanceToDest(ns []arrayNeighbor) {
	sort.SliceStable(ns, func(i, j int) bool {
		return ag.distanceToDest[ns[i].offset] < ag.distanceToDest[ns[j].offset]
	})
}

// distItem is one entry of the reverse-Dijkstra priority queue.
type distItem struct {
	offset int
	dist   time.Duration
}

type distHeap []distItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{}) { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// populateDistanceToDestination runs Dijkstra from destOffset over the
// reversed graph, giving every vertex its shortest-delay distance to the
// destination. Unreachable vertices are left at InfiniteDistance.
func populateDistanceToDestination(destOffset, numVertices int, links graph.Links, offset map[*graph.Node]int) []time.Duration {
	dist := make([]time.Duration, numVertices)
	for i := range dist {
		dist[i] = InfiniteDistance
	}
	dist[destOffset] = 0

	reverse := make(map[int][]arrayNeighbor, numVertices)
	for _, l := range links {
		srcOff, ok1 := offset[l.Src()]
		dstOff, ok2 := offset[l.Dst()]
		if !ok1 || !ok2 {
			continue
		}
		reverse[dstOff] = append(reverse[dstOff], arrayNeighbor{link: l, offset: srcOff})
	}

	pq := &distHeap{{offset: destOffset, dist: 0}}
	heap.Init(pq)
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(distItem)
		if cur.dist > dist[cur.offset] {
			continue
		}
		for _, nb := range reverse[cur.offset] {
			cand := cur.dist + nb.link.Delay()
			if cand < dist[nb.offset] {
				dist[nb.offset] = cand
				heap.Push(pq, distItem{offset: nb.offset, dist: cand})
			}
		}
	}
	return dist
}

// NumVertices returns the number of vertices in the array graph.
func (ag *ArrayGraph) NumVertices() int { return len(ag.nodes) }

// Offset returns n's position in the array graph and whether n belongs to
// it.
func (ag *ArrayGraph) Offset(n *graph.Node) (int, bool) {
	off, ok := ag.offset[n]
	return off, ok
}

// NodeAt returns the node at the given offset.
func (ag *ArrayGraph) NodeAt(offset int) *graph.Node { return ag.nodes[offset] }

// DistanceToDestination returns the shortest-delay distance from n to the
// array graph's destination, and whether n can reach it at all.
func (ag *ArrayGraph) DistanceToDestination(n *graph.Node) (time.Duration, bool) {
	off, ok := ag.offset[n]
	if !ok {
		return InfiniteDistance, false
	}
	d := ag.distanceToDest[off]
	return d, d != InfiniteDistance
}

// Destination returns the node the array graph was built for.
func (ag *ArrayGraph) Destination() *graph.Node { return ag.destination }
