package mcflow

import (
	"fmt"
	"math"

	"github.com/ngvozdiev/netsim/graph"
)

// FlowAndPath pairs a path with the amount of a commodity's flow routed
// along it.
type FlowAndPath struct {
	Flow float64
	Path graph.LinkSequence
}

// RecoverPaths decomposes the per-(link, commodity) flow values in x — as
// returned by SolveFeasible or SolveMaxFlow for a feasible assignment — into a list of paths per
// commodity, each carrying the amount of flow routed along it. For every
// commodity it repeatedly finds a source-to-sink route using only links
// with strictly positive remaining flow, subtracts the minimum flow along
// that route from every link on it, and continues until no flow remains
// leaving the commodity's source.
func (p *Problem) RecoverPaths(x []float64) ([][]FlowAndPath, error) {
	results := make([][]FlowAndPath, len(p.commodities))

	for ci, comm := range p.commodities {
		remaining := make([]float64, len(p.links))
		for li := range p.links {
			remaining[li] = x[p.varIndex(li, ci)]
		}

		for {
			path, err := p.findFlowPath(comm.Source, comm.Sink, remaining)
			if err != nil {
				return nil, err
			}
			if path == nil {
				break
			}

			amount := math.Inf(1)
			for _, li := range path {
				if remaining[li] < amount {
					amount = remaining[li]
				}
			}
			if amount <= 0 {
				break
			}

			links := make(graph.Links, len(path))
			for i, li := range path {
				links[i] = p.links[li]
				remaining[li] -= amount
			}

			seq, err := graph.NewLinkSequence(links)
			if err != nil {
				return nil, err
			}
			results[ci] = append(results[ci], FlowAndPath{Flow: amount, Path: seq})
		}
	}

	return results, nil
}

// findFlowPath runs a breadth-first search from src to dst using only links
// whose remaining flow is strictly positive, returning the link indices of
// one such path (in traversal order), or nil if none exists.
func (p *Problem) findFlowPath(src, dst *graph.Node, remaining []float64) ([]int, error) {
	srcIdx, ok := p.nodeIdx[src]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, src)
	}
	dstIdx, ok := p.nodeIdx[dst]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, dst)
	}

	visited := make([]bool, len(p.nodes))
	viaLink := make([]int, len(p.nodes))
	viaFrom := make([]int, len(p.nodes))
	for i := range viaLink {
		viaLink[i] = -1
		viaFrom[i] = -1
	}

	queue := []int{srcIdx}
	visited[srcIdx] = true

	found := srcIdx == dstIdx
	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]

		for _, li := range p.outgoing[cur] {
			if remaining[li] <= 0 {
				continue
			}
			next := p.nodeIdx[p.links[li].Dst()]
			if visited[next] {
				continue
			}
			visited[next] = true
			viaLink[next] = li
			viaFrom[next] = cur
			if next == dstIdx {
				found = true
				break
			}
			queue = append(queue, next)
		}
	}

	if !visited[dstIdx] {
		return nil, nil
	}

	var path []int
	for n := dstIdx; n != srcIdx; n = viaFrom[n] {
		path = append([]int{viaLink[n]}, path...)
	}
	return path, nil
}
