package dfs

import (
	"context"
	"fmt"
	"time"

	"github.com/ngvozdiev/netsim/graph"
)

// SearchOptions bounds a Search call.
type SearchOptions struct {
	// MaxHops caps the number of links in any emitted path. Zero means the
	// number of vertices in the graph, which no node-disjoint path reaches;
	// an edge-disjoint path that revisits a vertex can be longer and is then
	// cut off.
	MaxHops int

	// MaxDelay discards any partial path whose accumulated delay would
	// already exceed it. Zero means unbounded.
	MaxDelay time.Duration

	// MaxDuration bounds the wall-clock time Search spends searching. Zero
	// means unbounded; Search still honors ctx cancellation either way.
	MaxDuration time.Duration

	// Constraint, if non-nil, is checked against every complete candidate
	// path; non-compliant paths are not delivered to Visit.
	Constraint Constraint

	// NodeDisjoint, if true, prunes a candidate edge whenever its neighbor
	// vertex is already on the current path, giving node-disjoint (rather
	// than merely edge-disjoint) loop freedom.
	NodeDisjoint bool

	// StepsToCheckForStop sets how many stack operations elapse between
	// samples of ctx cancellation and of the MaxDuration deadline. Values
	// <= 1 sample on every operation.
	StepsToCheckForStop int
}

// Visit is called once per complete, constraint-compliant path found during
// a Search. Returning false stops the search early.
type Visit func(links graph.Links) bool

type searchFrame struct {
	vertexOffset int
	viaLink      *graph.Link // nil only for the root frame
	neighborIdx  int
}

// Search enumerates loopless paths from src to the ArrayGraph's destination
// using an explicit frame stack rather than recursion, so that every push
// can be checked against the hop and delay budgets without growing the Go
// call stack. A path is loopless if no link appears on it twice; with
// opts.NodeDisjoint, no vertex may appear on it twice either. Pruning is
// applied, per candidate edge, in this order: loop, accumulated delay, hop
// budget. The wall-clock budget and ctx cancellation are sampled together
// every opts.StepsToCheckForStop stack operations.
func Search(ctx context.Context, ag *ArrayGraph, src *graph.Node, opts SearchOptions, visit Visit) error {
	srcOffset, ok := ag.Offset(src)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, src)
	}

	maxHops := opts.MaxHops
	if maxHops <= 0 {
		maxHops = ag.NumVertices()
	}
	stepsToCheckForStop := opts.StepsToCheckForStop
	if stepsToCheckForStop <= 0 {
		stepsToCheckForStop = 1
	}

	var deadline time.Time
	if opts.MaxDuration > 0 {
		deadline = time.Now().Add(opts.MaxDuration)
	}

	stack := make([]searchFrame, 1, maxHops+1)
	stack[0] = searchFrame{vertexOffset: srcOffset}

	destOffset, _ := ag.Offset(ag.Destination())
	var delay time.Duration

	vertexOnStack := func(offset int) bool {
		for _, f := range stack {
			if f.vertexOffset == offset {
				return true
			}
		}
		return false
	}
	linkOnStack := func(l *graph.Link) bool {
		for _, f := range stack {
			if f.viaLink == l {
				return true
			}
		}
		return false
	}

	steps := 0
	for len(stack) > 0 {
		if steps%stepsToCheckForStop == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				return nil
			}
		}
		steps++

		top := &stack[len(stack)-1]
		candidates := ag.neighbors[top.vertexOffset]
		if top.neighborIdx >= len(candidates) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				delay -= top.viaLink.Delay()
			}
			continue
		}

		nb := candidates[top.neighborIdx]
		top.neighborIdx++

		if opts.NodeDisjoint {
			if vertexOnStack(nb.offset) {
				continue // loop pruning: node-disjoint
			}
		} else if linkOnStack(nb.link) {
			continue // loop pruning: edge-disjoint
		}
		if opts.MaxDelay > 0 && delay+nb.link.Delay() > opts.MaxDelay {
			continue // weight pruning
		}
		if len(stack) > maxHops {
			continue // hop pruning: this edge would make the path too long
		}

		if nb.offset == destOffset {
			links := make(graph.Links, 0, len(stack))
			for _, f := range stack[1:] {
				links = append(links, f.viaLink)
			}
			links = append(links, nb.link)

			seq, err := graph.NewLinkSequence(links)
			if err == nil && (opts.Constraint == nil || opts.Constraint.Complies(seq)) {
				if !visit(links) {
					return nil
				}
			}
			continue
		}

		delay += nb.link.Delay()
		stack = append(stack, searchFrame{vertexOffset: nb.offset, viaLink: nb.link})
	}

	return nil
}
