package mcflow

import (
	"fmt"
	"math"

	"github.com/ngvozdiev/netsim/graph"
)

// Commodity is one source/sink/demand triple in a multi-commodity flow
// instance.
type Commodity struct {
	Source, Sink *graph.Node
	Demand       float64
}

// Problem is the LP form of a multi-commodity flow instance over a
// graph.Storage: one variable per (link, commodity) pair, one capacity row
// per link, and one flow-conservation row per (commodity, node) pair, except
// at each commodity's source, which gets two (one for incoming and one for
// outgoing flow).
type Problem struct {
	commodities []Commodity

	links     graph.Links
	nodes     []*graph.Node
	nodeIdx   map[*graph.Node]int

	capacityMultiplier float64

	lp *lpProblem

	// varOf[linkIdx][commodityIdx] is the LP column for that link's flow
	// variable for that commodity.
	varOf [][]int

	// outgoing[nodeIdx] / incoming[nodeIdx] are the link indices leaving /
	// arriving at that node, shared by conservation-row construction and
	// RecoverPaths' flow decomposition.
	outgoing [][]int
	incoming [][]int

	// sourceRow[commodityIdx] is the LP row enforcing that commodity's
	// demand floor, and originalDemand its unscaled value — both reused by
	// MaxScaleFactor and MaxIncrement to relax or tighten that floor without
	// rebuilding the LP.
	sourceRow      []int
	originalDemand []float64
}

// NewProblem builds the capacity and conservation rows for commodities over
// storage. capacityMultiplier scales every link's bandwidth-derived
// capacity; pass 1 to use each link's native capacity unscaled.
func NewProblem(storage *graph.Storage, commodities []Commodity, capacityMultiplier float64) (*Problem, error) {
	if capacityMultiplier <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrBadMultiplier, capacityMultiplier)
	}

	links := storage.AllLinks()
	nodes := storage.AllNodes()

	p := &Problem{
		commodities:        commodities,
		links:              links,
		nodes:               nodes,
		nodeIdx:             make(map[*graph.Node]int, len(nodes)),
		capacityMultiplier:  capacityMultiplier,
		sourceRow:           make([]int, len(commodities)),
		originalDemand:      make([]float64, len(commodities)),
	}
	for i, n := range nodes {
		p.nodeIdx[n] = i
	}
	for i, c := range commodities {
		p.originalDemand[i] = c.Demand
	}

	p.outgoing = make([][]int, len(nodes))
	p.incoming = make([][]int, len(nodes))
	for i, l := range links {
		srcIdx, ok := p.nodeIdx[l.Src()]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, l.Src())
		}
		dstIdx, ok := p.nodeIdx[l.Dst()]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, l.Dst())
		}
		p.outgoing[srcIdx] = append(p.outgoing[srcIdx], i)
		p.incoming[dstIdx] = append(p.incoming[dstIdx], i)
	}

	p.varOf = make([][]int, len(links))
	for i := range links {
		p.varOf[i] = make([]int, len(commodities))
		for j := range commodities {
			p.varOf[i][j] = i*len(commodities) + j
		}
	}

	p.lp = newLPProblem(len(links) * len(commodities))
	p.addCapacityRows()
	if err := p.addConservationRows(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Problem) varIndex(linkIdx, commodityIdx int) int { return p.varOf[linkIdx][commodityIdx] }

// addCapacityRows adds, for every link, a row bounding the sum of every
// commodity's flow on that link by its scaled capacity.
func (p *Problem) addCapacityRows() {
	for i, l := range p.links {
		capacity := float64(l.BandwidthBps()) * p.capacityMultiplier
		row := p.lp.addRow(rowRange{Min: 0, Max: capacity})
		for j := range p.commodities {
			p.lp.set(row, p.varIndex(i, j), 1)
		}
	}
}

// addConservationRows adds, for every (commodity, node) pair, a flow
// conservation row: at a commodity's own source, incoming flow must be zero
// and outgoing flow must be at least Demand; at its sink, outgoing flow must
// be zero; everywhere else, incoming and outgoing flow must balance.
func (p *Problem) addConservationRows() error {
	for ci, comm := range p.commodities {
		srcIdx, ok := p.nodeIdx[comm.Source]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownNode, comm.Source)
		}
		sinkIdx, ok := p.nodeIdx[comm.Sink]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownNode, comm.Sink)
		}

		for ni := range p.nodes {
			switch ni {
			case srcIdx:
				zeroIn := p.lp.addRow(rowRange{Min: 0, Max: 0})
				for _, li := range p.incoming[ni] {
					p.lp.set(zeroIn, p.varIndex(li, ci), 1)
				}

				srcRow := p.lp.addRow(rowRange{Min: comm.Demand, Max: math.Inf(1)})
				for _, li := range p.outgoing[ni] {
					p.lp.set(srcRow, p.varIndex(li, ci), 1)
				}
				p.sourceRow[ci] = srcRow

			case sinkIdx:
				zeroOut := p.lp.addRow(rowRange{Min: 0, Max: 0})
				for _, li := range p.outgoing[ni] {
					p.lp.set(zeroOut, p.varIndex(li, ci), 1)
				}

			default:
				balance := p.lp.addRow(rowRange{Min: 0, Max: 0})
				for _, li := range p.incoming[ni] {
					p.lp.add(balance, p.varIndex(li, ci), 1)
				}
				for _, li := range p.outgoing[ni] {
					p.lp.add(balance, p.varIndex(li, ci), -1)
				}
			}
		}
	}
	return nil
}

// setDemandScale rewrites every commodity's source-demand floor to
// scale * its original demand.
func (p *Problem) setDemandScale(scale float64) {
	for ci, row := range p.sourceRow {
		p.lp.rows[row].Min = scale * p.originalDemand[ci]
	}
}

// setDemandIncrement rewrites every commodity's source-demand floor to its
// original demand plus extra.
func (p *Problem) setDemandIncrement(extra float64) {
	for ci, row := range p.sourceRow {
		p.lp.rows[row].Min = p.originalDemand[ci] + extra
	}
}

// resetDemand restores every commodity's source-demand floor to its
// original value.
func (p *Problem) resetDemand() {
	for ci, row := range p.sourceRow {
		p.lp.rows[row].Min = p.originalDemand[ci]
	}
}
