package mcflow

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Direction is the optimization sense of an lpProblem's objective.
type Direction int

const (
	// Minimize seeks the smallest objective value.
	Minimize Direction = iota
	// Maximize seeks the largest objective value.
	Maximize
)

// SolutionType mirrors the qualitative result categories of a generic LP
// solver handle: a solve either lands on an optimal basic feasible solution
// or the problem has none.
type SolutionType int

const (
	// Infeasible means the LP has no point satisfying every constraint, or
	// is unbounded in the requested direction.
	Infeasible SolutionType = iota
	// Optimal means the solver found an optimal basic feasible solution.
	Optimal
)

// rowRange is an inclusive [Min, Max] bound on one constraint row.
// Min == Max encodes an equality row. Use math.Inf(1) for an unbounded Max.
type rowRange struct {
	Min, Max float64
}

// lpProblem is a triplet-matrix LP — one row per ranged constraint, one
// column per variable (always x >= 0 in this package's usage) — solved by
// translating it into gonum/lp's standard form (A x = b, x >= 0). Every row
// this package ever emits is either an equality, a [0, Max] upper bound, or
// a [Min, +Inf) lower bound, so at most one slack or surplus variable per
// row is ever needed.
type lpProblem struct {
	numVars int
	rows    []rowRange
	entries map[[2]int]float64
	obj     []float64
	dir     Direction
}

func newLPProblem(numVars int) *lpProblem {
	return &lpProblem{
		entries: make(map[[2]int]float64),
		obj:     make([]float64, numVars),
		numVars: numVars,
	}
}

func (p *lpProblem) addRow(r rowRange) int {
	p.rows = append(p.rows, r)
	return len(p.rows) - 1
}

func (p *lpProblem) set(row, col int, v float64) {
	key := [2]int{row, col}
	if v == 0 {
		delete(p.entries, key)
		return
	}
	p.entries[key] = v
}

func (p *lpProblem) add(row, col int, v float64) {
	p.set(row, col, p.entries[[2]int{row, col}]+v)
}

// solve translates p into gonum/lp's standard form and solves it. Callers
// set p.obj and p.dir immediately before calling solve; they are restored
// by the caller afterward if a different objective is needed next.
func (p *lpProblem) solve() (SolutionType, float64, []float64, error) {
	numSlack := 0
	slackCol := make([]int, len(p.rows))
	for i, r := range p.rows {
		slackCol[i] = -1
		if r.Min != r.Max {
			slackCol[i] = p.numVars + numSlack
			numSlack++
		}
	}

	totalVars := p.numVars + numSlack
	numRows := len(p.rows)

	a := mat.NewDense(numRows, totalVars, nil)
	b := make([]float64, numRows)
	for rc, v := range p.entries {
		a.Set(rc[0], rc[1], v)
	}

	for i, r := range p.rows {
		switch {
		case r.Min == r.Max:
			b[i] = r.Max
		case math.IsInf(r.Max, 1):
			// r.Min <= a·x  =>  a·x - surplus = r.Min
			a.Set(i, slackCol[i], -1)
			b[i] = r.Min
		default:
			// a·x <= r.Max, with r.Min == 0 for every such row this package
			// builds  =>  a·x + slack = r.Max
			a.Set(i, slackCol[i], 1)
			b[i] = r.Max
		}
	}

	c := make([]float64, totalVars)
	copy(c, p.obj)
	if p.dir == Maximize {
		for i := range c {
			c[i] = -c[i]
		}
	}

	z, x, err := lp.Simplex(nil, c, a, b, 0)
	if err != nil {
		return Infeasible, 0, nil, nil
	}

	if p.dir == Maximize {
		z = -z
	}
	return Optimal, z, x[:p.numVars], nil
}
