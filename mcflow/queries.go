package mcflow

const (
	// scaleFactorMax is the upper end of MaxScaleFactor's binary search
	// range; no realistic traffic matrix scales demand past this.
	scaleFactorMax = 1e7
	// stopThreshold bounds the binary searches in MaxScaleFactor and
	// MaxIncrement: they stop once the search interval narrows below it.
	stopThreshold = 1e-4
)

// IsFeasible reports whether every commodity can simultaneously route at
// least its demand without violating any link's capacity.
func (p *Problem) IsFeasible() (bool, error) {
	st, err := p.solveConstantObjective()
	if err != nil {
		return false, err
	}
	return st == Optimal, nil
}

// solveConstantObjective solves p with a zero objective, i.e. asks only
// whether a feasible point exists.
func (p *Problem) solveConstantObjective() (SolutionType, error) {
	saved, savedDir := p.lp.obj, p.lp.dir
	p.lp.obj = make([]float64, p.lp.numVars)
	p.lp.dir = Maximize
	st, _, _, err := p.lp.solve()
	p.lp.obj, p.lp.dir = saved, savedDir
	return st, err
}

// MaxFlow returns the maximum total flow the problem can push out of every
// commodity's source while respecting link capacity and each commodity's
// demand floor. Construct commodities with Demand 0 for a pure max-flow
// query unconstrained by any required minimum.
func (p *Problem) MaxFlow() (float64, error) {
	z, _, err := p.SolveMaxFlow()
	return z, err
}

// SolveMaxFlow is MaxFlow, additionally returning the per-(link, commodity)
// flow assignment achieving it, suitable for RecoverPaths.
func (p *Problem) SolveMaxFlow() (float64, []float64, error) {
	saved, savedDir := p.lp.obj, p.lp.dir

	obj := make([]float64, p.lp.numVars)
	for ci := range p.commodities {
		srcIdx := p.nodeIdx[p.commodities[ci].Source]
		for _, li := range p.outgoing[srcIdx] {
			obj[p.varIndex(li, ci)] = 1
		}
	}
	p.lp.obj = obj
	p.lp.dir = Maximize

	st, z, x, err := p.lp.solve()
	p.lp.obj, p.lp.dir = saved, savedDir
	if err != nil {
		return 0, nil, err
	}
	if st != Optimal {
		return 0, nil, ErrInfeasible
	}
	return z, x, nil
}

// SolveFeasible solves p at its current demand floor with a constant
// objective and returns the resulting per-(link, commodity) flow
// assignment, suitable for RecoverPaths. It fails with ErrInfeasible if no
// such assignment exists.
func (p *Problem) SolveFeasible() ([]float64, error) {
	saved, savedDir := p.lp.obj, p.lp.dir
	p.lp.obj = make([]float64, p.lp.numVars)
	p.lp.dir = Maximize
	st, _, x, err := p.lp.solve()
	p.lp.obj, p.lp.dir = saved, savedDir
	if err != nil {
		return nil, err
	}
	if st != Optimal {
		return nil, ErrInfeasible
	}
	return x, nil
}

// MaxScaleFactor binary-searches, in [1, 1e7], the largest factor by which
// every commodity's demand can be scaled up while the problem remains
// feasible. It returns 0 if every commodity has zero demand, or if the
// problem is already infeasible at the unscaled demand.
func (p *Problem) MaxScaleFactor() (float64, error) {
	defer p.resetDemand()

	anyDemand := false
	for _, d := range p.originalDemand {
		if d > 0 {
			anyDemand = true
			break
		}
	}
	if !anyDemand {
		return 0, nil
	}

	p.setDemandScale(1)
	feasible, err := p.IsFeasible()
	if err != nil {
		return 0, err
	}
	if !feasible {
		return 0, nil
	}

	lo, hi := 1.0, scaleFactorMax
	for hi-lo > stopThreshold {
		mid := (lo + hi) / 2
		p.setDemandScale(mid)
		ok, err := p.IsFeasible()
		if err != nil {
			return 0, err
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, nil
}

// MaxIncrement binary-searches, in [1, the largest scaled link capacity in
// the problem], the largest additive increment that can be applied to every
// commodity's demand while the problem remains feasible. It returns 0 if the
// problem is already infeasible at an increment of 1.
func (p *Problem) MaxIncrement() (float64, error) {
	defer p.resetDemand()

	var maxCapacity float64
	for _, l := range p.links {
		c := float64(l.BandwidthBps()) * p.capacityMultiplier
		if c > maxCapacity {
			maxCapacity = c
		}
	}
	if maxCapacity <= 1 {
		return 0, nil
	}

	p.setDemandIncrement(1)
	feasible, err := p.IsFeasible()
	if err != nil {
		return 0, err
	}
	if !feasible {
		return 0, nil
	}

	lo, hi := 1.0, maxCapacity
	for hi-lo > stopThreshold {
		mid := (lo + hi) / 2
		p.setDemandIncrement(mid)
		ok, err := p.IsFeasible()
		if err != nil {
			return 0, err
		}
		if ok {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, nil
}
