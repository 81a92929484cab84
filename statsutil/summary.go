package statsutil

import "math"

// SummaryStats accumulates count, sum, sum-of-squares, min and max of a
// stream of values without retaining them. min/max are seeded from the
// first value Added rather than from +Inf/-Inf, so a SummaryStats that has
// seen exactly one value reports that value as both its min and its max.
type SummaryStats struct {
	count      int
	sum        float64
	sumSquared float64
	min, max   float64
}

// Add folds value into s.
func (s *SummaryStats) Add(value float64) {
	if s.count == 0 {
		s.min, s.max = value, value
	} else {
		if value < s.min {
			s.min = value
		}
		if value > s.max {
			s.max = value
		}
	}
	s.count++
	s.sum += value
	s.sumSquared += value * value
}

// Count returns the number of values Added.
func (s *SummaryStats) Count() int { return s.count }

// Mean returns the arithmetic mean of the values Added, or 0 if none have.
func (s *SummaryStats) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// Var returns the population variance of the values Added.
func (s *SummaryStats) Var() float64 {
	if s.count == 0 {
		return 0
	}
	mean := s.Mean()
	return s.sumSquared/float64(s.count) - mean*mean
}

// Std returns the population standard deviation of the values Added.
func (s *SummaryStats) Std() float64 {
	return math.Sqrt(s.Var())
}

// Min returns the smallest value Added, or 0 if none have.
func (s *SummaryStats) Min() float64 { return s.min }

// Max returns the largest value Added, or 0 if none have.
func (s *SummaryStats) Max() float64 { return s.max }

// Sum returns the sum of the values Added.
func (s *SummaryStats) Sum() float64 { return s.sum }

// SumSquared returns the sum of the squares of the values Added.
func (s *SummaryStats) SumSquared() float64 { return s.sumSquared }

// Reset clears s back to its zero state.
func (s *SummaryStats) Reset() {
	*s = SummaryStats{}
}
