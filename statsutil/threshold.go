package statsutil

import "math"

// ThresholdEnforcerPolicy bounds how much a key's associated value may
// change before ThresholdEnforcer accepts the change. All four thresholds
// default to 0 (any change accepted).
type ThresholdEnforcerPolicy struct {
	// EmptyThresholdAbsolute rejects changes to a value that lies closer
	// than this to the enforcer's missing value.
	EmptyThresholdAbsolute float64
	// ThresholdAbsolute rejects changes smaller than this in absolute terms.
	ThresholdAbsolute float64
	// ThresholdRelativeToCurrent rejects changes smaller than this fraction
	// of the key's current value.
	ThresholdRelativeToCurrent float64
	// ThresholdRelativeToTotal rejects changes smaller than this fraction of
	// the sum of every key's current value.
	ThresholdRelativeToTotal float64
}

// ThresholdEnforcer tracks a value per key and accepts or rejects proposed
// changes according to a ThresholdEnforcerPolicy, so that noisy small
// fluctuations don't propagate downstream.
type ThresholdEnforcer[K comparable] struct {
	policy       ThresholdEnforcerPolicy
	missingValue float64
	current      map[K]float64
}

// NewThresholdEnforcer returns a ThresholdEnforcer governed by policy; keys
// with no recorded value are treated as having missingValue.
func NewThresholdEnforcer[K comparable](policy ThresholdEnforcerPolicy, missingValue float64) *ThresholdEnforcer[K] {
	return &ThresholdEnforcer[K]{
		policy:       policy,
		missingValue: missingValue,
		current:      make(map[K]float64),
	}
}

// Get returns the value currently recorded for key, or the enforcer's
// missing value if key has never been changed.
func (e *ThresholdEnforcer[K]) Get(key K) float64 {
	if v, ok := e.current[key]; ok {
		return v
	}
	return e.missingValue
}

// Change proposes changing key's value to value. It returns false (and
// makes no change) if the change is smaller than the policy allows;
// otherwise it applies the change and returns true.
func (e *ThresholdEnforcer[K]) Change(key K, value float64) bool {
	if !e.canChange(value, e.Get(key)) {
		return false
	}
	e.current[key] = value
	return true
}

func (e *ThresholdEnforcer[K]) canChange(value, currentValue float64) bool {
	if math.Abs(currentValue-value) < e.policy.ThresholdAbsolute {
		return false
	}
	if math.Abs(e.missingValue-value) < e.policy.EmptyThresholdAbsolute {
		return false
	}

	var relativeToCurrent float64
	if currentValue > 0 {
		relativeToCurrent = math.Abs((value - currentValue) / currentValue)
	} else {
		relativeToCurrent = 1
	}
	if relativeToCurrent < e.policy.ThresholdRelativeToCurrent {
		return false
	}

	var total float64
	for _, v := range e.current {
		total += v
	}
	var relativeToTotal float64
	if total > 0 {
		relativeToTotal = math.Abs((value - currentValue) / total)
	} else {
		relativeToTotal = 1
	}
	return relativeToTotal >= e.policy.ThresholdRelativeToTotal
}
