package statsutil

import (
	"cmp"
	"slices"
)

// Percentiles returns n+1 values, each the i/n-th percentile of values (the
// element at index 0 is the minimum, at index n the maximum). values is not
// mutated; a sorted copy is taken internally. Returns nil if values is empty.
func Percentiles[T cmp.Ordered](values []T, n int) []T {
	return PercentilesFunc(values, cmp.Compare[T], n)
}

// PercentilesFunc is Percentiles with an explicit comparison function, for
// types without a natural ordering (e.g. time.Duration via a wrapper, or
// descending order).
func PercentilesFunc[T any](values []T, compare func(a, b T) int, n int) []T {
	if len(values) == 0 {
		return nil
	}

	sorted := append([]T(nil), values...)
	slices.SortFunc(sorted, compare)

	numMinusOne := float64(len(sorted) - 1)
	out := make([]T, n+1)
	for p := 0; p <= n; p++ {
		idx := int(0.5 + numMinusOne*(float64(p)/float64(n)))
		out[p] = sorted[idx]
	}
	return out
}

// CumulativeFractions returns n+1 values describing the empirical CDF of
// values: index i is the fraction of the total sum contributed by the
// smallest i/n-th of values. Returns nil if values is empty.
func CumulativeFractions(values []float64, n int) []float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := append([]float64(nil), values...)
	slices.Sort(sorted)

	var total float64
	for _, v := range sorted {
		total += v
	}

	cumulative := make([]float64, len(sorted))
	var soFar float64
	for i, v := range sorted {
		soFar += v
		cumulative[i] = soFar / total
	}

	numMinusOne := float64(len(sorted) - 1)
	out := make([]float64, n+1)
	for p := 0; p <= n; p++ {
		idx := int(0.5 + numMinusOne*(float64(p)/float64(n)))
		out[p] = cumulative[idx]
	}
	return out
}
