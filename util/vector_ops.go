package util

import "math"

// MeanAbsDiff is the mean absolute element-wise difference of two
// equal length vectors. It panics if the lengths differ.
func MeanAbsDiff(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("util: vector length mismatch")
	}
	if len(a) == 0 {
		return 0
	}
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum / float64(len(a))
}
