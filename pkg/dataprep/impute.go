package dataprep

import (
	"math"

	"github.com/go-gota/gota/series"
)

// InterpolateLinear fills NaN entries by linear interpolation between the
// nearest non-missing neighbours in slice order. It returns a new slice and
// the number of values filled. Runs at either end with no neighbour on one
// side stay NaN.
func InterpolateLinear(x []float64) ([]float64, int) {
	out := make([]float64, len(x))
	copy(out, x)

	filled := 0
	prev := -1
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			lo, hi := out[prev], v
			span := float64(i - prev)
			for j := prev + 1; j < i; j++ {
				out[j] = lo + (hi-lo)*float64(j-prev)/span
				filled++
			}
		}
		prev = i
	}
	return out, filled
}

// ImputeConstant replaces missing values with a fixed constant. It returns
// a new slice and the number of values replaced.
func ImputeConstant(col []string, missing []bool, constant string) ([]string, int) {
	out := make([]string, len(col))
	copy(out, col)

	n := 0
	for i := range out {
		if missing[i] {
			out[i] = constant
			n++
		}
	}
	return out, n
}

// countNaN returns the number of NaN entries in x.
func countNaN(x []float64) int {
	n := 0
	for _, v := range x {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

func floatColumn(s series.Series) ([]float64, error) {
	if s.Type() != series.Float && s.Type() != series.Int {
		return nil, errNotNumeric(s.Name, s.Type())
	}
	return s.Float(), nil
}
