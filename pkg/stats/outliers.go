package stats

import (
	"math"
	"sort"
)

// FenceFactor scales the interquartile range when placing Tukey fences.
const FenceFactor = 1.5

// Fences returns the lower and upper Tukey fences of the non-NaN values of x.
// Both are NaN when x has no observed values.
func Fences(x []float64) (lower, upper float64) {
	obs := DropNaN(x)
	if len(obs) == 0 {
		return math.NaN(), math.NaN()
	}
	sort.Float64s(obs)
	q1, q3 := percentileSorted(obs, 25), percentileSorted(obs, 75)
	iqr := q3 - q1
	return q1 - FenceFactor*iqr, q3 + FenceFactor*iqr
}

// Outliers returns the indices of the values of x beyond its fences.
func Outliers(x []float64) []int {
	lower, upper := Fences(x)
	var idx []int
	for i, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if v < lower || v > upper {
			idx = append(idx, i)
		}
	}
	return idx
}
