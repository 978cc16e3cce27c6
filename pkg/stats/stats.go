package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Description summarizes the observed values of a numeric column.
type Description struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64

	// Outliers counts the values beyond the Tukey fences.
	Outliers int
}

// Describe computes count, mean, sample standard deviation, the
// five-number summary and the outlier count over the non-NaN entries of x.
func Describe(x []float64) Description {
	obs := DropNaN(x)
	if len(obs) == 0 {
		nan := math.NaN()
		return Description{Mean: nan, Std: nan, Min: nan, Q25: nan, Median: nan, Q75: nan, Max: nan}
	}
	sort.Float64s(obs)

	d := Description{
		Count:  len(obs),
		Min:    floats.Min(obs),
		Max:    floats.Max(obs),
		Q25:    percentileSorted(obs, 25),
		Median: percentileSorted(obs, 50),
		Q75:    percentileSorted(obs, 75),
	}
	d.Outliers = len(Outliers(obs))
	if len(obs) == 1 {
		d.Mean, d.Std = obs[0], math.NaN()
		return d
	}
	d.Mean, d.Std = stat.MeanStdDev(obs, nil)
	return d
}

// DropNaN returns a copy of x without its NaN entries.
func DropNaN(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Percentile returns the p-th percentile value of the slice (0 <= p <= 100),
// interpolating linearly between closest ranks.
func Percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return 0
	}
	cp := make([]float64, len(x))
	copy(cp, x)
	sort.Float64s(cp)
	return percentileSorted(cp, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return sorted[lower]
	}
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ValueCount is the frequency of one categorical value.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts returns the frequency of every value, most frequent first.
// Ties are ordered by value.
func ValueCounts(values []string) []ValueCount {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
