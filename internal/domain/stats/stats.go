// Package stats provides the descriptive statistics behind outlier and
// drift detection. Every function rejects an empty sample.
package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrInvalidInput is returned for an empty sample, where the statistic is
// undefined.
var ErrInvalidInput = errors.New("stats: empty sample")

// Mean is the arithmetic mean.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrInvalidInput
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Median averages the two middle elements when the count is even.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrInvalidInput
	}
	sorted := sortedCopy(values)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// Mode returns the most frequent value, the smallest one among ties.
func Mode(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrInvalidInput
	}
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := 0.0, 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best, nil
}

// StdDev is the population standard deviation.
func StdDev(values []float64) (float64, error) {
	mean, err := Mean(values)
	if err != nil {
		return 0, err
	}
	sq := 0.0
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values))), nil
}

// Summary bundles the descriptive statistics of one sample.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Mode   float64 `json:"mode"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes every statistic in one call.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrInvalidInput
	}
	s := Summary{Count: len(values)}
	s.Mean, _ = Mean(values)
	s.Median, _ = Median(values)
	s.Mode, _ = Mode(values)
	s.StdDev, _ = StdDev(values)

	sorted := sortedCopy(values)
	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	return s, nil
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
