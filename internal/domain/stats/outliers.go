package stats

import (
	"fmt"
	"math"
)

// DefaultOutlierFactor is the number of standard deviations beyond which a
// value is an outlier.
const DefaultOutlierFactor = 2.0

// DefaultDriftThreshold is the relative mean shift that counts as drift.
const DefaultDriftThreshold = 0.19

// DetectOutliers returns the values with |x - mean| > k * stddev, in input
// order. A sample with zero spread has no outliers.
func DetectOutliers(values []float64, k float64) ([]float64, error) {
	mean, err := Mean(values)
	if err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("stats: negative outlier factor %g", k)
	}
	sd, _ := StdDev(values)

	var out []float64
	for _, v := range values {
		if math.Abs(v-mean) > k*sd {
			out = append(out, v)
		}
	}
	return out, nil
}

// DriftRatio is |mean(current) - mean(reference)| / |mean(reference)|.
// A reference mean of zero makes the ratio undefined.
func DriftRatio(reference, current []float64) (float64, error) {
	ref, err := Mean(reference)
	if err != nil {
		return 0, fmt.Errorf("reference: %w", err)
	}
	cur, err := Mean(current)
	if err != nil {
		return 0, fmt.Errorf("current: %w", err)
	}
	if ref == 0 {
		return 0, fmt.Errorf("stats: reference mean is zero, drift ratio undefined: %w", ErrInvalidInput)
	}
	return math.Abs(cur-ref) / math.Abs(ref), nil
}

// DetectDrift reports whether DriftRatio exceeds threshold.
func DetectDrift(reference, current []float64, threshold float64) (bool, error) {
	ratio, err := DriftRatio(reference, current)
	if err != nil {
		return false, err
	}
	return ratio > threshold, nil
}
