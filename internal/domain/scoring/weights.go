package scoring

import (
	"fmt"
	"math"

	"github.com/abdidvp/dqscore/internal/domain"
)

// ResolveWeights returns the weight table for the declared dimensions. An
// empty table splits the weight equally. A supplied table must name exactly
// the declared dimensions and sum to 1.0 within domain.WeightTolerance.
func ResolveWeights(declared []domain.Dimension, weights map[domain.Dimension]float64) (map[domain.Dimension]float64, error) {
	if len(declared) == 0 {
		return nil, &domain.ConfigError{Field: "weights", Reason: "no dimensions to weigh"}
	}

	out := make(map[domain.Dimension]float64, len(declared))
	if len(weights) == 0 {
		share := 1.0 / float64(len(declared))
		for _, d := range declared {
			out[d] = share
		}
		return out, nil
	}

	isDeclared := make(map[domain.Dimension]bool, len(declared))
	for _, d := range declared {
		isDeclared[d] = true
	}
	for d := range weights {
		if !isDeclared[d] {
			return nil, &domain.ConfigError{Field: "weights", Reason: fmt.Sprintf("%s is weighted but no constraint scores it", d)}
		}
	}

	sum := 0.0
	for _, d := range declared {
		w, ok := weights[d]
		if !ok {
			return nil, &domain.ConfigError{Field: "weights", Reason: fmt.Sprintf("missing weight for %s", d)}
		}
		if w < 0 || math.IsNaN(w) {
			return nil, &domain.ConfigError{Field: "weights", Reason: fmt.Sprintf("%s weight %g is negative", d, w)}
		}
		out[d] = w
		sum += w
	}
	if math.Abs(sum-1.0) > domain.WeightTolerance {
		return nil, &domain.ConfigError{Field: "weights", Reason: fmt.Sprintf("weights sum to %g, want 1.0", sum)}
	}
	return out, nil
}

// ResolveThresholds fills domain.DefaultThreshold for every declared
// dimension without an explicit threshold.
func ResolveThresholds(declared []domain.Dimension, thresholds map[domain.Dimension]float64) (map[domain.Dimension]float64, error) {
	for d, t := range thresholds {
		if _, ok := domain.ParseDimension(string(d)); !ok {
			return nil, &domain.ConfigError{Field: "thresholds", Reason: fmt.Sprintf("unknown dimension %q", d)}
		}
		if t < 0 || t > 100 || math.IsNaN(t) {
			return nil, &domain.ConfigError{Field: "thresholds", Reason: fmt.Sprintf("%s threshold %g is outside [0, 100]", d, t)}
		}
	}

	out := make(map[domain.Dimension]float64, len(declared))
	for _, d := range declared {
		t, ok := thresholds[d]
		if !ok {
			t = domain.DefaultThreshold
		}
		out[d] = t
	}
	return out, nil
}
