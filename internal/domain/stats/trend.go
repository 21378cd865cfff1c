package stats

import "math"

// Direction is the sign of a trend.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Stable     Direction = "stable"
)

// trendDeadBand is the average change inside which a series is stable.
const trendDeadBand = 0.1

// TrendMetrics describes how a series moves between consecutive points.
type TrendMetrics struct {
	Direction     Direction `json:"direction"`
	AverageChange float64   `json:"average_change"`
	Volatility    float64   `json:"volatility"`
	Strength      float64   `json:"strength"`
}

// Trend needs at least two points. Volatility is the population stddev of
// the changes, and Strength is |AverageChange| / Volatility (0 when the
// changes are constant).
func Trend(series []float64) (TrendMetrics, error) {
	if len(series) < 2 {
		return TrendMetrics{}, ErrInvalidInput
	}
	changes := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		changes[i-1] = series[i] - series[i-1]
	}

	avg, _ := Mean(changes)
	vol, _ := StdDev(changes)

	t := TrendMetrics{AverageChange: avg, Volatility: vol, Direction: Stable}
	switch {
	case avg > trendDeadBand:
		t.Direction = Increasing
	case avg < -trendDeadBand:
		t.Direction = Decreasing
	}
	if vol > 0 {
		t.Strength = math.Abs(avg) / vol
	}
	return t, nil
}
