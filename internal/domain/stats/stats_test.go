package stats_test

import (
	"testing"

	"github.com/abdidvp/dqscore/internal/domain/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptive(t *testing.T) {
	values := []float64{4, 1, 2, 2, 5, 4}

	mean, err := stats.Mean(values)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mean, 1e-12)

	median, err := stats.Median(values)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, median, 1e-12)

	mode, err := stats.Mode(values)
	require.NoError(t, err)
	assert.Equal(t, 2.0, mode, "ties resolve to the smallest value")

	sd, err := stats.StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sd, 1e-12, "population, not sample")
}

func TestMedian_Odd(t *testing.T) {
	m, err := stats.Median([]float64{9, 1, 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, m)
}

func TestEmptySample(t *testing.T) {
	_, err := stats.Mean(nil)
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
	_, err = stats.Median(nil)
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
	_, err = stats.Mode(nil)
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
	_, err = stats.StdDev([]float64{})
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
	_, err = stats.DetectOutliers(nil, 2)
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
	_, err = stats.DetectDrift(nil, []float64{1}, 0.19)
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
	_, err = stats.Summarize(nil)
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
}

func TestSummarize(t *testing.T) {
	s, err := stats.Summarize([]float64{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
	assert.Equal(t, 2.0, s.Median)
}

func TestDetectOutliers(t *testing.T) {
	out, err := stats.DetectOutliers([]float64{10, 12, 11.5, 15, 10.5, 1000}, stats.DefaultOutlierFactor)
	require.NoError(t, err)
	assert.Equal(t, []float64{1000}, out)

	out, err = stats.DetectOutliers([]float64{5, 5, 5}, stats.DefaultOutlierFactor)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDetectDrift(t *testing.T) {
	reference := []float64{10, 11, 12, 13, 14, 15}
	current := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

	ratio, err := stats.DriftRatio(reference, current)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, ratio, 1e-12)

	drift, err := stats.DetectDrift(reference, current, stats.DefaultDriftThreshold)
	require.NoError(t, err)
	assert.True(t, drift)

	drift, err = stats.DetectDrift(reference, reference, stats.DefaultDriftThreshold)
	require.NoError(t, err)
	assert.False(t, drift)
}

func TestDriftRatio_ZeroReferenceMean(t *testing.T) {
	_, err := stats.DriftRatio([]float64{-1, 1}, []float64{3})
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
}

func TestDriftRatio_NegativeReferenceMean(t *testing.T) {
	// mean -10 to -12: the ratio is a magnitude, never negative
	ratio, err := stats.DriftRatio([]float64{-10, -10}, []float64{-12, -12})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, ratio, 1e-12)

	drift, err := stats.DetectDrift([]float64{-10, -10}, []float64{-12, -12}, stats.DefaultDriftThreshold)
	require.NoError(t, err)
	assert.True(t, drift)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		dir    stats.Direction
	}{
		{"rising", []float64{70, 75, 80, 85}, stats.Increasing},
		{"falling", []float64{90, 85, 82}, stats.Decreasing},
		{"flat", []float64{80, 80.05, 80.1}, stats.Stable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := stats.Trend(tt.series)
			require.NoError(t, err)
			assert.Equal(t, tt.dir, tr.Direction)
		})
	}

	tr, err := stats.Trend([]float64{70, 75, 80, 85})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, tr.AverageChange, 1e-12)
	assert.Equal(t, 0.0, tr.Volatility)
	assert.Equal(t, 0.0, tr.Strength)

	_, err = stats.Trend([]float64{1})
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
}
