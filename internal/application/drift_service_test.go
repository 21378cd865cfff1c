package application_test

import (
	"context"
	"os"
	"testing"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/baseline"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/records"
	"github.com/abdidvp/dqscore/internal/application"
	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriftService_SaveThenCheck(t *testing.T) {
	path := writeDataset(t, "metrics.json", `[
  {"latency": 100, "errors": 0, "host": "a"},
  {"latency": 100, "errors": 0, "host": "b"}
]`, "")
	svc := application.NewDriftService(records.New(), baseline.New(), nil)

	b, err := svc.SaveBaseline(context.Background(), application.DriftRequest{RecordsPath: path})
	require.NoError(t, err)
	assert.Equal(t, "metrics", b.Dataset)
	assert.Equal(t, []float64{100, 100}, b.Fields["latency"])
	assert.NotContains(t, b.Fields, "host")

	// mean latency moves from 100 to 120: ratio 0.2 crosses 0.19
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"latency": 110, "errors": 0},
  {"latency": 130, "errors": 0}
]`), 0644))

	report, err := svc.Check(context.Background(), application.DriftRequest{RecordsPath: path})
	require.NoError(t, err)
	assert.Equal(t, stats.DefaultDriftThreshold, report.Threshold)
	require.Len(t, report.Fields, 2)

	errs := report.Fields[0]
	assert.Equal(t, "errors", errs.Field)
	assert.NotEmpty(t, errs.Error, "zero reference mean has no ratio")
	assert.False(t, errs.Drifted)

	latency := report.Fields[1]
	assert.Equal(t, "latency", latency.Field)
	assert.InDelta(t, 0.2, latency.Ratio, 1e-9)
	assert.Equal(t, 100.0, latency.ReferenceMean)
	assert.Equal(t, 120.0, latency.CurrentMean)
	assert.True(t, latency.Drifted)
	assert.True(t, report.Drifted())
}

func TestDriftService_CustomThresholdAndFields(t *testing.T) {
	path := writeDataset(t, "metrics.json", `[{"latency": 100}, {"latency": 100}]`, "")
	svc := application.NewDriftService(records.New(), baseline.New(), nil)

	_, err := svc.SaveBaseline(context.Background(), application.DriftRequest{RecordsPath: path})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(`[{"latency": 120}]`), 0644))

	report, err := svc.Check(context.Background(), application.DriftRequest{
		RecordsPath: path,
		Fields:      []string{"latency", "missing"},
		Threshold:   domain.Float64(0.5),
	})
	require.NoError(t, err)
	require.Len(t, report.Fields, 2)
	assert.False(t, report.Fields[0].Drifted)
	assert.Equal(t, "field not in baseline", report.Fields[1].Error)
	assert.False(t, report.Drifted())
}

func TestDriftService_NoBaseline(t *testing.T) {
	path := writeDataset(t, "metrics.json", `[{"latency": 100}]`, "")
	svc := application.NewDriftService(records.New(), baseline.New(), nil)

	_, err := svc.Check(context.Background(), application.DriftRequest{RecordsPath: path})
	assert.ErrorIs(t, err, application.ErrNoBaseline)
}

func TestDriftService_NothingNumeric(t *testing.T) {
	path := writeDataset(t, "people.json", `[{"name": "ann"}]`, "")
	svc := application.NewDriftService(records.New(), baseline.New(), nil)

	_, err := svc.SaveBaseline(context.Background(), application.DriftRequest{RecordsPath: path})
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
}

func TestDriftService_ZeroThresholdFlagsAnyShift(t *testing.T) {
	path := writeDataset(t, "metrics.json", `[{"latency": 100}, {"latency": 100}]`, "")
	svc := application.NewDriftService(records.New(), baseline.New(), nil)

	_, err := svc.SaveBaseline(context.Background(), application.DriftRequest{RecordsPath: path})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(`[{"latency": 101}]`), 0644))

	report, err := svc.Check(context.Background(), application.DriftRequest{
		RecordsPath: path,
		Threshold:   domain.Float64(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Threshold)
	assert.True(t, report.Drifted(), "any shift exceeds a zero threshold")

	_, err = svc.Check(context.Background(), application.DriftRequest{
		RecordsPath: path,
		Threshold:   domain.Float64(-0.1),
	})
	assert.ErrorIs(t, err, stats.ErrInvalidInput)
}
