package tui_test

import (
	"strings"
	"testing"
	"time"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/tui"
	"github.com/abdidvp/dqscore/internal/application"
	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/similarity"
	"github.com/abdidvp/dqscore/internal/domain/stats"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *domain.QualityReport {
	return &domain.QualityReport{
		Dataset:      "orders",
		OverallScore: 67.5,
		Grade:        "C",
		RecordCount:  40,
		Benchmark:    domain.BenchmarkFor(67.5),
		Dimensions: []domain.DimensionScore{
			{
				Dimension: domain.Completeness, Percentage: 95, Weight: 0.5, Threshold: 90,
				Fields: []domain.FieldScore{
					{Field: "customerEmail", Passed: 38, Total: 40, Percentage: 95},
				},
			},
			{
				Dimension: domain.Validity, Percentage: 40, Weight: 0.5, Threshold: 90,
				Fields: []domain.FieldScore{
					{Field: "order_amount", Passed: 16, Total: 40, Percentage: 40},
				},
			},
		},
		Recommendations: []string{"Improve data validity by fixing invalid formats"},
	}
}

func TestRenderReport_ContainsOverall(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "67.5 / 100")
	assert.Contains(t, output, "orders")
}

func TestRenderReport_ContainsDimensionNames(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "completeness")
	assert.Contains(t, output, "validity")
}

func TestRenderReport_ContainsGradeAndBenchmark(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "C")
	assert.Contains(t, output, "below average")
}

func TestRenderReport_HumanizesFields(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "customer email")
	assert.Contains(t, output, "order amount")
	assert.Contains(t, output, "16/40")
}

func TestRenderReport_MarksFailingDimensions(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "✗ < 90")
	assert.Contains(t, output, "✓")
}

func TestRenderReport_Recommendations(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "Recommendations")
	assert.Contains(t, output, "fixing invalid formats")

	passing := sampleReport()
	passing.Recommendations = []string{}
	assert.Contains(t, tui.RenderReport(passing), "Every dimension meets its threshold.")
}

func TestRenderReport_ProgressBars(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "█")
	assert.Contains(t, output, "░")
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"orderAmount":  "order amount",
		"order_amount": "order amount",
		"OrderAmount":  "order amount",
		"customerID":   "customer id",
		"created-at":   "created at",
		"email":        "email",
		"___":          "___",
	}
	for in, want := range tests {
		assert.Equal(t, want, tui.Humanize(in), in)
	}
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No report history found.")
}

func TestRenderHistory_ShowsEntriesAndTrend(t *testing.T) {
	entries := []domain.ReportEntry{
		{Timestamp: "2026-01-01T10:00:00Z", CommitHash: "abcdef1234567", Overall: 70, Grade: "B", Records: 10},
		{Timestamp: "2026-01-02T10:00:00Z", Overall: 80, Grade: "A", Records: 12},
		{Timestamp: "2026-01-03T10:00:00Z", Overall: 90, Grade: "A+", Records: 12},
	}
	output := tui.RenderHistory(entries)

	assert.Contains(t, output, "2026-01-01")
	assert.Contains(t, output, "abcdef1")
	assert.NotContains(t, output, "abcdef12")
	assert.Contains(t, output, "↑10.0")
	assert.Contains(t, output, string(stats.Increasing))
}

func TestRenderValidation(t *testing.T) {
	summary := &application.ValidationSummary{
		Dataset: "orders", Records: 3, Passed: 3, Failed: 3,
		Results: []domain.ValidationResult{
			{Record: 0, Constraint: "format(email)", Dimension: domain.Validity, Message: "email is not a valid email", Expected: "email", Actual: "bad"},
			{Record: 1, Constraint: "format(email)", Dimension: domain.Validity, Message: "email is not a valid email"},
			{Record: 2, Constraint: "format(email)", Dimension: domain.Validity, Message: "email is not a valid email"},
			{Record: 0, Constraint: "required(id)", Passed: true},
		},
	}

	output := tui.RenderValidation(summary, 2)
	assert.Contains(t, output, "format(email)")
	assert.Contains(t, output, "3 failed")
	assert.Contains(t, output, "record 0: email is not a valid email")
	assert.Contains(t, output, "(expected email, got bad)")
	assert.NotContains(t, output, "record 2:")
	assert.Contains(t, output, "… 1 more")
	assert.NotContains(t, output, "required(id)")
}

func TestRenderValidation_AllPassing(t *testing.T) {
	summary := &application.ValidationSummary{Dataset: "orders", Records: 1, Passed: 1,
		Results: []domain.ValidationResult{{Constraint: "required(id)", Passed: true}}}
	assert.Contains(t, tui.RenderValidation(summary, 0), "Every record satisfies every constraint.")
}

func TestRenderStats(t *testing.T) {
	rows := []application.FieldStats{
		{Field: "age", Summary: stats.Summary{Count: 4, Mean: 30, Median: 30, StdDev: 0.71, Min: 29, Max: 31}, Outliers: []float64{}},
		{Field: "amount", Summary: stats.Summary{Count: 5, Mean: 220, Median: 20, Min: 10, Max: 1000}, Outliers: []float64{1000}},
	}
	output := tui.RenderStats(rows)
	assert.Contains(t, output, "FIELD")
	assert.Contains(t, output, "age")
	assert.Contains(t, output, "29..31")
	assert.Contains(t, output, "none")
	assert.Contains(t, output, "1000")

	assert.Contains(t, tui.RenderStats(nil), "No numeric fields found.")
}

func TestRenderDrift(t *testing.T) {
	report := &application.DriftReport{
		Dataset:   "metrics",
		Baseline:  time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		Threshold: 0.19,
		Fields: []application.FieldDrift{
			{Field: "errorCount", Error: "reference mean is zero"},
			{Field: "latency", ReferenceMean: 100, CurrentMean: 120, Ratio: 0.2, Drifted: true},
		},
	}
	output := tui.RenderDrift(report)
	assert.Contains(t, output, "2026-02-01 09:30")
	assert.Contains(t, output, "error count")
	assert.Contains(t, output, "20.0%")
	assert.Contains(t, output, "Distribution drift detected.")
}

func TestRenderDuplicates(t *testing.T) {
	report := &application.DuplicateReport{
		Records: 4,
		Exact:   map[int]int{3: 0},
		Near: []similarity.DuplicatePair{
			{First: 0, Second: 1, A: "John Smith", B: "Jon Smith", Similarity: 0.97},
		},
		Field:     "name",
		Metric:    similarity.MetricJaroWinkler,
		Threshold: 0.9,
	}
	output := tui.RenderDuplicates(report)
	assert.Contains(t, output, "record 3 repeats record 0")
	assert.Contains(t, output, "near duplicates on name")
	assert.Contains(t, output, `"Jon Smith"`)
	assert.True(t, strings.Contains(output, "0.970"))
}

func TestRenderSummary(t *testing.T) {
	root := "/data"
	results := []application.DatasetResult{
		{Path: "/data/orders/orders.json", Report: &domain.QualityReport{OverallScore: 92, Grade: "A+", Passed: true}},
		{Path: "/data/broken/broken.json", Err: assert.AnError},
	}
	output := tui.RenderSummary(root, results)
	assert.Contains(t, output, "orders/orders.json")
	assert.Contains(t, output, " 92.0")
	assert.Contains(t, output, "broken/broken.json")
	assert.Contains(t, output, assert.AnError.Error())

	assert.Contains(t, tui.RenderSummary(root, nil), "No configured datasets found.")
}
