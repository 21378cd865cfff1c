package scoring

import (
	"time"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/validation"
	"github.com/google/uuid"
)

// Options configures GenerateReport. The zero value scores with equal
// weights, default thresholds and the wall clock.
type Options struct {
	Dataset    string
	Weights    map[domain.Dimension]float64
	Thresholds map[domain.Dimension]float64
	Context    validation.Context
	// Now stamps the report. Defaults to time.Now.
	Now func() time.Time
}

// GenerateReport validates the batch, scores every dimension the
// constraints declare and combines them into a weighted overall score.
func GenerateReport(batch domain.Batch, constraints []domain.FieldConstraint, opts Options) (*domain.QualityReport, error) {
	if len(batch) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(constraints) == 0 {
		return nil, &domain.ConfigError{Field: "constraints", Reason: "no constraints declared"}
	}

	declared := DeclaredDimensions(constraints)
	weights, err := ResolveWeights(declared, opts.Weights)
	if err != nil {
		return nil, err
	}
	thresholds, err := ResolveThresholds(declared, opts.Thresholds)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	vctx := opts.Context
	if vctx.ReferenceTime.IsZero() {
		vctx.ReferenceTime = now()
	}

	results, err := validation.ValidateBatch(batch, constraints, vctx)
	if err != nil {
		return nil, err
	}

	report := &domain.QualityReport{
		ID:          uuid.NewString(),
		Dataset:     opts.Dataset,
		RecordCount: len(batch),
		Weights:     weights,
		Thresholds:  thresholds,
		Passed:      true,
	}

	for _, d := range declared {
		ds, err := ScoreDimension(results, d)
		if err != nil {
			return nil, err
		}
		ds.Weight = weights[d]
		ds.Threshold = thresholds[d]
		report.OverallScore += ds.Weight * ds.Percentage
		if ds.BelowThreshold() {
			report.Passed = false
			report.Recommendations = append(report.Recommendations, Recommendation(d))
		}
		report.Dimensions = append(report.Dimensions, ds)
	}
	if report.Recommendations == nil {
		report.Recommendations = []string{}
	}

	report.Grade = domain.GradeFor(report.OverallScore)
	report.Benchmark = domain.BenchmarkFor(report.OverallScore)
	report.FieldMetrics = FieldMetrics(batch)
	report.GeneratedAt = now()
	return report, nil
}

// DeclaredDimensions returns the dimensions the constraints score, in
// report order.
func DeclaredDimensions(constraints []domain.FieldConstraint) []domain.Dimension {
	seen := make(map[domain.Dimension]bool)
	for _, c := range constraints {
		seen[c.EffectiveDimension()] = true
	}
	var out []domain.Dimension
	for _, d := range domain.AllDimensions {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}

var recommendations = map[domain.Dimension]string{
	domain.Completeness: "Improve data completeness by filling missing fields",
	domain.Accuracy:     "Improve data accuracy by reconciling values with their source of record",
	domain.Consistency:  "Improve data consistency by standardizing values across records",
	domain.Timeliness:   "Improve data timeliness by refreshing stale records",
	domain.Validity:     "Improve data validity by fixing invalid formats",
	domain.Uniqueness:   "Improve data uniqueness by removing duplicates",
	domain.Integrity:    "Improve data integrity by resolving orphaned references",
}

// Recommendation returns the remediation text for a failing dimension.
func Recommendation(d domain.Dimension) string {
	if r, ok := recommendations[d]; ok {
		return r
	}
	return "Review " + string(d) + " rules"
}

// FieldMetrics profiles every field seen in the batch, in first-seen
// order. A record lacking the field counts as null.
func FieldMetrics(batch domain.Batch) []domain.FieldMetric {
	var order []string
	seen := make(map[string]bool)
	for _, rec := range batch {
		for _, f := range rec.Fields() {
			if !seen[f] {
				seen[f] = true
				order = append(order, f)
			}
		}
	}

	out := make([]domain.FieldMetric, 0, len(order))
	for _, f := range order {
		m := domain.FieldMetric{Field: f}
		filled := 0
		distinct := make(map[string]bool)
		for _, rec := range batch {
			v, ok := rec.Get(f)
			if !ok || v.IsNull() {
				m.NullCount++
				continue
			}
			if !v.IsEmpty() {
				filled++
			}
			distinct[v.Normalized()] = true
		}
		m.DistinctCount = len(distinct)
		m.Completeness = percentage(filled, len(batch))
		out = append(out, m)
	}
	return out
}
