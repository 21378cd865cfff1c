// Package scoring turns validation results into dimension scores and a
// weighted quality report.
package scoring

import (
	"fmt"

	"github.com/abdidvp/dqscore/internal/domain"
)

// ScoreDimension aggregates the results that belong to dim:
// percentage = 100 * passed / evaluated. Skipped results (nullable values
// that were absent, rules whose condition did not hold) are kept in the
// score's Results but count neither way; a dimension whose results were
// all skipped scores 100.
func ScoreDimension(results []domain.ValidationResult, dim domain.Dimension) (domain.DimensionScore, error) {
	ds := domain.DimensionScore{Dimension: dim}

	byField := make(map[string]*domain.FieldScore)
	var order []string
	for _, r := range results {
		if r.Dimension != dim {
			continue
		}
		ds.Results = append(ds.Results, r)
		if r.Skipped {
			continue
		}

		fs, ok := byField[r.Field]
		if !ok {
			fs = &domain.FieldScore{Field: r.Field}
			byField[r.Field] = fs
			order = append(order, r.Field)
		}
		fs.Total++
		ds.Total++
		if r.Passed {
			fs.Passed++
			ds.Passed++
		}
	}

	if len(ds.Results) == 0 {
		return ds, fmt.Errorf("%s: %w", dim, domain.ErrEmptyBatch)
	}

	ds.Failed = ds.Total - ds.Passed
	ds.Percentage = percentage(ds.Passed, ds.Total)
	for _, f := range order {
		fs := byField[f]
		fs.Percentage = percentage(fs.Passed, fs.Total)
		ds.Fields = append(ds.Fields, *fs)
	}
	return ds, nil
}

func percentage(passed, total int) float64 {
	if total == 0 {
		return 100
	}
	return 100 * float64(passed) / float64(total)
}
