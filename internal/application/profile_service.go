package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/similarity"
	"github.com/abdidvp/dqscore/internal/domain/stats"
)

// FieldStats is the descriptive profile of one numeric field.
type FieldStats struct {
	Field    string        `json:"field"`
	Summary  stats.Summary `json:"summary"`
	Outliers []float64     `json:"outliers"`
}

// DuplicateReport holds exact and near duplicates found in a dataset.
type DuplicateReport struct {
	Records int `json:"records"`
	// Exact maps a duplicate record index to the index of its first copy.
	Exact     map[int]int                `json:"exact"`
	Near      []similarity.DuplicatePair `json:"near"`
	Field     string                     `json:"field,omitempty"`
	Metric    similarity.Metric          `json:"metric,omitempty"`
	Threshold float64                    `json:"threshold,omitempty"`
}

// DuplicateRequest configures ProfileService.Duplicates.
type DuplicateRequest struct {
	RecordsPath string
	// Field enables near-duplicate detection on that field.
	Field     string
	Threshold float64
	Metric    similarity.Metric
	// Ignore lists fields left out of exact comparison, typically the id.
	Ignore []string
}

// ProfileService describes a dataset without any constraints.
type ProfileService struct {
	source domain.RecordSource
	logger *slog.Logger
}

func NewProfileService(source domain.RecordSource, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProfileService{source: source, logger: logger}
}

// Stats summarizes every numeric field (or only fields) and flags values
// further than k standard deviations from the mean.
func (s *ProfileService) Stats(ctx context.Context, path string, k float64, fields ...string) ([]FieldStats, error) {
	batch, err := s.load(ctx, path)
	if err != nil {
		return nil, err
	}
	if k == 0 {
		k = stats.DefaultOutlierFactor
	}

	samples, order := NumericSamples(batch, fields...)
	out := make([]FieldStats, 0, len(order))
	for _, f := range order {
		sum, err := stats.Summarize(samples[f])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f, err)
		}
		outliers, err := stats.DetectOutliers(samples[f], k)
		if err != nil {
			return nil, err
		}
		if outliers == nil {
			outliers = []float64{}
		}
		out = append(out, FieldStats{Field: f, Summary: sum, Outliers: outliers})
	}
	s.logger.Debug("profiled numeric fields", "path", path, "fields", len(out))
	return out, nil
}

// Duplicates finds exact duplicate records and, when a field is named,
// near duplicates on it.
func (s *ProfileService) Duplicates(ctx context.Context, req DuplicateRequest) (*DuplicateReport, error) {
	batch, err := s.load(ctx, req.RecordsPath)
	if err != nil {
		return nil, err
	}

	report := &DuplicateReport{
		Records: len(batch),
		Exact:   similarity.ExactDuplicates(batch, req.Ignore...),
		Near:    []similarity.DuplicatePair{},
	}
	if req.Field == "" {
		return report, nil
	}

	metric := req.Metric
	if metric == "" {
		metric = similarity.MetricJaroWinkler
	}
	near, err := similarity.NearDuplicates(batch, req.Field, req.Threshold, metric)
	if err != nil {
		return nil, err
	}
	if near != nil {
		report.Near = near
	}
	report.Field = req.Field
	report.Metric = metric
	report.Threshold = req.Threshold
	return report, nil
}

func (s *ProfileService) load(ctx context.Context, path string) (domain.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	batch, err := s.source.Load(path)
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	if len(batch) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	return batch, nil
}

// NumericSamples collects the numeric values of each field in first-seen
// order. Non-numeric and null values are left out, and a field with no
// numeric value at all is omitted. When fields are named only those are
// collected, in the given order.
func NumericSamples(batch domain.Batch, fields ...string) (map[string][]float64, []string) {
	samples := make(map[string][]float64)
	var order []string

	wanted := make(map[string]bool, len(fields))
	for _, f := range fields {
		wanted[f] = true
	}

	for _, rec := range batch {
		for _, f := range rec.Fields() {
			if len(wanted) > 0 && !wanted[f] {
				continue
			}
			v, _ := rec.Get(f)
			if !v.IsNumber() {
				continue
			}
			x, _ := v.Float()
			if _, seen := samples[f]; !seen {
				order = append(order, f)
			}
			samples[f] = append(samples[f], x)
		}
	}

	if len(fields) > 0 {
		order = order[:0]
		for _, f := range fields {
			if _, ok := samples[f]; ok {
				order = append(order, f)
			}
		}
	}
	return samples, order
}
