package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/stats"
)

// ErrNoBaseline is returned by DriftService.Check before a baseline exists.
var ErrNoBaseline = errors.New("no baseline saved for this dataset")

// DriftRequest names the dataset and, optionally, the numeric fields to
// track. An empty Fields list means every numeric field.
type DriftRequest struct {
	RecordsPath string
	Fields      []string
	// Threshold is the relative mean shift that counts as drift. Nil
	// means stats.DefaultDriftThreshold; zero flags any shift.
	Threshold *float64
}

// FieldDrift is the drift of one field against its baseline.
type FieldDrift struct {
	Field         string  `json:"field"`
	ReferenceMean float64 `json:"reference_mean"`
	CurrentMean   float64 `json:"current_mean"`
	Ratio         float64 `json:"ratio"`
	Drifted       bool    `json:"drifted"`
	Error         string  `json:"error,omitempty"`
}

// DriftReport lists per-field drift in field order.
type DriftReport struct {
	Dataset   string       `json:"dataset"`
	Baseline  time.Time    `json:"baseline_created_at"`
	Threshold float64      `json:"threshold"`
	Fields    []FieldDrift `json:"fields"`
}

// Drifted reports whether any field drifted.
func (r *DriftReport) Drifted() bool {
	for _, f := range r.Fields {
		if f.Drifted {
			return true
		}
	}
	return false
}

// DriftService stores reference distributions and compares new batches
// against them.
type DriftService struct {
	source    domain.RecordSource
	baselines domain.BaselineStore
	logger    *slog.Logger
	now       func() time.Time
}

func NewDriftService(source domain.RecordSource, baselines domain.BaselineStore, logger *slog.Logger) *DriftService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DriftService{source: source, baselines: baselines, logger: logger, now: time.Now}
}

// SaveBaseline records the numeric samples of the dataset as the reference.
func (s *DriftService) SaveBaseline(ctx context.Context, req DriftRequest) (*domain.Baseline, error) {
	batch, err := s.load(ctx, req.RecordsPath)
	if err != nil {
		return nil, err
	}
	samples, _ := NumericSamples(batch, req.Fields...)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no numeric fields to baseline: %w", stats.ErrInvalidInput)
	}

	b := &domain.Baseline{
		Dataset:   datasetName(req.RecordsPath),
		CreatedAt: s.now().UTC(),
		Fields:    samples,
	}
	dir := filepath.Dir(req.RecordsPath)
	if err := s.baselines.Save(dir, b); err != nil {
		return nil, fmt.Errorf("saving baseline: %w", err)
	}
	s.logger.Info("baseline saved", "dataset", b.Dataset, "fields", len(samples))
	return b, nil
}

// Check compares the dataset against the saved baseline. A field whose
// baseline mean is zero, or that has no numeric values now, is reported
// with an Error instead of a ratio.
func (s *DriftService) Check(ctx context.Context, req DriftRequest) (*DriftReport, error) {
	dir := filepath.Dir(req.RecordsPath)
	b, err := s.baselines.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading baseline: %w", err)
	}
	if b == nil {
		return nil, ErrNoBaseline
	}

	batch, err := s.load(ctx, req.RecordsPath)
	if err != nil {
		return nil, err
	}

	threshold := stats.DefaultDriftThreshold
	if req.Threshold != nil {
		if *req.Threshold < 0 {
			return nil, fmt.Errorf("drift threshold %g is negative: %w", *req.Threshold, stats.ErrInvalidInput)
		}
		threshold = *req.Threshold
	}

	fields := req.Fields
	if len(fields) == 0 {
		for f := range b.Fields {
			fields = append(fields, f)
		}
		slices.Sort(fields)
	}

	current, _ := NumericSamples(batch, fields...)
	report := &DriftReport{
		Dataset:   b.Dataset,
		Baseline:  b.CreatedAt,
		Threshold: threshold,
	}
	for _, f := range fields {
		fd := FieldDrift{Field: f}
		ref, ok := b.Fields[f]
		if !ok {
			fd.Error = "field not in baseline"
			report.Fields = append(report.Fields, fd)
			continue
		}
		fd.ReferenceMean, _ = stats.Mean(ref)
		fd.CurrentMean, _ = stats.Mean(current[f])

		ratio, err := stats.DriftRatio(ref, current[f])
		if err != nil {
			fd.Error = err.Error()
		} else {
			fd.Ratio = ratio
			fd.Drifted = ratio > threshold
		}
		report.Fields = append(report.Fields, fd)
	}

	s.logger.Info("drift checked", "dataset", report.Dataset, "fields", len(report.Fields), "drifted", report.Drifted())
	return report, nil
}

func (s *DriftService) load(ctx context.Context, path string) (domain.Batch, error) {
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
