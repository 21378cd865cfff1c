package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/validation"
)

// ValidateRequest names the dataset to validate.
type ValidateRequest struct {
	RecordsPath string
	ConfigPath  string
	Workers     int
}

// ValidationSummary is every result of a validation run with its tallies.
type ValidationSummary struct {
	Dataset string                    `json:"dataset"`
	Records int                       `json:"records"`
	Passed  int                       `json:"passed"`
	Failed  int                       `json:"failed"`
	Skipped int                       `json:"skipped"`
	Results []domain.ValidationResult `json:"results"`
}

// Failures returns the failed results in run order.
func (s *ValidationSummary) Failures() []domain.ValidationResult {
	var out []domain.ValidationResult
	for _, r := range s.Results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// ValidateService runs the constraints of a dataset without scoring.
type ValidateService struct {
	configLoader domain.ConfigLoader
	source       domain.RecordSource
	logger       *slog.Logger
}

func NewValidateService(configLoader domain.ConfigLoader, source domain.RecordSource, logger *slog.Logger) *ValidateService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ValidateService{configLoader: configLoader, source: source, logger: logger}
}

// Validate evaluates every constraint against every record.
func (s *ValidateService) Validate(ctx context.Context, req ValidateRequest) (*ValidationSummary, error) {
	in, err := loadInput(ctx, s.configLoader, s.source, s.logger, req.RecordsPath, req.ConfigPath)
	if err != nil {
		return nil, err
	}
	if len(in.batch) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(in.constraints) == 0 {
		return nil, &domain.ConfigError{Field: "constraints", Reason: "no constraints declared"}
	}

	vctx := in.context(req.Workers)
	results, err := validation.ValidateBatch(in.batch, in.constraints, vctx)
	if err != nil {
		return nil, fmt.Errorf("validating records: %w", err)
	}

	dataset := in.cfg.Dataset
	if dataset == "" {
		dataset = datasetName(req.RecordsPath)
	}
	summary := &ValidationSummary{Dataset: dataset, Records: len(in.batch), Results: results}
	for _, r := range results {
		switch {
		case r.Skipped:
			summary.Skipped++
		case r.Passed:
			summary.Passed++
		default:
			summary.Failed++
		}
	}

	s.logger.Info("validation finished",
		"dataset", dataset, "passed", summary.Passed, "failed", summary.Failed, "skipped", summary.Skipped)
	return summary, nil
}
