package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/scoring"
	"github.com/abdidvp/dqscore/internal/domain/stats"
	"github.com/abdidvp/dqscore/internal/domain/validation"
)

// ScoreRequest names the dataset to score.
type ScoreRequest struct {
	// RecordsPath is a .json, .jsonl or .csv file.
	RecordsPath string
	// ConfigPath is a .dqscore.yaml file or the directory holding it.
	// Empty means the directory of RecordsPath.
	ConfigPath string
	// Dataset overrides the dataset name from the config.
	Dataset string
	Workers int
	// SaveHistory appends a history entry next to the records.
	SaveHistory bool
}

// ReportService orchestrates the scoring pipeline:
// load config → load records → validate → score dimensions → weighted report.
type ReportService struct {
	configLoader domain.ConfigLoader
	source       domain.RecordSource
	history      domain.ReportHistory
	git          domain.GitInfo
	metrics      domain.MetricsRecorder
	logger       *slog.Logger
	now          func() time.Time
}

// NewReportService wires the pipeline. history, git and metrics may be nil.
func NewReportService(
	configLoader domain.ConfigLoader,
	source domain.RecordSource,
	history domain.ReportHistory,
	git domain.GitInfo,
	metrics domain.MetricsRecorder,
	logger *slog.Logger,
) *ReportService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ReportService{
		configLoader: configLoader,
		source:       source,
		history:      history,
		git:          git,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the wall clock used to stamp reports.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Score produces the quality report for one dataset.
func (s *ReportService) Score(ctx context.Context, req ScoreRequest) (*domain.QualityReport, error) {
	start := time.Now()

	in, err := loadInput(ctx, s.configLoader, s.source, s.logger, req.RecordsPath, req.ConfigPath)
	if err != nil {
		s.observeFailure("load")
		return nil, err
	}

	dataset := req.Dataset
	if dataset == "" {
		dataset = in.cfg.Dataset
	}
	if dataset == "" {
		dataset = datasetName(req.RecordsPath)
	}

	weights, err := in.cfg.WeightTable()
	if err != nil {
		s.observeFailure("load")
		return nil, fmt.Errorf("loading config: %w", err)
	}
	thresholds, err := in.cfg.ThresholdTable()
	if err != nil {
		s.observeFailure("load")
		return nil, fmt.Errorf("loading config: %w", err)
	}

	report, err := scoring.GenerateReport(in.batch, in.constraints, scoring.Options{
		Dataset:    dataset,
		Weights:    weights,
		Thresholds: thresholds,
		Context:    in.context(req.Workers),
		Now:        s.now,
	})
	if err != nil {
		s.observeFailure("score")
		return nil, fmt.Errorf("scoring %s: %w", dataset, err)
	}

	if s.git != nil {
		if hash, err := s.git.CommitHash(req.RecordsPath); err == nil {
			report.CommitHash = hash
		} else {
			s.logger.Debug("dataset is not under git", "path", req.RecordsPath, "err", err)
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveReport(report, time.Since(start))
	}

	if req.SaveHistory && s.history != nil {
		dir := filepath.Dir(req.RecordsPath)
		if err := s.history.Save(dir, domain.EntryFor(report)); err != nil {
			s.logger.Warn("saving report history", "dir", dir, "err", err)
		}
	}

	s.logger.Info("report generated",
		"dataset", dataset,
		"records", report.RecordCount,
		"overall", report.OverallScore,
		"grade", report.Grade,
		"elapsed", time.Since(start))
	return report, nil
}

// History returns the stored history for the dataset directory, narrowed
// to one dataset unless dataset is empty, with the trend of overall scores
// when at least two entries exist.
func (s *ReportService) History(dir, dataset string) ([]domain.ReportEntry, *stats.TrendMetrics, error) {
	if s.history == nil {
		return nil, nil, nil
	}
	entries, err := s.history.Load(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading history: %w", err)
	}
	if dataset != "" {
		entries = slices.DeleteFunc(entries, func(e domain.ReportEntry) bool { return e.Dataset != dataset })
	}
	series := make([]float64, len(entries))
	for i, e := range entries {
		series[i] = e.Overall
	}
	trend, err := stats.Trend(series)
	if err != nil {
		return entries, nil, nil
	}
	return entries, &trend, nil
}

func (s *ReportService) observeFailure(stage string) {
	if s.metrics != nil {
		s.metrics.ObserveFailure(stage)
	}
}

// input is a loaded config and batch, shared by every service.
type input struct {
	cfg         domain.QualityConfig
	constraints []domain.FieldConstraint
	batch       domain.Batch
	refTime     time.Time
}

func (in input) context(workers int) validation.Context {
	return validation.Context{
		ParentKeySets: in.cfg.KeySetValues(),
		ReferenceTime: in.refTime,
		Workers:       workers,
	}
}

func loadInput(
	ctx context.Context,
	loader domain.ConfigLoader,
	source domain.RecordSource,
	logger *slog.Logger,
	recordsPath, configPath string,
) (input, error) {
	if err := ctx.Err(); err != nil {
		return input{}, err
	}
	if configPath == "" {
		configPath = filepath.Dir(recordsPath)
	}

	cfg, err := loader.Load(configPath)
	if err != nil {
		return input{}, fmt.Errorf("loading config: %w", err)
	}
	constraints, err := cfg.FieldConstraints()
	if err != nil {
		return input{}, fmt.Errorf("loading config: %w", err)
	}
	refTime, err := cfg.ParsedReferenceTime()
	if err != nil {
		return input{}, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config loaded", "path", configPath, "constraints", len(constraints))

	if err := ctx.Err(); err != nil {
		return input{}, err
	}
	batch, err := source.Load(recordsPath)
	if err != nil {
		return input{}, fmt.Errorf("reading records: %w", err)
	}
	logger.Debug("records loaded", "path", recordsPath, "records", len(batch))

	return input{cfg: cfg, constraints: constraints, batch: batch, refTime: refTime}, nil
}

func datasetName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// DatasetResult is the outcome of scoring one dataset in a ScoreAll run.
type DatasetResult struct {
	Path   string
	Report *domain.QualityReport
	Err    error
}

// ScoreAll scores every dataset the scanner finds under root, in scan
// order. A dataset that fails is reported with its error and does not stop
// the others.
func (s *ReportService) ScoreAll(ctx context.Context, scanner domain.DatasetScanner, root string, tmpl ScoreRequest, exclude ...string) ([]DatasetResult, error) {
	paths, err := scanner.Scan(root, exclude...)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	s.logger.Debug("datasets found", "root", root, "count", len(paths))

	out := make([]DatasetResult, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		req := tmpl
		req.RecordsPath = p
		req.ConfigPath = ""
		report, err := s.Score(ctx, req)
		out = append(out, DatasetResult{Path: p, Report: report, Err: err})
	}
	return out, nil
}
