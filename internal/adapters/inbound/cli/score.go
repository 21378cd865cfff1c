package cli

import (
	"fmt"
	"math"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/config"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/history"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/metrics"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/records"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/tui"
	"github.com/abdidvp/dqscore/internal/application"
	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/spf13/cobra"
)

type scoreFlags struct {
	configPath  string
	dataset     string
	workers     int
	jsonOutput  bool
	ciMode      bool
	minScore    float64
	badge       bool
	noHistory   bool
	metricsFile string
}

func (f *scoreFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to .dqscore.yaml (default: next to the records)")
	cmd.Flags().StringVar(&f.dataset, "dataset", "", "Dataset name (default: from config or file name)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Parallel validation workers (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "Do not append to report history")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file (textfile collector format)")
}

func newReportService(opts *rootOptions, recorder domain.MetricsRecorder) *application.ReportService {
	return application.NewReportService(
		config.New(),
		records.New(),
		history.New(),
		gitinfo.New(),
		recorder,
		opts.logger,
	)
}

func newScoreCmd(opts *rootOptions) *cobra.Command {
	var f scoreFlags

	cmd := &cobra.Command{
		Use:   "score <records>",
		Short: "Score a dataset's quality",
		Long:  "Validate a .json, .jsonl or .csv dataset against its .dqscore.yaml constraints and produce a weighted quality report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}

			recorder := metrics.NewRecorder(nil)
			svc := newReportService(opts, recorder)

			report, err := svc.Score(cmd.Context(), application.ScoreRequest{
				RecordsPath: path,
				ConfigPath:  f.configPath,
				Dataset:     f.dataset,
				Workers:     f.workers,
				SaveHistory: !f.noHistory,
			})

			if f.metricsFile != "" {
				if werr := recorder.WriteTextfile(f.metricsFile); werr != nil {
					opts.logger.Warn("writing metrics file", "path", f.metricsFile, "err", werr)
				}
			}
			if err != nil {
				return fmt.Errorf("scoring failed: %w", err)
			}

			switch {
			case f.jsonOutput:
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			case f.badge:
				renderBadge(cmd, report)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if f.ciMode && report.OverallScore < f.minScore {
				return fmt.Errorf("score %.1f is below minimum %.1f", report.OverallScore, f.minScore)
			}
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&f.ciMode, "ci", false, "CI mode: exit 1 if below --min")
	cmd.Flags().Float64Var(&f.minScore, "min", 0, "Minimum overall score for CI mode")
	cmd.Flags().BoolVar(&f.badge, "badge", false, "Output shields.io badge URL")

	return cmd
}

func renderBadge(cmd *cobra.Command, report *domain.QualityReport) {
	color := domain.BadgeColor(report.OverallScore)
	url := fmt.Sprintf("https://img.shields.io/badge/data%%20quality-%d%%2F100-%s", int(math.Round(report.OverallScore)), color)
	fmt.Fprintln(cmd.OutOrStdout(), url)
}
