package cli

import (
	"errors"
	"fmt"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/metrics"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/scanner"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/tui"
	"github.com/abdidvp/dqscore/internal/application"
	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/spf13/cobra"
)

type scanEntry struct {
	Path   string                `json:"path"`
	Score  float64               `json:"overall_score"`
	Error  string                `json:"error,omitempty"`
	Report *domain.QualityReport `json:"report,omitempty"`
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	var (
		f       scoreFlags
		exclude []string
		ciMode  bool
	)

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Score every configured dataset under a directory",
		Long:  "Walk a directory tree and score each .json, .jsonl or .csv file that sits next to a .dqscore.yaml.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			root, err := absPath(dir)
			if err != nil {
				return err
			}

			recorder := metrics.NewRecorder(nil)
			results, err := newReportService(opts, recorder).ScoreAll(cmd.Context(), scanner.New(), root,
				application.ScoreRequest{Workers: f.workers, SaveHistory: !f.noHistory},
				splitFields(exclude)...)
			if err != nil {
				return err
			}
			if f.metricsFile != "" {
				if err := recorder.WriteTextfile(f.metricsFile); err != nil {
					opts.logger.Warn("writing metrics file", "path", f.metricsFile, "err", err)
				}
			}

			if f.jsonOutput {
				entries := make([]scanEntry, len(results))
				for i, r := range results {
					entries[i] = scanEntry{Path: r.Path}
					if r.Err != nil {
						entries[i].Error = r.Err.Error()
						continue
					}
					entries[i].Report = r.Report
					entries[i].Score = r.Report.OverallScore
				}
				if err := renderJSON(cmd, entries); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(root, results))
			}

			var failed int
			for _, r := range results {
				if r.Err != nil || (ciMode && r.Report.OverallScore < f.minScore) {
					failed++
				}
			}
			if failed > 0 && ciMode {
				return fmt.Errorf("%d of %d datasets failed", failed, len(results))
			}
			if failed > 0 {
				return errors.New("some datasets could not be scored")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&f.workers, "workers", 0, "Parallel validation workers (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "Do not append to report history")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file (textfile collector format)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directory names to skip")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any dataset is below --min")
	cmd.Flags().Float64Var(&f.minScore, "min", 0, "Minimum overall score for CI mode")

	return cmd
}
