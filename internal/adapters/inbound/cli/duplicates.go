package cli

import (
	"fmt"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/records"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/tui"
	"github.com/abdidvp/dqscore/internal/application"
	"github.com/abdidvp/dqscore/internal/domain/similarity"
	"github.com/spf13/cobra"
)

func newDuplicatesCmd(opts *rootOptions) *cobra.Command {
	var (
		field      string
		threshold  float64
		metricName string
		ignore     []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "duplicates <records>",
		Short: "Find exact and near duplicate records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}
			metric, err := similarity.ParseMetric(metricName)
			if err != nil {
				return err
			}

			svc := application.NewProfileService(records.New(), opts.logger)
			report, err := svc.Duplicates(cmd.Context(), application.DuplicateRequest{
				RecordsPath: path,
				Field:       field,
				Threshold:   threshold,
				Metric:      metric,
				Ignore:      splitFields(ignore),
			})
			if err != nil {
				return fmt.Errorf("duplicate detection failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDuplicates(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Field compared for near duplicates")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.9, "Minimum similarity of a near duplicate")
	cmd.Flags().StringVar(&metricName, "metric", "jaro-winkler", "Metric (jaro-winkler, levenshtein, jaccard)")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "Fields left out of exact comparison")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
