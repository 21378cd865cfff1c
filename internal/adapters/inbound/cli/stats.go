package cli

import (
	"fmt"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/records"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/tui"
	"github.com/abdidvp/dqscore/internal/application"
	"github.com/abdidvp/dqscore/internal/domain/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var (
		fields     []string
		factor     float64
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "stats <records>",
		Short: "Summarize numeric fields and flag outliers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}

			svc := application.NewProfileService(records.New(), opts.logger)
			rows, err := svc.Stats(cmd.Context(), path, factor, splitFields(fields)...)
			if err != nil {
				return fmt.Errorf("stats failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, rows)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderStats(rows))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Fields to summarize (default: every numeric field)")
	cmd.Flags().Float64Var(&factor, "k", stats.DefaultOutlierFactor, "Outlier factor in standard deviations")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
