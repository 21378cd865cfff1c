package cli

import (
	"errors"
	"fmt"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/baseline"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/records"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/tui"
	"github.com/abdidvp/dqscore/internal/application"
	"github.com/abdidvp/dqscore/internal/domain/stats"
	"github.com/spf13/cobra"
)

func newDriftService(opts *rootOptions) *application.DriftService {
	return application.NewDriftService(records.New(), baseline.New(), opts.logger)
}

func newBaselineCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the reference distribution used by drift",
	}
	cmd.AddCommand(newBaselineSaveCmd(opts))
	cmd.AddCommand(newBaselineClearCmd())
	return cmd
}

func newBaselineSaveCmd(opts *rootOptions) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "save <records>",
		Short: "Store the numeric fields of a dataset as its baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}
			b, err := newDriftService(opts).SaveBaseline(cmd.Context(), application.DriftRequest{
				RecordsPath: path,
				Fields:      splitFields(fields),
			})
			if err != nil {
				return fmt.Errorf("saving baseline: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved baseline for %s (%d fields)\n", b.Dataset, len(b.Fields))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Fields to track (default: every numeric field)")
	return cmd
}

func newBaselineClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <records>",
		Short: "Remove the baseline stored next to a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}
			if err := baseline.New().Invalidate(parentDir(path)); err != nil {
				return fmt.Errorf("clearing baseline: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Baseline cleared")
			return nil
		},
	}
}

func newDriftCmd(opts *rootOptions) *cobra.Command {
	var (
		fields     []string
		threshold  float64
		jsonOutput bool
		ciMode     bool
	)

	cmd := &cobra.Command{
		Use:   "drift <records>",
		Short: "Compare a dataset against its baseline",
		Long:  "Report the relative mean shift of every baselined numeric field. Run `dqscore baseline save` first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}

			report, err := newDriftService(opts).Check(cmd.Context(), application.DriftRequest{
				RecordsPath: path,
				Fields:      splitFields(fields),
				Threshold:   &threshold,
			})
			if errors.Is(err, application.ErrNoBaseline) {
				return fmt.Errorf("%w (run `dqscore baseline save %s` first)", err, args[0])
			}
			if err != nil {
				return fmt.Errorf("drift check failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDrift(report))
			}

			if ciMode && report.Drifted() {
				return errors.New("distribution drift detected")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Fields to compare (default: every baselined field)")
	cmd.Flags().Float64Var(&threshold, "threshold", stats.DefaultDriftThreshold, "Relative mean shift that counts as drift")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 when any field drifted")

	return cmd
}
