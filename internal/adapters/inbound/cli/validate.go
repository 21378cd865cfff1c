package cli

import (
	"fmt"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/config"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/records"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/tui"
	"github.com/abdidvp/dqscore/internal/application"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		configPath string
		workers    int
		jsonOutput bool
		failedOnly bool
		limit      int
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "validate <records>",
		Short: "Check records against their constraints",
		Long:  "Run every constraint in .dqscore.yaml against every record and list the violations.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}

			svc := application.NewValidateService(config.New(), records.New(), opts.logger)
			summary, err := svc.Validate(cmd.Context(), application.ValidateRequest{
				RecordsPath: path,
				ConfigPath:  configPath,
				Workers:     workers,
			})
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if jsonOutput {
				if failedOnly {
					summary.Results = summary.Failures()
				}
				if err := renderJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderValidation(summary, limit))
			}

			if strict && summary.Failed > 0 {
				return fmt.Errorf("%d constraint violations", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to .dqscore.yaml (default: next to the records)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel validation workers (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&failedOnly, "failed-only", false, "With --json, keep only failed results")
	cmd.Flags().IntVar(&limit, "limit", 5, "Violations shown per constraint (0 for all)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 1 on any violation")

	return cmd
}
