package cli

import (
	"log/slog"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds the persistent flags and the logger built from them.
type rootOptions struct {
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:   "dqscore",
		Short: "Score the quality of your data",
		Long: "dqscore validates records against declarative constraints and scores them on seven " +
			"quality dimensions: completeness, accuracy, consistency, timeliness, validity, uniqueness and integrity.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScoreCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newSimilarityCmd())
	cmd.AddCommand(newDuplicatesCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newBaselineCmd(opts))
	cmd.AddCommand(newDriftCmd(opts))
	cmd.AddCommand(newScanCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
