package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/config"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/metrics"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/tui"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/watcher"
	"github.com/abdidvp/dqscore/internal/application"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		f        scoreFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <records>",
		Short: "Re-score a dataset whenever it or its config changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := absPath(args[0])
			if err != nil {
				return err
			}
			cfgFile := config.Resolve(parentDir(path))
			if f.configPath != "" {
				cfgFile = config.Resolve(f.configPath)
			}

			recorder := metrics.NewRecorder(nil)
			svc := newReportService(opts, recorder)
			req := application.ScoreRequest{
				RecordsPath: path,
				ConfigPath:  f.configPath,
				Dataset:     f.dataset,
				Workers:     f.workers,
				SaveHistory: !f.noHistory,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			rescore := func() error {
				report, err := svc.Score(ctx, req)
				if f.metricsFile != "" {
					if werr := recorder.WriteTextfile(f.metricsFile); werr != nil {
						opts.logger.Warn("writing metrics file", "path", f.metricsFile, "err", werr)
					}
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "scoring failed: %v\n", err)
					return err
				}
				if f.jsonOutput {
					return renderJSON(cmd, report)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
				return nil
			}

			_ = rescore()

			fw, err := watcher.New([]string{path, cfgFile}, debounce, opts.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", args[0])
			return fw.Watch(ctx, rescore)
		},
	}

	f.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before re-scoring")

	return cmd
}
