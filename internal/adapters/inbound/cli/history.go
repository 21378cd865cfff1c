package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
)

// parentDir maps a records file to the directory holding its history and
// baseline. Directories are returned as is.
func parentDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		dataset    string
	)

	cmd := &cobra.Command{
		Use:   "history [records|dir]",
		Short: "Show report history and its trend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			abs, err := absPath(path)
			if err != nil {
				return err
			}

			entries, trend, err := newReportService(opts, nil).History(parentDir(abs), dataset)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, map[string]any{"entries": entries, "trend": trend})
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&dataset, "dataset", "", "Only show reports for this dataset")
	return cmd
}
