package cli

import (
	"fmt"

	"github.com/abdidvp/dqscore/internal/domain/similarity"
	"github.com/spf13/cobra"
)

func newSimilarityCmd() *cobra.Command {
	var (
		metricName string
		all        bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "similarity <a> <b>",
		Short: "Compare two strings",
		Long:  "Score how similar two strings are, in [0,1], after trimming and lowercasing both.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := similarity.Metrics
			if !all {
				m, err := similarity.ParseMetric(metricName)
				if err != nil {
					return err
				}
				metrics = []similarity.Metric{m}
			}

			scores := make(map[similarity.Metric]float64, len(metrics))
			for _, m := range metrics {
				scores[m] = similarity.Compare(m, args[0], args[1])
			}

			if jsonOutput {
				return renderJSON(cmd, scores)
			}
			for _, m := range metrics {
				fmt.Fprintf(cmd.OutOrStdout(), "%-13s %.4f\n", m, scores[m])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metricName, "metric", "jaro-winkler", "Metric (jaro-winkler, levenshtein, jaccard)")
	cmd.Flags().BoolVar(&all, "all", false, "Score with every metric")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output scores as JSON")

	return cmd
}
