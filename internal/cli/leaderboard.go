// internal/cli/leaderboard.go
package arcx

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcx/internal/apiclient"
	"arcx/internal/metrics"
	"arcx/internal/prefs"
	"arcx/internal/puzzle"
)

var leaderboardFlags struct {
	dataset string
	models  []string
}

// leaderboardCmd ranks models on one dataset by attempted and overall
// solve rates.
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank models on a dataset by solve rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset := leaderboardFlags.dataset
		if dataset == "" {
			if last, ok := Prefs().Get(prefs.KeyLastDataset); ok {
				dataset = last
			} else {
				return fmt.Errorf("--dataset is required (no remembered dataset)")
			}
		}
		if len(leaderboardFlags.models) == 0 {
			return fmt.Errorf("--models requires at least one model name")
		}

		client := apiclient.New(GetConfig())
		perfs := make([]puzzle.ModelDatasetPerformance, 0, len(leaderboardFlags.models))
		for _, model := range leaderboardFlags.models {
			perf, err := client.ModelPerformance(cmd.Context(), model, dataset)
			if err != nil {
				Alert("could not fetch %s on %s: %v", model, dataset, err)
				return err
			}
			perfs = append(perfs, perf)
		}

		renderLeaderboard(dataset, metrics.Leaderboard(perfs))
		_ = Prefs().Set(prefs.KeyLastDataset, dataset)
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().StringVar(&leaderboardFlags.dataset, "dataset", "", "dataset tag (defaults to last used)")
	leaderboardCmd.Flags().StringSliceVar(&leaderboardFlags.models, "models", nil, "comma-separated model names to rank")

	rootCmd.AddCommand(leaderboardCmd)
}
