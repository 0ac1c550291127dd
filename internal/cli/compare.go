// internal/cli/compare.go
package arcx

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcx/internal/apiclient"
	"arcx/internal/metrics"
	"arcx/internal/prefs"
)

var compareDataset string

// compareCmd shows the head-to-head matrix for two models on one dataset.
var compareCmd = &cobra.Command{
	Use:   "compare <model1> <model2>",
	Short: "Compare two models puzzle by puzzle on a dataset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset := compareDataset
		if dataset == "" {
			if last, ok := Prefs().Get(prefs.KeyLastDataset); ok {
				dataset = last
			} else {
				return fmt.Errorf("--dataset is required (no remembered dataset)")
			}
		}

		client := apiclient.New(GetConfig())
		resp, err := client.CompareModels(cmd.Context(), args[0], args[1], dataset)
		if err != nil {
			Alert("comparison failed: %v", err)
			return err
		}

		renderComparison(metrics.Compare(resp.Model1, resp.Model2))

		r1, r2 := metrics.RatesFor(resp.Model1), metrics.RatesFor(resp.Model2)
		fmt.Printf("\n%s: %s attempted / %s overall\n", r1.ModelName,
			metrics.FormatRate(resp.Model1.Summary.Correct, r1.Attempted),
			metrics.FormatRate(resp.Model1.Summary.Correct, resp.Model1.Summary.TotalPuzzles))
		fmt.Printf("%s: %s attempted / %s overall\n", r2.ModelName,
			metrics.FormatRate(resp.Model2.Summary.Correct, r2.Attempted),
			metrics.FormatRate(resp.Model2.Summary.Correct, resp.Model2.Summary.TotalPuzzles))

		_ = Prefs().Set(prefs.KeyLastDataset, dataset)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareDataset, "dataset", "", "dataset tag (defaults to last used)")

	rootCmd.AddCommand(compareCmd)
}
