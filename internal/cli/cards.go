// internal/cli/cards.go
package arcx

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcx/internal/metrics"
	"arcx/internal/puzzle"
)

var cardsFlags struct {
	source  string
	tier    string
	offline bool
}

// cardsCmd is the trading-card view: puzzles grouped by difficulty tier.
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Show puzzles grouped by difficulty tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := fetchPuzzles(cmd.Context(), cardsFlags.offline, false)
		if err != nil {
			Alert("could not load puzzles: %v", err)
			return err
		}

		filtered := puzzle.FilterAndSort(records, puzzle.FilterConfig{
			Source: cardsFlags.source,
			Tier:   puzzle.Tier(cardsFlags.tier),
		}, puzzle.SortHardestFirst)

		counts := metrics.TierCounts(filtered)
		fmt.Println(headerStyle.Render(fmt.Sprintf(
			"%d unbeatable · %d always solved · %d untested of %d puzzles\n",
			counts[puzzle.TierUnbeatable], counts[puzzle.TierAlwaysSolved],
			counts[puzzle.TierUntested], len(filtered))))

		renderTierCards(filtered)
		return nil
	},
}

func init() {
	cardsCmd.Flags().StringVar(&cardsFlags.source, "source", "", "dataset tag, or all_evaluation for both eval sets")
	cardsCmd.Flags().StringVar(&cardsFlags.tier, "tier", "", "show a single difficulty tier")
	cardsCmd.Flags().BoolVar(&cardsFlags.offline, "offline", false, "read puzzles from the local snapshot store")

	rootCmd.AddCommand(cardsCmd)
}
