// internal/cli/browse.go
package arcx

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"arcx/internal/apiclient"
	"arcx/internal/prefs"
	"arcx/internal/puzzle"
	"arcx/internal/store"
)

var browseFlags struct {
	search         string
	explanation    string
	source         string
	maxGridSize    int
	gridConsistent string
	multiTest      string
	tier           string
	sortBy         string
	limit          int
	offline        bool
	save           bool
}

// browseCmd is the puzzle browser: fetch, filter, sort, print.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse puzzles with filters and sort strategies",
	Long: `Browse fetches the puzzle list from the platform API (or the local
snapshot with --offline), applies the selected filters, and prints the
puzzles under the chosen sort strategy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx := cmd.Context()

		records, err := fetchPuzzles(ctx, browseFlags.offline, browseFlags.save)
		if err != nil {
			Alert("could not load puzzles: %v", err)
			return err
		}

		sortBy := resolveSort(browseFlags.sortBy, cfg.DefaultSort)
		filtered := puzzle.FilterAndSort(records, browseFilterConfig(), sortBy)
		if browseFlags.limit > 0 && len(filtered) > browseFlags.limit {
			filtered = filtered[:browseFlags.limit]
		}

		renderPuzzleTable(filtered)
		_ = Prefs().Set(prefs.KeyLastSort, string(sortBy))
		return nil
	},
}

func browseFilterConfig() puzzle.FilterConfig {
	return puzzle.FilterConfig{
		Search:         browseFlags.search,
		Explanation:    puzzle.ExplanationState(browseFlags.explanation),
		Source:         browseFlags.source,
		MaxGridSize:    browseFlags.maxGridSize,
		GridConsistent: ternaryFlag(browseFlags.gridConsistent),
		MultiTest:      puzzle.MultiTest(browseFlags.multiTest),
		Tier:           puzzle.Tier(browseFlags.tier),
	}
}

// ternaryFlag maps the flag spelling onto the filter's ternary values.
func ternaryFlag(v string) puzzle.Ternary {
	switch v {
	case "true", "yes":
		return puzzle.Yes
	case "false", "no":
		return puzzle.No
	default:
		return puzzle.Any
	}
}

// resolveSort picks the sort strategy: explicit flag, then config default,
// then the last strategy this user browsed with, then hardest_first.
func resolveSort(flag, configDefault string) puzzle.Strategy {
	if flag != "" {
		return puzzle.Strategy(flag)
	}
	if configDefault != "" {
		return puzzle.Strategy(configDefault)
	}
	if last, ok := Prefs().Get(prefs.KeyLastSort); ok {
		return puzzle.Strategy(last)
	}
	return puzzle.SortHardestFirst
}

// fetchPuzzles loads records from the API or the local snapshot store, and
// refreshes the snapshot when asked to.
func fetchPuzzles(ctx context.Context, offline, save bool) ([]puzzle.PuzzleRecord, error) {
	cfg := GetConfig()

	if offline {
		s, err := store.Open(cfg.CacheFilePath())
		if err != nil {
			return nil, err
		}
		defer s.Close()
		records, err := s.LoadPuzzles()
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("snapshot store is empty; run without --offline first")
		}
		return records, nil
	}

	client := apiclient.New(cfg)
	records, err := client.ListPuzzles(ctx, apiclient.ListQuery{Limit: cfg.EffectivePageSize() * 100})
	if err != nil {
		return nil, err
	}

	if save {
		s, err := store.Open(cfg.CacheFilePath())
		if err != nil {
			return nil, err
		}
		defer s.Close()
		if err := s.SavePuzzles(records); err != nil {
			return nil, err
		}
		Notice("snapshot saved to %s", s.Path())
	}
	return records, nil
}

func init() {
	browseCmd.Flags().StringVar(&browseFlags.search, "search", "", "substring match on puzzle ID (case sensitive)")
	browseCmd.Flags().StringVar(&browseFlags.explanation, "explanation", "all", "explanation state: all, explained, unexplained")
	browseCmd.Flags().StringVar(&browseFlags.source, "source", "", "dataset tag, or all_evaluation for both eval sets")
	browseCmd.Flags().IntVar(&browseFlags.maxGridSize, "max-grid-size", 0, "maximum grid dimension (0 = any)")
	browseCmd.Flags().StringVar(&browseFlags.gridConsistent, "grid-consistent", "any", "grid size consistency: any, true, false")
	browseCmd.Flags().StringVar(&browseFlags.multiTest, "multi-test", "any", "test case count: any, single, multi")
	browseCmd.Flags().StringVar(&browseFlags.tier, "tier", "", "difficulty tier (e.g. unbeatable, very_hard, untested)")
	browseCmd.Flags().StringVar(&browseFlags.sortBy, "sort", "", "sort strategy (e.g. hardest_first, most_defeats)")
	browseCmd.Flags().IntVar(&browseFlags.limit, "limit", 0, "show at most this many puzzles (0 = all)")
	browseCmd.Flags().BoolVar(&browseFlags.offline, "offline", false, "read puzzles from the local snapshot store")
	browseCmd.Flags().BoolVar(&browseFlags.save, "save", false, "refresh the local snapshot store after fetching")

	rootCmd.AddCommand(browseCmd)
}
