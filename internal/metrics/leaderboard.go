// internal/metrics/leaderboard.go
package metrics

import (
	"sort"

	"arcx/internal/puzzle"
)

// LeaderboardRow is one ranked model on one dataset.
type LeaderboardRow struct {
	Rank  int          `json:"rank"`
	Rates DatasetRates `json:"rates"`
}

// Leaderboard ranks result sheets by attempted-success rate, breaking ties
// first on overall rate, then on model name so the ordering is stable across
// identical snapshots.
func Leaderboard(perfs []puzzle.ModelDatasetPerformance) []LeaderboardRow {
	rates := make([]DatasetRates, 0, len(perfs))
	for _, p := range perfs {
		rates = append(rates, RatesFor(p))
	}

	sort.SliceStable(rates, func(i, j int) bool {
		if rates[i].AttemptedRate != rates[j].AttemptedRate {
			return rates[i].AttemptedRate > rates[j].AttemptedRate
		}
		if rates[i].OverallRate != rates[j].OverallRate {
			return rates[i].OverallRate > rates[j].OverallRate
		}
		return rates[i].ModelName < rates[j].ModelName
	})

	rows := make([]LeaderboardRow, len(rates))
	for i, r := range rates {
		rows[i] = LeaderboardRow{Rank: i + 1, Rates: r}
	}
	return rows
}

// TierCounts tallies how many puzzles fall into each difficulty tier,
// feeding the trading-card summary header.
func TierCounts(records []puzzle.PuzzleRecord) map[puzzle.Tier]int {
	counts := make(map[puzzle.Tier]int)
	for _, r := range records {
		counts[puzzle.TierOf(r)]++
	}
	return counts
}
