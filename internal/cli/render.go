// internal/cli/render.go
package arcx

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arcx/internal/metrics"
	"arcx/internal/puzzle"
	"arcx/internal/util"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	solvedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	unsolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const idColumnWidth = 24

// renderPuzzleTable prints one row per record: ID, source, explanation
// state, grid shape, and difficulty tier.
func renderPuzzleTable(records []puzzle.PuzzleRecord) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s %-10s %-11s %-6s %-6s %s",
		util.PadRight("PUZZLE", idColumnWidth), "SOURCE", "EXPLAINED", "GRID", "TESTS", "TIER")))

	for _, r := range records {
		explained := "no"
		if r.HasExplanation {
			explained = "yes"
		}
		grid := fmt.Sprintf("%d", r.GridSize)
		if !r.GridSizeConsistent {
			grid += "*"
		}

		id := util.PadRight(util.TruncateRunes(r.ID, idColumnWidth-1), idColumnWidth)
		fmt.Printf("%s %-10s %-11s %-6s %-6d %s\n",
			idStyle.Render(id), r.Source, explained, grid, r.TestCaseCount, renderTier(r))
	}

	fmt.Println(dimStyle.Render(fmt.Sprintf("\n%d puzzles (* = inconsistent grid sizes)", len(records))))
}

// renderTier colors the difficulty tier with its solve rate when tested.
func renderTier(r puzzle.PuzzleRecord) string {
	tier := puzzle.TierOf(r)
	if tier == puzzle.TierUntested {
		return dimStyle.Render(string(tier))
	}
	label := fmt.Sprintf("%s (%.0f%%)", tier, r.PerformanceData.AvgAccuracy*100)
	switch tier {
	case puzzle.TierAlwaysSolved, puzzle.TierVeryEasy, puzzle.TierEasy:
		return solvedStyle.Render(label)
	case puzzle.TierUnbeatable, puzzle.TierVeryHard:
		return unsolvedStyle.Render(label)
	default:
		return label
	}
}

// renderTierCards prints the trading-card view: tier headings with the
// puzzles that fall in each.
func renderTierCards(records []puzzle.PuzzleRecord) {
	order := []puzzle.Tier{
		puzzle.TierUnbeatable, puzzle.TierVeryHard, puzzle.TierHard,
		puzzle.TierMedium, puzzle.TierEasy, puzzle.TierVeryEasy,
		puzzle.TierAlwaysSolved, puzzle.TierUntested,
	}

	byTier := make(map[puzzle.Tier][]puzzle.PuzzleRecord)
	for _, r := range records {
		t := puzzle.TierOf(r)
		byTier[t] = append(byTier[t], r)
	}

	for _, tier := range order {
		bucket := byTier[tier]
		if len(bucket) == 0 {
			continue
		}
		fmt.Println(headerStyle.Render(fmt.Sprintf("%s — %d puzzles", tier, len(bucket))))
		for _, r := range bucket {
			line := "  " + idStyle.Render(r.ID)
			if r.Tested() {
				line += dimStyle.Render(fmt.Sprintf("  %d attempts, %d defeats",
					r.PerformanceData.TotalExplanations, r.PerformanceData.WrongCount))
			}
			fmt.Println(line)
		}
		fmt.Println()
	}
}

// renderLeaderboard prints ranked model rows for one dataset.
func renderLeaderboard(dataset string, rows []metrics.LeaderboardRow) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Leaderboard — %s", dataset)))
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-5s %-32s %-10s %-12s %s",
		"RANK", "MODEL", "ATTEMPTED", "SOLVE RATE", "OVERALL")))

	for _, row := range rows {
		r := row.Rates
		fmt.Printf("%-5d %-32s %-10d %-12s %s\n",
			row.Rank,
			util.TruncateRunes(r.ModelName, 31),
			r.Attempted,
			fmt.Sprintf("%.2f%%", r.AttemptedRate),
			fmt.Sprintf("%.2f%%", r.OverallRate))
	}
}

// renderComparison prints the head-to-head buckets for two models.
func renderComparison(cmp metrics.Comparison) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%s vs %s — %s", cmp.Model1, cmp.Model2, cmp.Dataset)))

	sections := []struct {
		label string
		ids   []string
		style lipgloss.Style
	}{
		{"both correct", cmp.BothCorrect, solvedStyle},
		{fmt.Sprintf("only %s", cmp.Model1), cmp.OnlyModel1, idStyle},
		{fmt.Sprintf("only %s", cmp.Model2), cmp.OnlyModel2, idStyle},
		{"both wrong", cmp.BothWrong, unsolvedStyle},
		{"neither attempted", cmp.NeitherTried, dimStyle},
	}

	for _, s := range sections {
		fmt.Printf("%s (%d)\n", s.style.Render(s.label), len(s.ids))
		if len(s.ids) > 0 {
			fmt.Println("  " + dimStyle.Render(strings.Join(s.ids, ", ")))
		}
	}
}
