// internal/metrics/rates_test.go
package metrics

import (
	"math"
	"testing"

	"arcx/internal/puzzle"
)

func TestSuccessRateZeroAttempts(t *testing.T) {
	t.Parallel()

	got := SuccessRate(0, 0)
	if got != 0 {
		t.Fatalf("SuccessRate(0,0) = %v, want 0", got)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("SuccessRate(0,0) produced a non-finite value: %v", got)
	}
}

func TestSuccessRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		correct  int
		attempts int
		want     float64
	}{
		{name: "three of four", correct: 3, attempts: 4, want: 75},
		{name: "all correct", correct: 5, attempts: 5, want: 100},
		{name: "none correct", correct: 0, attempts: 8, want: 0},
		{name: "negative attempts treated as untested", correct: 1, attempts: -1, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SuccessRate(tt.correct, tt.attempts); got != tt.want {
				t.Fatalf("SuccessRate(%d,%d) = %v, want %v", tt.correct, tt.attempts, got, tt.want)
			}
		})
	}
}

func TestFormatRate(t *testing.T) {
	t.Parallel()

	if got := FormatRate(0, 0); got != "N/A" {
		t.Fatalf("FormatRate(0,0) = %q, want N/A", got)
	}
	if got := FormatRate(3, 4); got != "75.00%" {
		t.Fatalf("FormatRate(3,4) = %q, want 75.00%%", got)
	}
}

func TestRatesForSummaryScenario(t *testing.T) {
	t.Parallel()

	// 3 correct, 1 incorrect, 10 total: 75% of attempted, 30% overall.
	p := puzzle.ModelDatasetPerformance{
		ModelName: "gpt-x",
		Dataset:   "ARC2-Eval",
		Summary:   puzzle.Summary{Correct: 3, Incorrect: 1, NotAttempted: 6, TotalPuzzles: 10},
	}

	got := RatesFor(p)
	if got.Attempted != 4 {
		t.Fatalf("Attempted = %d, want 4", got.Attempted)
	}
	if got.AttemptedRate != 75 {
		t.Fatalf("AttemptedRate = %v, want 75", got.AttemptedRate)
	}
	if got.OverallRate != 30 {
		t.Fatalf("OverallRate = %v, want 30", got.OverallRate)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	t.Parallel()

	perfs := []puzzle.ModelDatasetPerformance{
		{ModelName: "m-low", Dataset: "ARC1", Summary: puzzle.Summary{Correct: 1, Incorrect: 3, NotAttempted: 0, TotalPuzzles: 4}},
		{ModelName: "m-best", Dataset: "ARC1", Summary: puzzle.Summary{Correct: 4, Incorrect: 0, NotAttempted: 0, TotalPuzzles: 4}},
		{ModelName: "m-tie-b", Dataset: "ARC1", Summary: puzzle.Summary{Correct: 2, Incorrect: 2, NotAttempted: 0, TotalPuzzles: 4}},
		{ModelName: "m-tie-a", Dataset: "ARC1", Summary: puzzle.Summary{Correct: 2, Incorrect: 2, NotAttempted: 0, TotalPuzzles: 4}},
	}

	rows := Leaderboard(perfs)
	want := []string{"m-best", "m-tie-a", "m-tie-b", "m-low"}
	for i, row := range rows {
		if row.Rates.ModelName != want[i] {
			t.Fatalf("rank %d = %s, want %s", i+1, row.Rates.ModelName, want[i])
		}
		if row.Rank != i+1 {
			t.Fatalf("rank field = %d, want %d", row.Rank, i+1)
		}
	}
}

func TestCompareBuckets(t *testing.T) {
	t.Parallel()

	a := puzzle.ModelDatasetPerformance{
		ModelName:    "m1",
		Dataset:      "ARC2",
		Correct:      []string{"p1", "p2"},
		Incorrect:    []string{"p3"},
		NotAttempted: []string{"p4", "p5"},
	}
	b := puzzle.ModelDatasetPerformance{
		ModelName:    "m2",
		Dataset:      "ARC2",
		Correct:      []string{"p2", "p3"},
		Incorrect:    []string{"p1"},
		NotAttempted: []string{"p4", "p5"},
	}

	got := Compare(a, b)

	checks := []struct {
		name   string
		bucket []string
		want   []string
	}{
		{"both correct", got.BothCorrect, []string{"p2"}},
		{"only model1", got.OnlyModel1, []string{"p1"}},
		{"only model2", got.OnlyModel2, []string{"p3"}},
		{"neither tried", got.NeitherTried, []string{"p4", "p5"}},
	}
	for _, c := range checks {
		if len(c.bucket) != len(c.want) {
			t.Fatalf("%s = %v, want %v", c.name, c.bucket, c.want)
		}
		for i := range c.want {
			if c.bucket[i] != c.want[i] {
				t.Fatalf("%s = %v, want %v", c.name, c.bucket, c.want)
			}
		}
	}
	if len(got.BothWrong) != 0 {
		t.Fatalf("both wrong = %v, want empty", got.BothWrong)
	}
}

func TestTierCounts(t *testing.T) {
	t.Parallel()

	records := []puzzle.PuzzleRecord{
		{ID: "a", PerformanceData: &puzzle.PerformanceData{AvgAccuracy: 0, TotalExplanations: 2, WrongCount: 2}},
		{ID: "b", PerformanceData: &puzzle.PerformanceData{AvgAccuracy: 1, TotalExplanations: 2}},
		{ID: "c"},
		{ID: "d"},
	}

	counts := TierCounts(records)
	if counts[puzzle.TierUnbeatable] != 1 || counts[puzzle.TierAlwaysSolved] != 1 || counts[puzzle.TierUntested] != 2 {
		t.Fatalf("unexpected tier counts: %v", counts)
	}
}
