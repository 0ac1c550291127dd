// internal/puzzle/sort_test.go
package puzzle

import (
	"reflect"
	"testing"
)

func TestSortHardestFirstScenario(t *testing.T) {
	t.Parallel()

	// Ties break on ID; a record without performance data counts as
	// accuracy 1 under hardest_first, so it lands at the easy end.
	records := []PuzzleRecord{
		{ID: "b", PerformanceData: perf(0.1, 2, 1)},
		{ID: "a", PerformanceData: perf(0.1, 2, 1)},
		{ID: "c"},
	}

	got := ids(Sort(records, SortHardestFirst))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("hardest_first = %v, want %v", got, want)
	}
}

func TestSortHardestAndEasiestDisagreeOnUntested(t *testing.T) {
	t.Parallel()

	// Untested puzzles default to accuracy 1 under hardest_first and to
	// accuracy 0 under easiest_first, so reversing one ordering does not
	// reproduce the other. This locks in current behavior.
	records := []PuzzleRecord{
		{ID: "solved", PerformanceData: perf(0.9, 4, 0)},
		{ID: "mystery"},
		{ID: "brutal", PerformanceData: perf(0.05, 4, 4)},
	}

	hardest := ids(Sort(records, SortHardestFirst))
	easiest := ids(Sort(records, SortEasiestFirst))

	wantHardest := []string{"brutal", "solved", "mystery"}
	if !reflect.DeepEqual(hardest, wantHardest) {
		t.Fatalf("hardest_first = %v, want %v", hardest, wantHardest)
	}
	wantEasiest := []string{"solved", "brutal", "mystery"}
	if !reflect.DeepEqual(easiest, wantEasiest) {
		t.Fatalf("easiest_first = %v, want %v", easiest, wantEasiest)
	}

	reversed := make([]string, len(hardest))
	for i, id := range hardest {
		reversed[len(hardest)-1-i] = id
	}
	if reflect.DeepEqual(reversed, easiest) {
		t.Fatalf("reversed hardest_first unexpectedly equals easiest_first: %v", easiest)
	}
}

func TestSortStrategies(t *testing.T) {
	t.Parallel()

	records := []PuzzleRecord{
		{
			ID: "p-old", HasExplanation: true, APIProcessingTimeMs: 900,
			Confidence: 0.4, EstimatedCost: 0.002, CreatedAt: "2025-01-01T00:00:00Z",
			PatternDescription: "rotation", SolvingStrategy: "mirror", Hints: "corners",
			PerformanceData: perf(0.5, 10, 5),
		},
		{
			ID: "p-new", HasExplanation: true, APIProcessingTimeMs: 1500,
			Confidence: 0.9, EstimatedCost: 0.010, CreatedAt: "2025-06-01T00:00:00Z",
			PerformanceData: perf(0.8, 10, 2),
		},
		{
			ID: "p-bare", CreatedAt: "2025-03-01T00:00:00Z",
		},
	}

	tests := []struct {
		strategy Strategy
		want     []string
	}{
		{SortUnexplainedFirst, []string{"p-bare", "p-new", "p-old"}},
		{SortProcessingTime, []string{"p-new", "p-old", "p-bare"}},
		{SortConfidence, []string{"p-new", "p-old", "p-bare"}},
		{SortCost, []string{"p-new", "p-old", "p-bare"}},
		{SortCreatedAt, []string{"p-new", "p-bare", "p-old"}},
		{SortLeastAnalysisData, []string{"p-bare", "p-new", "p-old"}},
		{SortMostDefeats, []string{"p-old", "p-new", "p-bare"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.strategy), func(t *testing.T) {
			t.Parallel()
			got := ids(Sort(records, tt.strategy))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Sort(%s) = %v, want %v", tt.strategy, got, tt.want)
			}
		})
	}
}

func TestSortIsIdempotent(t *testing.T) {
	t.Parallel()

	records := []PuzzleRecord{
		{ID: "d", PerformanceData: perf(0.3, 3, 2)},
		{ID: "a"},
		{ID: "c", PerformanceData: perf(0.3, 3, 1)},
		{ID: "b", PerformanceData: perf(0.9, 3, 0)},
	}

	for _, s := range AllStrategies {
		once := Sort(records, s)
		twice := Sort(once, s)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Fatalf("strategy %s not idempotent: first %v then %v", s, ids(once), ids(twice))
		}
	}
}

func TestSortUnknownStrategyPreservesOrder(t *testing.T) {
	t.Parallel()

	records := []PuzzleRecord{{ID: "z"}, {ID: "a"}, {ID: "m"}}
	got := ids(Sort(records, Strategy("bogus")))
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unknown strategy reordered records: %v", got)
	}
}

func TestFilterAndSortEmptyConfigIsPermutation(t *testing.T) {
	t.Parallel()

	records := []PuzzleRecord{
		{ID: "c", PerformanceData: perf(0.2, 2, 1)},
		{ID: "a"},
		{ID: "b", PerformanceData: perf(0.6, 4, 1)},
	}

	for _, s := range AllStrategies {
		got := FilterAndSort(records, FilterConfig{}, s)
		if len(got) != len(records) {
			t.Fatalf("strategy %s dropped records: got %d want %d", s, len(got), len(records))
		}
		seen := map[string]int{}
		for _, r := range got {
			seen[r.ID]++
		}
		for _, r := range records {
			if seen[r.ID] != 1 {
				t.Fatalf("strategy %s output is not a permutation: %v", s, ids(got))
			}
		}
	}
}
