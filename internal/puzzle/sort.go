// internal/puzzle/sort.go
package puzzle

import "sort"

// Strategy names one of the supported puzzle orderings.
type Strategy string

const (
	SortUnexplainedFirst  Strategy = "unexplained_first"
	SortProcessingTime    Strategy = "processing_time"
	SortConfidence        Strategy = "confidence"
	SortCost              Strategy = "cost"
	SortCreatedAt         Strategy = "created_at"
	SortLeastAnalysisData Strategy = "least_analysis_data"
	SortHardestFirst      Strategy = "hardest_first"
	SortEasiestFirst      Strategy = "easiest_first"
	SortMostDefeats       Strategy = "most_defeats"
)

// AllStrategies lists every named ordering for flag validation and help text.
var AllStrategies = []Strategy{
	SortUnexplainedFirst,
	SortProcessingTime,
	SortConfidence,
	SortCost,
	SortCreatedAt,
	SortLeastAnalysisData,
	SortHardestFirst,
	SortEasiestFirst,
	SortMostDefeats,
}

// accuracyOr returns the record's average accuracy, or fallback when the
// puzzle has no recorded explanations. hardest_first and easiest_first use
// opposite fallbacks on purpose: an untested puzzle sinks to the bottom of
// both views instead of dominating either.
func accuracyOr(r PuzzleRecord, fallback float64) float64 {
	if !r.Tested() {
		return fallback
	}
	return r.PerformanceData.AvgAccuracy
}

func wrongCountOf(r PuzzleRecord) int {
	if r.PerformanceData == nil {
		return 0
	}
	return r.PerformanceData.WrongCount
}

// analysisFieldCount counts the optional analysis attributes populated on a
// record. Sorting ascending on this surfaces puzzles with the thinnest
// stored analysis.
func analysisFieldCount(r PuzzleRecord) int {
	n := 0
	if r.PatternDescription != "" {
		n++
	}
	if r.SolvingStrategy != "" {
		n++
	}
	if r.Hints != "" {
		n++
	}
	if r.Confidence != 0 {
		n++
	}
	if r.EstimatedCost != 0 {
		n++
	}
	return n
}

// compare returns the primary-key comparison for the strategy: -1, 0, or +1
// already oriented in the strategy's direction.
func compare(a, b PuzzleRecord, s Strategy) int {
	switch s {
	case SortUnexplainedFirst:
		switch {
		case !a.HasExplanation && b.HasExplanation:
			return -1
		case a.HasExplanation && !b.HasExplanation:
			return 1
		}
		return 0
	case SortProcessingTime:
		return descInt(a.APIProcessingTimeMs, b.APIProcessingTimeMs)
	case SortConfidence:
		return descFloat(a.Confidence, b.Confidence)
	case SortCost:
		return descFloat(a.EstimatedCost, b.EstimatedCost)
	case SortCreatedAt:
		// ISO-8601 timestamps order correctly as plain strings.
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}
		return 0
	case SortLeastAnalysisData:
		return ascInt(analysisFieldCount(a), analysisFieldCount(b))
	case SortHardestFirst:
		return ascFloat(accuracyOr(a, 1), accuracyOr(b, 1))
	case SortEasiestFirst:
		return descFloat(accuracyOr(a, 0), accuracyOr(b, 0))
	case SortMostDefeats:
		return descInt(wrongCountOf(a), wrongCountOf(b))
	}
	return 0
}

func ascInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func descInt(a, b int) int { return ascInt(b, a) }

func ascFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func descFloat(a, b float64) int { return ascFloat(b, a) }

// Sort orders records under the named strategy, returning a new slice.
// Primary-key ties always break lexicographically on puzzle ID so repeated
// runs over identical input produce identical output. An unknown strategy
// preserves the input order.
func Sort(records []PuzzleRecord, s Strategy) []PuzzleRecord {
	out := make([]PuzzleRecord, len(records))
	copy(out, records)

	known := false
	for _, candidate := range AllStrategies {
		if candidate == s {
			known = true
			break
		}
	}
	if !known {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := compare(out[i], out[j], s); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}
