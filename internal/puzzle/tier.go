// internal/puzzle/tier.go
package puzzle

// Tier labels a puzzle's difficulty from the models' perspective, bucketed
// by average solve rate.
type Tier string

const (
	TierUnbeatable   Tier = "unbeatable"
	TierVeryHard     Tier = "very_hard"
	TierHard         Tier = "hard"
	TierMedium       Tier = "medium"
	TierEasy         Tier = "easy"
	TierVeryEasy     Tier = "very_easy"
	TierAlwaysSolved Tier = "always_solved"
	TierUntested     Tier = "untested"
)

// TierOf buckets a record's average accuracy into a named difficulty tier.
// Interior buckets are lower-exclusive, upper-inclusive; the two terminal
// buckets require exactly 0% or exactly 100%. A record with no recorded
// explanations is always untested, whatever its stored accuracy value.
func TierOf(r PuzzleRecord) Tier {
	if !r.Tested() {
		return TierUntested
	}
	pct := r.PerformanceData.AvgAccuracy * 100
	switch {
	case pct == 0:
		return TierUnbeatable
	case pct == 100:
		return TierAlwaysSolved
	case pct <= 20:
		return TierVeryHard
	case pct <= 40:
		return TierHard
	case pct <= 60:
		return TierMedium
	case pct <= 80:
		return TierEasy
	default:
		return TierVeryEasy
	}
}
