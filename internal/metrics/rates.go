// internal/metrics/rates.go
// Package metrics derives success rates, leaderboards, and model comparisons
// from the read-only performance records served by the platform API.
package metrics

import (
	"fmt"

	"arcx/internal/puzzle"
)

// SuccessRate converts raw counts into a percentage. Zero attempts yields 0,
// never NaN or Inf, so untested rows render as 0.00% rather than poisoning
// downstream math.
func SuccessRate(correct, attempts int) float64 {
	if attempts <= 0 {
		return 0
	}
	return float64(correct) / float64(attempts) * 100
}

// FormatRate renders a rate for table output, marking zero-attempt rows as
// not applicable instead of a misleading 0.00%.
func FormatRate(correct, attempts int) string {
	if attempts <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", SuccessRate(correct, attempts))
}

// DatasetRates summarizes one model's result sheet for one dataset.
// AttemptedRate counts only puzzles the model actually tried;
// OverallRate counts the whole dataset, so skipped puzzles drag it down.
type DatasetRates struct {
	ModelName     string  `json:"modelName"`
	Dataset       string  `json:"dataset"`
	Attempted     int     `json:"attempted"`
	AttemptedRate float64 `json:"attemptedRate"`
	OverallRate   float64 `json:"overallRate"`
}

// RatesFor computes both success rates from a performance summary.
func RatesFor(p puzzle.ModelDatasetPerformance) DatasetRates {
	attempted := p.Summary.Correct + p.Summary.Incorrect
	return DatasetRates{
		ModelName:     p.ModelName,
		Dataset:       p.Dataset,
		Attempted:     attempted,
		AttemptedRate: SuccessRate(p.Summary.Correct, attempted),
		OverallRate:   SuccessRate(p.Summary.Correct, p.Summary.TotalPuzzles),
	}
}
