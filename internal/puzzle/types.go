// internal/puzzle/types.go
// Package puzzle defines the ARC puzzle records shared across arcx and the
// filter/sort pipeline applied to them by the browse, cards, and analytics
// commands.
package puzzle

import "time"

// Source identifies the dataset a puzzle was published in.
type Source string

const (
	SourceARC1     Source = "ARC1"
	SourceARC1Eval Source = "ARC1-Eval"
	SourceARC2     Source = "ARC2"
	SourceARC2Eval Source = "ARC2-Eval"
	SourceARCHeavy Source = "ARC-Heavy"
	SourceConcept  Source = "ConceptARC"
)

// AllSources lists every known dataset tag in display order.
var AllSources = []Source{
	SourceARC1,
	SourceARC1Eval,
	SourceARC2,
	SourceARC2Eval,
	SourceARCHeavy,
	SourceConcept,
}

// PerformanceData aggregates the outcome of every stored model attempt
// against a single puzzle. AvgAccuracy carries no meaning while
// TotalExplanations is zero; callers must treat such puzzles as untested
// rather than as 0% or 100% solved.
type PerformanceData struct {
	AvgAccuracy       float64 `json:"avgAccuracy"`
	TotalExplanations int     `json:"totalExplanations"`
	WrongCount        int     `json:"wrongCount"`
}

// PuzzleRecord is the read-only snapshot of one puzzle as served by the
// platform API. The pipeline never mutates records; every view is recomputed
// from scratch on each filter change.
type PuzzleRecord struct {
	ID                 string           `json:"id"`
	Source             Source           `json:"source"`
	HasExplanation     bool             `json:"hasExplanation"`
	GridSize           int              `json:"gridSize"`
	GridSizeConsistent bool             `json:"gridSizeConsistent"`
	TestCaseCount      int              `json:"testCaseCount"`
	PerformanceData    *PerformanceData `json:"performanceData,omitempty"`

	// Per-explanation attributes used by sort strategies. Optional; the
	// zero value means the field was absent from the API payload.
	APIProcessingTimeMs int     `json:"apiProcessingTimeMs,omitempty"`
	Confidence          float64 `json:"confidence,omitempty"`
	EstimatedCost       float64 `json:"estimatedCost,omitempty"`
	CreatedAt           string  `json:"createdAt,omitempty"`
	PatternDescription  string  `json:"patternDescription,omitempty"`
	SolvingStrategy     string  `json:"solvingStrategy,omitempty"`
	Hints               string  `json:"hints,omitempty"`
}

// Tested reports whether at least one explanation has been recorded.
func (r PuzzleRecord) Tested() bool {
	return r.PerformanceData != nil && r.PerformanceData.TotalExplanations > 0
}

// Summary holds the per-dataset attempt counts for one model. The three
// counts partition TotalPuzzles.
type Summary struct {
	Correct      int `json:"correct"`
	Incorrect    int `json:"incorrect"`
	NotAttempted int `json:"notAttempted"`
	TotalPuzzles int `json:"totalPuzzles"`
}

// ModelDatasetPerformance is one model's result sheet for one dataset, as
// returned by the metrics API. The three ID slices partition the dataset's
// full puzzle-ID set.
type ModelDatasetPerformance struct {
	ModelName    string    `json:"modelName"`
	Dataset      string    `json:"dataset"`
	Summary      Summary   `json:"summary"`
	Correct      []string  `json:"correct"`
	Incorrect    []string  `json:"incorrect"`
	NotAttempted []string  `json:"notAttempted"`
	FetchedAtUTC time.Time `json:"fetchedAtUTC,omitempty"`
}
