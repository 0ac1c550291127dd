// internal/puzzle/filter.go
package puzzle

import "strings"

// Ternary selects between "no restriction" and a required boolean value.
type Ternary string

const (
	Any Ternary = "any"
	Yes Ternary = "true"
	No  Ternary = "false"
)

// ExplanationState filters on whether any model has explained the puzzle.
type ExplanationState string

const (
	ExplanationAll         ExplanationState = "all"
	ExplanationExplained   ExplanationState = "explained"
	ExplanationUnexplained ExplanationState = "unexplained"
)

// MultiTest filters on the number of test cases a puzzle carries.
type MultiTest string

const (
	MultiTestAny    MultiTest = "any"
	MultiTestSingle MultiTest = "single"
	MultiTestMulti  MultiTest = "multi"
)

// SourceAllEvaluation is the composite dataset filter matching both
// evaluation sets (ARC1-Eval and ARC2-Eval).
const SourceAllEvaluation = "all_evaluation"

// FilterConfig is the full set of predicates a view can activate. The zero
// value restricts nothing: every unset field means "no filter," so an empty
// config passed to FilterAndSort is the identity filter, never an empty
// result set.
type FilterConfig struct {
	// Search matches by case-sensitive substring containment in the
	// puzzle ID. Case sensitivity is deliberate; it mirrors how puzzle
	// IDs are entered and displayed.
	Search string

	Explanation ExplanationState

	// Source is an exact dataset tag or SourceAllEvaluation.
	Source string

	// MaxGridSize caps the puzzle grid dimension when > 0.
	MaxGridSize int

	GridConsistent Ternary
	MultiTest      MultiTest

	// Tier restricts to one difficulty bucket. Records without
	// performance data classify as untested, never dropped or faulted.
	Tier Tier
}

// Match reports whether the record satisfies every active predicate.
func (f FilterConfig) Match(r PuzzleRecord) bool {
	if f.Search != "" && !strings.Contains(r.ID, f.Search) {
		return false
	}
	switch f.Explanation {
	case ExplanationExplained:
		if !r.HasExplanation {
			return false
		}
	case ExplanationUnexplained:
		if r.HasExplanation {
			return false
		}
	}
	if f.Source != "" && f.Source != "all" {
		if f.Source == SourceAllEvaluation {
			if r.Source != SourceARC1Eval && r.Source != SourceARC2Eval {
				return false
			}
		} else if string(r.Source) != f.Source {
			return false
		}
	}
	if f.MaxGridSize > 0 && r.GridSize > f.MaxGridSize {
		return false
	}
	switch f.GridConsistent {
	case Yes:
		if !r.GridSizeConsistent {
			return false
		}
	case No:
		if r.GridSizeConsistent {
			return false
		}
	}
	switch f.MultiTest {
	case MultiTestSingle:
		if r.TestCaseCount > 1 {
			return false
		}
	case MultiTestMulti:
		if r.TestCaseCount <= 1 {
			return false
		}
	}
	if f.Tier != "" && TierOf(r) != f.Tier {
		return false
	}
	return true
}

// Filter returns the sublist of records satisfying every active predicate.
// The input slice is never modified.
func Filter(records []PuzzleRecord, f FilterConfig) []PuzzleRecord {
	out := make([]PuzzleRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterAndSort is the pipeline entry point shared by every puzzle view:
// filter, then stable-sort under the named strategy. An empty config and
// unknown strategy together make it the identity transform (modulo copying).
func FilterAndSort(records []PuzzleRecord, f FilterConfig, sortBy Strategy) []PuzzleRecord {
	return Sort(Filter(records, f), sortBy)
}
