// internal/metrics/compare.go
package metrics

import (
	"sort"

	"arcx/internal/puzzle"
)

// Comparison buckets every puzzle of a dataset by how two models fared on
// it: both solved, both failed, one defeated the other, or neither tried.
type Comparison struct {
	Model1       string   `json:"model1"`
	Model2       string   `json:"model2"`
	Dataset      string   `json:"dataset"`
	BothCorrect  []string `json:"bothCorrect"`
	BothWrong    []string `json:"bothWrong"`
	OnlyModel1   []string `json:"onlyModel1"`
	OnlyModel2   []string `json:"onlyModel2"`
	NeitherTried []string `json:"neitherTried"`
}

// Compare builds the head-to-head matrix for two result sheets over the same
// dataset. Puzzle IDs inside each bucket are sorted so repeated runs over
// identical input produce identical output.
func Compare(a, b puzzle.ModelDatasetPerformance) Comparison {
	correctA := toSet(a.Correct)
	correctB := toSet(b.Correct)
	triedA := toSet(a.Correct, a.Incorrect)
	triedB := toSet(b.Correct, b.Incorrect)

	all := toSet(a.Correct, a.Incorrect, a.NotAttempted, b.Correct, b.Incorrect, b.NotAttempted)

	cmp := Comparison{
		Model1:  a.ModelName,
		Model2:  b.ModelName,
		Dataset: a.Dataset,
	}
	for id := range all {
		switch {
		case correctA[id] && correctB[id]:
			cmp.BothCorrect = append(cmp.BothCorrect, id)
		case correctA[id]:
			cmp.OnlyModel1 = append(cmp.OnlyModel1, id)
		case correctB[id]:
			cmp.OnlyModel2 = append(cmp.OnlyModel2, id)
		case triedA[id] || triedB[id]:
			cmp.BothWrong = append(cmp.BothWrong, id)
		default:
			cmp.NeitherTried = append(cmp.NeitherTried, id)
		}
	}

	for _, bucket := range [][]string{cmp.BothCorrect, cmp.BothWrong, cmp.OnlyModel1, cmp.OnlyModel2, cmp.NeitherTried} {
		sort.Strings(bucket)
	}
	return cmp
}

func toSet(lists ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range lists {
		for _, id := range list {
			set[id] = true
		}
	}
	return set
}
