// internal/dataset/loader_test.go
package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"arcx/internal/puzzle"
)

const consistentTask = `{
	"train": [
		{"input": [[0,1],[1,0]], "output": [[1,0],[0,1]]}
	],
	"test": [
		{"input": [[0,0],[1,1]], "output": [[1,1],[0,0]]}
	]
}`

const growingTask = `{
	"train": [
		{"input": [[1]], "output": [[1,1,1],[1,1,1],[1,1,1]]}
	],
	"test": [
		{"input": [[2]], "output": [[2,2,2],[2,2,2],[2,2,2]]},
		{"input": [[3]], "output": [[3,3,3],[3,3,3],[3,3,3]]}
	]
}`

func writeTask(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTask(t, dir, "bb43febb.json", consistentTask)
	writeTask(t, dir, "007bbfb7.json", growingTask)
	writeTask(t, dir, "notes.txt", "not a task")

	records, err := LoadDir(dir, puzzle.SourceARC1)
	if err != nil {
		t.Fatalf("LoadDir error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Sorted by ID.
	grow, square := records[0], records[1]
	if grow.ID != "007bbfb7" || square.ID != "bb43febb" {
		t.Fatalf("unexpected order: %s, %s", grow.ID, square.ID)
	}

	if square.GridSize != 2 || !square.GridSizeConsistent || square.TestCaseCount != 1 {
		t.Fatalf("square task attributes wrong: %+v", square)
	}
	if grow.GridSize != 3 || grow.GridSizeConsistent || grow.TestCaseCount != 2 {
		t.Fatalf("growing task attributes wrong: %+v", grow)
	}
	if grow.Source != puzzle.SourceARC1 {
		t.Fatalf("source tag not applied: %s", grow.Source)
	}
}

func TestLoadDirRejectsMalformedTask(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTask(t, dir, "broken.json", `{"train": [`)

	if _, err := LoadDir(dir, puzzle.SourceARC2); err == nil {
		t.Fatal("expected error for malformed task JSON")
	}
}

func TestSourceForDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir  string
		want puzzle.Source
	}{
		{"data/arc1/training", puzzle.SourceARC1},
		{"data/arc1/evaluation", puzzle.SourceARC1Eval},
		{"data/arc2/training", puzzle.SourceARC2},
		{"data/arc2-evaluation", puzzle.SourceARC2Eval},
		{"data/ConceptARC", puzzle.SourceConcept},
		{"data/arc-heavy", puzzle.SourceARCHeavy},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.dir, func(t *testing.T) {
			t.Parallel()
			if got := SourceForDir(tt.dir); got != tt.want {
				t.Fatalf("SourceForDir(%q) = %s, want %s", tt.dir, got, tt.want)
			}
		})
	}
}
