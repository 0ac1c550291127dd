// internal/dataset/loader.go
// Package dataset reads local ARC task directories (one JSON file per
// puzzle) and derives the shape attributes the filter pipeline works on.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"arcx/internal/puzzle"
)

// GridPair is one input/output example inside an ARC task.
type GridPair struct {
	Input  [][]int `json:"input"`
	Output [][]int `json:"output"`
}

// Task is the on-disk shape of one ARC puzzle file.
type Task struct {
	ID    string     `json:"-"`
	Train []GridPair `json:"train"`
	Test  []GridPair `json:"test"`
}

// LoadDir reads every .json task in dir and converts it to a PuzzleRecord
// tagged with source. Unreadable or malformed files abort the scan; a
// dataset directory with a bad file is a configuration problem, not
// something to paper over.
func LoadDir(dir string, source puzzle.Source) ([]puzzle.PuzzleRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset dir %s: %w", dir, err)
	}

	var records []puzzle.PuzzleRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read task %s: %w", path, err)
		}
		var task Task
		if err := json.Unmarshal(data, &task); err != nil {
			return nil, fmt.Errorf("parse task %s: %w", path, err)
		}
		task.ID = strings.TrimSuffix(entry.Name(), ".json")
		records = append(records, toRecord(task, source))
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// toRecord derives the filterable shape attributes from a task's grids.
func toRecord(task Task, source puzzle.Source) puzzle.PuzzleRecord {
	return puzzle.PuzzleRecord{
		ID:                 task.ID,
		Source:             source,
		GridSize:           maxGridSize(task),
		GridSizeConsistent: gridsConsistent(task),
		TestCaseCount:      len(task.Test),
	}
}

// maxGridSize returns the largest dimension of any grid in the task.
func maxGridSize(task Task) int {
	max := 0
	for _, pair := range append(append([]GridPair{}, task.Train...), task.Test...) {
		for _, grid := range [][][]int{pair.Input, pair.Output} {
			if len(grid) > max {
				max = len(grid)
			}
			for _, row := range grid {
				if len(row) > max {
					max = len(row)
				}
			}
		}
	}
	return max
}

// gridsConsistent reports whether every example maps input to an output of
// the same dimensions.
func gridsConsistent(task Task) bool {
	pairs := append(append([]GridPair{}, task.Train...), task.Test...)
	if len(pairs) == 0 {
		return false
	}
	for _, pair := range pairs {
		if len(pair.Input) != len(pair.Output) {
			return false
		}
		if len(pair.Input) > 0 && len(pair.Output) > 0 &&
			len(pair.Input[0]) != len(pair.Output[0]) {
			return false
		}
	}
	return true
}

// SourceForDir guesses the dataset tag from a directory path, falling back
// to ARC1 when nothing matches.
func SourceForDir(dir string) puzzle.Source {
	name := strings.ToLower(filepath.ToSlash(filepath.Clean(dir)))
	switch {
	case strings.Contains(name, "concept"):
		return puzzle.SourceConcept
	case strings.Contains(name, "heavy"):
		return puzzle.SourceARCHeavy
	case strings.Contains(name, "2") && strings.Contains(name, "eval"):
		return puzzle.SourceARC2Eval
	case strings.Contains(name, "2"):
		return puzzle.SourceARC2
	case strings.Contains(name, "eval"):
		return puzzle.SourceARC1Eval
	default:
		return puzzle.SourceARC1
	}
}
