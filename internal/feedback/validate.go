// internal/feedback/validate.go
// Package feedback validates user-pasted solution grids and checks candidate
// answers against expected outputs. Malformed input comes back as a
// validation message for inline display, never as a panic or a raw decode
// error.
package feedback

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// gridSchema constrains a solution grid to a non-empty matrix of ARC cell
// values (0–9). Rectangularity is checked separately; JSON Schema cannot
// express equal-length rows.
const gridSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "array",
		"minItems": 1,
		"items": {
			"type": "integer",
			"minimum": 0,
			"maximum": 9
		}
	}
}`

var gridSchemaLoader = gojsonschema.NewStringLoader(gridSchema)

// ValidationResult reports whether a pasted grid parsed cleanly, and if not,
// a message suitable for inline display.
type ValidationResult struct {
	Valid   bool
	Message string
	Grid    [][]int
}

// ValidateGridJSON parses and validates a user-supplied grid. All failure
// modes are folded into the result; the error return is reserved for schema
// machinery faults.
func ValidateGridJSON(raw string) (ValidationResult, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ValidationResult{Message: "grid is empty; paste a JSON matrix like [[0,1],[1,0]]"}, nil
	}

	result, err := gojsonschema.Validate(gridSchemaLoader, gojsonschema.NewStringLoader(trimmed))
	if err != nil {
		// Unparseable JSON reaches us as a loader error.
		return ValidationResult{Message: "grid is not valid JSON: " + err.Error()}, nil
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return ValidationResult{Message: "grid failed validation: " + strings.Join(details, "; ")}, nil
	}

	var grid [][]int
	if err := json.Unmarshal([]byte(trimmed), &grid); err != nil {
		return ValidationResult{Message: "grid is not valid JSON: " + err.Error()}, nil
	}

	width := len(grid[0])
	for _, row := range grid {
		if len(row) != width {
			return ValidationResult{Message: "grid rows must all have the same length"}, nil
		}
	}

	return ValidationResult{Valid: true, Grid: grid}, nil
}

// GridsEqual reports whether a candidate grid matches the expected output
// cell for cell.
func GridsEqual(expected, candidate [][]int) bool {
	if len(expected) != len(candidate) {
		return false
	}
	for i := range expected {
		if len(expected[i]) != len(candidate[i]) {
			return false
		}
		for j := range expected[i] {
			if expected[i][j] != candidate[i][j] {
				return false
			}
		}
	}
	return true
}
