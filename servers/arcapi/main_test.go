// servers/arcapi/main_test.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"arcx/internal/puzzle"
)

func fixtureServer() *Server {
	return &Server{
		cfg: &Config{Concurrency: 2, StepMillis: 1},
		puzzles: []puzzle.PuzzleRecord{
			{ID: "aaa", Source: puzzle.SourceARC1},
			{ID: "bbb", Source: puzzle.SourceARC1},
			{ID: "ccc", Source: puzzle.SourceARC2},
		},
		sessions: make(map[string]*batchSession),
	}
}

func TestBucketIsDeterministic(t *testing.T) {
	for _, id := range []string{"aaa", "bbb", "ccc"} {
		first := bucket("gpt-4", id)
		for i := 0; i < 5; i++ {
			if got := bucket("gpt-4", id); got != first {
				t.Fatalf("bucket(gpt-4, %s) changed from %d to %d", id, first, got)
			}
		}
		if first < 0 || first > 2 {
			t.Fatalf("bucket out of range: %d", first)
		}
	}
}

func TestPerformanceForPartitionsDataset(t *testing.T) {
	s := fixtureServer()

	perf, err := s.performanceFor("gpt-4", "ARC1")
	if err != nil {
		t.Fatalf("performanceFor error: %v", err)
	}
	if perf.Summary.TotalPuzzles != 2 {
		t.Fatalf("expected 2 puzzles in ARC1, got %d", perf.Summary.TotalPuzzles)
	}
	sum := perf.Summary.Correct + perf.Summary.Incorrect + perf.Summary.NotAttempted
	if sum != perf.Summary.TotalPuzzles {
		t.Fatalf("buckets do not partition dataset: %d != %d", sum, perf.Summary.TotalPuzzles)
	}
}

func TestPerformanceForUnknownDataset(t *testing.T) {
	s := fixtureServer()
	if _, err := s.performanceFor("gpt-4", "nope"); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestPuzzleListFiltersBySource(t *testing.T) {
	s := fixtureServer()

	req := httptest.NewRequest(http.MethodGet, "/api/puzzle/list?source=ARC2", nil)
	rec := httptest.NewRecorder()
	s.handlePuzzleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var records []puzzle.PuzzleRecord
	if err := json.NewDecoder(rec.Body).Decode(&records); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(records) != 1 || records[0].ID != "ccc" {
		t.Fatalf("expected [ccc], got %v", records)
	}
}

func TestPuzzleListAppliesLimitAndOffset(t *testing.T) {
	s := fixtureServer()

	req := httptest.NewRequest(http.MethodGet, "/api/puzzle/list?offset=1&limit=1", nil)
	rec := httptest.NewRecorder()
	s.handlePuzzleList(rec, req)

	var records []puzzle.PuzzleRecord
	if err := json.NewDecoder(rec.Body).Decode(&records); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(records) != 1 || records[0].ID != "bbb" {
		t.Fatalf("expected [bbb], got %v", records)
	}
}

func TestBatchSessionLifecycle(t *testing.T) {
	session := &batchSession{
		id:     "s1",
		model:  "gpt-4",
		ids:    []string{"aaa", "bbb"},
		status: "running",
		cancel: func() {},
	}

	if err := session.apply("pause"); err != nil {
		t.Fatalf("pause error: %v", err)
	}
	if err := session.apply("pause"); err == nil {
		t.Fatal("expected error pausing a paused session")
	}
	if err := session.apply("resume"); err != nil {
		t.Fatalf("resume error: %v", err)
	}
	if err := session.apply("cancel"); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if err := session.apply("resume"); err == nil {
		t.Fatal("expected error resuming a cancelled session")
	}
}

func TestBatchSessionRunsToCompletion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session := &batchSession{
		id:     "s2",
		model:  "gpt-4",
		ids:    []string{"aaa", "bbb", "ccc"},
		status: "running",
		cancel: cancel,
	}

	session.run(ctx, 2, time.Millisecond)

	progress := session.progress()
	if progress.Status != "completed" {
		t.Fatalf("expected completed, got %s", progress.Status)
	}
	if progress.Completed+progress.Failed != 3 {
		t.Fatalf("expected 3 results, got %d completed %d failed", progress.Completed, progress.Failed)
	}
	if progress.Percentage != 100 {
		t.Fatalf("expected 100%%, got %.1f", progress.Percentage)
	}
}

func TestDecodeJSONRejectsUnknownField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/batch/start", strings.NewReader(`{"modelName":"m","extra":1}`))
	rec := httptest.NewRecorder()
	var out batchRequest
	if err := decodeJSON(rec, req, &out, 1024); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDecodeJSONRejectsNilBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/batch/start", nil)
	req.Body = nil
	rec := httptest.NewRecorder()
	var out batchRequest
	if err := decodeJSON(rec, req, &out, 1024); err == nil {
		t.Fatal("expected error for nil body")
	}
}
