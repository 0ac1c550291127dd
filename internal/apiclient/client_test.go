// internal/apiclient/client_test.go
package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithBase(srv.URL, 5*time.Second)
}

func TestListPuzzlesBareArray(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/puzzle/list" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("source"); got != "ARC2-Eval" {
			t.Errorf("unexpected source param: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p1","source":"ARC2-Eval"},{"id":"p2","source":"ARC2-Eval"}]`))
	}))

	records, err := client.ListPuzzles(context.Background(), ListQuery{Source: "ARC2-Eval"})
	if err != nil {
		t.Fatalf("ListPuzzles error: %v", err)
	}
	if len(records) != 2 || records[0].ID != "p1" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestListPuzzlesPaginatedWrapper(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"id":"p9","source":"ARC1"}],"total":412}`))
	}))

	records, err := client.ListPuzzles(context.Background(), ListQuery{Limit: 1})
	if err != nil {
		t.Fatalf("ListPuzzles error: %v", err)
	}
	if len(records) != 1 || records[0].ID != "p9" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestCompareModels(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("model1") != "m1" || q.Get("model2") != "m2" || q.Get("dataset") != "ARC1" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{
			"model1": {"modelName":"m1","dataset":"ARC1","summary":{"correct":3,"incorrect":1,"notAttempted":6,"totalPuzzles":10}},
			"model2": {"modelName":"m2","dataset":"ARC1","summary":{"correct":2,"incorrect":2,"notAttempted":6,"totalPuzzles":10}}
		}`))
	}))

	resp, err := client.CompareModels(context.Background(), "m1", "m2", "ARC1")
	if err != nil {
		t.Fatalf("CompareModels error: %v", err)
	}
	if resp.Model1.Summary.Correct != 3 || resp.Model2.Summary.Correct != 2 {
		t.Fatalf("unexpected comparison payload: %+v", resp)
	}
}

func TestErrorResponsesSurfaceServerMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"unknown dataset"}`))
	}))

	_, err := client.ListPuzzles(context.Background(), ListQuery{})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if got := err.Error(); !strings.Contains(got, "unknown dataset") || !strings.Contains(got, "400") {
		t.Fatalf("error should carry status and server message, got: %v", err)
	}
}

func TestBatchSessionLifecycle(t *testing.T) {
	t.Parallel()

	var paused, resumed, cancelled bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/batch/start":
			_, _ = w.Write([]byte(`{"sessionId":"sess-1"}`))
		case "/api/batch/sess-1/status":
			_, _ = w.Write([]byte(`{"sessionId":"sess-1","status":"running","completed":2,"total":8,"percentage":25}`))
		case "/api/batch/sess-1/pause":
			paused = true
			_, _ = w.Write([]byte(`{}`))
		case "/api/batch/sess-1/resume":
			resumed = true
			_, _ = w.Write([]byte(`{}`))
		case "/api/batch/sess-1/cancel":
			cancelled = true
			_, _ = w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))

	ctx := context.Background()
	id, err := client.StartBatch(ctx, BatchConfig{ModelName: "m1", Dataset: "ARC2"})
	if err != nil {
		t.Fatalf("StartBatch error: %v", err)
	}
	if id != "sess-1" {
		t.Fatalf("unexpected session id: %q", id)
	}

	progress, err := client.BatchStatus(ctx, id)
	if err != nil {
		t.Fatalf("BatchStatus error: %v", err)
	}
	if progress.Completed != 2 || progress.Total != 8 || progress.Done() {
		t.Fatalf("unexpected progress: %+v", progress)
	}

	if err := client.PauseBatch(ctx, id); err != nil {
		t.Fatalf("PauseBatch error: %v", err)
	}
	if err := client.ResumeBatch(ctx, id); err != nil {
		t.Fatalf("ResumeBatch error: %v", err)
	}
	if err := client.CancelBatch(ctx, id); err != nil {
		t.Fatalf("CancelBatch error: %v", err)
	}
	if !paused || !resumed || !cancelled {
		t.Fatalf("lifecycle endpoints not all hit: paused=%v resumed=%v cancelled=%v", paused, resumed, cancelled)
	}
}

func TestStartBatchValidatesConfig(t *testing.T) {
	t.Parallel()

	client := NewWithBase("http://127.0.0.1:0", time.Second)
	if _, err := client.StartBatch(context.Background(), BatchConfig{Dataset: "ARC1"}); err == nil {
		t.Fatal("expected error for missing model name")
	}
	if _, err := client.StartBatch(context.Background(), BatchConfig{ModelName: "m"}); err == nil {
		t.Fatal("expected error for missing dataset")
	}
}
