// main.go
//
// arcapi is a self-contained fixture deployment of the ARC Explainer
// platform API. It serves the puzzle list, model metrics, and batch
// session endpoints the arcx CLI talks to, backed by local dataset
// directories and a sqlite snapshot. Batch analysis is simulated with a
// deterministic per-puzzle outcome so the CLI can be exercised without a
// live model fleet.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"arcx/internal/dataset"
	"arcx/internal/puzzle"
	"arcx/internal/store"
)

type Config struct {
	Host        string            `yaml:"host"`
	Port        int               `yaml:"port"`
	DBPath      string            `yaml:"db_path"`
	Datasets    map[string]string `yaml:"datasets"`
	Rescan      string            `yaml:"rescan"`
	StepMillis  int               `yaml:"step_ms"`
	Concurrency int               `yaml:"concurrency"`
}

type ErrResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type Server struct {
	cfg *Config

	mu       sync.Mutex
	puzzles  []puzzle.PuzzleRecord
	sessions map[string]*batchSession

	snapshots *store.Store
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	snapshots, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("snapshot store error: %v", err)
	}
	defer snapshots.Close()

	s := &Server{
		cfg:       cfg,
		sessions:  make(map[string]*batchSession),
		snapshots: snapshots,
	}

	if err := s.rescan(); err != nil {
		log.Fatalf("initial dataset scan failed: %v", err)
	}

	if cfg.Rescan != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.Rescan, func() {
			if err := s.rescan(); err != nil {
				log.Printf("scheduled rescan failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("invalid rescan schedule %q: %v", cfg.Rescan, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/puzzle/list", s.handlePuzzleList)
	mux.HandleFunc("GET /api/metrics/model", s.handleModelMetrics)
	mux.HandleFunc("GET /api/metrics/compare", s.handleCompare)
	mux.HandleFunc("POST /api/batch/start", s.handleBatchStart)
	mux.HandleFunc("GET /api/batch/{id}/status", s.handleBatchStatus)
	mux.HandleFunc("POST /api/batch/{id}/pause", s.handleBatchAction("pause"))
	mux.HandleFunc("POST /api/batch/{id}/resume", s.handleBatchAction("resume"))
	mux.HandleFunc("POST /api/batch/{id}/cancel", s.handleBatchAction("cancel"))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("arcapi config: host=%s port=%d db=%s datasets=%d rescan=%q", cfg.Host, cfg.Port, cfg.DBPath, len(cfg.Datasets), cfg.Rescan)
	log.Printf("listening on %s", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}

// rescan reloads every configured dataset directory, persists the records
// to the snapshot store, and swaps the in-memory puzzle set. When no
// directories are configured the store's previous contents are served.
func (s *Server) rescan() error {
	if len(s.cfg.Datasets) == 0 {
		records, err := s.snapshots.LoadPuzzles()
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.puzzles = records
		s.mu.Unlock()
		log.Printf("serving %d puzzles from snapshot store", len(records))
		return nil
	}

	var all []puzzle.PuzzleRecord
	for tag, dir := range s.cfg.Datasets {
		source := puzzle.Source(tag)
		if tag == "" {
			source = dataset.SourceForDir(dir)
		}
		records, err := dataset.LoadDir(dir, source)
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
		all = append(all, records...)
	}

	if err := s.snapshots.SavePuzzles(all); err != nil {
		return err
	}

	s.mu.Lock()
	s.puzzles = all
	s.mu.Unlock()
	log.Printf("dataset scan complete: %d puzzles", len(all))
	return nil
}

func (s *Server) snapshot() []puzzle.PuzzleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]puzzle.PuzzleRecord, len(s.puzzles))
	copy(out, s.puzzles)
	return out
}

func (s *Server) handlePuzzleList(w http.ResponseWriter, r *http.Request) {
	records := s.snapshot()

	q := r.URL.Query()
	if source := q.Get("source"); source != "" && source != "all" {
		filtered := records[:0:0]
		for _, rec := range records {
			if string(rec.Source) == source {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset > 0 {
		if offset > len(records) {
			offset = len(records)
		}
		records = records[offset:]
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	if records == nil {
		records = []puzzle.PuzzleRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleModelMetrics(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")
	ds := r.URL.Query().Get("dataset")
	if model == "" || ds == "" {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "model and dataset are required"})
		return
	}

	perf, err := s.performanceFor(model, ds)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, perf)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	model1, model2, ds := q.Get("model1"), q.Get("model2"), q.Get("dataset")
	if model1 == "" || model2 == "" || ds == "" {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "model1, model2, and dataset are required"})
		return
	}

	perf1, err := s.performanceFor(model1, ds)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: err.Error()})
		return
	}
	perf2, err := s.performanceFor(model2, ds)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]puzzle.ModelDatasetPerformance{
		"model1": perf1,
		"model2": perf2,
	})
}

// performanceFor partitions a dataset's puzzle IDs into correct, incorrect,
// and not-attempted buckets. The split is a stable hash of model and puzzle
// ID, so repeated calls and comparisons are consistent.
func (s *Server) performanceFor(model, ds string) (puzzle.ModelDatasetPerformance, error) {
	ids := s.datasetIDs(ds)
	if len(ids) == 0 {
		return puzzle.ModelDatasetPerformance{}, fmt.Errorf("unknown dataset %q", ds)
	}

	perf := puzzle.ModelDatasetPerformance{
		ModelName:    model,
		Dataset:      ds,
		FetchedAtUTC: time.Now().UTC(),
	}
	for _, id := range ids {
		switch bucket(model, id) {
		case 0:
			perf.Correct = append(perf.Correct, id)
		case 1:
			perf.Incorrect = append(perf.Incorrect, id)
		default:
			perf.NotAttempted = append(perf.NotAttempted, id)
		}
	}
	perf.Summary = puzzle.Summary{
		Correct:      len(perf.Correct),
		Incorrect:    len(perf.Incorrect),
		NotAttempted: len(perf.NotAttempted),
		TotalPuzzles: len(ids),
	}
	return perf, nil
}

func (s *Server) datasetIDs(ds string) []string {
	var ids []string
	for _, rec := range s.snapshot() {
		if ds == "all" || string(rec.Source) == ds {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

// bucket maps a model/puzzle pair to 0 (correct), 1 (incorrect), or
// 2 (not attempted). Roughly 40% correct, 30% incorrect, 30% untried.
func bucket(model, id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(model))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(id))
	switch v := h.Sum32() % 10; {
	case v < 4:
		return 0
	case v < 7:
		return 1
	default:
		return 2
	}
}

type batchRequest struct {
	ModelName   string   `json:"modelName"`
	Dataset     string   `json:"dataset"`
	PuzzleIDs   []string `json:"puzzleIds"`
	Concurrency int      `json:"concurrency"`
}

func (s *Server) handleBatchStart(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(w, r, &req, 1<<20); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.ModelName == "" || req.Dataset == "" {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "modelName and dataset are required"})
		return
	}

	ids := req.PuzzleIDs
	if len(ids) == 0 {
		ids = s.datasetIDs(req.Dataset)
	}
	if len(ids) == 0 {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: fmt.Sprintf("unknown dataset %q", req.Dataset)})
		return
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = s.cfg.Concurrency
	}

	ctx, cancel := context.WithCancel(context.Background())
	session := &batchSession{
		id:     uuid.NewString(),
		model:  req.ModelName,
		ids:    ids,
		status: "running",
		cancel: cancel,
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	step := time.Duration(s.cfg.StepMillis) * time.Millisecond
	go session.run(ctx, concurrency, step)

	log.Printf("batch %s started: model=%s dataset=%s puzzles=%d", session.id, req.ModelName, req.Dataset, len(ids))
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": session.id})
}

func (s *Server) session(id string) *batchSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	session := s.session(r.PathValue("id"))
	if session == nil {
		writeJSON(w, http.StatusNotFound, ErrResp{Error: "unknown session"})
		return
	}
	writeJSON(w, http.StatusOK, session.progress())
}

func (s *Server) handleBatchAction(verb string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := s.session(r.PathValue("id"))
		if session == nil {
			writeJSON(w, http.StatusNotFound, ErrResp{Error: "unknown session"})
			return
		}
		if err := session.apply(verb); err != nil {
			writeJSON(w, http.StatusConflict, ErrResp{Error: err.Error()})
			return
		}
		log.Printf("batch %s: %s", session.id, verb)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// batchSession simulates one batch-analysis run. Each puzzle takes one
// step of wall time and succeeds or fails deterministically.
type batchSession struct {
	id    string
	model string
	ids   []string

	mu        sync.Mutex
	status    string
	completed int
	failed    int
	currentID string

	cancel context.CancelFunc
}

type batchProgress struct {
	SessionID  string  `json:"sessionId"`
	Status     string  `json:"status"`
	Completed  int     `json:"completed"`
	Failed     int     `json:"failed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	CurrentID  string  `json:"currentId,omitempty"`
}

func (b *batchSession) progress() batchProgress {
	b.mu.Lock()
	defer b.mu.Unlock()
	done := b.completed + b.failed
	pct := 0.0
	if len(b.ids) > 0 {
		pct = float64(done) / float64(len(b.ids)) * 100
	}
	return batchProgress{
		SessionID:  b.id,
		Status:     b.status,
		Completed:  b.completed,
		Failed:     b.failed,
		Total:      len(b.ids),
		Percentage: pct,
		CurrentID:  b.currentID,
	}
}

func (b *batchSession) apply(verb string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch verb {
	case "pause":
		if b.status != "running" {
			return fmt.Errorf("cannot pause a %s session", b.status)
		}
		b.status = "paused"
	case "resume":
		if b.status != "paused" {
			return fmt.Errorf("cannot resume a %s session", b.status)
		}
		b.status = "running"
	case "cancel":
		if b.status == "completed" || b.status == "cancelled" {
			return fmt.Errorf("session already %s", b.status)
		}
		b.status = "cancelled"
		b.cancel()
	default:
		return errors.New("unsupported action: " + verb)
	}
	return nil
}

func (b *batchSession) run(ctx context.Context, concurrency int, step time.Duration) {
	if concurrency <= 0 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, id := range b.ids {
		id := id
		g.Go(func() error {
			if err := b.waitRunnable(ctx); err != nil {
				return err
			}
			b.setCurrent(id)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(step):
			}
			b.record(bucket(b.model, id) == 0)
			return nil
		})
	}

	err := g.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentID = ""
	if b.status == "cancelled" {
		return
	}
	if err != nil {
		b.status = "cancelled"
		return
	}
	b.status = "completed"
}

// waitRunnable blocks while the session is paused.
func (b *batchSession) waitRunnable(ctx context.Context) error {
	for {
		b.mu.Lock()
		status := b.status
		b.mu.Unlock()
		if status == "running" {
			return nil
		}
		if status != "paused" {
			return errors.New("session halted")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (b *batchSession) setCurrent(id string) {
	b.mu.Lock()
	b.currentID = id
	b.mu.Unlock()
}

func (b *batchSession) record(success bool) {
	b.mu.Lock()
	if success {
		b.completed++
	} else {
		b.failed++
	}
	b.mu.Unlock()
}

var (
	configOnce sync.Once
	configVal  *Config
	configErr  error
)

func loadConfig() (*Config, error) {
	configOnce.Do(func() {
		path := filepath.Join("servers", "arcapi", "arcapi.yml")
		data, err := os.ReadFile(path)
		if err != nil {
			configErr = err
			return
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			configErr = err
			return
		}

		if cfg.Port <= 0 {
			cfg.Port = 5000
		}
		if strings.TrimSpace(cfg.DBPath) == "" {
			cfg.DBPath = filepath.Join("arcxData", "arcapi.db")
		}
		if cfg.StepMillis <= 0 {
			cfg.StepMillis = 250
		}
		if cfg.Concurrency <= 0 {
			cfg.Concurrency = 2
		}

		configVal = &cfg
	})

	return configVal, configErr
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
