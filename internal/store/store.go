// internal/store/store.go
// Package store caches fetched puzzle snapshots and user feedback in a local
// SQLite database, so browse/cards views work offline and the fixture server
// has something to serve.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"arcx/internal/puzzle"
)

const schema = `
CREATE TABLE IF NOT EXISTS puzzles (
    id                 TEXT PRIMARY KEY,
    source             TEXT NOT NULL,
    has_explanation    INTEGER NOT NULL DEFAULT 0,
    grid_size          INTEGER NOT NULL DEFAULT 0,
    grid_consistent    INTEGER NOT NULL DEFAULT 0,
    test_cases         INTEGER NOT NULL DEFAULT 0,
    avg_accuracy       REAL,
    total_explanations INTEGER,
    wrong_count        INTEGER,
    fetched_at         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS feedback (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    puzzle_id  TEXT NOT NULL,
    model_name TEXT NOT NULL,
    vote       TEXT NOT NULL CHECK (vote IN ('helpful', 'not_helpful')),
    comment    TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_puzzle ON feedback(puzzle_id);
`

// Store wraps the SQLite connection.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the snapshot database at path, initializing the
// schema when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SavePuzzles upserts a snapshot of records, replacing any previous rows for
// the same IDs. The snapshot timestamp is recorded per row.
func (s *Store) SavePuzzles(records []puzzle.PuzzleRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
        INSERT INTO puzzles (id, source, has_explanation, grid_size, grid_consistent,
                             test_cases, avg_accuracy, total_explanations, wrong_count, fetched_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            source = excluded.source,
            has_explanation = excluded.has_explanation,
            grid_size = excluded.grid_size,
            grid_consistent = excluded.grid_consistent,
            test_cases = excluded.test_cases,
            avg_accuracy = excluded.avg_accuracy,
            total_explanations = excluded.total_explanations,
            wrong_count = excluded.wrong_count,
            fetched_at = excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		var avg, total, wrong any
		if r.PerformanceData != nil {
			avg = r.PerformanceData.AvgAccuracy
			total = r.PerformanceData.TotalExplanations
			wrong = r.PerformanceData.WrongCount
		}
		if _, err := stmt.Exec(r.ID, string(r.Source), boolInt(r.HasExplanation), r.GridSize,
			boolInt(r.GridSizeConsistent), r.TestCaseCount, avg, total, wrong, now); err != nil {
			return fmt.Errorf("upsert puzzle %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// LoadPuzzles returns every cached record. Rows without performance columns
// come back with a nil PerformanceData, which the pipeline classifies as
// untested.
func (s *Store) LoadPuzzles() ([]puzzle.PuzzleRecord, error) {
	rows, err := s.db.Query(`
        SELECT id, source, has_explanation, grid_size, grid_consistent,
               test_cases, avg_accuracy, total_explanations, wrong_count
        FROM puzzles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query puzzles: %w", err)
	}
	defer rows.Close()

	var records []puzzle.PuzzleRecord
	for rows.Next() {
		var (
			r        puzzle.PuzzleRecord
			source   string
			hasExpl  int
			gridCons int
			avg      sql.NullFloat64
			total    sql.NullInt64
			wrong    sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &source, &hasExpl, &r.GridSize, &gridCons,
			&r.TestCaseCount, &avg, &total, &wrong); err != nil {
			return nil, fmt.Errorf("scan puzzle row: %w", err)
		}
		r.Source = puzzle.Source(source)
		r.HasExplanation = hasExpl != 0
		r.GridSizeConsistent = gridCons != 0
		if total.Valid {
			r.PerformanceData = &puzzle.PerformanceData{
				AvgAccuracy:       avg.Float64,
				TotalExplanations: int(total.Int64),
				WrongCount:        int(wrong.Int64),
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Feedback is one stored user reaction to a model explanation.
type Feedback struct {
	ID        int64     `json:"id"`
	PuzzleID  string    `json:"puzzleId"`
	ModelName string    `json:"modelName"`
	Vote      string    `json:"vote"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Feedback vote values accepted by AddFeedback.
const (
	VoteHelpful    = "helpful"
	VoteNotHelpful = "not_helpful"
)

// AddFeedback stores one reaction.
func (s *Store) AddFeedback(fb Feedback) error {
	if fb.Vote != VoteHelpful && fb.Vote != VoteNotHelpful {
		return fmt.Errorf("invalid vote %q", fb.Vote)
	}
	created := fb.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO feedback (puzzle_id, model_name, vote, comment, created_at) VALUES (?, ?, ?, ?, ?)`,
		fb.PuzzleID, fb.ModelName, fb.Vote, fb.Comment, created.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// ListFeedback returns reactions for one puzzle, newest first.
func (s *Store) ListFeedback(puzzleID string) ([]Feedback, error) {
	rows, err := s.db.Query(`
        SELECT id, puzzle_id, model_name, vote, comment, created_at
        FROM feedback WHERE puzzle_id = ? ORDER BY created_at DESC, id DESC`, puzzleID)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var fb Feedback
		var created string
		if err := rows.Scan(&fb.ID, &fb.PuzzleID, &fb.ModelName, &fb.Vote, &fb.Comment, &created); err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		fb.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, fb)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
