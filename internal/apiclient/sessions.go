// internal/apiclient/sessions.go
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
)

// BatchConfig describes one batch-analysis run: which model attacks which
// puzzles, and how many attempts may run at once.
type BatchConfig struct {
	ModelName   string   `json:"modelName"`
	Dataset     string   `json:"dataset"`
	PuzzleIDs   []string `json:"puzzleIds,omitempty"`
	Concurrency int      `json:"concurrency,omitempty"`
}

// Session status values reported by the batch endpoints.
const (
	StatusRunning   = "running"
	StatusPaused    = "paused"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// BatchProgress is one polled snapshot of a session.
type BatchProgress struct {
	SessionID  string  `json:"sessionId"`
	Status     string  `json:"status"`
	Completed  int     `json:"completed"`
	Failed     int     `json:"failed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	CurrentID  string  `json:"currentId,omitempty"`
}

// Done reports whether the session has reached a terminal state.
func (p BatchProgress) Done() bool {
	return p.Status == StatusCancelled || p.Status == StatusCompleted
}

// StartBatch creates a session via POST /api/batch/start and returns its ID.
func (c *Client) StartBatch(ctx context.Context, cfg BatchConfig) (string, error) {
	if cfg.ModelName == "" {
		return "", fmt.Errorf("batch config requires a model name")
	}
	if cfg.Dataset == "" {
		return "", fmt.Errorf("batch config requires a dataset")
	}

	body, err := c.postJSON(ctx, "/api/batch/start", cfg)
	if err != nil {
		return "", err
	}

	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.SessionID == "" {
		return "", fmt.Errorf("batch start returned no session id")
	}
	return resp.SessionID, nil
}

// BatchStatus polls GET /api/batch/{id}/status.
func (c *Client) BatchStatus(ctx context.Context, sessionID string) (BatchProgress, error) {
	body, err := c.get(ctx, "/api/batch/"+sessionID+"/status")
	if err != nil {
		return BatchProgress{}, err
	}

	var progress BatchProgress
	if err := json.Unmarshal(body, &progress); err != nil {
		return BatchProgress{}, fmt.Errorf("unexpected batch status payload: %w", err)
	}
	return progress, nil
}

// PauseBatch suspends a running session.
func (c *Client) PauseBatch(ctx context.Context, sessionID string) error {
	_, err := c.postJSON(ctx, "/api/batch/"+sessionID+"/pause", nil)
	return err
}

// ResumeBatch restarts a paused session.
func (c *Client) ResumeBatch(ctx context.Context, sessionID string) error {
	_, err := c.postJSON(ctx, "/api/batch/"+sessionID+"/resume", nil)
	return err
}

// CancelBatch terminates a session. Already-completed puzzle results are
// preserved server-side.
func (c *Client) CancelBatch(ctx context.Context, sessionID string) error {
	_, err := c.postJSON(ctx, "/api/batch/"+sessionID+"/cancel", nil)
	return err
}
