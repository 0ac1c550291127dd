// internal/batch/session.go
// Package batch drives server-side batch-analysis sessions: start, pause,
// resume, cancel, and a polling loop that snapshots progress on a fixed
// cadence. The pipeline itself stays synchronous; all concurrency lives here.
package batch

import (
	"context"
	"sync"
	"time"

	"arcx/internal/apiclient"
	"arcx/internal/logging"
)

// ActionResult reports the outcome of one session action. A failed action
// never disturbs already-fetched progress; the caller surfaces Error to the
// user and moves on.
type ActionResult struct {
	Success bool
	Error   string
}

func ok() ActionResult { return ActionResult{Success: true} }

func fail(err error) ActionResult { return ActionResult{Error: err.Error()} }

// Session tracks one batch-analysis run against the platform API.
type Session struct {
	client   *apiclient.Client
	interval time.Duration

	mu        sync.Mutex
	sessionID string
	progress  apiclient.BatchProgress
	running   bool
	loading   bool
	lastErr   string
	stopPoll  context.CancelFunc

	updates chan apiclient.BatchProgress
}

// NewSession builds a Session polling at the given interval. The dashboard
// this mirrors polls every 2 seconds.
func NewSession(client *apiclient.Client, interval time.Duration) *Session {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Session{
		client:   client,
		interval: interval,
		updates:  make(chan apiclient.BatchProgress, 16),
	}
}

// SessionID returns the active session's identifier, empty when none.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// IsRunning reports whether a session is active and not paused.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// IsLoading reports whether an action is currently in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Progress returns the last polled snapshot.
func (s *Session) Progress() apiclient.BatchProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// LastError returns the most recent polling failure, empty when healthy.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Updates yields each polled snapshot for the current session. The channel
// closes when polling stops, either on a terminal status or via
// Cancel/ClearSession.
func (s *Session) Updates() <-chan apiclient.BatchProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

// Start creates a new session and begins polling its status.
func (s *Session) Start(ctx context.Context, cfg apiclient.BatchConfig) ActionResult {
	s.mu.Lock()
	if s.sessionID != "" {
		s.mu.Unlock()
		return ActionResult{Error: "a session is already active; clear it first"}
	}
	s.loading = true
	s.mu.Unlock()

	id, err := s.client.StartBatch(ctx, cfg)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		return fail(err)
	}
	s.sessionID = id
	s.running = true
	// Fresh channel per session; the previous one closed when its poll
	// loop exited.
	s.updates = make(chan apiclient.BatchProgress, 16)

	pollCtx, cancel := context.WithCancel(context.Background())
	s.stopPoll = cancel
	updates := s.updates
	s.mu.Unlock()

	go s.poll(pollCtx, id, updates)
	return ok()
}

// Pause suspends the active session. Polling continues so the progress view
// stays current while paused.
func (s *Session) Pause(ctx context.Context) ActionResult {
	id := s.SessionID()
	if id == "" {
		return ActionResult{Error: "no active session"}
	}
	if err := s.client.PauseBatch(ctx, id); err != nil {
		return fail(err)
	}
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return ok()
}

// Resume restarts a paused session.
func (s *Session) Resume(ctx context.Context) ActionResult {
	id := s.SessionID()
	if id == "" {
		return ActionResult{Error: "no active session"}
	}
	if err := s.client.ResumeBatch(ctx, id); err != nil {
		return fail(err)
	}
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	return ok()
}

// Cancel terminates the active session and stops polling. Progress gathered
// so far remains readable.
func (s *Session) Cancel(ctx context.Context) ActionResult {
	id := s.SessionID()
	if id == "" {
		return ActionResult{Error: "no active session"}
	}
	if err := s.client.CancelBatch(ctx, id); err != nil {
		return fail(err)
	}
	s.halt()
	return ok()
}

// ClearSession forgets the session entirely, stopping any polling. It never
// contacts the server.
func (s *Session) ClearSession() {
	s.halt()
	s.mu.Lock()
	s.sessionID = ""
	s.progress = apiclient.BatchProgress{}
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Session) halt() {
	s.mu.Lock()
	cancel := s.stopPoll
	s.stopPoll = nil
	s.running = false
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// poll fetches the session status on every tick until the session reaches a
// terminal state or the context is cancelled. A failed poll is logged and
// retried on the next tick; it never tears the session down.
func (s *Session) poll(ctx context.Context, id string, updates chan<- apiclient.BatchProgress) {
	defer close(updates)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		progress, err := s.client.BatchStatus(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.LogEvent("[BATCH] status poll for %s failed: %v", id, err)
			s.mu.Lock()
			s.lastErr = err.Error()
			s.mu.Unlock()
			continue
		}

		s.mu.Lock()
		s.progress = progress
		s.lastErr = ""
		if progress.Done() {
			s.running = false
		}
		s.mu.Unlock()

		select {
		case updates <- progress:
		default:
			// Slow consumer; the next tick carries a fresher snapshot.
		}

		if progress.Done() {
			return
		}
	}
}
