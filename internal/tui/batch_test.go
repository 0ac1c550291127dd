// internal/tui/batch_test.go
package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"arcx/internal/apiclient"
	"arcx/internal/batch"
)

func newIdleModel() *Model {
	client := apiclient.NewWithBase("http://127.0.0.1:0", time.Second)
	return NewModel(context.Background(), batch.NewSession(client, time.Second))
}

func TestUpdateAppliesProgressSnapshots(t *testing.T) {
	t.Parallel()

	m := newIdleModel()
	snapshot := apiclient.BatchProgress{
		SessionID: "sess-1", Status: apiclient.StatusRunning,
		Completed: 3, Failed: 1, Total: 10, CurrentID: "puzzle-xyz",
	}

	updated, cmd := m.Update(progressMsg{progress: snapshot, open: true})
	if cmd == nil {
		t.Fatal("expected a follow-up wait command")
	}
	view := updated.(*Model).View()
	for _, want := range []string{"3/10 puzzles analyzed", "(1 failed)", "puzzle-xyz"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestUpdateQuitsWhenUpdatesClose(t *testing.T) {
	t.Parallel()

	m := newIdleModel()
	updated, cmd := m.Update(progressMsg{open: false})
	if !updated.(*Model).finished {
		t.Fatal("model should mark itself finished")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("quit command returned nil message")
	}
}

func TestUpdateShowsActionOutcome(t *testing.T) {
	t.Parallel()

	m := newIdleModel()

	updated, _ := m.Update(actionMsg{verb: "pause", result: batch.ActionResult{Success: true}})
	if view := updated.(*Model).View(); !strings.Contains(view, "pause acknowledged") {
		t.Fatalf("view missing pause notice:\n%s", view)
	}

	updated, _ = m.Update(actionMsg{verb: "cancel", result: batch.ActionResult{Error: "no active session"}})
	if view := updated.(*Model).View(); !strings.Contains(view, "cancel failed: no active session") {
		t.Fatalf("view missing failure notice:\n%s", view)
	}
}

func TestQuitKeyDetaches(t *testing.T) {
	t.Parallel()

	m := newIdleModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command for q")
	}
}
