// internal/tui/batch.go
// Package tui renders live batch-analysis progress with Bubble Tea. Keys:
// p pauses, r resumes, c cancels, q detaches (the session keeps running
// server-side).
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arcx/internal/apiclient"
	"arcx/internal/batch"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// progressMsg carries one polled snapshot into the Update loop.
type progressMsg struct {
	progress apiclient.BatchProgress
	open     bool
}

// actionMsg reports the outcome of a pause/resume/cancel keypress.
type actionMsg struct {
	verb   string
	result batch.ActionResult
}

// Model is the Bubble Tea model for one batch session.
type Model struct {
	ctx      context.Context
	session  *batch.Session
	spinner  spinner.Model
	bar      progress.Model
	progress apiclient.BatchProgress
	notice   string
	finished bool
}

// NewModel builds the progress view for an already-started session.
func NewModel(ctx context.Context, session *batch.Session) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		ctx:     ctx,
		session: session,
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient()),
	}
}

// Init starts the spinner and subscribes to session updates.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForUpdate())
}

// waitForUpdate blocks on the session's update channel.
func (m *Model) waitForUpdate() tea.Cmd {
	updates := m.session.Updates()
	return func() tea.Msg {
		progress, open := <-updates
		return progressMsg{progress: progress, open: open}
	}
}

// Update handles key presses, polled snapshots, and spinner ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			return m, m.runAction("pause", m.session.Pause)
		case "r":
			return m, m.runAction("resume", m.session.Resume)
		case "c":
			return m, m.runAction("cancel", m.session.Cancel)
		}
		return m, nil

	case progressMsg:
		if !msg.open {
			m.finished = true
			return m, tea.Quit
		}
		m.progress = msg.progress
		return m, m.waitForUpdate()

	case actionMsg:
		if msg.result.Success {
			m.notice = fmt.Sprintf("%s acknowledged", msg.verb)
		} else {
			m.notice = fmt.Sprintf("%s failed: %s", msg.verb, msg.result.Error)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) runAction(verb string, action func(context.Context) batch.ActionResult) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{verb: verb, result: action(m.ctx)}
	}
}

// View renders the session header, progress bar, and key help.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Batch analysis: "+m.session.SessionID()) + "\n\n")

	p := m.progress
	ratio := 0.0
	if p.Total > 0 {
		ratio = float64(p.Completed) / float64(p.Total)
	}
	b.WriteString(m.bar.ViewAs(ratio) + "\n\n")

	line := fmt.Sprintf("%d/%d puzzles analyzed", p.Completed, p.Total)
	if p.Failed > 0 {
		line += fmt.Sprintf(" (%d failed)", p.Failed)
	}
	if p.CurrentID != "" {
		line += "  now: " + p.CurrentID
	}

	switch {
	case p.Status == apiclient.StatusPaused:
		b.WriteString(pausedStyle.Render("⏸ paused") + "  " + statusStyle.Render(line) + "\n")
	case p.Done():
		b.WriteString(statusStyle.Render(p.Status+"  "+line) + "\n")
	default:
		b.WriteString(m.spinner.View() + " " + statusStyle.Render(line) + "\n")
	}

	if lastErr := m.session.LastError(); lastErr != "" {
		b.WriteString(errStyle.Render("poll error: "+lastErr) + "\n")
	}
	if m.notice != "" {
		b.WriteString(statusStyle.Render(m.notice) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("p pause • r resume • c cancel • q detach") + "\n")
	return b.String()
}

// Run drives the progress view until the session finishes or the user
// detaches.
func Run(ctx context.Context, session *batch.Session) error {
	program := tea.NewProgram(NewModel(ctx, session))
	_, err := program.Run()
	return err
}
