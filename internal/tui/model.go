package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bwharrington/MarkdownPlus-sub001/internal/review"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// tuiMode tracks which input mode we're in.
type tuiMode int

const (
	modeReview        tuiMode = iota
	modeConfirmCancel         // "Discard N decision(s)? (y/N)" confirmation
)

// ApplyFunc is called with the merged document when the user commits.
type ApplyFunc func(merged string) error

// Option configures the TUI model.
type Option func(*Model)

// WithApplyFunc sets the function invoked on commit.
func WithApplyFunc(fn ApplyFunc) Option {
	return func(m *Model) { m.applyFn = fn }
}

// Model is the Bubbletea model for the rewrite review TUI.
type Model struct {
	session *review.Session
	subject string // display name for the document under review
	applyFn ApplyFunc

	lines  []review.DisplayLine // current projection
	width  int
	height int

	// Scroll state.
	offset int // first visible line index

	// Mode.
	mode tuiMode

	// gg detection: was previous key 'g'?
	lastKeyG bool

	// Status message shown temporarily.
	statusMsg string

	committed bool
	merged    string
}

// New creates a review TUI for the given session.
func New(session *review.Session, subject string, opts ...Option) Model {
	m := Model{
		session: session,
		subject: subject,
		lines:   review.Project(session),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Committed reports whether the user committed the review, and the
// merged document if so.
func (m Model) Committed() (string, bool) {
	return m.merged, m.committed
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		// Clear status message on any keypress.
		m.statusMsg = ""

		if m.mode == modeConfirmCancel {
			return m.updateConfirmCancel(msg)
		}
		return m.updateReview(msg)
	}
	return m, nil
}

func (m Model) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	viewH := m.viewHeight()

	// Handle 'g' for gg (go to top).
	if msg.String() == "g" {
		if m.lastKeyG {
			m.offset = 0
			m.lastKeyG = false
			return m, nil
		}
		m.lastKeyG = true
		return m, nil
	}
	m.lastKeyG = false

	switch {
	case key.Matches(msg, keys.Cancel):
		return m.enterCancel()

	case key.Matches(msg, keys.Down):
		m.offset++

	case key.Matches(msg, keys.Up):
		m.offset--

	case key.Matches(msg, keys.HalfDown):
		m.offset += viewH / 2

	case key.Matches(msg, keys.HalfUp):
		m.offset -= viewH / 2

	case key.Matches(msg, keys.Top):
		m.offset = 0

	case key.Matches(msg, keys.Bottom):
		m.offset = len(m.lines) - viewH

	case key.Matches(msg, keys.NextHunk):
		m.session.NextHunk()
		m.refresh()
		m.scrollToCurrent()

	case key.Matches(msg, keys.PrevHunk):
		m.session.PrevHunk()
		m.refresh()
		m.scrollToCurrent()

	case key.Matches(msg, keys.Accept):
		m.resolveCurrent(true)

	case key.Matches(msg, keys.Reject):
		m.resolveCurrent(false)

	case key.Matches(msg, keys.AcceptAll):
		n := m.session.AcceptAll()
		m.refresh()
		m.statusMsg = fmt.Sprintf("Accepted %d change(s)", n)

	case key.Matches(msg, keys.Copy):
		if err := clipboard.WriteAll(m.session.Merged()); err != nil {
			m.statusMsg = "Clipboard error: " + err.Error()
		} else {
			m.statusMsg = "Merged document copied"
		}

	case key.Matches(msg, keys.Commit):
		return m.commit()
	}

	m.clampOffset()
	return m, nil
}

// resolveCurrent accepts or rejects the focused hunk and follows the
// focus to the next pending one.
func (m *Model) resolveCurrent(accept bool) {
	cur := m.session.Current
	if cur < 0 {
		m.statusMsg = "No change selected"
		return
	}
	h := m.session.Hunks[cur]
	if h.Status != review.StatusPending {
		m.statusMsg = "Change already " + h.Status.String()
		return
	}
	if accept {
		m.session.Accept(h.ID)
		m.statusMsg = "Accepted"
	} else {
		m.session.Reject(h.ID)
		m.statusMsg = "Rejected"
	}
	m.refresh()
	m.scrollToCurrent()
	if m.session.Resolved() {
		m.statusMsg += " · all changes resolved, enter to commit"
	}
}

func (m Model) commit() (tea.Model, tea.Cmd) {
	if pending := m.session.PendingCount(); pending > 0 {
		m.statusMsg = fmt.Sprintf("%d change(s) still pending", pending)
		return m, nil
	}
	merged := m.session.Merged()
	if m.applyFn != nil {
		// Write the document first so a failed apply leaves the session
		// open for another attempt.
		if err := m.applyFn(merged); err != nil {
			m.statusMsg = "Apply error: " + err.Error()
			return m, nil
		}
	}
	if _, err := m.session.Commit(); err != nil {
		m.statusMsg = "Commit error: " + err.Error()
		return m, nil
	}
	m.merged = merged
	m.committed = true
	return m, tea.Quit
}

// enterCancel asks for confirmation when decisions would be discarded.
func (m Model) enterCancel() (tea.Model, tea.Cmd) {
	decided := len(m.session.Hunks) - m.session.PendingCount()
	if decided == 0 {
		m.session.Cancel()
		return m, tea.Quit
	}
	m.mode = modeConfirmCancel
	return m, nil
}

func (m Model) updateConfirmCancel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.session.Cancel()
		return m, tea.Quit
	default:
		// Any other key resumes the review.
		m.mode = modeReview
		return m, nil
	}
}

// refresh re-derives the projection after a session mutation.
func (m *Model) refresh() {
	m.lines = review.Project(m.session)
}

// scrollToCurrent adjusts the offset so the focused hunk is visible.
func (m *Model) scrollToCurrent() {
	if m.session.Current < 0 {
		return
	}
	id := m.session.Hunks[m.session.Current].ID
	for i, l := range m.lines {
		if l.HunkID == id {
			viewH := m.viewHeight()
			if i < m.offset || i >= m.offset+viewH {
				// Put the hunk a third of the way down the view.
				m.offset = i - viewH/3
			}
			break
		}
	}
	m.clampOffset()
}

// viewHeight returns the number of lines available for content (minus
// top and bottom bars).
func (m *Model) viewHeight() int {
	h := m.height - 2
	if m.mode == modeConfirmCancel {
		h-- // prompt line takes one row
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) clampOffset() {
	maxOff := len(m.lines) - m.viewHeight()
	if maxOff < 0 {
		maxOff = 0
	}
	if m.offset > maxOff {
		m.offset = maxOff
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
