package tui

import (
	"fmt"
	"strings"

	"github.com/bwharrington/MarkdownPlus-sub001/internal/review"
	"github.com/charmbracelet/lipgloss"
)

// Styles.
var (
	// Top and bottom bars.
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	// Diff lines.
	addedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	removedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	contextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Focused hunk variants.
	focusedAddedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34")).
				Bold(true)

	focusedRemovedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	// Gutter marker for the focused hunk.
	focusMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	// Resolution state shown next to a hunk's anchor line.
	anchorHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	// Cancel confirmation prompt.
	cancelPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	// Counters.
	pendingCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("220")).
				Bold(true)
)

// renderLine styles one projected display line.
func renderLine(l review.DisplayLine, focusedHelp bool) string {
	gutter := "  "
	if l.Current {
		gutter = focusMarkStyle.Render("▌ ")
	}

	var body string
	switch l.Kind {
	case review.LineRemoved:
		st := removedStyle
		if l.Current {
			st = focusedRemovedStyle
		}
		body = st.Render("- " + l.Text)
	case review.LineAdded:
		st := addedStyle
		if l.Current {
			st = focusedAddedStyle
		}
		body = st.Render("+ " + l.Text)
	default:
		body = contextStyle.Render("  " + l.Text)
	}

	if l.Anchor && l.Current && focusedHelp {
		body += anchorHintStyle.Render("   ◀ a:accept r:reject")
	}
	return gutter + body
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTopBar())
	b.WriteByte('\n')

	// Content area.
	viewH := m.viewHeight()
	end := m.offset + viewH
	if end > len(m.lines) {
		end = len(m.lines)
	}

	for i := m.offset; i < end; i++ {
		b.WriteString(renderLine(m.lines[i], true))
		b.WriteByte('\n')
	}

	// Pad remaining lines if content is shorter than viewport.
	for i := end - m.offset; i < viewH; i++ {
		b.WriteByte('\n')
	}

	if m.mode == modeConfirmCancel {
		decided := len(m.session.Hunks) - m.session.PendingCount()
		b.WriteString(cancelPromptStyle.Render(
			fmt.Sprintf(" Discard %d decision(s) and cancel? (y/N) ", decided)))
		b.WriteByte('\n')
	}

	b.WriteString(m.renderBottomBar())

	return b.String()
}

// renderTopBar shows the subject, change counters, and summary.
func (m Model) renderTopBar() string {
	added, removed := review.Stats(m.session)
	left := fmt.Sprintf(" Review: %s  %d change(s)  +%d -%d", m.subject, len(m.session.Hunks), added, removed)
	if m.session.Summary != "" {
		left += "  · " + m.session.Summary
	}

	right := hintStyle.Render("n/p:change  a/r:resolve  A:all  enter:commit  q:cancel ")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return barStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderBottomBar shows the focus position, pending counter, and status.
func (m Model) renderBottomBar() string {
	var left string
	if cur := m.session.Current; cur >= 0 {
		left = fmt.Sprintf(" Change %d/%d", cur+1, len(m.session.Hunks))
	} else {
		left = " No change selected"
	}

	if pending := m.session.PendingCount(); pending > 0 {
		left += "  " + pendingCountStyle.Render(fmt.Sprintf("%d pending", pending))
	} else if len(m.session.Hunks) > 0 {
		left += "  all resolved"
	}

	if m.statusMsg != "" {
		left += "  · " + m.statusMsg
	}
	return barStyle.Width(m.width).Render(left)
}
