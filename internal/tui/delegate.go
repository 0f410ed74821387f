package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/idilsaglam/duedo/internal/duedate"
	"github.com/idilsaglam/duedo/internal/model"
	"github.com/idilsaglam/duedo/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct {
	model.Item
}

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return "Due: " + i.DueDate }
func (i listItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	now func() time.Time
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderRow(it.Item, index == m.Index(), m.Width(), d.now()))
}

func renderRow(it model.Item, selected bool, width int, now time.Time) string {
	t := ui.Current()

	prefix := "  "
	if selected {
		prefix = t.Selected.Render(">") + " "
	}

	box := t.Muted.Render(t.BoxUnchecked)
	if it.Complete {
		box = t.Success.Render(t.BoxChecked)
	}

	due := t.Muted.Render("Due: " + it.DueDate)
	switch {
	case it.Editing:
		due += " " + t.Accent.Render("(editing)")
	case !it.Complete && duedate.Overdue(it.DueDate, now):
		due = t.Overdue.Render("Due: " + it.DueDate + " (overdue)")
	}

	// whatever is left after the fixed columns goes to the text
	fixed := lipgloss.Width(prefix) + lipgloss.Width(box) + 1 + 2 + lipgloss.Width(due)
	room := width - fixed
	if room < 10 {
		room = 10
	}
	text := truncate.StringWithTail(it.Text, uint(room), "…")
	if it.Complete {
		text = t.Done.Render(text)
	}
	return prefix + box + " " + text + "  " + due
}
