package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/idilsaglam/duedo/internal/duedate"
	"github.com/idilsaglam/duedo/internal/model"
)

// EmptyMessage is shown wherever the list has no items.
const EmptyMessage = "No todos available. Add a todo to get started!"

const summaryTextWidth = 60

// Progress renders the done share of the list as a bar width cells wide
// (at least 5) followed by the percentage. An empty list reads 0%.
func (t Theme) Progress(done, pending, width int) string {
	width = max(width, 5)
	var ratio float64
	if total := done + pending; total > 0 {
		ratio = float64(done) / float64(total)
	}
	filled := min(int(ratio*float64(width)), width)
	return t.Success.Render(strings.Repeat(t.BarFull, filled)) +
		t.Muted.Render(strings.Repeat(t.BarEmpty, width-filled)) +
		fmt.Sprintf(" %3d%%", int(ratio*100))
}

// Header is the counters line shared by the TUI title and the summary.
func Header(done, pending int) string {
	t := current
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)
}

// Summary writes a framed snapshot of items to w, optionally grouped into
// pending and done sections.
func Summary(w io.Writer, items []model.Item, group bool, now time.Time) {
	t := current
	var done, pending int
	for _, it := range items {
		if it.Complete {
			done++
		} else {
			pending++
		}
	}

	var lines []string
	lines = append(lines, Header(done, pending))
	lines = append(lines, t.Progress(done, pending, 28))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(items, now)...)
	} else {
		lines = append(lines, flatLines(items, now)...)
	}
	fmt.Fprintln(w, t.PanelStyle().Render(strings.Join(lines, "\n")))
}

func flatLines(items []model.Item, now time.Time) []string {
	if len(items) == 0 {
		return []string{current.Muted.Render(EmptyMessage)}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		out = append(out, summaryLine(i+1, it, now))
	}
	return out
}

func summaryLine(n int, it model.Item, now time.Time) string {
	t := current
	idx := fmt.Sprintf("%2d.", n)
	box, text := t.Muted.Render(t.BoxUnchecked), it.Text
	if it.Complete {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(it.Text)
	}

	due := t.Muted.Render("Due: " + it.DueDate)
	if !it.Complete && duedate.Overdue(it.DueDate, now) {
		due = t.Overdue.Render("Due: " + it.DueDate + " (overdue)")
	}

	// continuation lines line up under the text column
	prefix := fmt.Sprintf("%s %s ", t.Muted.Render(idx), box)
	pad := len(idx) + 1 + len([]rune(t.BoxUnchecked)) + 1
	wrapped := wordwrap.String(text, summaryTextWidth)
	if first, rest, ok := strings.Cut(wrapped, "\n"); ok {
		wrapped = first + "\n" + indent.String(rest, uint(pad))
	}
	return prefix + wrapped + "  " + due
}

func groupLines(items []model.Item, now time.Time) []string {
	t := current
	var pend, done []model.Item
	for _, it := range items {
		if it.Complete {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, now)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done, now)...)
	}
	return lines
}
