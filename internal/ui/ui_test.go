package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/duedo/internal/model"
)

func useMono(t *testing.T) {
	t.Helper()
	prev := current
	SetTheme("mono")
	t.Cleanup(func() { current = prev })
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name                 string
		theme                string
		done, pending, width int
		want                 string
	}{
		{name: "empty list", theme: "classic", done: 0, pending: 0, width: 10, want: "░░░░░░░░░░   0%"},
		{name: "half", theme: "classic", done: 1, pending: 1, width: 10, want: "█████░░░░░  50%"},
		{name: "all done", theme: "classic", done: 3, pending: 0, width: 10, want: "██████████ 100%"},
		{name: "narrow width clamps", theme: "classic", done: 1, pending: 0, width: 2, want: "█████ 100%"},
		{name: "mono quarter", theme: "mono", done: 1, pending: 3, width: 8, want: "##......  25%"},
		{name: "neon half", theme: "neon", done: 2, pending: 2, width: 6, want: "▰▰▰▱▱▱  50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThemeFor(tt.theme).Progress(tt.done, tt.pending, tt.width); got != tt.want {
				t.Errorf("Progress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestThemeFor(t *testing.T) {
	if got := ThemeFor("NEON").Name; got != "neon" {
		t.Errorf("ThemeFor(NEON) = %q", got)
	}
	if got := ThemeFor("pastel").Name; got != "classic" {
		t.Errorf("unknown theme should fall back to classic, got %q", got)
	}
	if got := ThemeFor("mono").BoxChecked; got != "[x]" {
		t.Errorf("mono checked box = %q", got)
	}
}

func TestSummaryEmpty(t *testing.T) {
	useMono(t)
	var buf bytes.Buffer
	Summary(&buf, nil, false, time.Now())

	out := buf.String()
	if !strings.Contains(out, EmptyMessage) {
		t.Errorf("missing empty message:\n%s", out)
	}
	if !strings.Contains(out, "Total 0") {
		t.Errorf("missing counters:\n%s", out)
	}
}

func TestSummaryFlat(t *testing.T) {
	useMono(t)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)
	items := []model.Item{
		{Text: "Buy milk", DueDate: "2024-01-01"},
		{Text: "File taxes", DueDate: "2024-01-01", Complete: true},
		{Text: "Call mum", DueDate: "2024-02-01"},
	}

	var buf bytes.Buffer
	Summary(&buf, items, false, now)
	out := buf.String()

	for _, want := range []string{
		"1. [ ] Buy milk  Due: 2024-01-01 (overdue)",
		"2. [x] File taxes  Due: 2024-01-01",
		"3. [ ] Call mum  Due: 2024-02-01",
		"x 1",
		"- 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "File taxes  Due: 2024-01-01 (overdue)") {
		t.Errorf("completed item marked overdue:\n%s", out)
	}
}

func TestSummaryGrouped(t *testing.T) {
	useMono(t)
	items := []model.Item{
		{Text: "A", DueDate: "2030-01-01", Complete: true},
		{Text: "B", DueDate: "2030-01-02"},
	}

	var buf bytes.Buffer
	Summary(&buf, items, true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	out := buf.String()

	pendingAt := strings.Index(out, "Pending")
	doneAt := strings.Index(out, "Done")
	bAt := strings.Index(out, "] B")
	aAt := strings.Index(out, "] A")
	if pendingAt < 0 || doneAt < 0 || bAt < 0 || aAt < 0 {
		t.Fatalf("missing sections:\n%s", out)
	}
	if !(pendingAt < bAt && bAt < doneAt && doneAt < aAt) {
		t.Errorf("items not grouped under their sections:\n%s", out)
	}
}

func TestSummaryWrapsLongText(t *testing.T) {
	useMono(t)
	long := strings.Repeat("word ", 30)
	var buf bytes.Buffer
	Summary(&buf, []model.Item{{Text: long, DueDate: "2030-01-01"}}, false, time.Now())

	for _, ln := range strings.Split(buf.String(), "\n") {
		if len(ln) > summaryTextWidth+40 {
			t.Errorf("line not wrapped (%d chars): %q", len(ln), ln)
		}
	}
}

func TestOKAndFail(t *testing.T) {
	useMono(t)
	var out, errOut bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = prevOut, prevErr })

	OK("added")
	Fail("nope")

	if got := strings.TrimSpace(out.String()); got != "x added" {
		t.Errorf("OK wrote %q", got)
	}
	if got := strings.TrimSpace(errOut.String()); got != "✖ nope" {
		t.Errorf("Fail wrote %q", got)
	}
}
