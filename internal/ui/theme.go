package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles styles, symbols and the panel border.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Done, Selected, Overdue, Help                 lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	BarFull, BarEmpty        string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

var current = ThemeFor("classic")

// ThemeFor returns the named theme; unknown names get classic.
func ThemeFor(name string) Theme {
	base := lipgloss.NewStyle()
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:     "neon",
			Title:    base.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:    base.Foreground(lipgloss.Color("8")),
			Accent:   base.Foreground(lipgloss.Color("14")),
			Success:  base.Foreground(lipgloss.Color("10")),
			Error:    base.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  base.Foreground(lipgloss.Color("11")),
			Done:     base.Faint(true).Strikethrough(true),
			Selected: base.Bold(true).Foreground(lipgloss.Color("13")),
			Overdue:  base.Foreground(lipgloss.Color("9")),
			Help:     base.Faint(true),

			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			BarFull: "▰", BarEmpty: "▱",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		return Theme{
			Name:     "mono",
			Title:    base,
			Muted:    base,
			Accent:   base,
			Success:  base,
			Error:    base,
			Pending:  base,
			Done:     base,
			Selected: base,
			Overdue:  base,
			Help:     base,

			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			BarFull: "#", BarEmpty: ".",
			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		return Theme{
			Name:     "classic",
			Title:    base.Bold(true),
			Muted:    base.Faint(true),
			Accent:   base.Foreground(lipgloss.Color("12")),
			Success:  base.Foreground(lipgloss.Color("42")),
			Error:    base.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  base.Foreground(lipgloss.Color("214")),
			Done:     base.Faint(true).Strikethrough(true),
			Selected: base.Bold(true).Reverse(true),
			Overdue:  base.Foreground(lipgloss.Color("9")),
			Help:     base.Faint(true),

			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			BarFull: "█", BarEmpty: "░",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}

func SetTheme(name string) { current = ThemeFor(name) }

// Expose what renderers need
func Current() Theme { return current }

// PanelStyle is the framed box used around the list and the summary.
func (t Theme) PanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
}
