package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

func OK(msg string) {
	fmt.Fprintln(stdout, current.Success.Render(current.SymDone+" "+msg))
}

func Fail(msg string) {
	fmt.Fprintln(stderr, current.Error.Render("✖ "+msg))
}
