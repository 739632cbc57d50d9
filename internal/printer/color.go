package printer

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// isTerminal is swapped in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

// ConfigureColor disables styling when noColor is set, NO_COLOR is present
// or out is not a terminal. It returns whether colour remains enabled.
func ConfigureColor(out *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" || out == nil || !isTerminal(out) {
		SetNoColor()
		return false
	}
	lipgloss.SetColorProfile(termenv.NewOutput(out).EnvColorProfile())
	return true
}

// SetNoColor makes every style render plain text.
func SetNoColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
