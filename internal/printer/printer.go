// Package printer renders styled diagnostics and the version output.
package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions for consistent console output across the application.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
)

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// PrintError writes an "error:" line for err to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", Bold(Error("error:")), err)
}

// PrintWarning writes a "warning:" line to w.
func PrintWarning(w io.Writer, text string) {
	fmt.Fprintf(w, "%s %s\n", Bold(Warning("warning:")), text)
}

// PrintHint writes a faint follow-up line to w.
func PrintHint(w io.Writer, text string) {
	fmt.Fprintln(w, Faint(text))
}
