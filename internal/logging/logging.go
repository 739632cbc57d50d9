// Package logging builds the diagnostic logger shared by every component.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix tags every log line.
const Prefix = "viceversion"

// New returns a logger writing to w at Info level, or Debug when verbose.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
}
