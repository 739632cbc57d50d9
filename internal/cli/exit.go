package cli

import (
	"errors"

	"github.com/indaco/viceversion/internal/extract"
)

// Exit codes reported by the viceversion binary.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitNoBuildFile       = 2
	ExitToolFailed        = 3
	ExitMalformed         = 4
	ExitNoVersion         = 5
	ExitAmbiguousBuildSet = 6
)

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, extract.ErrAmbiguousBuildFiles):
		return ExitAmbiguousBuildSet
	case errors.Is(err, extract.ErrNoBuildFileFound):
		return ExitNoBuildFile
	case errors.Is(err, extract.ErrMalformedDescriptor):
		return ExitMalformed
	case errors.Is(err, extract.ErrNoVersionFound):
		return ExitNoVersion
	case errors.Is(err, extract.ErrExternalToolFailed):
		return ExitToolFailed
	default:
		return ExitFailure
	}
}
