package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/indaco/viceversion/internal/descriptor"
)

var (
	// ErrNoBuildFileFound means no recognized descriptor was located.
	ErrNoBuildFileFound = errors.New("no build file found")

	// ErrAmbiguousBuildFiles means several descriptor kinds were located and
	// the strict tie-break refused to choose.
	ErrAmbiguousBuildFiles = errors.New("multiple build files found")

	// ErrExternalToolFailed means a build tool exited non-zero or produced no
	// usable output.
	ErrExternalToolFailed = errors.New("external tool failed")

	// ErrMalformedDescriptor means a descriptor could not be parsed or lacked
	// the expected field.
	ErrMalformedDescriptor = errors.New("malformed descriptor")

	// ErrNoVersionFound means extraction ran but yielded no version.
	ErrNoVersionFound = errors.New("no version found")
)

// maxStderr bounds how much tool stderr is kept in a ToolError message.
const maxStderr = 512

// ToolError describes a failed external tool invocation. It matches
// ErrExternalToolFailed with errors.Is.
type ToolError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %q", ErrExternalToolFailed, e.Command)
	if e.ExitCode != 0 {
		fmt.Fprintf(&sb, " exited with code %d", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		if len(stderr) > maxStderr {
			stderr = stderr[:maxStderr] + "..."
		}
		fmt.Fprintf(&sb, "\nstderr: %s", stderr)
	}
	return sb.String()
}

func (e *ToolError) Unwrap() error { return e.Err }

func (e *ToolError) Is(target error) bool { return target == ErrExternalToolFailed }

// DescriptorError ties a failure to the descriptor it happened on. It
// matches its Kind sentinel with errors.Is and unwraps to the cause.
type DescriptorError struct {
	Path string
	Kind error
	Err  error
}

// Malformed returns a DescriptorError matching ErrMalformedDescriptor.
func Malformed(path string, err error) error {
	return &DescriptorError{Path: path, Kind: ErrMalformedDescriptor, Err: err}
}

// NoVersion returns a DescriptorError matching ErrNoVersionFound.
func NoVersion(path string, err error) error {
	return &DescriptorError{Path: path, Kind: ErrNoVersionFound, Err: err}
}

func (e *DescriptorError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v in %q", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v in %q: %v", e.Kind, e.Path, e.Err)
}

func (e *DescriptorError) Unwrap() error { return e.Err }

func (e *DescriptorError) Is(target error) bool { return target == e.Kind }

// AmbiguousError lists the candidates the strict tie-break refused to choose
// between. It matches ErrAmbiguousBuildFiles.
type AmbiguousError struct {
	Candidates []descriptor.File
}

func (e *AmbiguousError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		names = append(names, c.Path)
	}
	return fmt.Sprintf("%v: %s", ErrAmbiguousBuildFiles, strings.Join(names, ", "))
}

func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguousBuildFiles }
