package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Command describes one external process invocation.
type Command struct {
	// Name is the executable, looked up in PATH when it has no separator.
	Name string

	// Args are passed verbatim, without shell interpretation.
	Args []string

	// Dir is the working directory; empty means the current one.
	Dir string
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// CommandResult holds the captured output of a finished process.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CommandRunner runs external tools and captures their output.
//
// Run returns a non-nil result whenever the process was started, even if it
// exited non-zero; the error is then an *exec.ExitError (or a timeout error).
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (*CommandResult, error)
}

// ErrCommandTimeout is returned when a command exceeds the runner's timeout.
var ErrCommandTimeout = errors.New("command timed out")

// OSCommandRunner implements CommandRunner with os/exec.
type OSCommandRunner struct {
	// Timeout bounds every invocation; zero disables the bound.
	Timeout time.Duration

	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewOSCommandRunner returns a runner using exec.CommandContext.
func NewOSCommandRunner(timeout time.Duration) *OSCommandRunner {
	return &OSCommandRunner{
		Timeout:     timeout,
		execCommand: exec.CommandContext,
	}
}

// Ensure OSCommandRunner implements CommandRunner.
var _ CommandRunner = (*OSCommandRunner)(nil)

// Run executes cmd and waits for it to finish.
func (r *OSCommandRunner) Run(ctx context.Context, cmd Command) (*CommandResult, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("empty command")
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	//nolint:gosec // G204: running build tools is the purpose of this runner
	c := r.execCommand(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	result := &CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			result.ExitCode = -1
			return result, fmt.Errorf("%w after %v: %s", ErrCommandTimeout, r.Timeout, cmd)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, err
		}
		// The process never started (missing binary, bad working dir).
		return nil, err
	}

	return result, nil
}
