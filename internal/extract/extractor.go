package extract

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/descriptor"
)

// Extractor turns a selected descriptor into a version string.
type Extractor interface {
	// Name identifies the extractor in logs.
	Name() string

	// Extract returns the version declared by sel.Primary (and, for formats
	// that need it, sel.Related). The string is returned as reported.
	Extract(ctx context.Context, sel descriptor.Selection) (string, error)
}

// Commands holds the global build-tool command lines. The first element is
// the executable; the rest are prepended to every invocation.
type Commands struct {
	Maven  []string
	Python []string
	Gradle []string
}

// DefaultCommands returns the stock build-tool commands.
func DefaultCommands() Commands {
	return Commands{
		Maven:  []string{"mvn"},
		Python: []string{"python"},
		Gradle: []string{"gradle"},
	}
}

// Options carries the collaborators every extractor is built from.
type Options struct {
	FS       core.FileSystem
	Runner   core.CommandRunner
	Logger   *log.Logger
	Getenv   func(string) string
	Commands Commands

	// Offline makes extractors that can read a descriptor statically do so
	// instead of invoking a build tool.
	Offline bool
}

// WithDefaults returns a copy of o with every unset collaborator filled in.
func (o Options) WithDefaults() Options {
	if o.FS == nil {
		o.FS = core.NewOSFileSystem()
	}
	if o.Runner == nil {
		o.Runner = core.NewOSCommandRunner(core.TimeoutDefault)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	defaults := DefaultCommands()
	if len(o.Commands.Maven) == 0 {
		o.Commands.Maven = defaults.Maven
	}
	if len(o.Commands.Python) == 0 {
		o.Commands.Python = defaults.Python
	}
	if len(o.Commands.Gradle) == 0 {
		o.Commands.Gradle = defaults.Gradle
	}
	return o
}

// Run executes cmd through the runner and converts failures into a
// *ToolError.
func Run(ctx context.Context, runner core.CommandRunner, cmd core.Command) (*core.CommandResult, error) {
	res, err := runner.Run(ctx, cmd)
	if err != nil {
		te := &ToolError{Command: cmd.String(), Err: err}
		if res != nil {
			te.ExitCode = res.ExitCode
			te.Stderr = res.Stderr
		}
		return res, te
	}
	return res, nil
}

// Tool splits a configured command into a core.Command with extra args
// appended.
func Tool(command []string, dir string, args ...string) core.Command {
	return core.Command{
		Name: command[0],
		Args: append(append([]string(nil), command[1:]...), args...),
		Dir:  dir,
	}
}
