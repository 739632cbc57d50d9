// Package gradle extracts the project version from a Gradle build by
// injecting a temporary init script that prints it.
package gradle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
	"github.com/indaco/viceversion/internal/proxy"
)

// wrapperName is the project-local Gradle wrapper.
const wrapperName = "gradlew"

// androidPlugin matches Android Gradle plugin references in a build file.
var androidPlugin = regexp.MustCompile(`com\.android\.(application|library)|android\s*\{`)

// Extractor runs Gradle with the viceversion init script.
type Extractor struct {
	fs      core.FileSystem
	runner  core.CommandRunner
	logger  *log.Logger
	getenv  func(string) string
	command []string
}

// New creates a Gradle Extractor.
func New(opts extract.Options) *Extractor {
	opts = opts.WithDefaults()
	return &Extractor{
		fs:      opts.FS,
		runner:  opts.Runner,
		logger:  opts.Logger,
		getenv:  opts.Getenv,
		command: opts.Commands.Gradle,
	}
}

// Ensure Extractor implements extract.Extractor.
var _ extract.Extractor = (*Extractor)(nil)

func (e *Extractor) Name() string { return "gradle" }

// Extract writes the init script, runs the task and removes the script on
// every path out, reporting a failed removal as an error.
func (e *Extractor) Extract(ctx context.Context, sel descriptor.Selection) (version string, err error) {
	buildFile := sel.Primary.Path
	dir := filepath.Dir(buildFile)
	taskFile := filepath.Join(dir, TaskFileName)

	e.warnAndroid(ctx, buildFile)

	if err := e.fs.WriteFile(ctx, taskFile, []byte(Script()), core.PermScript); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("gradle: refusing to overwrite existing %s: %w", taskFile, extract.ErrExternalToolFailed)
		}
		return "", fmt.Errorf("gradle: failed to write init script: %w", err)
	}
	defer func() {
		if rmErr := e.fs.Remove(context.WithoutCancel(ctx), taskFile); rmErr != nil {
			e.logger.Error("failed to remove init script", "file", taskFile, "err", rmErr)
			if err == nil {
				version = ""
				err = fmt.Errorf("gradle: failed to remove init script %s: %w", taskFile, rmErr)
			}
		}
	}()

	args := e.args(buildFile, taskFile)

	out, err := e.run(ctx, dir, args)
	if err != nil {
		return "", err
	}
	return e.parse(buildFile, out)
}

// args builds the task invocation, with proxy properties appended.
func (e *Extractor) args(buildFile, taskFile string) []string {
	args := []string{"-b", buildFile, "-I", taskFile, "-q", TaskName}

	settings, perr := proxy.FromEnv(e.getenv)
	if perr != nil {
		e.logger.Warn("ignoring invalid proxy setting", "err", perr)
	}
	if !settings.IsEmpty() {
		props := settings.SystemProperties()
		e.logger.Debug("forwarding proxy settings", "props", strings.Join(proxy.Redacted(props), " "))
		args = append(args, props...)
	}
	return args
}

// run prefers the project wrapper and falls back once to the global command
// when the wrapper prints nothing. A wrapper that timed out is not retried.
func (e *Extractor) run(ctx context.Context, dir string, args []string) (string, error) {
	global := extract.Tool(e.command, dir, args...)

	wrapper, ok := e.wrapper(ctx, dir)
	if !ok {
		return e.exec(ctx, global)
	}

	cmd := core.Command{Name: wrapper, Args: args, Dir: dir}
	e.logger.Debug("running gradle wrapper", "cmd", cmd.String())
	res, err := e.runner.Run(ctx, cmd)
	if res != nil && strings.TrimSpace(res.Stdout) != "" {
		if err != nil {
			return "", fmt.Errorf("gradle: %w", toolError(cmd, res, err))
		}
		return res.Stdout, nil
	}
	if ctx.Err() != nil || errors.Is(err, core.ErrCommandTimeout) {
		return "", fmt.Errorf("gradle: %w", toolError(cmd, res, err))
	}

	e.logger.Warn("gradle wrapper produced no output, retrying with global gradle", "wrapper", wrapper, "err", err)
	return e.exec(ctx, global)
}

func (e *Extractor) exec(ctx context.Context, cmd core.Command) (string, error) {
	e.logger.Debug("running gradle", "cmd", cmd.String())
	res, err := extract.Run(ctx, e.runner, cmd)
	if err != nil {
		return "", fmt.Errorf("gradle: %w", err)
	}
	return res.Stdout, nil
}

// wrapper returns the path of dir/gradlew when it is a regular file.
func (e *Extractor) wrapper(ctx context.Context, dir string) (string, bool) {
	path := filepath.Join(dir, wrapperName)
	info, err := e.fs.Stat(ctx, path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// parse takes the version from the first "<project>:<version>" line.
func (e *Extractor) parse(buildFile, out string) (string, error) {
	lines := nonBlankLines(out)
	if len(lines) == 0 {
		return "", extract.NoVersion(buildFile, fmt.Errorf("gradle task printed nothing"))
	}
	if len(lines) > 1 {
		e.logger.Warn("several project versions found, using the first", "count", len(lines), "first", lines[0])
	}

	_, version, ok := strings.Cut(lines[0], ":")
	version = strings.TrimSpace(version)
	if !ok || version == "" {
		return "", extract.NoVersion(buildFile, fmt.Errorf("unexpected gradle output %q", lines[0]))
	}
	return version, nil
}

// warnAndroid flags Android builds when ANDROID_HOME is unset, since Gradle
// may then fail to configure the android extension.
func (e *Extractor) warnAndroid(ctx context.Context, buildFile string) {
	if e.getenv("ANDROID_HOME") != "" {
		return
	}
	data, err := e.fs.ReadFile(ctx, buildFile)
	if err != nil || !androidPlugin.Match(data) {
		return
	}
	e.logger.Warn("ANDROID_HOME is not set; Android version detection may be unreliable")
}

func toolError(cmd core.Command, res *core.CommandResult, err error) error {
	te := &extract.ToolError{Command: cmd.String(), Err: err}
	if err == nil {
		te.Err = fmt.Errorf("no output")
	}
	if res != nil {
		te.ExitCode = res.ExitCode
		te.Stderr = res.Stderr
	}
	return te
}

func nonBlankLines(s string) []string {
	var lines []string
	for line := range strings.Lines(s) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
