// Package cli defines the viceversion root command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/indaco/viceversion/internal/config"
	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/extract"
	"github.com/indaco/viceversion/internal/logging"
	"github.com/indaco/viceversion/internal/printer"
	"github.com/indaco/viceversion/internal/resolver"
	"github.com/indaco/viceversion/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// Function variables for testability.
var (
	newFileSystem = func() core.FileSystem { return core.NewOSFileSystem() }
	newRunner     = func(timeout time.Duration) core.CommandRunner { return core.NewOSCommandRunner(timeout) }
	getwd         = os.Getwd
)

// New builds the root command. The detected version is written to stdout;
// diagnostics go to stderr.
func New(stdout, stderr io.Writer) *urfavecli.Command {
	return &urfavecli.Command{
		Name:        "viceversion",
		Version:     version.GetVersion(),
		Usage:       "Print the version declared by a project's build files",
		UsageText:   "viceversion [options]",
		Description: "Looks for pom.xml, setup.py, package.json, build.gradle and Info.plist\n" +
			"in the project directory and prints the version the build declares.",
		HideVersion: true,
		Writer:      stdout,
		ErrWriter:   stderr,
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log discovery and tool invocations to stderr",
			},
			&urfavecli.StringFlag{
				Name:        "directory",
				Aliases:     []string{"d"},
				Usage:       "Project directory to inspect",
				DefaultText: "current directory",
			},
			&urfavecli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file (default: .viceversion.yaml in the project directory)",
				Sources: urfavecli.EnvVars("VICEVERSION_CONFIG"),
			},
			&urfavecli.StringFlag{
				Name:        "tiebreak",
				Usage:       "Policy when several build files exist: mtime, first or strict",
				DefaultText: string(resolver.DefaultPolicy),
				Sources:     urfavecli.EnvVars("VICEVERSION_TIEBREAK"),
			},
			&urfavecli.IntFlag{
				Name:        "max-depth",
				Usage:       "How deep to search for Info.plist files (0 = project root only)",
				DefaultText: fmt.Sprint(core.DefaultDiscoveryDepth),
				Sources:     urfavecli.EnvVars("VICEVERSION_MAX_DEPTH"),
			},
			&urfavecli.DurationFlag{
				Name:        "timeout",
				Usage:       "Time limit for each build tool invocation (0 disables)",
				DefaultText: core.TimeoutDefault.String(),
				Sources:     urfavecli.EnvVars("VICEVERSION_TIMEOUT"),
			},
			&urfavecli.BoolFlag{
				Name:  "offline",
				Usage: "Read pom.xml directly instead of running Maven",
			},
			&urfavecli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or json",
				Value: string(printer.FormatText),
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&urfavecli.BoolFlag{
				Name:  "version",
				Usage: "Print the viceversion version",
			},
		},
		OnUsageError: func(_ context.Context, _ *urfavecli.Command, err error, _ bool) error {
			return err
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			noColor := cmd.Bool("no-color")
			if f, ok := stderr.(*os.File); ok {
				printer.ConfigureColor(f, noColor)
			} else {
				printer.SetNoColor()
			}
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			if cmd.Bool("version") {
				_, err := fmt.Fprintf(stdout, "%s version %s\n", cmd.Name, cmd.Version)
				return err
			}
			if cmd.Args().Present() {
				return fmt.Errorf("unexpected argument %q (use --directory)", cmd.Args().First())
			}
			logger := logging.New(stderr, cmd.Bool("verbose"))
			return run(ctx, cmd, stdout, logger)
		},
	}
}

// settings is the effective configuration after flags, environment and the
// configuration file have been merged.
type settings struct {
	dir      string
	policy   resolver.Policy
	maxDepth int
	timeout  time.Duration
	offline  bool
	format   printer.Format
	excludes []string
	commands extract.Commands
}

func run(ctx context.Context, cmd *urfavecli.Command, stdout io.Writer, logger *log.Logger) error {
	fs := newFileSystem()

	s, err := loadSettings(ctx, cmd, fs, logger)
	if err != nil {
		return err
	}

	reg := resolver.NewRegistry(extract.Options{
		FS:       fs,
		Runner:   newRunner(s.timeout),
		Logger:   logger,
		Commands: s.commands,
		Offline:  s.offline,
	})
	r := resolver.New(resolver.Options{
		FS:       fs,
		Registry: reg,
		Policy:   s.policy,
		Logger:   logger,
		MaxDepth: &s.maxDepth,
		Excludes: s.excludes,
	})

	res, err := r.Resolve(ctx, s.dir)
	if err != nil {
		return err
	}

	return printer.WriteVersion(stdout, s.format, printer.VersionOutput{
		Version: res.Version,
		Kind:    res.Descriptor.Kind.String(),
		File:    res.Descriptor.Path,
	})
}

func loadSettings(ctx context.Context, cmd *urfavecli.Command, fs core.FileSystem, logger *log.Logger) (settings, error) {
	var s settings

	s.dir = cmd.String("directory")
	if s.dir == "" {
		wd, err := getwd()
		if err != nil {
			return s, fmt.Errorf("failed to get working directory: %w", err)
		}
		s.dir = wd
	}

	cfg, err := config.LoadConfigFn(ctx, fs, s.dir, cmd.String("config"))
	if err != nil {
		return s, err
	}
	if cfg != nil {
		logger.Debug("loaded configuration", "file", cfg.Path)
	}
	if err := cfg.Validate(); err != nil {
		return s, err
	}

	tiebreak := cfg.Tiebreak()
	if cmd.IsSet("tiebreak") {
		tiebreak = cmd.String("tiebreak")
	}
	if s.policy, err = resolver.ParsePolicy(tiebreak); err != nil {
		return s, err
	}

	s.maxDepth, _ = cfg.MaxDepth()
	if cmd.IsSet("max-depth") {
		s.maxDepth = int(cmd.Int("max-depth"))
	}
	if s.maxDepth < 0 || s.maxDepth > core.MaxDiscoveryDepth {
		return s, fmt.Errorf("invalid --max-depth %d: must be between 0 and %d", s.maxDepth, core.MaxDiscoveryDepth)
	}

	if s.timeout, err = cfg.TimeoutDuration(); err != nil {
		return s, err
	}
	if cmd.IsSet("timeout") {
		s.timeout = cmd.Duration("timeout")
	}
	if s.timeout < 0 {
		return s, fmt.Errorf("invalid --timeout %v: must not be negative", s.timeout)
	}

	if s.format, err = printer.ParseFormat(cmd.String("format")); err != nil {
		return s, err
	}
	if s.commands, err = cfg.Commands(); err != nil {
		return s, err
	}
	s.offline = cmd.Bool("offline") || cfg.IsOffline()
	s.excludes = cfg.Excludes()

	logger.Debug("settings",
		"dir", s.dir,
		"tiebreak", s.policy,
		"max_depth", s.maxDepth,
		"timeout", s.timeout,
		"offline", s.offline,
	)
	return s, nil
}
