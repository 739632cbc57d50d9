package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/indaco/viceversion/internal/cli"
	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
	"github.com/indaco/viceversion/internal/printer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := runCLI(ctx, os.Args, os.Stdout, os.Stderr)
	stop()

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

// runCLI runs the root command with the given arguments and output streams.
func runCLI(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return cli.New(stdout, stderr).Run(ctx, args)
}

func reportError(w io.Writer, err error) {
	printer.PrintError(w, err)

	var tool *extract.ToolError
	switch {
	case errors.As(err, &tool):
		printer.PrintHint(w, "run with --verbose to see the full tool invocation")
	case errors.Is(err, extract.ErrNoBuildFileFound):
		printer.PrintHint(w, "looked for "+supportedDescriptors())
	case errors.Is(err, extract.ErrAmbiguousBuildFiles):
		printer.PrintWarning(w, "strict tie-break refused to choose between build files")
		printer.PrintHint(w, "use --tiebreak mtime or --tiebreak first to pick one automatically")
	}
}

func supportedDescriptors() string {
	known := descriptor.DefaultKnown()
	names := make([]string, 0, len(known))
	for _, k := range known {
		names = append(names, k.Description)
	}
	return strings.Join(names, ", ")
}
