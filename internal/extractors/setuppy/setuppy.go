// Package setuppy extracts the version from a Python setup.py script by
// running it with --version.
package setuppy

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
)

// Extractor runs "python setup.py --version" in the script's directory.
type Extractor struct {
	runner  core.CommandRunner
	logger  *log.Logger
	command []string
}

// New creates a setup.py Extractor.
func New(opts extract.Options) *Extractor {
	opts = opts.WithDefaults()
	return &Extractor{
		runner:  opts.Runner,
		logger:  opts.Logger,
		command: opts.Commands.Python,
	}
}

// Ensure Extractor implements extract.Extractor.
var _ extract.Extractor = (*Extractor)(nil)

func (e *Extractor) Name() string { return "setuppy" }

func (e *Extractor) Extract(ctx context.Context, sel descriptor.Selection) (string, error) {
	path := sel.Primary.Path
	cmd := extract.Tool(e.command, filepath.Dir(path), filepath.Base(path), "--version")
	e.logger.Debug("running setup script", "cmd", cmd.String(), "dir", cmd.Dir)

	res, err := extract.Run(ctx, e.runner, cmd)
	if err != nil {
		return "", fmt.Errorf("setup.py: %w", err)
	}

	version := strings.TrimSpace(res.Stdout)
	if version == "" {
		return "", fmt.Errorf("setup.py: %w", &extract.ToolError{
			Command: cmd.String(),
			Stderr:  res.Stderr,
			Err:     fmt.Errorf("empty output"),
		})
	}
	return version, nil
}
