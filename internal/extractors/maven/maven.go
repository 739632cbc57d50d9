// Package maven extracts the project version from a Maven pom.xml.
package maven

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"deps.dev/util/maven"
	"github.com/charmbracelet/log"
	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
)

// evaluateGoal is the help-plugin goal that prints a POM expression.
const evaluateGoal = "org.apache.maven.plugins:maven-help-plugin:2.1.1:evaluate"

// maxInterpolationPasses bounds nested property expansion such as
// ${revision} -> ${major}.${minor}.
const maxInterpolationPasses = 10

var propertyRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// Extractor asks Maven to evaluate project.version, or reads the POM
// directly in offline mode.
type Extractor struct {
	fs      core.FileSystem
	runner  core.CommandRunner
	logger  *log.Logger
	command []string
	offline bool
}

// New creates a Maven Extractor.
func New(opts extract.Options) *Extractor {
	opts = opts.WithDefaults()
	return &Extractor{
		fs:      opts.FS,
		runner:  opts.Runner,
		logger:  opts.Logger,
		command: opts.Commands.Maven,
		offline: opts.Offline,
	}
}

// Ensure Extractor implements extract.Extractor.
var _ extract.Extractor = (*Extractor)(nil)

func (e *Extractor) Name() string { return "maven" }

func (e *Extractor) Extract(ctx context.Context, sel descriptor.Selection) (string, error) {
	path := sel.Primary.Path
	if e.offline {
		return e.readPOM(ctx, path)
	}

	cmd := extract.Tool(e.command, filepath.Dir(path), "-f", path, evaluateGoal, "-Dexpression=project.version")
	e.logger.Debug("running maven", "cmd", cmd.String())

	res, err := extract.Run(ctx, e.runner, cmd)
	if err != nil {
		return "", fmt.Errorf("maven: %w", err)
	}

	version, ok := ParseEvaluateOutput(res.Stdout)
	if !ok {
		return "", fmt.Errorf("maven: %w", &extract.ToolError{
			Command: cmd.String(),
			Stderr:  res.Stderr,
			Err:     fmt.Errorf("no version line in output"),
		})
	}
	return version, nil
}

// ParseEvaluateOutput returns the first non-blank line that is not Maven log
// output. Log lines start with "[" (e.g. "[INFO] Scanning for projects...").
func ParseEvaluateOutput(out string) (string, bool) {
	for line := range strings.Lines(out) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		return line, true
	}
	return "", false
}

// readPOM decodes the POM and returns its version with property references
// expanded.
func (e *Extractor) readPOM(ctx context.Context, path string) (string, error) {
	data, err := e.fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}

	var project maven.Project
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&project); err != nil {
		return "", extract.Malformed(path, err)
	}
	if err := project.Interpolate(); err != nil {
		return "", extract.Malformed(path, fmt.Errorf("could not interpolate Maven project: %w", err))
	}

	if project.Version == "" && project.Parent.Version != "" {
		e.logger.Debug("using parent version", "file", path)
	}
	version, err := resolveVersion(&project)
	if err != nil {
		return "", extract.NoVersion(path, err)
	}
	return version, nil
}

// resolveVersion returns the project version, falling back to the parent's
// as Maven does for inherited versions. Interpolate leaves the project
// coordinates untouched, so ${...} references in them are expanded here from
// the POM's own properties.
func resolveVersion(project *maven.Project) (string, error) {
	own := string(project.Version)
	parent := string(project.Parent.Version)

	version := own
	if version == "" {
		version = parent
	}
	if version == "" {
		return "", fmt.Errorf("project declares no version")
	}

	props := make(map[string]string, len(project.Properties.Properties)+4)
	for _, p := range project.Properties.Properties {
		props[p.Name] = p.Value
	}
	props["project.parent.version"] = parent
	props["parent.version"] = parent
	props["project.version"] = version
	props["version"] = version

	expanded := maven.String(interpolate(version, props))
	if expanded.ContainsProperty() {
		return "", fmt.Errorf("version %q references undefined properties", expanded)
	}
	return string(expanded), nil
}

// interpolate substitutes known ${name} references until nothing changes.
// Unknown references are left in place.
func interpolate(s string, props map[string]string) string {
	for range maxInterpolationPasses {
		if !strings.Contains(s, "${") {
			return s
		}
		next := propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
			if v, ok := props[ref[2:len(ref)-1]]; ok {
				return v
			}
			return ref
		})
		if next == s {
			return s
		}
		s = next
	}
	return s
}
