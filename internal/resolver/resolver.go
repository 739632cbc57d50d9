package resolver

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
	"github.com/indaco/viceversion/internal/locator"
)

// Result is a successful extraction.
type Result struct {
	// Version is the string reported by the extractor, unmodified.
	Version string

	// Descriptor is the file the version was extracted from.
	Descriptor descriptor.File
}

// Options configures a Resolver. Zero values select the defaults.
type Options struct {
	FS       core.FileSystem
	Registry *Registry
	Policy   Policy
	Logger   *log.Logger

	// MaxDepth bounds the search for recursive descriptor kinds. Nil keeps
	// the locator default.
	MaxDepth *int

	// Excludes are extra directory glob patterns skipped by the locator.
	Excludes []string
}

// Resolver finds and extracts a project's version.
type Resolver struct {
	locator  *locator.Locator
	registry *Registry
	policy   Policy
	logger   *log.Logger
}

// New creates a Resolver.
func New(opts Options) *Resolver {
	if opts.FS == nil {
		opts.FS = core.NewOSFileSystem()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry(extract.Options{FS: opts.FS, Logger: opts.Logger})
	}
	if opts.Policy == "" {
		opts.Policy = DefaultPolicy
	}

	locOpts := []locator.Option{
		locator.WithKnown(opts.Registry.Known()),
		locator.WithExcludes(opts.Excludes),
	}
	if opts.MaxDepth != nil {
		locOpts = append(locOpts, locator.WithMaxDepth(*opts.MaxDepth))
	}

	return &Resolver{
		locator:  locator.New(opts.FS, locOpts...),
		registry: opts.Registry,
		policy:   opts.Policy,
		logger:   opts.Logger,
	}
}

// Resolve locates the descriptors in dir, selects one and extracts its
// version.
func (r *Resolver) Resolve(ctx context.Context, dir string) (*Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %q: %w", dir, err)
	}

	files := r.locator.Find(ctx, abs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, f := range files {
		r.logger.Debug("found descriptor", "kind", f.Kind, "file", f.Path, "depth", f.Depth)
	}

	sel, err := r.policy.Select(files)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	r.logger.Debug("selected descriptor", "kind", sel.Primary.Kind, "file", sel.Primary.Path, "related", sel.Paths(), "policy", r.policy)

	extractor, err := r.registry.mustLookup(sel.Primary.Kind)
	if err != nil {
		return nil, err
	}

	version, err := extractor.Extract(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", extractor.Name(), err)
	}
	r.logger.Debug("extracted version", "version", version, "extractor", extractor.Name())

	return &Result{Version: version, Descriptor: sel.Primary}, nil
}
