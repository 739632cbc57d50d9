package resolver

import (
	"fmt"
	"slices"

	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
	"github.com/indaco/viceversion/internal/extractors/gradle"
	"github.com/indaco/viceversion/internal/extractors/maven"
	"github.com/indaco/viceversion/internal/extractors/packagejson"
	"github.com/indaco/viceversion/internal/extractors/plist"
	"github.com/indaco/viceversion/internal/extractors/setuppy"
)

// Registry maps each descriptor kind to its extractor. It is not modified
// after construction.
type Registry struct {
	byKind map[descriptor.Kind]extract.Extractor
}

// NewRegistry returns a Registry holding the built-in extractors, all built
// from opts.
func NewRegistry(opts extract.Options) *Registry {
	opts = opts.WithDefaults()
	return NewRegistryFrom(map[descriptor.Kind]extract.Extractor{
		descriptor.Maven:           maven.New(opts),
		descriptor.SetupScript:     setuppy.New(opts),
		descriptor.PackageManifest: packagejson.New(opts),
		descriptor.Gradle:          gradle.New(opts),
		descriptor.InfoPlist:       plist.New(opts),
	})
}

// NewRegistryFrom returns a Registry over a caller-supplied mapping. The map
// is copied.
func NewRegistryFrom(extractors map[descriptor.Kind]extract.Extractor) *Registry {
	byKind := make(map[descriptor.Kind]extract.Extractor, len(extractors))
	for k, e := range extractors {
		byKind[k] = e
	}
	return &Registry{byKind: byKind}
}

// Lookup returns the extractor for kind.
func (r *Registry) Lookup(kind descriptor.Kind) (extract.Extractor, bool) {
	e, ok := r.byKind[kind]
	return e, ok
}

// ForFilename returns the extractor for a canonical descriptor basename.
func (r *Registry) ForFilename(name string) (extract.Extractor, bool) {
	known, ok := descriptor.Lookup(name)
	if !ok {
		return nil, false
	}
	return r.Lookup(known.Kind)
}

// Kinds returns the registered kinds in declaration order.
func (r *Registry) Kinds() []descriptor.Kind {
	kinds := make([]descriptor.Kind, 0, len(r.byKind))
	for k := range r.byKind {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Known returns the descriptor table restricted to registered kinds, for
// use by the locator.
func (r *Registry) Known() []descriptor.Known {
	var known []descriptor.Known
	for _, k := range descriptor.DefaultKnown() {
		if _, ok := r.byKind[k.Kind]; ok {
			known = append(known, k)
		}
	}
	return known
}

func (r *Registry) mustLookup(kind descriptor.Kind) (extract.Extractor, error) {
	e, ok := r.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("no extractor registered for %s: %w", kind, extract.ErrNoBuildFileFound)
	}
	return e, nil
}
