// Package locator finds recognized descriptor files below a project root.
package locator

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/descriptor"
)

// skipDirs are never descended into.
var skipDirs = []string{"node_modules", "vendor", "Pods", "Carthage", "DerivedData", "__pycache__", "target", "dist", "build"}

// Locator walks a directory tree looking for descriptor files.
type Locator struct {
	fs       core.FileSystem
	known    []descriptor.Known
	maxDepth int
	excludes []string
}

// Option configures a Locator.
type Option func(*Locator)

// WithMaxDepth bounds recursion for recursive descriptor kinds. Zero limits
// the search to the root directory; negative values are treated as zero.
func WithMaxDepth(depth int) Option {
	return func(l *Locator) {
		l.maxDepth = max(depth, 0)
	}
}

// WithExcludes adds glob patterns matched against directory names and paths.
func WithExcludes(patterns []string) Option {
	return func(l *Locator) {
		l.excludes = append(l.excludes, patterns...)
	}
}

// WithKnown replaces the recognized descriptor table.
func WithKnown(known []descriptor.Known) Option {
	return func(l *Locator) {
		l.known = known
	}
}

// New creates a Locator using the default descriptor table and depth.
func New(fsys core.FileSystem, opts ...Option) *Locator {
	l := &Locator{
		fs:       fsys,
		known:    descriptor.DefaultKnown(),
		maxDepth: core.DefaultDiscoveryDepth,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Find returns the descriptor files under root in traversal order: within a
// directory, files come before subdirectories and entries are sorted by name.
// Unreadable directories contribute nothing. If ctx is cancelled the walk
// stops and the files found so far are returned.
func (l *Locator) Find(ctx context.Context, root string) []descriptor.File {
	var found []descriptor.File
	l.walk(ctx, root, 0, &found)
	return found
}

func (l *Locator) walk(ctx context.Context, dir string, depth int, found *[]descriptor.File) {
	if ctx.Err() != nil {
		return
	}

	entries, err := l.fs.ReadDir(ctx, dir)
	if err != nil {
		return
	}

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if l.descend(depth) && !l.shouldExclude(name, path) {
				subdirs = append(subdirs, path)
			}
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 && !l.isRegular(ctx, path) {
			continue
		}

		known, ok := l.match(name)
		if !ok || (depth > 0 && !known.Recursive) {
			continue
		}

		file := descriptor.File{Path: path, Kind: known.Kind, Depth: depth}
		if info, err := l.fs.Stat(ctx, path); err == nil {
			file.ModTime = info.ModTime()
		}
		*found = append(*found, file)
	}

	for _, sub := range subdirs {
		l.walk(ctx, sub, depth+1, found)
	}
}

// descend reports whether a directory at depth+1 can still hold matches.
func (l *Locator) descend(depth int) bool {
	if depth >= l.maxDepth {
		return false
	}
	return slices.ContainsFunc(l.known, func(k descriptor.Known) bool { return k.Recursive })
}

// isRegular reports whether a symlinked entry resolves to a regular file.
func (l *Locator) isRegular(ctx context.Context, path string) bool {
	info, err := l.fs.Stat(ctx, path)
	return err == nil && info.Mode().IsRegular()
}

func (l *Locator) match(name string) (descriptor.Known, bool) {
	for _, k := range l.known {
		if k.Filename == name {
			return k, true
		}
	}
	return descriptor.Known{}, false
}

// shouldExclude checks if a directory should be skipped.
func (l *Locator) shouldExclude(name, path string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	if slices.Contains(skipDirs, name) {
		return true
	}

	for _, pattern := range l.excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}

	return false
}
