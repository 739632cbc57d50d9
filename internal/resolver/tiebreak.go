package resolver

import (
	"fmt"
	"slices"
	"strings"

	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
)

// Policy decides which descriptor kind wins when several are present.
type Policy string

const (
	// PolicyModTime picks the most recently modified descriptor, breaking
	// equal times by path.
	PolicyModTime Policy = "mtime"

	// PolicyFirst picks the first descriptor in traversal order.
	PolicyFirst Policy = "first"

	// PolicyStrict refuses to choose and reports every candidate.
	PolicyStrict Policy = "strict"
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = PolicyModTime

// Policies lists the accepted policy names.
func Policies() []Policy {
	return []Policy{PolicyModTime, PolicyFirst, PolicyStrict}
}

// ParsePolicy validates a policy name. The empty string yields DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return DefaultPolicy, nil
	}
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Policies(), p) {
		return "", fmt.Errorf("invalid tiebreak policy %q (expected mtime, first or strict)", s)
	}
	return p, nil
}

// Select picks the authoritative descriptor from files, which must be in
// traversal order. Descriptors in the root directory outrank nested ones, so
// the policy only arbitrates among root kinds when any exist. Related holds
// every file of the chosen kind.
func (p Policy) Select(files []descriptor.File) (descriptor.Selection, error) {
	if len(files) == 0 {
		return descriptor.Selection{}, extract.ErrNoBuildFileFound
	}

	candidates := preferRoot(firstOfEachKind(files))

	var primary descriptor.File
	switch {
	case len(candidates) == 1:
		primary = candidates[0]
	case p == PolicyFirst:
		primary = candidates[0]
	case p == PolicyStrict:
		return descriptor.Selection{}, &extract.AmbiguousError{Candidates: candidates}
	case p == PolicyModTime, p == "":
		primary = newest(candidates)
	default:
		return descriptor.Selection{}, fmt.Errorf("invalid tiebreak policy %q", string(p))
	}

	sel := descriptor.Selection{Primary: primary}
	for _, f := range files {
		if f.Kind == primary.Kind {
			sel.Related = append(sel.Related, f)
		}
	}
	return sel, nil
}

func firstOfEachKind(files []descriptor.File) []descriptor.File {
	seen := make(map[descriptor.Kind]bool)
	var out []descriptor.File
	for _, f := range files {
		if !seen[f.Kind] {
			seen[f.Kind] = true
			out = append(out, f)
		}
	}
	return out
}

// preferRoot drops nested candidates when at least one sits in the root.
func preferRoot(candidates []descriptor.File) []descriptor.File {
	var root []descriptor.File
	for _, f := range candidates {
		if f.Depth == 0 {
			root = append(root, f)
		}
	}
	if len(root) == 0 {
		return candidates
	}
	return root
}

// newest returns the most recently modified file, the lexicographically
// smallest path among equal modification times.
func newest(files []descriptor.File) descriptor.File {
	best := files[0]
	for _, f := range files[1:] {
		switch {
		case f.ModTime.After(best.ModTime):
			best = f
		case f.ModTime.Equal(best.ModTime) && f.Path < best.Path:
			best = f
		}
	}
	return best
}
