// Package plist extracts the bundle version from iOS/macOS Info.plist files.
//
// An application often ships several Info.plist files (the app itself plus
// extensions and test bundles). All located files are considered; "1.0" is
// the Xcode default for new targets and is treated as a placeholder that a
// later file may replace.
package plist

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
	"github.com/micromdm/plist"
)

const (
	keyShortVersion = "CFBundleShortVersionString"
	keyBuild        = "CFBundleVersion"

	// placeholderVersion is a low-confidence short version.
	placeholderVersion = "1.0"
)

// Bundle is the version pair of one Info.plist.
type Bundle struct {
	Path         string
	ShortVersion string
	Build        string
}

// String formats the pair as "<short>-<build>", or "<short>" without a build.
func (b Bundle) String() string {
	if b.Build == "" {
		return b.ShortVersion
	}
	return b.ShortVersion + "-" + b.Build
}

// Extractor reads every located Info.plist.
type Extractor struct {
	fs     core.FileSystem
	logger *log.Logger
}

// New creates an Info.plist Extractor.
func New(opts extract.Options) *Extractor {
	opts = opts.WithDefaults()
	return &Extractor{fs: opts.FS, logger: opts.Logger}
}

// Ensure Extractor implements extract.Extractor.
var _ extract.Extractor = (*Extractor)(nil)

func (e *Extractor) Name() string { return "plist" }

func (e *Extractor) Extract(ctx context.Context, sel descriptor.Selection) (string, error) {
	files := sel.Related
	if len(files) == 0 {
		files = []descriptor.File{sel.Primary}
	}

	var bundles []Bundle
	for _, f := range files {
		b, err := e.read(ctx, f.Path)
		if err != nil {
			e.logger.Warn("skipping plist", "file", f.Path, "err", err)
			continue
		}
		bundles = append(bundles, b)
	}

	best, ok := Select(bundles)
	if !ok {
		return "", extract.NoVersion(sel.Primary.Path, fmt.Errorf("no readable Info.plist with %s", keyShortVersion))
	}
	e.logger.Debug("selected plist", "file", best.Path, "short", best.ShortVersion, "build", best.Build)
	return best.String(), nil
}

// Select applies the placeholder rule: the first bundle is the candidate,
// and while the candidate's short version is "1.0" each later bundle
// replaces it.
func Select(bundles []Bundle) (Bundle, bool) {
	if len(bundles) == 0 {
		return Bundle{}, false
	}
	candidate := bundles[0]
	for _, b := range bundles[1:] {
		if candidate.ShortVersion != placeholderVersion {
			break
		}
		candidate = b
	}
	return candidate, true
}

func (e *Extractor) read(ctx context.Context, path string) (Bundle, error) {
	data, err := e.fs.ReadFile(ctx, path)
	if err != nil {
		return Bundle{}, err
	}
	return Parse(path, data)
}

// Parse decodes an XML or binary property list.
func Parse(path string, data []byte) (Bundle, error) {
	var dict map[string]any
	if err := plist.Unmarshal(data, &dict); err != nil {
		return Bundle{}, extract.Malformed(path, err)
	}

	b := Bundle{
		Path:         path,
		ShortVersion: scalar(dict[keyShortVersion]),
		Build:        scalar(dict[keyBuild]),
	}
	if b.ShortVersion == "" {
		return Bundle{}, extract.NoVersion(path, fmt.Errorf("missing %s", keyShortVersion))
	}
	return b, nil
}

// scalar renders string and numeric plist values; anything else is empty.
func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
