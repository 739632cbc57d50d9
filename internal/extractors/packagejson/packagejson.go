// Package packagejson extracts the version field of a Node.js package.json.
package packagejson

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
	"github.com/tidwall/gjson"
)

// Field is the manifest field holding the version.
const Field = "version"

// Extractor reads package.json without running npm.
type Extractor struct {
	fs     core.FileSystem
	logger *log.Logger
}

// New creates a package.json Extractor.
func New(opts extract.Options) *Extractor {
	opts = opts.WithDefaults()
	return &Extractor{fs: opts.FS, logger: opts.Logger}
}

// Ensure Extractor implements extract.Extractor.
var _ extract.Extractor = (*Extractor)(nil)

func (e *Extractor) Name() string { return "packagejson" }

func (e *Extractor) Extract(ctx context.Context, sel descriptor.Selection) (string, error) {
	path := sel.Primary.Path
	e.logger.Debug("reading manifest", "file", path)
	data, err := e.fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return Parse(path, data)
}

// Parse returns the top-level "version" string of a manifest. When the key
// is repeated the last occurrence wins, as with JSON decoders that build a
// map.
func Parse(path string, data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", extract.Malformed(path, fmt.Errorf("invalid JSON"))
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return "", extract.Malformed(path, fmt.Errorf("manifest is not a JSON object"))
	}

	value := lastField(root, Field)
	switch {
	case !value.Exists():
		return "", extract.Malformed(path, fmt.Errorf("field %q not found", Field))
	case value.Type != gjson.String:
		return "", extract.Malformed(path, fmt.Errorf("field %q is not a string", Field))
	case value.Str == "":
		return "", extract.Malformed(path, fmt.Errorf("field %q is empty", Field))
	}
	return value.Str, nil
}

// lastField returns the last top-level member named key.
func lastField(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}
		return true
	})
	return found
}
