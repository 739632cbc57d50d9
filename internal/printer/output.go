package printer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/tidwall/sjson"
)

// Format selects how the detected version is written to stdout.
type Format string

const (
	// FormatText prints the bare version line.
	FormatText Format = "text"

	// FormatJSON prints {"version", "kind", "file"}.
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name. The empty string yields
// FormatText.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	f := Format(strings.ToLower(s))
	if !slices.Contains([]Format{FormatText, FormatJSON}, f) {
		return "", fmt.Errorf("invalid output format %q (expected text or json)", s)
	}
	return f, nil
}

// VersionOutput is what gets reported for a successful detection.
type VersionOutput struct {
	Version string
	Kind    string
	File    string
}

// WriteVersion writes out to w in format f, followed by a newline.
func WriteVersion(w io.Writer, f Format, out VersionOutput) error {
	var line string
	switch f {
	case FormatJSON:
		var err error
		if line, err = versionJSON(out); err != nil {
			return err
		}
	default:
		line = out.Version
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func versionJSON(out VersionOutput) (string, error) {
	doc := "{}"
	fields := []struct {
		key   string
		value string
	}{
		{"version", out.Version},
		{"kind", out.Kind},
		{"file", out.File},
	}
	for _, f := range fields {
		var err error
		if doc, err = sjson.Set(doc, f.key, f.value); err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", f.key, err)
		}
	}
	return doc, nil
}
