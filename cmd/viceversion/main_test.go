package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/viceversion/internal/cli"
	"github.com/indaco/viceversion/internal/extract"
	"github.com/indaco/viceversion/internal/printer"
)

func TestRunCLI(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version":"8.0.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := runCLI(context.Background(), []string{"viceversion", "-d", dir}, &stdout, &stderr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "8.0.0\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunCLI_NoBuildFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runCLI(context.Background(), []string{"viceversion", "-d", t.TempDir()}, &stdout, &stderr)
	if !errors.Is(err, extract.ErrNoBuildFileFound) {
		t.Fatalf("error = %v, want ErrNoBuildFileFound", err)
	}
	if cli.ExitCode(err) != cli.ExitNoBuildFile {
		t.Errorf("ExitCode() = %d", cli.ExitCode(err))
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestReportError(t *testing.T) {
	printer.SetNoColor()

	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{name: "tool", err: &extract.ToolError{Command: "mvn -f pom.xml", ExitCode: 1}, wantHint: "--verbose"},
		{name: "no build file", err: fmt.Errorf("/p: %w", extract.ErrNoBuildFileFound), wantHint: "Node.js (package.json)"},
		{name: "ambiguous", err: &extract.AmbiguousError{}, wantHint: "warning: strict tie-break"},
		{name: "other", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)

			out := buf.String()
			if !strings.HasPrefix(out, "error: ") {
				t.Errorf("output = %q, want error prefix", out)
			}
			lines := strings.Count(out, "\n")
			if tt.wantHint == "" {
				if lines != 1 {
					t.Errorf("output = %q, want a single line", out)
				}
				return
			}
			if !strings.Contains(out, tt.wantHint) {
				t.Errorf("output = %q, want hint mentioning %q", out, tt.wantHint)
			}
		})
	}
}
