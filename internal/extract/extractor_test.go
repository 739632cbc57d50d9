package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/indaco/viceversion/internal/core"
)

func TestOptions_WithDefaults(t *testing.T) {
	o := Options{Commands: Commands{Python: []string{"python3"}}}.WithDefaults()

	if o.FS == nil || o.Runner == nil || o.Logger == nil || o.Getenv == nil {
		t.Fatalf("collaborators not defaulted: %+v", o)
	}
	if o.Commands.Python[0] != "python3" {
		t.Errorf("configured command overwritten: %v", o.Commands.Python)
	}
	if o.Commands.Maven[0] != "mvn" || o.Commands.Gradle[0] != "gradle" {
		t.Errorf("default commands = %+v", o.Commands)
	}
}

func TestTool(t *testing.T) {
	base := []string{"mvn", "-s", "settings.xml"}
	cmd := Tool(base, "/p", "-f", "pom.xml")

	if cmd.Name != "mvn" || cmd.Dir != "/p" {
		t.Errorf("cmd = %+v", cmd)
	}
	want := []string{"-s", "settings.xml", "-f", "pom.xml"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}

	// The configured slice must not be aliased.
	Tool(base, "", "x")
	if len(base) != 3 {
		t.Errorf("base command modified: %v", base)
	}
}

func TestRun_WrapsFailures(t *testing.T) {
	runner := &core.MockCommandRunner{
		RunFunc: func(context.Context, core.Command) (*core.CommandResult, error) {
			return &core.CommandResult{ExitCode: 2, Stderr: "no pom"}, errors.New("exit status 2")
		},
	}

	_, err := Run(context.Background(), runner, core.Command{Name: "mvn"})
	var te *ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected *ToolError, got %v", err)
	}
	if te.ExitCode != 2 || te.Stderr != "no pom" || te.Command != "mvn" {
		t.Errorf("ToolError = %+v", te)
	}
}

func TestRun_Success(t *testing.T) {
	res, err := Run(context.Background(), core.StdoutRunner("1.0"), core.Command{Name: "mvn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "1.0" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
}
