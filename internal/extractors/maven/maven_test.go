package maven

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/indaco/viceversion/internal/core"
	"github.com/indaco/viceversion/internal/descriptor"
	"github.com/indaco/viceversion/internal/extract"
)

func selection(path string) descriptor.Selection {
	f := descriptor.File{Path: path, Kind: descriptor.Maven}
	return descriptor.Selection{Primary: f, Related: []descriptor.File{f}}
}

func TestParseEvaluateOutput(t *testing.T) {
	tests := []struct {
		name   string
		out    string
		want   string
		wantOK bool
	}{
		{name: "log lines then version", out: "[INFO] Scanning...\n2.3.1\n", want: "2.3.1", wantOK: true},
		{name: "warnings and blank lines", out: "[WARNING] x\n\n  \n[INFO] y\n1.0-SNAPSHOT\n[INFO] BUILD SUCCESS\n", want: "1.0-SNAPSHOT", wantOK: true},
		{name: "crlf", out: "[INFO] a\r\n3.0.0\r\n", want: "3.0.0", wantOK: true},
		{name: "first bare line wins", out: "1.0\n2.0\n", want: "1.0", wantOK: true},
		{name: "only log lines", out: "[INFO] a\n[ERROR] b\n", wantOK: false},
		{name: "empty", out: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEvaluateOutput(tt.out)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseEvaluateOutput() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractor_Extract_RunsMaven(t *testing.T) {
	runner := core.StdoutRunner("[INFO] Scanning for projects...\n2.3.1\n")
	e := New(extract.Options{Runner: runner, FS: core.NewMockFileSystem()})

	got, err := e.Extract(context.Background(), selection("/project/pom.xml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2.3.1" {
		t.Errorf("Extract() = %q, want %q", got, "2.3.1")
	}

	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	want := []string{"-f", "/project/pom.xml", evaluateGoal, "-Dexpression=project.version"}
	if calls[0].Name != "mvn" || !slices.Equal(calls[0].Args, want) {
		t.Errorf("command = %s %v, want mvn %v", calls[0].Name, calls[0].Args, want)
	}
	if calls[0].Dir != "/project" {
		t.Errorf("Dir = %q, want /project", calls[0].Dir)
	}
}

func TestExtractor_Extract_CustomCommand(t *testing.T) {
	runner := core.StdoutRunner("1.0\n")
	e := New(extract.Options{
		Runner:   runner,
		FS:       core.NewMockFileSystem(),
		Commands: extract.Commands{Maven: []string{"./mvnw", "-q"}},
	})

	if _, err := e.Extract(context.Background(), selection("/p/pom.xml")); err != nil {
		t.Fatal(err)
	}
	call := runner.Calls()[0]
	if call.Name != "./mvnw" || call.Args[0] != "-q" {
		t.Errorf("command = %s %v", call.Name, call.Args)
	}
}

func TestExtractor_Extract_Failures(t *testing.T) {
	tests := []struct {
		name   string
		result *core.CommandResult
		err    error
	}{
		{name: "non-zero exit", result: &core.CommandResult{ExitCode: 1, Stderr: "[ERROR] no pom"}, err: errors.New("exit status 1")},
		{name: "no usable line", result: &core.CommandResult{Stdout: "[INFO] only logs\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &core.MockCommandRunner{
				RunFunc: func(context.Context, core.Command) (*core.CommandResult, error) {
					return tt.result, tt.err
				},
			}
			e := New(extract.Options{Runner: runner, FS: core.NewMockFileSystem()})

			_, err := e.Extract(context.Background(), selection("/p/pom.xml"))
			if !errors.Is(err, extract.ErrExternalToolFailed) {
				t.Errorf("error = %v, want ErrExternalToolFailed", err)
			}
		})
	}
}

func TestExtractor_Extract_Offline(t *testing.T) {
	tests := []struct {
		name    string
		pom     string
		want    string
		wantErr error
	}{
		{
			name: "own version",
			pom:  `<project><groupId>g</groupId><artifactId>a</artifactId><version>1.2.3</version></project>`,
			want: "1.2.3",
		},
		{
			name: "property interpolation",
			pom: `<project><groupId>g</groupId><artifactId>a</artifactId><version>${revision}</version>
<properties><revision>4.5.6</revision></properties></project>`,
			want: "4.5.6",
		},
		{
			name: "inherited from parent",
			pom: `<project><parent><groupId>g</groupId><artifactId>parent</artifactId><version>7.0</version></parent>
<artifactId>child</artifactId></project>`,
			want: "7.0",
		},
		{
			name: "nested properties",
			pom: `<project><groupId>g</groupId><artifactId>a</artifactId><version>${revision}${changelist}</version>
<properties><revision>${major}.${minor}.0</revision><major>2</major><minor>7</minor><changelist>-SNAPSHOT</changelist></properties></project>`,
			want: "2.7.0-SNAPSHOT",
		},
		{
			name: "parent version property",
			pom: `<project><parent><groupId>g</groupId><artifactId>parent</artifactId><version>3.1</version></parent>
<artifactId>child</artifactId><version>${project.parent.version}-child</version></project>`,
			want: "3.1-child",
		},
		{
			name:    "undefined property",
			pom:     `<project><groupId>g</groupId><artifactId>a</artifactId><version>${revision}</version></project>`,
			wantErr: extract.ErrNoVersionFound,
		},
		{
			name:    "self-referencing property",
			pom:     `<project><groupId>g</groupId><artifactId>a</artifactId><version>${version}</version></project>`,
			wantErr: extract.ErrNoVersionFound,
		},
		{
			name:    "no version",
			pom:     `<project><groupId>g</groupId><artifactId>a</artifactId></project>`,
			wantErr: extract.ErrNoVersionFound,
		},
		{
			name:    "not xml",
			pom:     `<project><version>1.0`,
			wantErr: extract.ErrMalformedDescriptor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("/p/pom.xml", []byte(tt.pom))
			runner := &core.MockCommandRunner{}
			e := New(extract.Options{FS: fs, Runner: runner, Offline: true})

			got, err := e.Extract(context.Background(), selection("/p/pom.xml"))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
			if len(runner.Calls()) != 0 {
				t.Error("offline mode invoked maven")
			}
		})
	}
}
