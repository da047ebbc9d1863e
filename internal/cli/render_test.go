package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
)

const loginSource = `title Login
actor User
participant Server
User ->+ Server: credentials
Server -->- User: token
`

// captureStdout redirects the status output for the duration of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,json,png", []string{"svg", "json", "png"}},
		{"spaces trimmed", "svg, pdf", []string{"svg", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		format      string
		output      string
		multiInput  bool
		multiFormat bool
		want        string
	}{
		{"next to input", "docs/login.seq", "svg", "", false, false, "docs/login.svg"},
		{"explicit output", "login.seq", "svg", "out/diagram.svg", false, false, "out/diagram.svg"},
		{"output as base", "login.seq", "png", "out/diagram.svg", false, true, "out/diagram.png"},
		{"output without extension", "login.seq", "json", "out/diagram", false, true, "out/diagram.json"},
		{"output directory", "docs/login.seq", "svg", "build", true, false, filepath.Join("build", "login.svg")},
		{"stdin", stdinName, "svg", "", false, true, "stdin.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.input, tt.format, tt.output, tt.multiInput, tt.multiFormat)
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "login.seq", "login"},
		{"", "a/b/login.seq", "a/b/login"},
		{"", stdinName, "stdin"},
		{"out.svg", "login.seq", "out"},
		{"out.pdf", "login.seq", "out"},
		{"out.txt", "login.seq", "out.txt"},
		{"out", "login.seq", "out"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	if got := stem("a/b/login.seq"); got != "login" {
		t.Errorf("stem() = %q, want login", got)
	}
	if got := stem(stdinName); got != "stdin" {
		t.Errorf("stem(stdin) = %q, want stdin", got)
	}
}

func TestReadSourceMissing(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "nope.seq"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestRunRender(t *testing.T) {
	out := captureStdout(t)
	dir := t.TempDir()
	inputs := []string{filepath.Join(dir, "login.seq"), filepath.Join(dir, "other.seq")}
	for _, in := range inputs {
		if err := os.WriteFile(in, []byte(loginSource), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := New(&bytes.Buffer{}, LogInfo)
	popts := c.renderOptions()
	popts.Formats = []string{pipeline.FormatSVG, pipeline.FormatJSON}
	opts := renderOpts{noCache: true, jobs: 2}

	if err := c.runRender(context.Background(), inputs, popts, opts); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	for _, in := range inputs {
		base := strings.TrimSuffix(in, ".seq")
		svg, err := os.ReadFile(base + ".svg")
		if err != nil {
			t.Fatalf("svg not written: %v", err)
		}
		if !bytes.HasPrefix(svg, []byte("<svg")) {
			t.Errorf("%s.svg does not start with <svg", base)
		}
		if _, err := os.Stat(base + ".json"); err != nil {
			t.Errorf("json not written: %v", err)
		}
	}
	if !strings.Contains(out.String(), "2 participants") {
		t.Errorf("status output missing stats:\n%s", out.String())
	}
}

func TestRunRenderSyntaxError(t *testing.T) {
	captureStdout(t)
	in := filepath.Join(t.TempDir(), "broken.seq")
	if err := os.WriteFile(in, []byte("A -> B\nend\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	err := c.runRender(context.Background(), []string{in}, c.renderOptions(), renderOpts{noCache: true, jobs: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	want := in + ": line 2: end without matching block"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

func TestRunRenderRejectsMixedStdin(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	err := c.runRender(context.Background(), []string{stdinName, "a.seq"}, c.renderOptions(), renderOpts{noCache: true, jobs: 1})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRunRenderPrintsWarnings(t *testing.T) {
	out := captureStdout(t)
	in := filepath.Join(t.TempDir(), "dup.seq")
	src := "participant A\nparticipant A\nA -> A: ping\n"
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	if err := c.runRender(context.Background(), []string{in}, c.renderOptions(), renderOpts{noCache: true, jobs: 1}); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	for _, want := range []string{
		"1 warning",
		`line 2: participant "A" already registered on line 1`,
		"seqdiag check " + in,
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
