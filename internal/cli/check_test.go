package cli

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withoutColor(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func TestCaretLine(t *testing.T) {
	tests := []struct {
		name string
		text string
		col  int
		want string
	}{
		{"whole statement", "alt valid", 0, "^~~~~~~~~"},
		{"indented statement", "  end", 0, "  ^~~"},
		{"tab indent kept", "\t\tend", 0, "\t\t^~~"},
		{"from column", `A -> "B: hi`, 6, `     ^~~~~~`},
		{"column at end", "A ->", 5, "    ^"},
		{"multibyte text", "note over A: größe", 14, "             ^~~~~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := caretLine(tt.text, tt.col); got != tt.want {
				t.Errorf("caretLine(%q, %d) = %q, want %q", tt.text, tt.col, got, tt.want)
			}
		})
	}
}

func TestSourceLine(t *testing.T) {
	src := "title T\nA -> B: hi   \n"
	if got, ok := sourceLine(src, 2); !ok || got != "A -> B: hi" {
		t.Errorf("sourceLine(2) = %q, %v", got, ok)
	}
	for _, n := range []int{0, -1, 10} {
		if _, ok := sourceLine(src, n); ok {
			t.Errorf("sourceLine(%d) should not exist", n)
		}
	}
}

func TestCheckSource(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		col     int
		message string
		warning bool
	}{
		{"unterminated block", "alt valid credentials\nA -> B\n", 1, 0, "unterminated alt block: reached end of input", false},
		{"stray end", "A -> B\nend\n", 2, 0, "end without matching block", false},
		{"lexer", "A -> B\nA -> \"B: hi\n", 2, 6, "unterminated quoted string", false},
		{"empty", "", 0, 0, "", false},
		{"redeclared", "participant A\nparticipant \"Again\" as A\n", 2, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := checkSource("x.seq", tt.src)
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %+v", len(diags), diags)
			}
			d := diags[0]
			if d.line != tt.line || d.col != tt.col || d.warning != tt.warning {
				t.Errorf("diagnostic = %+v", d)
			}
			if tt.message != "" && d.message != tt.message {
				t.Errorf("message = %q, want %q", d.message, tt.message)
			}
			if d.message == "" {
				t.Error("empty message")
			}
		})
	}

	if diags := checkSource("ok.seq", loginSource); len(diags) != 0 {
		t.Errorf("valid source reported %+v", diags)
	}
}

func TestWriteDiagnostic(t *testing.T) {
	withoutColor(t)

	src := "A -> B\nalt valid credentials\nA -> B\n"
	var buf bytes.Buffer
	writeDiagnostic(&buf, src, diagnostic{
		path:    "login.seq",
		line:    2,
		message: "unterminated alt block: reached end of input",
	})

	want := "login.seq:2: error: unterminated alt block: reached end of input\n" +
		" 2 | alt valid credentials\n" +
		"   | ^~~~~~~~~~~~~~~~~~~~~\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteDiagnosticWithoutLine(t *testing.T) {
	withoutColor(t)

	var buf bytes.Buffer
	writeDiagnostic(&buf, "", diagnostic{path: "empty.seq", message: "source is empty", warning: true})
	if got := buf.String(); got != "empty.seq: warning: source is empty\n" {
		t.Errorf("got %q", got)
	}
}

func TestCheckCommand(t *testing.T) {
	withoutColor(t)
	captureStdout(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	good := filepath.Join(dir, "good.seq")
	bad := filepath.Join(dir, "bad.seq")
	if err := os.WriteFile(good, []byte(loginSource), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("A -> B\nend\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) (string, error) {
		var stderr bytes.Buffer
		root := New(&bytes.Buffer{}, LogInfo).RootCommand()
		root.SetArgs(append([]string{"check"}, args...))
		root.SetErr(&stderr)
		root.SetOut(&bytes.Buffer{})
		err := root.Execute()
		return stderr.String(), err
	}

	if out, err := run(good); err != nil {
		t.Fatalf("check good: %v\n%s", err, out)
	}

	out, err := run(good, bad)
	if !stderrors.Is(err, ErrCheckFailed) {
		t.Fatalf("err = %v, want ErrCheckFailed", err)
	}
	if !strings.Contains(out, bad+":2: error: end without matching block") {
		t.Errorf("unexpected diagnostics:\n%s", out)
	}
}
