package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/lexer"
	"github.com/matzehuels/seqdiag/pkg/seq/parser"
)

var (
	diagError    = color.New(color.FgRed, color.Bold)
	diagWarning  = color.New(color.FgYellow, color.Bold)
	diagLocation = color.New(color.Bold)
	diagGutter   = color.New(color.FgCyan)
	diagCaret    = color.New(color.FgRed)
)

// ErrCheckFailed is returned by check when at least one file has an error.
// The diagnostics have already been printed.
var ErrCheckFailed = stderrors.New("check failed")

// diagnostic is one reported problem at a source position.
type diagnostic struct {
	path    string
	line    int
	col     int // 1-based byte column, or 0 to underline the whole statement
	message string
	warning bool
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [file...|-]",
		Short: "Validate diagram files",
		Long: `Parse each file and report the first error with the offending source line.
Warnings are reported too; with --strict they fail the check.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				src, err := readSource(path)
				if err != nil {
					return err
				}
				diags := checkSource(displayName(path), src)
				for _, d := range diags {
					writeDiagnostic(cmd.ErrOrStderr(), src, d)
					if !d.warning || strict {
						failed = true
					}
				}
			}
			if failed {
				return ErrCheckFailed
			}
			printSuccess("%s", plural(len(args), "file")+" ok")
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	cmd.ValidArgsFunction = completeDiagrams
	return cmd
}

// checkSource parses src and returns its diagnostics: the error, if any,
// or the warnings.
func checkSource(path, src string) []diagnostic {
	if err := errors.ValidateSource(src, errors.DefaultMaxSourceBytes); err != nil {
		return []diagnostic{{path: path, message: errors.UserMessage(err)}}
	}
	d, err := parser.Parse(src)
	if err != nil {
		return []diagnostic{errorDiagnostic(path, err)}
	}
	return warningDiagnostics(path, d)
}

func errorDiagnostic(path string, err error) diagnostic {
	var pe *parser.Error
	if stderrors.As(err, &pe) {
		return diagnostic{path: path, line: pe.Line, message: pe.Message}
	}
	var le *lexer.Error
	if stderrors.As(err, &le) {
		return diagnostic{path: path, line: le.Line, col: le.Col, message: le.Message}
	}
	return diagnostic{path: path, message: err.Error()}
}

func warningDiagnostics(path string, d *diagram.Diagram) []diagnostic {
	var out []diagnostic
	for _, w := range d.Warnings {
		out = append(out, diagnostic{path: path, line: w.Line, message: w.Message, warning: true})
	}
	return out
}

// writeDiagnostic prints d followed by the source line and a marker under
// the offending column or statement:
//
//	login.seq:3: error: unterminated alt block: reached end of input
//	   3 | alt valid credentials
//	     | ^~~~~~~~~~~~~~~~~~~~~
func writeDiagnostic(w io.Writer, src string, d diagnostic) {
	sev := diagError.Sprint("error")
	if d.warning {
		sev = diagWarning.Sprint("warning")
	}
	loc := d.path
	if d.line > 0 {
		loc = fmt.Sprintf("%s:%d", d.path, d.line)
	}
	fmt.Fprintf(w, "%s: %s: %s\n", diagLocation.Sprint(loc), sev, d.message)

	text, ok := sourceLine(src, d.line)
	if !ok {
		return
	}
	num := fmt.Sprintf("%d", d.line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, "%s %s %s\n", diagGutter.Sprint(" "+num), diagGutter.Sprint("|"), text)
	fmt.Fprintf(w, "%s %s %s\n", " "+pad, diagGutter.Sprint("|"), diagCaret.Sprint(caretLine(text, d.col)))
}

// sourceLine returns the 1-based line n of src without trailing space.
func sourceLine(src string, n int) (string, bool) {
	if n <= 0 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], " \t\r"), true
}

// caretLine underlines text from col to the end of the line, or the whole
// statement when col is 0. Tabs before the carets are kept so it lines up
// with the text above.
func caretLine(text string, col int) string {
	start := len(text) - len(strings.TrimLeft(text, " \t"))
	if col > 0 && col-1 <= len(text) {
		start = col - 1
	}
	indent := strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		return ' '
	}, text[:start])
	n := max(utf8.RuneCountInString(text[start:]), 1)
	return indent + "^" + strings.Repeat("~", n-1)
}
