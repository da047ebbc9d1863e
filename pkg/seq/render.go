package seq

import (
	"errors"

	"github.com/matzehuels/seqdiag/pkg/seq/layout"
	"github.com/matzehuels/seqdiag/pkg/seq/lexer"
	"github.com/matzehuels/seqdiag/pkg/seq/parser"
	"github.com/matzehuels/seqdiag/pkg/seq/sink"
)

// Render parses source and returns the diagram as an SVG document. On
// failure it returns the first lexical or syntax error and no output.
func Render(source string) (string, error) {
	d, err := parser.Parse(source)
	if err != nil {
		return "", err
	}
	return string(sink.RenderSVG(layout.Build(d))), nil
}

// ErrorLine returns the 1-based source line carried by err, if err is or
// wraps a lexer or parser error.
func ErrorLine(err error) (int, bool) {
	var pe *parser.Error
	if errors.As(err, &pe) {
		return pe.Line, true
	}
	var le *lexer.Error
	if errors.As(err, &le) {
		return le.Line, true
	}
	return 0, false
}
