package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/observability"
	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/parser"
)

// Parse validates source and parses it into a diagram.
//
// Validation failures keep their own codes (INVALID_INPUT, TOO_LARGE).
// Lexer and parser errors are wrapped with [errors.ErrCodeSyntax]; the
// original error stays reachable through errors.As so callers can recover
// the source line.
func Parse(ctx context.Context, source string, opts Options) (*diagram.Diagram, error) {
	opts.SetLayoutDefaults()
	if err := errors.ValidateSource(source, opts.MaxSourceBytes); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(source))
	start := time.Now()

	d, err := parser.Parse(source)
	if err != nil {
		hooks.OnParseComplete(ctx, 0, 0, time.Since(start), err)
		return nil, errors.Wrap(errors.ErrCodeSyntax, err, "invalid diagram")
	}
	hooks.OnParseComplete(ctx, d.Participants.Len(), len(d.Events), time.Since(start), nil)

	for _, w := range d.Warnings {
		opts.Logger.Warn(w.Message, "line", w.Line)
	}
	return d, nil
}
