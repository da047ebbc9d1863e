package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/seqdiag/pkg/observability"
	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/layout"
)

// GenerateLayout computes the geometry of a parsed diagram using the
// spacing in opts.Layout.
func GenerateLayout(ctx context.Context, d *diagram.Diagram, opts Options) layout.Geometry {
	opts.SetLayoutDefaults()

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, d.Participants.Len())
	start := time.Now()

	g := layout.Build(d, layout.WithConfig(*opts.Layout))

	hooks.OnLayoutComplete(ctx, time.Since(start), nil)
	opts.Logger.Debug("layout built",
		"lanes", len(g.Lanes),
		"messages", len(g.Messages),
		"blocks", len(g.Blocks),
		"height", g.ViewBox.Height())
	return g
}
