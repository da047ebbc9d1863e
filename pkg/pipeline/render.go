package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/seqdiag/pkg/observability"
	"github.com/matzehuels/seqdiag/pkg/seq/layout"
	"github.com/matzehuels/seqdiag/pkg/seq/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, g layout.Geometry, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, g layout.Geometry, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(g, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, g, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, g, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(g)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.IDPrefix != "" {
		svgOpts = append(svgOpts, sink.WithIDPrefix(opts.IDPrefix))
	}
	if opts.XMLDeclaration {
		svgOpts = append(svgOpts, sink.WithXMLDeclaration())
	}
	if opts.TitleElement {
		svgOpts = append(svgOpts, sink.WithTitleElement())
	}
	return svgOpts
}
