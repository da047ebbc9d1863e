// Package render converts SVG documents to raster and print formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert from librsvg. The tool is
// optional: [Available] reports whether it is installed, and conversions
// fail with [ErrConverterMissing] when it is not.
//
//	svg := sink.RenderSVG(geom)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
package render
