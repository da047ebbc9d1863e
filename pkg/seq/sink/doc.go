// Package sink writes a positioned sequence diagram to an output format.
//
// [RenderSVG] is the primary emitter. It maps the layout geometry onto
// drawing primitives and hands them to a [styles.Style] in a fixed paint
// order, so identical geometry always yields byte-identical output.
// [RenderJSON] exposes the geometry itself. [RenderPNG] and [RenderPDF]
// convert the SVG with rsvg-convert.
package sink
