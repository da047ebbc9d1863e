// Package styles draws sequence diagram primitives as SVG.
//
// A [Style] receives already positioned shapes (lane headers, lifelines,
// arrows, notes, frames) and writes the markup for each one into a buffer.
// It makes no layout decisions. The sink package builds these shapes from a
// layout geometry and calls the style in a fixed paint order.
//
// [Simple] is the default style: flat boxes, thin strokes and a single
// sans-serif font, with colors set through an inline stylesheet scoped to
// the id of the enclosing svg element.
package styles
