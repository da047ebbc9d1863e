// Package layout positions a parsed sequence diagram.
//
// # Overview
//
// [Build] turns a [diagram.Diagram] into a [Geometry]: lane positions,
// arrow endpoints, note and frame rectangles, activation bars and the
// canvas size. The result is a plain value that an emitter draws without
// making further decisions.
//
// # Passes
//
// Layout runs in two passes over the event list.
//
// The measurement pass computes one width per lane: the widest of its
// header label, the labels of messages that start or end on it, and the
// notes, state boxes and ref boxes attached to it. Lane centers then follow as a running sum of half
// widths plus [Config.LaneGap], so lane x strictly increases with lane
// index and adjacent lanes never overlap.
//
// The placement pass walks the events once with a y cursor. Each message,
// note, state or ref box, frame boundary and destroy advances the cursor by its own height
// plus [Config.RowGap]. Activation changes, titles and settings take no
// vertical space. Along the way the pass keeps
//
//   - an activation stack per lane, so bars nest with a horizontal
//     offset of [Config.ActivationInset] per level and arrows stop at the
//     edge of the topmost bar
//   - a stack of open frames that records the lanes and x extents touched
//     between a frame's open and close, and the y of every else divider
//   - the autonumber switch and a counter that is never reset
//
// Events that refer to a lane past its destroy point and deactivations at
// depth zero are ignored.
//
// # Determinism
//
// Build performs no I/O and keeps no state between calls; the same
// diagram always produces an identical Geometry.
package layout
