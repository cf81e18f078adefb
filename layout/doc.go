// Package layout rebuilds reading-order text from positioned page fragments.
//
// A page's text layer arrives as an unordered set of short runs, each with a
// position and a rendered width. Reconstruct orders them top to bottom and
// left to right, breaks lines where the vertical position jumps, and inserts
// a single space where two runs on a line are visibly apart.
//
// The ordering is a heuristic for left-to-right, top-to-bottom layouts. It
// does not detect columns and does not handle right-to-left scripts.
//
// # Reconstruction
//
//	text := layout.Reconstruct(fragments, layout.DefaultThresholds())
//
// A new line starts when the vertical distance to the previous fragment is
// more than [Thresholds].Line; within a line, one space is inserted when the
// horizontal gap is more than [Thresholds].Word. Every page ends with
// [PageBreak]. [Lines] returns the grouped lines without joining them.
package layout
