// Package viz renders particle trails in the terminal.
//
//   - [TermPort]: a scene port that rasterises every live line onto a
//     braille [Canvas] with additive per-cell colour
//   - [Projector]: perspective look-at projection for a scene camera
//   - [Model]: a Bubble Tea program that steps a loop once per tick and
//     shows the canvas beside a stats panel
//
// # Key Bindings
//
//	Q / Esc / Ctrl+C - Quit
package viz
