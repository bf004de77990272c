// Package viz provides a terminal preview of the climate spiral.
//
// The preview is a Bubble Tea program that reveals the spiral month by month
// on a braille canvas, next to a chart of the revealed anomalies:
//
//   - [Model]: the preview application
//   - [Canvas]: Braille-based pixel canvas
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the first month
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	S     - Save an SVG snapshot of the canvas
//	+/-   - Change speed
//	?     - Show help overlay
//	[]    - Step back/forward one year
//
// # Recording
//
// Recordings are written as GIF animations when G is pressed a second time.
package viz
