// Package viz provides the terminal view of a swinging pendulum.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live simulation view, stepped at 60 frames per second
//   - [Canvas]: Braille-based pixel canvas addressed in world coordinates
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to the drop point
//	C     - Clear the trail
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// A left click drops the ball at the clicked cell; the program must be
// started with mouse support for clicks to arrive.
//
// # Recording
//
// The view records sessions as GIF animations when toggled with the G
// key. Recordings are saved to pendulum.gif in the current directory.
package viz
