// Package display defines the window surface contract consumed by instance controllers.
//
// A surface presents a grid of colored cells, a single cursor, and reports raw input.
// Coordinates passed to the cell setters are 0-based columns and rows.
// Pointer coordinates are raw surface units (pixels on a graphical host, screen cells on a
// terminal host) and are converted with CellAt.
package display

import (
	"github.com/lixenwraith/mimic/input"
	"github.com/lixenwraith/mimic/palette"
)

// Surface is one window presenting an instance
type Surface interface {
	// SetCharacter writes the glyph of one cell
	SetCharacter(col, row int, r rune)

	// SetForeground sets the glyph color of one cell
	SetForeground(col, row int, c palette.RGB)

	// SetBackground sets the fill color of one cell
	SetBackground(col, row int, c palette.RGB)

	// SetCursorVisible shows/hides cursor
	SetCursorVisible(visible bool)

	// SetCursorPosition moves the cursor (0-indexed)
	SetCursorPosition(col, row int)

	// SetCursorColor sets the cursor color
	SetCursorColor(c palette.RGB)

	// PollEvents returns input received since the previous call without blocking
	PollEvents() []Event

	// CellAt maps raw pointer coordinates to a 0-based cell
	CellAt(x, y float64) (col, row int)

	// Pointer returns the last known raw pointer position
	Pointer() (x, y float64)

	// IsKeyDown reports whether a key is currently held
	IsKeyDown(k input.Key) bool

	// Running is false once the window has been closed
	Running() bool

	// Clipboard reads the host clipboard as text
	Clipboard() (string, error)

	// Close removes the window. Safe to call multiple times
	Close()
}
