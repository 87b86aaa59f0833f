// Package displaytest provides an in-memory display surface for tests.
package displaytest

import (
	"sync"

	"github.com/lixenwraith/mimic/display"
	"github.com/lixenwraith/mimic/grid"
	"github.com/lixenwraith/mimic/input"
	"github.com/lixenwraith/mimic/palette"
)

// Cursor is the last cursor state written to a surface
type Cursor struct {
	Visible bool
	X, Y    int
	Color   palette.RGB

	// Updates counts position/color writes
	Updates int
}

// Surface is an in-memory display.Surface
// Pointer coordinates map 1:1 to cells unless CellSize is set
type Surface struct {
	mu sync.Mutex

	Title         string
	Width, Height int
	Parent        *Surface

	// CellSize divides raw pointer coordinates into cells
	CellSize float64

	Cells  [][]grid.Cell
	Cursor Cursor

	PointerX, PointerY float64
	ClipboardText      string
	ClipboardErr       error

	pending  []display.Event
	held     map[input.Key]bool
	running  bool
	closed   int
	polls    int
	visibles []bool
}

// NewSurface creates a running surface of width x height cells
func NewSurface(title string, width, height int) *Surface {
	cells := make([][]grid.Cell, height)
	for y := range cells {
		cells[y] = make([]grid.Cell, width)
	}
	return &Surface{
		Title:    title,
		Width:    width,
		Height:   height,
		CellSize: 1,
		Cells:    cells,
		held:     make(map[input.Key]bool),
		running:  true,
	}
}

// Push queues events for the next PollEvents
func (s *Surface) Push(events ...display.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, events...)
}

// Hold marks keys as held
func (s *Surface) Hold(keys ...input.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		s.held[k] = true
	}
}

// Release marks keys as released
func (s *Surface) Release(keys ...input.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.held, k)
	}
}

// Stop simulates the user closing the window
func (s *Surface) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// CloseCount returns how many times Close was invoked
func (s *Surface) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Polls returns how many times PollEvents was invoked
func (s *Surface) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// VisibilityHistory returns every value passed to SetCursorVisible
func (s *Surface) VisibilityHistory() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.visibles...)
}

// Row returns the glyphs of one row as a string
func (s *Surface) Row(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	runes := make([]rune, len(s.Cells[y]))
	for x, c := range s.Cells[y] {
		runes[x] = c.Rune
	}
	return string(runes)
}

func (s *Surface) inBounds(col, row int) bool {
	return row >= 0 && row < len(s.Cells) && col >= 0 && col < len(s.Cells[row])
}

func (s *Surface) SetCharacter(col, row int, r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inBounds(col, row) {
		s.Cells[row][col].Rune = r
	}
}

func (s *Surface) SetForeground(col, row int, c palette.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inBounds(col, row) {
		s.Cells[row][col].Fg = c
	}
}

func (s *Surface) SetBackground(col, row int, c palette.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inBounds(col, row) {
		s.Cells[row][col].Bg = c
	}
}

func (s *Surface) SetCursorVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cursor.Visible = visible
	s.visibles = append(s.visibles, visible)
}

func (s *Surface) SetCursorPosition(col, row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cursor.X, s.Cursor.Y = col, row
	s.Cursor.Updates++
}

func (s *Surface) SetCursorColor(c palette.RGB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cursor.Color = c
	s.Cursor.Updates++
}

func (s *Surface) PollEvents() []display.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	events := s.pending
	s.pending = nil
	return events
}

func (s *Surface) CellAt(x, y float64) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := s.CellSize
	if size <= 0 {
		size = 1
	}
	return int(x / size), int(y / size)
}

func (s *Surface) Pointer() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.PointerX, s.PointerY
}

func (s *Surface) IsKeyDown(k input.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held[k]
}

func (s *Surface) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Surface) Clipboard() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ClipboardText, s.ClipboardErr
}

func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	s.running = false
}

var _ display.Surface = (*Surface)(nil)
