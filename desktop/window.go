package desktop

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/mimic/display"
	"github.com/lixenwraith/mimic/input"
	"github.com/lixenwraith/mimic/palette"
)

// cell is one content cell as last written by the instance
type cell struct {
	r  rune
	fg tcell.Color
	bg tcell.Color
}

// Window is a bordered region of the desktop presenting one instance
// Pointer coordinates are content-relative screen cells
type Window struct {
	desk  *Desktop
	title string
	cols  int
	rows  int

	// top-left corner of the frame in screen cells
	x, y int

	parent   *Window
	children int
	seq      uint64

	cells []cell

	cursorVisible bool
	cursorX       int
	cursorY       int
	cursorColor   tcell.Color

	queue    []display.Event
	pointerX float64
	pointerY float64

	closed bool
}

var _ display.Surface = (*Window)(nil)

func newWindow(d *Desktop, title string, cols, rows int) *Window {
	w := &Window{
		desk:        d,
		title:       title,
		cols:        cols,
		rows:        rows,
		cells:       make([]cell, cols*rows),
		cursorColor: toColor(palette.White),
	}
	black, white := toColor(palette.Black), toColor(palette.White)
	for i := range w.cells {
		w.cells[i] = cell{r: ' ', fg: white, bg: black}
	}
	return w
}

func toColor(c palette.RGB) tcell.Color {
	return tcell.NewHexColor(int32(c))
}

// Title returns the window title
func (w *Window) Title() string { return w.title }

// Position returns the frame's top-left corner in screen cells
func (w *Window) Position() (x, y int) { return w.x, w.y }

// Size returns the content area in cells
func (w *Window) Size() (cols, rows int) { return w.cols, w.rows }

func (w *Window) frameSize() (int, int) { return w.cols + 2, w.rows + 2 }

func (w *Window) frameContains(x, y int) bool {
	fw, fh := w.frameSize()
	return x >= w.x && x < w.x+fw && y >= w.y && y < w.y+fh
}

func (w *Window) contentContains(x, y int) bool {
	return x > w.x && x <= w.x+w.cols && y > w.y && y <= w.y+w.rows
}

// local converts screen cells to content-relative pointer units
func (w *Window) local(x, y int) (float64, float64) {
	return float64(x - w.x - 1), float64(y - w.y - 1)
}

func (w *Window) setPointer(x, y int) {
	w.pointerX, w.pointerY = w.local(x, y)
}

func (w *Window) push(ev display.Event) {
	if w.closed {
		return
	}
	w.queue = append(w.queue, ev)
}

func (w *Window) at(col, row int) *cell {
	if col < 0 || col >= w.cols || row < 0 || row >= w.rows {
		return nil
	}
	return &w.cells[row*w.cols+col]
}

func (w *Window) SetCharacter(col, row int, r rune) {
	if c := w.at(col, row); c != nil {
		c.r = r
	}
}

func (w *Window) SetForeground(col, row int, c palette.RGB) {
	if cl := w.at(col, row); cl != nil {
		cl.fg = toColor(c)
	}
}

func (w *Window) SetBackground(col, row int, c palette.RGB) {
	if cl := w.at(col, row); cl != nil {
		cl.bg = toColor(c)
	}
}

func (w *Window) SetCursorVisible(visible bool) { w.cursorVisible = visible }

func (w *Window) SetCursorPosition(col, row int) {
	w.cursorX, w.cursorY = col, row
}

func (w *Window) SetCursorColor(c palette.RGB) { w.cursorColor = toColor(c) }

// PollEvents routes pending terminal input and drains this window's queue
// The desktop is redrawn once per pass, when the newest window polls
func (w *Window) PollEvents() []display.Event {
	if !w.Running() {
		return nil
	}
	w.desk.pump()
	if w.Running() && w.desk.newest() == w {
		w.desk.render()
	}
	events := w.queue
	w.queue = nil
	return events
}

// CellAt clamps to the content area
func (w *Window) CellAt(x, y float64) (col, row int) {
	return clamp(int(x), 0, w.cols-1), clamp(int(y), 0, w.rows-1)
}

func (w *Window) Pointer() (x, y float64) { return w.pointerX, w.pointerY }

// IsKeyDown is true only for the focused window while the key repeats within the hold window
func (w *Window) IsKeyDown(k input.Key) bool {
	if w.desk.focused != w {
		return false
	}
	return w.desk.isHeld(k)
}

func (w *Window) Running() bool { return !w.closed && !w.desk.closed }

func (w *Window) Clipboard() (string, error) { return w.desk.clipboard() }

func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.queue = nil
	w.desk.remove(w)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// draw paints frame, title, content and cursor
func (w *Window) draw(s tcell.Screen, focused bool) {
	border := tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	if focused {
		border = border.Foreground(tcell.ColorWhite).Bold(true)
	}

	fw, fh := w.frameSize()
	right, bottom := w.x+fw-1, w.y+fh-1
	for x := w.x + 1; x < right; x++ {
		s.SetContent(x, w.y, tcell.RuneHLine, nil, border)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, border)
	}
	for y := w.y + 1; y < bottom; y++ {
		s.SetContent(w.x, y, tcell.RuneVLine, nil, border)
		s.SetContent(right, y, tcell.RuneVLine, nil, border)
	}
	s.SetContent(w.x, w.y, tcell.RuneULCorner, nil, border)
	s.SetContent(right, w.y, tcell.RuneURCorner, nil, border)
	s.SetContent(w.x, bottom, tcell.RuneLLCorner, nil, border)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, border)

	if w.cols > 2 {
		title := runewidth.Truncate(w.title, w.cols-2, "…")
		tx := w.x + 1 + (w.cols-runewidth.StringWidth(title))/2
		for _, r := range title {
			s.SetContent(tx, w.y, r, nil, border)
			tx += runewidth.RuneWidth(r)
		}
	}

	for row := 0; row < w.rows; row++ {
		for col := 0; col < w.cols; col++ {
			c := w.cells[row*w.cols+col]
			st := tcell.StyleDefault.Foreground(c.fg).Background(c.bg)
			r := c.r
			if w.cursorVisible && col == w.cursorX && row == w.cursorY {
				if r == ' ' || r == 0 {
					r = '_'
				}
				st = st.Foreground(w.cursorColor).Underline(true)
			}
			s.SetContent(w.x+1+col, w.y+1+row, r, nil, st)
		}
	}
}
