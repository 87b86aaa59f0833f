package echo

import (
	"strings"

	"github.com/lixenwraith/mimic/palette"
)

// Cell is one character with palette colors
type Cell struct {
	Rune rune
	Fg   palette.Index
	Bg   palette.Index
}

// Screen is a scrolling terminal grid with a text cursor
type Screen struct {
	width  int
	height int
	lines  [][]Cell

	cursorX, cursorY int
	fg, bg           palette.Index
}

// NewScreen creates a blank screen
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		fg:     palette.Index(15),
		bg:     palette.Index(0),
	}
	s.Clear()
	return s
}

func (s *Screen) blankLine() []Cell {
	line := make([]Cell, s.width)
	for x := range line {
		line[x] = Cell{Rune: ' ', Fg: s.fg, Bg: s.bg}
	}
	return line
}

// Clear blanks the screen and homes the cursor
func (s *Screen) Clear() {
	s.lines = make([][]Cell, s.height)
	for y := range s.lines {
		s.lines[y] = s.blankLine()
	}
	s.cursorX, s.cursorY = 0, 0
}

// SetColors sets the colors used by subsequent writes
func (s *Screen) SetColors(fg, bg palette.Index) {
	s.fg, s.bg = fg, bg
}

// GetCell returns the cell at the given position
func (s *Screen) GetCell(x, y int) (Cell, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{}, false
	}
	return s.lines[y][x], true
}

// SetCell sets the cell at the given position
func (s *Screen) SetCell(x, y int, c Cell) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return false
	}
	s.lines[y][x] = c
	return true
}

// Cursor returns the cursor position
func (s *Screen) Cursor() (x, y int) {
	return s.cursorX, s.cursorY
}

// Write puts text at the cursor, wrapping and scrolling as needed
func (s *Screen) Write(text string) {
	for _, r := range text {
		if r == '\n' {
			s.Newline()
			continue
		}
		if s.cursorX >= s.width {
			s.Newline()
		}
		s.SetCell(s.cursorX, s.cursorY, Cell{Rune: r, Fg: s.fg, Bg: s.bg})
		s.cursorX++
	}
}

// Newline moves the cursor to the start of the next line, scrolling at the bottom
func (s *Screen) Newline() {
	s.cursorX = 0
	if s.cursorY < s.height-1 {
		s.cursorY++
		return
	}
	copy(s.lines, s.lines[1:])
	s.lines[s.height-1] = s.blankLine()
}

// Backspace erases the cell before the cursor on the current line
func (s *Screen) Backspace() bool {
	if s.cursorX == 0 {
		return false
	}
	s.cursorX--
	s.SetCell(s.cursorX, s.cursorY, Cell{Rune: ' ', Fg: s.fg, Bg: s.bg})
	return true
}

// Line returns the text of one row
func (s *Screen) Line(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var b strings.Builder
	for _, c := range s.lines[y] {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// ColorLine returns background digits followed by foreground digits for one row
func (s *Screen) ColorLine(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat("0", s.width) + strings.Repeat("f", s.width)
	}
	bg := make([]rune, s.width)
	fg := make([]rune, s.width)
	for x, c := range s.lines[y] {
		bg[x] = c.Bg.Digit()
		fg[x] = c.Fg.Digit()
	}
	return string(bg) + string(fg)
}
