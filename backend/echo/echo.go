// Package echo is an in-process demo computer.
//
// It boots to a prompt, echoes typed lines back and understands a few commands. It exists so
// the front end can run without an external backend and to exercise the full loop in tests.
package echo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mimic/backend"
	"github.com/lixenwraith/mimic/input"
	"github.com/lixenwraith/mimic/palette"
)

// ErrClosed is returned by every call after Close
var ErrClosed = errors.New("computer destroyed")

// Palette slots used by the console
const (
	colorText   palette.Index = 15 // white
	colorBack   palette.Index = 0  // black
	colorPrompt palette.Index = 11 // yellow, advanced only
	colorDim    palette.Index = 7  // light gray
)

var (
	codeBackspace, _ = input.TranslateKey(input.KeyBackspace)
	codeEnter, _     = input.TranslateKey(input.KeyEnter)
)

// Computer is the demo console
type Computer struct {
	mu sync.Mutex

	params backend.Params
	screen *Screen
	line   []rune

	on     bool
	modem  bool
	closed bool
	uptime float64
}

// New boots a demo computer
func New(p backend.Params) (*Computer, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, errors.Errorf("echo: invalid geometry %dx%d", p.Width, p.Height)
	}
	c := &Computer{
		params: p,
		screen: NewScreen(p.Width, p.Height),
	}
	c.boot()
	return c, nil
}

func (c *Computer) boot() {
	c.on = true
	c.uptime = 0
	c.line = c.line[:0]
	c.screen.SetColors(colorText, colorBack)
	c.screen.Clear()
	c.screen.SetColors(colorDim, colorBack)
	c.screen.Write(fmt.Sprintf("Echo OS 1.0 #%d", c.params.ID))
	c.screen.Newline()
	c.prompt()
}

func (c *Computer) prompt() {
	if c.params.Advanced {
		c.screen.SetColors(colorPrompt, colorBack)
	} else {
		c.screen.SetColors(colorText, colorBack)
	}
	c.screen.Write("> ")
	c.screen.SetColors(colorText, colorBack)
}

// println writes a full output line, starting on a fresh line
func (c *Computer) println(text string) {
	if x, _ := c.screen.Cursor(); x != 0 {
		c.screen.Newline()
	}
	c.screen.Write(text)
	c.screen.Newline()
}

func (c *Computer) guard() error {
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *Computer) Advance(delta float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return err
	}
	if c.on {
		c.uptime += delta
	}
	return nil
}

func (c *Computer) Line(row int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return "", err
	}
	return c.screen.Line(row), nil
}

func (c *Computer) ColorLine(row int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return "", err
	}
	return c.screen.ColorLine(row), nil
}

func (c *Computer) CursorX() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	x, _ := c.screen.Cursor()
	return x, c.guard()
}

func (c *Computer) CursorY() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, y := c.screen.Cursor()
	return y, c.guard()
}

func (c *Computer) CursorColor() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(colorText), c.guard()
}

func (c *Computer) CursorBlink() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on, c.guard()
}

func (c *Computer) KeyEvent(code int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return err
	}
	if !c.on {
		return nil
	}
	switch input.Code(code) {
	case codeBackspace:
		if len(c.line) > 0 && c.screen.Backspace() {
			c.line = c.line[:len(c.line)-1]
		}
	case codeEnter:
		c.submit()
	}
	return nil
}

func (c *Computer) CharEvent(ch string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return err
	}
	if !c.on {
		return nil
	}
	c.typeText(ch)
	return nil
}

func (c *Computer) typeText(text string) {
	for _, r := range text {
		// Input stays on the prompt line
		if x, _ := c.screen.Cursor(); x >= c.params.Width-1 {
			return
		}
		c.line = append(c.line, r)
		c.screen.Write(string(r))
	}
}

func (c *Computer) submit() {
	cmd := strings.TrimSpace(string(c.line))
	c.line = c.line[:0]
	c.screen.Newline()

	switch cmd {
	case "":
	case "clear":
		c.screen.Clear()
	case "id":
		c.println(fmt.Sprintf("This is computer #%d", c.params.ID))
	case "uptime":
		c.println(fmt.Sprintf("%.1fs", c.uptime))
	case "reboot":
		c.boot()
		return
	case "shutdown":
		c.powerOff()
		return
	default:
		c.println(cmd)
	}
	c.prompt()
}

func (c *Computer) mouse(kind string, button, x, y int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return err
	}
	// Mouse input is an advanced-computer feature
	if !c.on || !c.params.Advanced {
		return nil
	}
	c.screen.SetColors(colorDim, colorBack)
	c.println(fmt.Sprintf("%s %d at %d,%d", kind, button, x, y))
	c.prompt()
	c.screen.Write(string(c.line))
	return nil
}

func (c *Computer) MouseClick(button, x, y int) error {
	return c.mouse("mouse_click", button, x, y)
}

func (c *Computer) MouseDrag(button, x, y int) error {
	return c.mouse("mouse_drag", button, x, y)
}

func (c *Computer) MouseScroll(direction, x, y int) error {
	return c.mouse("mouse_scroll", direction, x, y)
}

func (c *Computer) setModem(attached bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return err
	}
	if c.modem == attached {
		return nil
	}
	c.modem = attached
	if c.on {
		state := "detached"
		if attached {
			state = "attached"
		}
		c.println("modem " + state)
		c.prompt()
		c.screen.Write(string(c.line))
	}
	return nil
}

func (c *Computer) AttachModem() error { return c.setModem(true) }

func (c *Computer) DetachModem() error { return c.setModem(false) }

// ModemAttached reports the modem state
func (c *Computer) ModemAttached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modem
}

// Paste types the first line of text at the prompt
func (c *Computer) Paste(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return err
	}
	if !c.on {
		return nil
	}
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	c.typeText(text)
	return nil
}

func (c *Computer) Terminate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return err
	}
	if !c.on {
		return nil
	}
	c.line = c.line[:0]
	c.screen.SetColors(colorDim, colorBack)
	c.println("Terminated")
	c.prompt()
	return nil
}

func (c *Computer) powerOff() {
	c.on = false
	c.line = c.line[:0]
	c.screen.SetColors(colorText, colorBack)
	c.screen.Clear()
}

func (c *Computer) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return err
	}
	c.powerOff()
	return nil
}

// Reboot restarts the computer, turning it on when it is off
func (c *Computer) Reboot() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guard(); err != nil {
		return err
	}
	c.boot()
	return nil
}

// On reports whether the computer is powered
func (c *Computer) On() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.on
}

// Close destroys the computer
func (c *Computer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	return nil
}

var _ backend.Computer = (*Computer)(nil)
