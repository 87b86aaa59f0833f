// Package backendtest provides a recording backend computer for tests.
package backendtest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lixenwraith/mimic/backend"
)

// Call is one recorded backend invocation
type Call struct {
	Method string
	Args   []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Method + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder is a scriptable backend.Computer that records every call
// Frame getters return Lines/ColorLines; rows without content return blank lines
type Recorder struct {
	mu sync.Mutex

	Width, Height int

	Lines      map[int]string
	ColorLines map[int]string

	CursorPosX, CursorPosY int
	CursorPalette          int
	Blink                  bool

	// Errors forces a method to fail
	Errors map[string]error

	calls  []Call
	closed int
}

// NewRecorder creates a recorder for a width x height terminal
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		Width:      width,
		Height:     height,
		Lines:      make(map[int]string),
		ColorLines: make(map[int]string),
		Errors:     make(map[string]error),
	}
}

// Calls returns the recorded calls, optionally filtered by method
func (r *Recorder) Calls(methods ...string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(methods) == 0 {
		return append([]Call(nil), r.calls...)
	}
	var out []Call
	for _, c := range r.calls {
		for _, m := range methods {
			if c.Method == m {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Reset clears the call log
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// CloseCount returns how many times Close was invoked
func (r *Recorder) CloseCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Fail makes method return err from now on
func (r *Recorder) Fail(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors[method] = err
}

func (r *Recorder) record(method string, args ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Method: method, Args: args})
	return r.Errors[method]
}

func (r *Recorder) Advance(delta float64) error {
	return r.record("advance", delta)
}

func (r *Recorder) Line(row int) (string, error) {
	if err := r.record("getLine", row); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if line, ok := r.Lines[row]; ok {
		return line, nil
	}
	return strings.Repeat(" ", r.Width), nil
}

func (r *Recorder) ColorLine(row int) (string, error) {
	if err := r.record("getColorLine", row); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if line, ok := r.ColorLines[row]; ok {
		return line, nil
	}
	return strings.Repeat("0", r.Width) + strings.Repeat("f", r.Width), nil
}

func (r *Recorder) CursorX() (int, error) {
	err := r.record("getCursorX")
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.CursorPosX, err
}

func (r *Recorder) CursorY() (int, error) {
	err := r.record("getCursorY")
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.CursorPosY, err
}

func (r *Recorder) CursorColor() (int, error) {
	err := r.record("getCursorColor")
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.CursorPalette, err
}

func (r *Recorder) CursorBlink() (bool, error) {
	err := r.record("getCursorBlink")
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Blink, err
}

func (r *Recorder) KeyEvent(code int) error { return r.record("keyEvent", code) }

func (r *Recorder) CharEvent(ch string) error { return r.record("charEvent", ch) }

func (r *Recorder) MouseClick(button, x, y int) error {
	return r.record("mouseClickEvent", button, x, y)
}

func (r *Recorder) MouseDrag(button, x, y int) error {
	return r.record("mouseDragEvent", button, x, y)
}

func (r *Recorder) MouseScroll(direction, x, y int) error {
	return r.record("mouseScrollEvent", direction, x, y)
}

func (r *Recorder) AttachModem() error { return r.record("attachModem") }

func (r *Recorder) DetachModem() error { return r.record("detachModem") }

func (r *Recorder) Paste(text string) error { return r.record("paste", text) }

func (r *Recorder) Terminate() error { return r.record("terminate") }

func (r *Recorder) Shutdown() error { return r.record("shutdown") }

func (r *Recorder) Reboot() error { return r.record("reboot") }

func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closed++
	r.mu.Unlock()
	return r.record("destroy")
}

var _ backend.Computer = (*Recorder)(nil)
