// Package backend defines the call surface of the computation object behind an instance.
//
// A Computer owns the emulated state of one device. Every call is synchronous and may fail;
// a failure is fatal for the instance that made it.
package backend

import (
	"fmt"
)

// Params are the construction arguments of one backend computer
type Params struct {
	ID          uint32 `json:"id"`
	Advanced    bool   `json:"advanced"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	StoragePath string `json:"storage_path"`
	ROMPath     string `json:"rom_path"`
	SpaceLimit  uint64 `json:"space_limit"`
}

// Computer is the backend call surface
type Computer interface {
	// Advance runs the computer for delta seconds of wall time
	Advance(delta float64) error

	// Line returns the text of one terminal row
	Line(row int) (string, error)

	// ColorLine returns 2*width palette digits for one row, backgrounds then foregrounds
	ColorLine(row int) (string, error)

	CursorX() (int, error)
	CursorY() (int, error)
	CursorColor() (int, error)
	CursorBlink() (bool, error)

	KeyEvent(code int) error
	CharEvent(ch string) error
	MouseClick(button, x, y int) error
	MouseDrag(button, x, y int) error
	MouseScroll(direction, x, y int) error

	AttachModem() error
	DetachModem() error
	Paste(text string) error

	Terminate() error
	Shutdown() error
	Reboot() error

	// Close tears the computer down and releases its resources
	Close() error
}

// CallError reports a failed backend invocation
type CallError struct {
	ID     uint32
	Method string
	Err    error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("backend %d: %s: %v", e.ID, e.Method, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Fail wraps err as a CallError for method, passing nil through
func Fail(id uint32, method string, err error) error {
	if err == nil {
		return nil
	}
	return &CallError{ID: id, Method: method, Err: err}
}
