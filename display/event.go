package display

import (
	"fmt"

	"github.com/lixenwraith/mimic/input"
)

// Event is one raw input event reported by a surface
type Event interface {
	isEvent()
}

// KeyDown is a key press, repeated while the key is held
type KeyDown struct {
	Key  input.Key
	Mods input.Modifier
}

// Character is a typed character after keyboard layout processing
type Character struct {
	Rune rune
}

// MouseDown is a button press at raw pointer coordinates
type MouseDown struct {
	X, Y   float64
	Button input.MouseButton
}

// MouseDrag is pointer motion with a button held
type MouseDrag struct {
	X, Y   float64
	Button input.MouseButton
}

// MouseScroll is a wheel movement; DY is negative for upward motion
type MouseScroll struct {
	DX, DY float64
}

func (KeyDown) isEvent()     {}
func (Character) isEvent()   {}
func (MouseDown) isEvent()   {}
func (MouseDrag) isEvent()   {}
func (MouseScroll) isEvent() {}

func (e KeyDown) String() string {
	return fmt.Sprintf("KeyDown(%s, mods=%04b)", e.Key, e.Mods)
}

func (e Character) String() string {
	return fmt.Sprintf("Character(%q)", e.Rune)
}

func (e MouseDown) String() string {
	return fmt.Sprintf("MouseDown(%.0f, %.0f, %s)", e.X, e.Y, e.Button)
}

func (e MouseDrag) String() string {
	return fmt.Sprintf("MouseDrag(%.0f, %.0f, %s)", e.X, e.Y, e.Button)
}

func (e MouseScroll) String() string {
	return fmt.Sprintf("MouseScroll(%.1f, %.1f)", e.DX, e.DY)
}
