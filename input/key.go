package input

// Key is an abstract keyboard key identifier reported by a display surface
type Key uint16

const (
	KeyNone Key = iota

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Number row
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20

	// Punctuation
	KeySpace
	KeyComma
	KeyPeriod
	KeyBackslash
	KeySemicolon
	KeyApostrophe
	KeySlash
	KeyBracketLeft
	KeyBracketRight
	KeyEquals
	KeyMinus
	KeyBacktick

	// Editing and navigation
	KeyTab
	KeyEnter
	KeyCapsLock
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Modifiers
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftMeta
	KeyRightMeta

	keyCount
)

// Modifier flags held alongside a key press
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModCtrl  Modifier = 1 << 1
	ModAlt   Modifier = 1 << 2
	ModMeta  Modifier = 1 << 3
)

// Has reports whether all bits of m are set
func (mods Modifier) Has(m Modifier) bool {
	return mods&m == m
}

// MouseButton identifies the buttons representable at the backend boundary
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	default:
		return "None"
	}
}

// LetterKey returns the key for an ASCII letter of either case
func LetterKey(r rune) (Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A'), true
	}
	return KeyNone, false
}

// DigitKey returns the number-row key for an ASCII digit
func DigitKey(r rune) (Key, bool) {
	if r >= '0' && r <= '9' {
		return Key0 + Key(r-'0'), true
	}
	return KeyNone, false
}

// FunctionKey returns F1..F20 for n in 1..20
func FunctionKey(n int) (Key, bool) {
	if n < 1 || n > 20 {
		return KeyNone, false
	}
	return KeyF1 + Key(n-1), true
}
