package input

// Code is a legacy device code understood by the backend (LWJGL numbering)
type Code int

// keyCodes maps keys to backend key codes
// Keys absent from the table have no legacy mapping and are dropped
var keyCodes = map[Key]Code{
	KeyQ: 16,
	KeyW: 17,
	KeyE: 18,
	KeyR: 19,
	KeyT: 20,
	KeyY: 21,
	KeyU: 22,
	KeyI: 23,
	KeyO: 24,
	KeyP: 25,
	KeyA: 30,
	KeyS: 31,
	KeyD: 32,
	KeyF: 33,
	KeyG: 34,
	KeyH: 35,
	KeyJ: 36,
	KeyK: 37,
	KeyL: 38,
	KeyZ: 44,
	KeyX: 45,
	KeyC: 46,
	KeyV: 47,
	KeyB: 48,
	KeyN: 49,
	KeyM: 50,

	Key0: 11,
	Key1: 2,
	Key2: 3,
	Key3: 4,
	Key4: 5,
	Key5: 6,
	Key6: 7,
	Key7: 8,
	Key8: 9,
	Key9: 10,

	KeyF1:  59,
	KeyF2:  60,
	KeyF3:  61,
	KeyF4:  62,
	KeyF5:  63,
	KeyF6:  64,
	KeyF7:  65,
	KeyF8:  66,
	KeyF9:  67,
	KeyF10: 68,
	KeyF11: 87,
	KeyF12: 88,
	KeyF13: 100,
	KeyF14: 101,
	KeyF15: 102,

	KeySpace:        57,
	KeyComma:        51,
	KeyPeriod:       52,
	KeyBackslash:    43,
	KeySemicolon:    39,
	KeyApostrophe:   40,
	KeySlash:        53,
	KeyBracketLeft:  26,
	KeyBracketRight: 27,
	KeyEquals:       13,
	KeyMinus:        12,
	KeyTab:          15,
	KeyBacktick:     41,

	KeyEnter:     28,
	KeyCapsLock:  58,
	KeyEscape:    1,
	KeyBackspace: 14,
	KeyHome:      199,
	KeyEnd:       207,
	KeyPageUp:    201,
	KeyPageDown:  209,

	KeyUp:    200,
	KeyLeft:  203,
	KeyRight: 205,
	KeyDown:  208,

	KeyLeftShift:    42,
	KeyRightShift:   54,
	KeyLeftControl:  29,
	KeyRightControl: 157,
	KeyLeftAlt:      56,
	KeyRightAlt:     184,
	KeyLeftMeta:     219,
	KeyRightMeta:    220,
}

// buttonCodes maps mouse buttons to backend button codes
var buttonCodes = [...]Code{
	MouseLeft:   1,
	MouseMiddle: 3,
	MouseRight:  2,
}

// TranslateKey returns the backend code for a key
// ok is false for keys without a legacy mapping; callers drop those silently
func TranslateKey(k Key) (code Code, ok bool) {
	code, ok = keyCodes[k]
	return code, ok
}

// TranslateButton returns the backend code for a mouse button
func TranslateButton(b MouseButton) Code {
	if int(b) < len(buttonCodes) {
		return buttonCodes[b]
	}
	return buttonCodes[MouseLeft]
}
