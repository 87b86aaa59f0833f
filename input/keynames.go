package input

import "strconv"

// keyToName maps keys with non-derivable names
var keyToName = map[Key]string{
	KeySpace:        "space",
	KeyComma:        "comma",
	KeyPeriod:       "period",
	KeyBackslash:    "backslash",
	KeySemicolon:    "semicolon",
	KeyApostrophe:   "apostrophe",
	KeySlash:        "slash",
	KeyBracketLeft:  "bracket_left",
	KeyBracketRight: "bracket_right",
	KeyEquals:       "equals",
	KeyMinus:        "minus",
	KeyBacktick:     "backtick",

	KeyTab:       "tab",
	KeyEnter:     "enter",
	KeyCapsLock:  "caps_lock",
	KeyEscape:    "escape",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "page_up",
	KeyPageDown:  "page_down",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",

	KeyLeftShift:    "left_shift",
	KeyRightShift:   "right_shift",
	KeyLeftControl:  "left_control",
	KeyRightControl: "right_control",
	KeyLeftAlt:      "left_alt",
	KeyRightAlt:     "right_alt",
	KeyLeftMeta:     "left_meta",
	KeyRightMeta:    "right_meta",
}

// String returns the canonical key name used in logs
func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + (k - KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + (k - Key0)))
	case k >= KeyF1 && k <= KeyF20:
		return "f" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if name, ok := keyToName[k]; ok {
		return name
	}
	return "none"
}
