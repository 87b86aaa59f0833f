package desktop

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mimic/input"
)

// keyPress is a terminal key event normalized to abstract keys
type keyPress struct {
	key  input.Key
	mods input.Modifier
	// char is the typed character, zero when the press produces none
	char rune
}

// namedKeys maps tcell special keys
var namedKeys = map[tcell.Key]input.Key{
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyDelete:     input.KeyDelete,
	tcell.KeyInsert:     input.KeyInsert,
	tcell.KeyHome:       input.KeyHome,
	tcell.KeyEnd:        input.KeyEnd,
	tcell.KeyPgUp:       input.KeyPageUp,
	tcell.KeyPgDn:       input.KeyPageDown,
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyRight:      input.KeyRight,
}

// runeKeys maps unshifted US-layout characters to their key
var runeKeys = map[rune]input.Key{
	' ':  input.KeySpace,
	',':  input.KeyComma,
	'.':  input.KeyPeriod,
	'\\': input.KeyBackslash,
	';':  input.KeySemicolon,
	'\'': input.KeyApostrophe,
	'/':  input.KeySlash,
	'[':  input.KeyBracketLeft,
	']':  input.KeyBracketRight,
	'=':  input.KeyEquals,
	'-':  input.KeyMinus,
	'`':  input.KeyBacktick,
}

// shiftedKeys maps shifted US-layout characters to their key
var shiftedKeys = map[rune]input.Key{
	'!': input.Key1,
	'@': input.Key2,
	'#': input.Key3,
	'$': input.Key4,
	'%': input.Key5,
	'^': input.Key6,
	'&': input.Key7,
	'*': input.Key8,
	'(': input.Key9,
	')': input.Key0,
	'<': input.KeyComma,
	'>': input.KeyPeriod,
	'|': input.KeyBackslash,
	':': input.KeySemicolon,
	'"': input.KeyApostrophe,
	'?': input.KeySlash,
	'{': input.KeyBracketLeft,
	'}': input.KeyBracketRight,
	'+': input.KeyEquals,
	'_': input.KeyMinus,
	'~': input.KeyBacktick,
}

func translateMods(m tcell.ModMask) input.Modifier {
	var mods input.Modifier
	if m&tcell.ModShift != 0 {
		mods |= input.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= input.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= input.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= input.ModMeta
	}
	return mods
}

// runeKey resolves a printable character to its key and implied shift
func runeKey(r rune) (input.Key, input.Modifier) {
	if k, ok := input.LetterKey(r); ok {
		if r >= 'A' && r <= 'Z' {
			return k, input.ModShift
		}
		return k, 0
	}
	if k, ok := input.DigitKey(r); ok {
		return k, 0
	}
	if k, ok := runeKeys[r]; ok {
		return k, 0
	}
	if k, ok := shiftedKeys[r]; ok {
		return k, input.ModShift
	}
	return input.KeyNone, 0
}

// translateKeyEvent normalizes a tcell key event
// Terminals deliver Ctrl+letter as control codes; those become the letter key with Ctrl held
func translateKeyEvent(ev *tcell.EventKey) keyPress {
	mods := translateMods(ev.Modifiers())
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		key, implied := runeKey(r)
		if mods.Has(input.ModCtrl | input.ModAlt) {
			mods = mods&^input.ModAlt | input.ModShift
		}
		p := keyPress{key: key, mods: mods | implied}
		// Chords with Ctrl/Alt type nothing
		if mods&(input.ModCtrl|input.ModAlt) == 0 {
			p.char = r
		}
		return p

	case k == tcell.KeyBacktab:
		return keyPress{key: input.KeyTab, mods: mods | input.ModShift}

	case k >= tcell.KeyF1 && k <= tcell.KeyF20:
		fk, _ := input.FunctionKey(int(k-tcell.KeyF1) + 1)
		return keyPress{key: fk, mods: mods}
	}

	if named, ok := namedKeys[k]; ok {
		return keyPress{key: named, mods: mods}
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := input.KeyA + input.Key(k-tcell.KeyCtrlA)
		// Legacy encodings drop Shift from Ctrl+letter; Ctrl+Alt+letter stands in for it
		if mods.Has(input.ModAlt) {
			mods = mods&^input.ModAlt | input.ModShift
		}
		return keyPress{key: letter, mods: mods | input.ModCtrl}
	}
	if k == tcell.KeyCtrlSpace {
		return keyPress{key: input.KeySpace, mods: mods | input.ModCtrl}
	}
	return keyPress{mods: mods}
}
