package desktop

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/mimic/input"
)

func TestTranslateKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want keyPress
	}{
		{"lower letter", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), keyPress{key: input.KeyA, char: 'a'}},
		{"upper letter implies shift", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), keyPress{key: input.KeyR, mods: input.ModShift, char: 'R'}},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), keyPress{key: input.Key7, char: '7'}},
		{"shifted punctuation", tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone), keyPress{key: input.KeySlash, mods: input.ModShift, char: '?'}},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), keyPress{key: input.KeySpace, char: ' '}},
		{"unknown rune types only", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), keyPress{char: 'é'}},
		{"alt rune types nothing", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), keyPress{key: input.KeyX, mods: input.ModAlt}},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), keyPress{key: input.KeyN, mods: input.ModCtrl}},
		{"ctrl shift letter", tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl|tcell.ModShift), keyPress{key: input.KeyB, mods: input.ModCtrl | input.ModShift}},
		{"ctrl alt letter stands in for shift", tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl|tcell.ModAlt), keyPress{key: input.KeyN, mods: input.ModCtrl | input.ModShift}},
		{"ctrl alt rune stands in for shift", tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModCtrl|tcell.ModAlt), keyPress{key: input.KeyB, mods: input.ModCtrl | input.ModShift}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), keyPress{key: input.KeyEnter}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), keyPress{key: input.KeyBackspace}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), keyPress{key: input.KeyTab, mods: input.ModShift}},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), keyPress{key: input.KeyLeft}},
		{"function key", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), keyPress{key: input.KeyF12}},
		{"ctrl space", tcell.NewEventKey(tcell.KeyCtrlSpace, 0, tcell.ModCtrl), keyPress{key: input.KeySpace, mods: input.ModCtrl}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateKeyEvent(tt.ev))
		})
	}
}

func TestRuneKeyCoversPrintableASCII(t *testing.T) {
	for r := rune(' '); r <= '~'; r++ {
		k, _ := runeKey(r)
		assert.NotEqual(t, input.KeyNone, k, "no key for %q", r)
	}
}
