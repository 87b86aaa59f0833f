package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateKeyKnownCodes(t *testing.T) {
	tests := []struct {
		key  Key
		want Code
	}{
		{KeyQ, 16},
		{KeyA, 30},
		{KeyM, 50},
		{Key0, 11},
		{Key1, 2},
		{KeyF1, 59},
		{KeyF11, 87},
		{KeyF15, 102},
		{KeyEnter, 28},
		{KeyBackspace, 14},
		{KeyUp, 200},
		{KeyDown, 208},
		{KeyLeftControl, 29},
		{KeyRightControl, 157},
		{KeyRightMeta, 220},
	}

	for _, tt := range tests {
		got, ok := TranslateKey(tt.key)
		assert.True(t, ok, "key %s", tt.key)
		assert.Equal(t, tt.want, got, "key %s", tt.key)
	}
}

func TestTranslateKeyUnmapped(t *testing.T) {
	for _, k := range []Key{KeyNone, KeyF16, KeyF20, KeyDelete, KeyInsert} {
		_, ok := TranslateKey(k)
		assert.False(t, ok, "key %s should have no legacy code", k)
	}
}

func TestEveryLetterAndDigitIsMapped(t *testing.T) {
	seen := make(map[Code]Key)
	for k := KeyA; k <= Key9; k++ {
		code, ok := TranslateKey(k)
		if !assert.True(t, ok, "key %s", k) {
			continue
		}
		if prev, dup := seen[code]; dup {
			t.Errorf("code %d shared by %s and %s", code, prev, k)
		}
		seen[code] = k
	}
}

func TestTranslateButton(t *testing.T) {
	assert.Equal(t, Code(1), TranslateButton(MouseLeft))
	assert.Equal(t, Code(3), TranslateButton(MouseMiddle))
	assert.Equal(t, Code(2), TranslateButton(MouseRight))
}

func TestKeyHelpers(t *testing.T) {
	k, ok := LetterKey('n')
	assert.True(t, ok)
	assert.Equal(t, KeyN, k)

	k, ok = LetterKey('B')
	assert.True(t, ok)
	assert.Equal(t, KeyB, k)

	_, ok = LetterKey('1')
	assert.False(t, ok)

	k, ok = DigitKey('7')
	assert.True(t, ok)
	assert.Equal(t, Key7, k)

	k, ok = FunctionKey(12)
	assert.True(t, ok)
	assert.Equal(t, KeyF12, k)

	_, ok = FunctionKey(21)
	assert.False(t, ok)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "r", KeyR.String())
	assert.Equal(t, "5", Key5.String())
	assert.Equal(t, "f10", KeyF10.String())
	assert.Equal(t, "left_control", KeyLeftControl.String())
	assert.Equal(t, "none", KeyNone.String())
}

func TestModifierHas(t *testing.T) {
	mods := ModCtrl | ModShift
	assert.True(t, mods.Has(ModCtrl))
	assert.True(t, mods.Has(ModCtrl|ModShift))
	assert.False(t, mods.Has(ModAlt))
}
