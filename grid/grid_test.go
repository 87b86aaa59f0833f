package grid

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mimic/palette"
)

func TestDecodeRowSplitsBackgroundAndForeground(t *testing.T) {
	cells, err := DecodeRow(5, "hello", "0123456789")
	require.NoError(t, err)
	require.Len(t, cells, 5)

	wantBg := []palette.Index{0, 1, 2, 3, 4}
	wantFg := []palette.Index{5, 6, 7, 8, 9}
	for x, cell := range cells {
		assert.Equal(t, rune("hello"[x]), cell.Rune, "column %d", x)
		assert.Equal(t, wantBg[x].Color(), cell.Bg, "background at column %d", x)
		assert.Equal(t, wantFg[x].Color(), cell.Fg, "foreground at column %d", x)
	}
}

func TestDecodeRowAllowsLongerText(t *testing.T) {
	cells, err := DecodeRow(2, "abc", "ff00")
	require.NoError(t, err)
	require.Len(t, cells, 2)
	assert.Equal(t, 'a', cells[0].Rune)
	assert.Equal(t, 'b', cells[1].Rune)
	assert.Equal(t, palette.White, cells[0].Bg)
	assert.Equal(t, palette.Black, cells[0].Fg)
	assert.Equal(t, palette.White, cells[1].Bg)
	assert.Equal(t, palette.Black, cells[1].Fg)
}

func TestDecodeRowMultibyteText(t *testing.T) {
	cells, err := DecodeRow(3, "a§b", "000fff")
	require.NoError(t, err)
	assert.Equal(t, '§', cells[1].Rune)
	assert.Equal(t, 'b', cells[2].Rune)
}

func TestDecodeRowMalformed(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		text      string
		colorLine string
		badDigit  bool
	}{
		{"color line too short", 5, "hello", "012345678", false},
		{"color line too long", 5, "hello", "0123456789a", false},
		{"text too short", 5, "hey", "0123456789", false},
		{"invalid background digit", 2, "ab", "0x00", true},
		{"invalid foreground digit", 2, "ab", "00z0", true},
		{"negative width", -1, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, err := DecodeRow(tt.width, tt.text, tt.colorLine)
			require.Error(t, err)
			assert.Nil(t, cells)
			assert.True(t, errors.Is(err, ErrMalformedFrameData), "got %v", err)
			assert.Equal(t, tt.badDigit, errors.Is(err, palette.ErrInvalidColorDigit))
		})
	}
}

func TestDecodeRowBadDigitMessage(t *testing.T) {
	_, err := DecodeRow(2, "ab", "00z0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed frame data: foreground at column 0")
	assert.Contains(t, err.Error(), "invalid color digit")
}

func TestDecodeRowZeroWidth(t *testing.T) {
	cells, err := DecodeRow(0, "", "")
	require.NoError(t, err)
	assert.Empty(t, cells)
}
