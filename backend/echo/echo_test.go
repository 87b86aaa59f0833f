package echo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/mimic/backend"
	"github.com/lixenwraith/mimic/grid"
	"github.com/lixenwraith/mimic/input"
)

func newComputer(t *testing.T, advanced bool) *Computer {
	t.Helper()
	c, err := New(backend.Params{ID: 7, Advanced: advanced, Width: 20, Height: 4})
	require.NoError(t, err)
	return c
}

func line(t *testing.T, c *Computer, row int) string {
	t.Helper()
	text, err := c.Line(row)
	require.NoError(t, err)
	return strings.TrimRight(text, " ")
}

func key(t *testing.T, c *Computer, k input.Key) {
	t.Helper()
	code, ok := input.TranslateKey(k)
	require.True(t, ok)
	require.NoError(t, c.KeyEvent(int(code)))
}

func typeLine(t *testing.T, c *Computer, text string) {
	t.Helper()
	for _, r := range text {
		require.NoError(t, c.CharEvent(string(r)))
	}
	key(t, c, input.KeyEnter)
}

func TestBootScreen(t *testing.T) {
	c := newComputer(t, false)

	assert.Equal(t, "Echo OS 1.0 #7", line(t, c, 0))
	assert.Equal(t, ">", line(t, c, 1))

	x, err := c.CursorX()
	require.NoError(t, err)
	y, err := c.CursorY()
	require.NoError(t, err)
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)

	blink, err := c.CursorBlink()
	require.NoError(t, err)
	assert.True(t, blink)
}

func TestFrameDecodes(t *testing.T) {
	c := newComputer(t, true)
	for row := 0; row < 4; row++ {
		text, err := c.Line(row)
		require.NoError(t, err)
		colors, err := c.ColorLine(row)
		require.NoError(t, err)
		_, err = grid.DecodeRow(20, text, colors)
		require.NoError(t, err, "row %d", row)
	}
	colors, err := c.ColorLine(1)
	require.NoError(t, err)
	assert.Equal(t, byte('b'), colors[20], "advanced prompt is yellow")
}

func TestEchoAndBackspace(t *testing.T) {
	c := newComputer(t, false)

	require.NoError(t, c.CharEvent("h"))
	require.NoError(t, c.CharEvent("x"))
	key(t, c, input.KeyBackspace)
	require.NoError(t, c.CharEvent("i"))
	assert.Equal(t, "> hi", line(t, c, 1))

	key(t, c, input.KeyEnter)
	assert.Equal(t, "hi", line(t, c, 2))
	assert.Equal(t, ">", line(t, c, 3))
}

func TestBackspaceStopsAtPrompt(t *testing.T) {
	c := newComputer(t, false)
	key(t, c, input.KeyBackspace)
	assert.Equal(t, ">", line(t, c, 1))
}

func TestScrolls(t *testing.T) {
	c := newComputer(t, false)
	typeLine(t, c, "one")
	typeLine(t, c, "two")

	assert.Equal(t, "one", line(t, c, 0))
	assert.Equal(t, "> two", line(t, c, 1))
	assert.Equal(t, "two", line(t, c, 2))
	assert.Equal(t, ">", line(t, c, 3))
}

func TestCommands(t *testing.T) {
	c := newComputer(t, false)

	typeLine(t, c, "clear")
	assert.Equal(t, ">", line(t, c, 0))

	typeLine(t, c, "id")
	assert.Equal(t, "This is computer #7", line(t, c, 1))
}

func TestPasteTakesFirstLine(t *testing.T) {
	c := newComputer(t, false)
	require.NoError(t, c.Paste("ls\nrm -rf"))
	assert.Equal(t, "> ls", line(t, c, 1))
}

func TestPowerCycle(t *testing.T) {
	c := newComputer(t, false)

	require.NoError(t, c.Shutdown())
	assert.False(t, c.On())
	assert.Equal(t, "", line(t, c, 0))
	blink, err := c.CursorBlink()
	require.NoError(t, err)
	assert.False(t, blink)

	// Input is ignored while off
	require.NoError(t, c.CharEvent("a"))
	assert.Equal(t, "", line(t, c, 0))

	require.NoError(t, c.Reboot())
	assert.True(t, c.On())
	assert.Equal(t, ">", line(t, c, 1))
}

func TestTerminateClearsInput(t *testing.T) {
	c := newComputer(t, false)
	require.NoError(t, c.CharEvent("x"))
	require.NoError(t, c.Terminate())

	assert.Equal(t, "> x", line(t, c, 1))
	assert.Equal(t, "Terminated", line(t, c, 2))
	assert.Equal(t, ">", line(t, c, 3))
}

func TestMouseOnlyOnAdvanced(t *testing.T) {
	basic := newComputer(t, false)
	require.NoError(t, basic.MouseClick(1, 3, 2))
	assert.Equal(t, ">", line(t, basic, 1))

	adv := newComputer(t, true)
	require.NoError(t, adv.MouseClick(1, 3, 2))
	assert.Equal(t, ">", line(t, adv, 1))
	assert.Equal(t, "mouse_click 1 at 3,2", line(t, adv, 2))
}

func TestModem(t *testing.T) {
	c := newComputer(t, false)
	require.NoError(t, c.AttachModem())
	require.NoError(t, c.AttachModem())
	assert.True(t, c.ModemAttached())
	assert.Equal(t, "modem attached", line(t, c, 2))

	require.NoError(t, c.DetachModem())
	assert.False(t, c.ModemAttached())
}

func TestClosed(t *testing.T) {
	c := newComputer(t, false)
	require.NoError(t, c.Close())

	assert.ErrorIs(t, c.Close(), ErrClosed)
	assert.ErrorIs(t, c.Advance(0.1), ErrClosed)
	_, err := c.Line(0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.KeyEvent(28), ErrClosed)
}

func TestInvalidGeometry(t *testing.T) {
	_, err := New(backend.Params{Width: 0, Height: 4})
	assert.Error(t, err)
}
