// Package minion drives one emulated terminal instance.
//
// A Minion owns the pairing of a backend computer and a display surface. Each frame it pulls
// the terminal contents out of the backend into the surface (Advance) and pushes pending user
// input the other way (TriggerEvents). Chord shortcuts are resolved here; requests that affect
// the fleet are returned to the caller as Actions.
package minion

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/mimic/backend"
	"github.com/lixenwraith/mimic/clock"
	"github.com/lixenwraith/mimic/display"
	"github.com/lixenwraith/mimic/grid"
	"github.com/lixenwraith/mimic/input"
	"github.com/lixenwraith/mimic/palette"
)

const (
	// FlashInterval is the cursor blink half-period
	FlashInterval = 500 * time.Millisecond

	// HoldDuration is how long a timed shortcut must be held before it fires
	HoldDuration = time.Second

	// DefaultSpaceLimit is the default disk quota of a computer in bytes
	DefaultSpaceLimit = 2 * 1024 * 1024
)

// ErrInvalidOptions is returned by New for unusable instance geometry
var ErrInvalidOptions = errors.New("invalid instance options")

// Options describe one instance
type Options struct {
	ID         uint32
	Advanced   bool
	Pocket     bool
	Title      string
	Width      uint32
	Height     uint32
	SpaceLimit uint64
}

// ActionKind identifies a fleet-level request
type ActionKind uint8

const (
	ActionNewInstance ActionKind = iota + 1
)

func (k ActionKind) String() string {
	switch k {
	case ActionNewInstance:
		return "new_instance"
	default:
		return "unknown"
	}
}

// Action is a request emitted by an instance for the fleet to act on
type Action struct {
	Kind     ActionKind
	Advanced bool
	Pocket   bool
}

type cursorState struct {
	X, Y  int
	Color palette.RGB
	Blink bool
}

type shortcutTimer struct {
	active bool
	key    input.Key
	start  time.Time
}

type dragState struct {
	lastX, lastY int
}

// noDrag is the sentinel for "no cell forwarded yet"
var noDrag = dragState{lastX: -1, lastY: -1}

// timedShortcuts are the hold-to-fire keys in detection order
var timedShortcuts = [...]input.Key{input.KeyR, input.KeyS, input.KeyT}

// Minion is the controller of one instance
// Not safe for concurrent use; the control loop owns it
type Minion struct {
	opts     Options
	computer backend.Computer
	surface  display.Surface
	clock    clock.Clock
	log      *zap.Logger

	clipboard     func() (string, error)
	chime         Chime
	frameInterval time.Duration
	pacer         *clock.Pacer

	lastAdvance time.Time
	flashOn     bool
	lastFlash   time.Time
	cursor      cursorState

	timer shortcutTimer
	// latched holds a fired shortcut key until it or Ctrl is released
	latched input.Key

	drag     dragState
	suppress bool
	modem    bool

	closeOnce sync.Once
	closeErr  error
}

// New creates the controller for an instance from its backend and surface
// The minion takes ownership of both and releases them on Close
func New(opts Options, computer backend.Computer, surface display.Surface, clk clock.Clock, log *zap.Logger, options ...Option) (*Minion, error) {
	if opts.Width == 0 || opts.Height == 0 {
		return nil, errors.Wrapf(ErrInvalidOptions, "geometry %dx%d", opts.Width, opts.Height)
	}
	if computer == nil || surface == nil || clk == nil {
		return nil, errors.Wrap(ErrInvalidOptions, "nil collaborator")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.SpaceLimit == 0 {
		opts.SpaceLimit = DefaultSpaceLimit
	}

	now := clk.Now()
	m := &Minion{
		opts:        opts,
		computer:    computer,
		surface:     surface,
		clock:       clk,
		log:         log.With(zap.Uint32("instance", opts.ID)),
		clipboard:   surface.Clipboard,
		lastAdvance: now,
		flashOn:     true,
		lastFlash:   now,
		drag:        noDrag,
	}
	for _, o := range options {
		o(m)
	}
	m.pacer = clock.NewPacer(clk, m.frameInterval)

	m.log.Debug("instance created",
		zap.String("title", opts.Title),
		zap.Bool("advanced", opts.Advanced),
		zap.Bool("pocket", opts.Pocket),
		zap.Uint32("width", opts.Width),
		zap.Uint32("height", opts.Height),
	)
	return m, nil
}

// ID returns the fleet-unique instance id
func (m *Minion) ID() uint32 { return m.opts.ID }

// Title returns the window title
func (m *Minion) Title() string { return m.opts.Title }

// Options returns the construction options
func (m *Minion) Options() Options { return m.opts }

// Surface returns the display surface of the instance
func (m *Minion) Surface() display.Surface { return m.surface }

// Running reports whether the surface is still open
func (m *Minion) Running() bool { return m.surface.Running() }

// ModemAttached reports the modem toggle state
func (m *Minion) ModemAttached() bool { return m.modem }

// Close tears down the backend and the surface
// Only the first call has an effect; later calls return the first result
func (m *Minion) Close() error {
	m.closeOnce.Do(func() {
		m.closeErr = backend.Fail(m.opts.ID, "destroy", m.computer.Close())
		m.surface.Close()
		m.log.Debug("instance closed", zap.Error(m.closeErr))
	})
	return m.closeErr
}

// Advance runs one frame: steps the backend, renders its terminal, updates the cursor and
// evaluates held shortcuts
func (m *Minion) Advance() error {
	now := m.clock.Now()
	delta := now.Sub(m.lastAdvance)
	m.lastAdvance = now
	if err := m.call("advance", m.computer.Advance(delta.Seconds())); err != nil {
		return err
	}

	if now.Sub(m.lastFlash) >= FlashInterval {
		m.flashOn = !m.flashOn
		m.lastFlash = now
	}

	if err := m.render(); err != nil {
		return err
	}
	if err := m.updateCursor(); err != nil {
		return err
	}
	return m.updateTimedShortcuts(now)
}

// render fetches and decodes the whole frame before writing any cell
func (m *Minion) render() error {
	width, height := int(m.opts.Width), int(m.opts.Height)
	frame := make([][]grid.Cell, height)
	for y := 0; y < height; y++ {
		text, err := m.computer.Line(y)
		if err = m.call("getLine", err); err != nil {
			return err
		}
		colors, err := m.computer.ColorLine(y)
		if err = m.call("getColorLine", err); err != nil {
			return err
		}
		row, err := grid.DecodeRow(width, text, colors)
		if err != nil {
			return errors.WithMessagef(err, "instance %d row %d", m.opts.ID, y)
		}
		frame[y] = row
	}

	for y, row := range frame {
		for x, c := range row {
			m.surface.SetCharacter(x, y, c.Rune)
			m.surface.SetForeground(x, y, c.Fg)
			m.surface.SetBackground(x, y, c.Bg)
		}
	}
	return nil
}

func (m *Minion) updateCursor() error {
	x, err := m.computer.CursorX()
	if err = m.call("getCursorX", err); err != nil {
		return err
	}
	y, err := m.computer.CursorY()
	if err = m.call("getCursorY", err); err != nil {
		return err
	}
	colorIndex, err := m.computer.CursorColor()
	if err = m.call("getCursorColor", err); err != nil {
		return err
	}
	blink, err := m.computer.CursorBlink()
	if err = m.call("getCursorBlink", err); err != nil {
		return err
	}
	color, err := palette.FromIndex(colorIndex)
	if err != nil {
		return errors.WithMessagef(err, "instance %d cursor", m.opts.ID)
	}

	m.cursor = cursorState{X: x, Y: y, Color: color, Blink: blink}
	visible := m.cursor.Blink && m.flashOn
	m.surface.SetCursorVisible(visible)
	if visible {
		m.surface.SetCursorPosition(m.cursor.X, m.cursor.Y)
		m.surface.SetCursorColor(m.cursor.Color)
	}
	return nil
}

func (m *Minion) commandDown() bool {
	return m.surface.IsKeyDown(input.KeyLeftControl) || m.surface.IsKeyDown(input.KeyRightControl)
}

// updateTimedShortcuts runs the hold-to-fire state machine for Ctrl+R/S/T
func (m *Minion) updateTimedShortcuts(now time.Time) error {
	command := m.commandDown()

	if m.latched != input.KeyNone {
		if command && m.surface.IsKeyDown(m.latched) {
			return nil
		}
		m.latched = input.KeyNone
	}

	if m.timer.active {
		if !command || !m.surface.IsKeyDown(m.timer.key) {
			m.timer = shortcutTimer{}
			return nil
		}
		if now.Sub(m.timer.start) < HoldDuration {
			return nil
		}
		key := m.timer.key
		m.timer = shortcutTimer{}
		m.latched = key
		return m.fireTimed(key)
	}

	if !command {
		return nil
	}
	for _, k := range timedShortcuts {
		if m.surface.IsKeyDown(k) {
			m.timer = shortcutTimer{active: true, key: k, start: now}
			break
		}
	}
	return nil
}

func (m *Minion) fireTimed(key input.Key) error {
	var method string
	var err error
	switch key {
	case input.KeyR:
		method, err = "reboot", m.computer.Reboot()
	case input.KeyS:
		method, err = "shutdown", m.computer.Shutdown()
	case input.KeyT:
		method, err = "terminate", m.computer.Terminate()
	default:
		return nil
	}
	m.log.Info("timed shortcut fired", zap.String("action", method), zap.Error(err))
	if err != nil {
		return m.call(method, err)
	}
	if m.chime != nil {
		m.chime.PlayConfirm()
	}
	return nil
}

// TriggerEvents forwards pending surface input to the backend, resolves chord shortcuts and
// paces the loop to the frame interval
// Spawn requests produced by the batch are returned in the order they occurred
func (m *Minion) TriggerEvents() ([]Action, error) {
	var actions []Action
	for _, ev := range m.surface.PollEvents() {
		action, err := m.dispatch(ev)
		if err != nil {
			return actions, err
		}
		if action != nil {
			actions = append(actions, *action)
		}
	}
	m.pacer.Wait()
	return actions, nil
}

func (m *Minion) dispatch(ev display.Event) (*Action, error) {
	switch e := ev.(type) {
	case display.KeyDown:
		if handled, action, err := m.chord(e); handled {
			m.suppress = true
			return action, err
		}
		m.suppress = false
		return nil, m.forwardKey(e.Key)

	case display.Character:
		if m.suppress || !Printable(e.Rune) {
			return nil, nil
		}
		return nil, m.call("charEvent", m.computer.CharEvent(string(e.Rune)))

	case display.MouseDown:
		m.drag = noDrag
		col, row := m.surface.CellAt(e.X, e.Y)
		code := int(input.TranslateButton(e.Button))
		return nil, m.call("mouseClickEvent", m.computer.MouseClick(code, col+1, row+1))

	case display.MouseDrag:
		col, row := m.surface.CellAt(e.X, e.Y)
		if col == m.drag.lastX && row == m.drag.lastY {
			return nil, nil
		}
		m.drag = dragState{lastX: col, lastY: row}
		code := int(input.TranslateButton(e.Button))
		return nil, m.call("mouseDragEvent", m.computer.MouseDrag(code, col+1, row+1))

	case display.MouseScroll:
		col, row := m.surface.CellAt(m.surface.Pointer())
		direction := 1
		if e.DY < 0 {
			direction = -1
		}
		return nil, m.call("mouseScrollEvent", m.computer.MouseScroll(direction, col+1, row+1))
	}
	return nil, nil
}

func (m *Minion) forwardKey(k input.Key) error {
	code, ok := input.TranslateKey(k)
	if !ok {
		return nil
	}
	return m.call("keyEvent", m.computer.KeyEvent(int(code)))
}

// chord resolves instantaneous Ctrl shortcuts
// Only the modifiers carried by the event count; live key state may belong to a later event
func (m *Minion) chord(e display.KeyDown) (handled bool, action *Action, err error) {
	if !e.Mods.Has(input.ModCtrl) {
		return false, nil, nil
	}
	shift := e.Mods.Has(input.ModShift)

	switch e.Key {
	case input.KeyN:
		m.log.Debug("spawn requested", zap.Bool("advanced", shift))
		return true, &Action{Kind: ActionNewInstance, Advanced: shift}, nil
	case input.KeyB:
		m.log.Debug("pocket spawn requested", zap.Bool("advanced", shift))
		return true, &Action{Kind: ActionNewInstance, Advanced: shift, Pocket: true}, nil
	case input.KeyA:
		return true, nil, m.toggleModem()
	case input.KeyV:
		return true, nil, m.paste()
	}
	return false, nil, nil
}

func (m *Minion) toggleModem() error {
	if m.modem {
		if err := m.call("detachModem", m.computer.DetachModem()); err != nil {
			return err
		}
	} else {
		if err := m.call("attachModem", m.computer.AttachModem()); err != nil {
			return err
		}
	}
	m.modem = !m.modem
	m.log.Debug("modem toggled", zap.Bool("attached", m.modem))
	return nil
}

func (m *Minion) paste() error {
	text, err := m.clipboard()
	if err != nil {
		// Unreadable clipboard is treated as empty
		m.log.Warn("clipboard read failed", zap.Error(err))
		return nil
	}
	if text == "" {
		return nil
	}
	return m.call("paste", m.computer.Paste(text))
}

func (m *Minion) call(method string, err error) error {
	return backend.Fail(m.opts.ID, method, err)
}

// Printable reports whether a typed character may be forwarded to the backend
func Printable(r rune) bool {
	return r >= ' ' && r <= '~'
}
