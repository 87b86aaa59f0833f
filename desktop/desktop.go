// Package desktop hosts instance windows inside one terminal screen.
//
// Windows are bordered, titled rectangles composited back to front. Keyboard input goes to the
// focused window, mouse input to the topmost window under the pointer. Terminals report no
// key releases, so a key counts as held while its last press or auto-repeat is recent.
//
// A Desktop is driven from the control goroutine. The only other goroutine it runs feeds
// terminal events into a buffered channel.
package desktop

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/mimic/clock"
	"github.com/lixenwraith/mimic/display"
	"github.com/lixenwraith/mimic/input"
)

// DefaultHoldWindow covers the usual terminal auto-repeat delay
const DefaultHoldWindow = 650 * time.Millisecond

const (
	eventBuffer = 256

	// cascade offset of a child window from its parent
	cascadeX = 2
	cascadeY = 1
)

// Desktop owns the terminal screen and its windows
type Desktop struct {
	screen tcell.Screen
	events chan tcell.Event
	clock  clock.Clock
	log    *zap.Logger

	holdWindow time.Duration
	clipboard  func() (string, error)

	// windows in z-order, last is topmost
	windows []*Window
	focused *Window
	roots   int

	held map[input.Key]time.Time

	// mouse state
	buttons tcell.ButtonMask
	capture *Window
	moving  *Window
	grabX   int
	grabY   int

	// opened counts windows ever created; it orders windows by age
	opened uint64

	done      chan struct{}
	closeOnce sync.Once
	closed    bool
}

// Option configures a Desktop
type Option func(*Desktop)

// WithHoldWindow sets how long a key counts as held after its last event
func WithHoldWindow(d time.Duration) Option {
	return func(dt *Desktop) {
		if d > 0 {
			dt.holdWindow = d
		}
	}
}

// WithClock replaces the wall clock used for hold emulation
func WithClock(c clock.Clock) Option {
	return func(dt *Desktop) {
		if c != nil {
			dt.clock = c
		}
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(dt *Desktop) {
		if log != nil {
			dt.log = log
		}
	}
}

// WithClipboard replaces the system clipboard reader
func WithClipboard(read func() (string, error)) Option {
	return func(dt *Desktop) {
		if read != nil {
			dt.clipboard = read
		}
	}
}

// New initializes screen and starts reading its events
func New(screen tcell.Screen, opts ...Option) (*Desktop, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "desktop: screen init")
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	d := &Desktop{
		screen:     screen,
		events:     make(chan tcell.Event, eventBuffer),
		done:       make(chan struct{}),
		clock:      clock.NewReal(),
		log:        zap.NewNop(),
		holdWindow: DefaultHoldWindow,
		clipboard:  clipboard.ReadAll,
		held:       make(map[input.Key]time.Time),
	}
	for _, o := range opts {
		o(d)
	}

	go d.readEvents()
	return d, nil
}

// readEvents runs until the screen is finalized
func (d *Desktop) readEvents() {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("input reader panic", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case d.events <- ev:
		case <-d.done:
			return
		}
	}
}

// Screen returns the underlying screen
func (d *Desktop) Screen() tcell.Screen { return d.screen }

// Windows returns open windows back to front
func (d *Desktop) Windows() []*Window {
	return append([]*Window(nil), d.windows...)
}

// Focused returns the window receiving keyboard input
func (d *Desktop) Focused() *Window { return d.focused }

// Running is false once the desktop has been closed
func (d *Desktop) Running() bool { return !d.closed && len(d.windows) > 0 }

// Close closes every window and restores the terminal
func (d *Desktop) Close() {
	d.closeOnce.Do(func() {
		for _, w := range d.Windows() {
			w.Close()
		}
		d.closed = true
		close(d.done)
		d.screen.Fini()
	})
}

// NewWindow opens a window with a cols x rows content area
// Children cascade from their parent; parentless windows cascade from the top-left corner
func (d *Desktop) NewWindow(title string, cols, rows int, parent display.Surface) (*Window, error) {
	if d.closed {
		return nil, errors.New("desktop: closed")
	}
	if cols <= 0 || rows <= 0 {
		return nil, errors.Errorf("desktop: invalid window size %dx%d", cols, rows)
	}

	w := newWindow(d, title, cols, rows)
	d.opened++
	w.seq = d.opened
	if p, ok := parent.(*Window); ok && p != nil && !p.closed {
		w.parent = p
		p.children++
		w.x = p.x + cascadeX*p.children
		w.y = p.y + cascadeY*p.children
	} else {
		w.x = 2 * cascadeX * d.roots
		w.y = 2 * cascadeY * d.roots
		d.roots++
	}
	d.clampWindow(w)

	d.windows = append(d.windows, w)
	d.focus(w)
	d.log.Debug("window opened", zap.String("title", title), zap.Int("x", w.x), zap.Int("y", w.y))
	return w, nil
}

// clampWindow keeps a window's top-left corner on screen when it fits
func (d *Desktop) clampWindow(w *Window) {
	sw, sh := d.screen.Size()
	fw, fh := w.frameSize()
	if w.x+fw > sw {
		w.x = sw - fw
	}
	if w.y+fh > sh {
		w.y = sh - fh
	}
	if w.x < 0 {
		w.x = 0
	}
	if w.y < 0 {
		w.y = 0
	}
}

func (d *Desktop) focus(w *Window) {
	if w == nil {
		d.focused = nil
		return
	}
	d.raise(w)
	if d.focused != w {
		// Holds do not carry over between windows
		d.held = make(map[input.Key]time.Time)
	}
	d.focused = w
}

func (d *Desktop) raise(w *Window) {
	for i, o := range d.windows {
		if o == w {
			d.windows = append(d.windows[:i], d.windows[i+1:]...)
			break
		}
	}
	d.windows = append(d.windows, w)
}

// remove detaches a closed window and moves focus to the next topmost
func (d *Desktop) remove(w *Window) {
	for i, o := range d.windows {
		if o == w {
			d.windows = append(d.windows[:i], d.windows[i+1:]...)
			break
		}
	}
	if d.capture == w {
		d.capture = nil
	}
	if d.moving == w {
		d.moving = nil
	}
	if d.focused == w {
		d.focused = nil
		if n := len(d.windows); n > 0 {
			d.focus(d.windows[n-1])
		}
	}
}

// cycleFocus focuses the bottom-most window, rotating the stack
func (d *Desktop) cycleFocus() {
	if len(d.windows) < 2 {
		return
	}
	d.focus(d.windows[0])
}

// isHeld reports whether k had an event within the hold window
func (d *Desktop) isHeld(k input.Key) bool {
	at, ok := d.held[k]
	if !ok {
		return false
	}
	return d.clock.Now().Sub(at) <= d.holdWindow
}

func (d *Desktop) markHeld(keys ...input.Key) {
	now := d.clock.Now()
	for _, k := range keys {
		d.held[k] = now
	}
}

// pump routes every queued terminal event without blocking
func (d *Desktop) pump() {
	for {
		select {
		case ev := <-d.events:
			d.dispatch(ev)
		default:
			return
		}
	}
}

func (d *Desktop) dispatch(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	case *tcell.EventResize:
		d.screen.Sync()
		for _, w := range d.windows {
			d.clampWindow(w)
		}
	}
}

func (d *Desktop) handleKey(ev *tcell.EventKey) {
	p := translateKeyEvent(ev)

	switch {
	case p.mods.Has(input.ModCtrl) && p.key == input.KeyW:
		if d.focused != nil {
			d.focused.Close()
		}
		return
	case p.mods.Has(input.ModCtrl) && p.key == input.KeyQ:
		for _, w := range d.Windows() {
			w.Close()
		}
		return
	case p.mods.Has(input.ModAlt) && p.key == input.KeyTab:
		d.cycleFocus()
		return
	}

	w := d.focused
	if w == nil {
		return
	}
	// Only the latest key auto-repeats, and every event carries the live modifiers
	clear(d.held)
	if p.mods.Has(input.ModCtrl) {
		d.markHeld(input.KeyLeftControl)
	}
	if p.mods.Has(input.ModShift) {
		d.markHeld(input.KeyLeftShift)
	}
	if p.key != input.KeyNone {
		d.markHeld(p.key)
		w.push(display.KeyDown{Key: p.key, Mods: p.mods})
	}
	if p.char != 0 {
		w.push(display.Character{Rune: p.char})
	}
}

// windowAt returns the topmost window whose frame contains the screen cell
func (d *Desktop) windowAt(x, y int) *Window {
	for i := len(d.windows) - 1; i >= 0; i-- {
		if d.windows[i].frameContains(x, y) {
			return d.windows[i]
		}
	}
	return nil
}

func (d *Desktop) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	prev := d.buttons
	d.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	if buttons&(tcell.WheelUp|tcell.WheelDown) != 0 {
		if w := d.windowAt(x, y); w != nil {
			w.setPointer(x, y)
			dy := 1.0
			if buttons&tcell.WheelUp != 0 {
				dy = -1.0
			}
			w.push(display.MouseScroll{DY: dy})
		}
		return
	}

	button, pressed := mouseButton(buttons)
	switch {
	case pressed && prev == 0:
		w := d.windowAt(x, y)
		if w == nil {
			return
		}
		d.focus(w)
		if y == w.y {
			// Title bar grab moves the window
			d.moving = w
			d.grabX, d.grabY = x-w.x, y-w.y
			return
		}
		if !w.contentContains(x, y) {
			return
		}
		d.capture = w
		w.setPointer(x, y)
		cx, cy := w.local(x, y)
		w.push(display.MouseDown{X: cx, Y: cy, Button: button})

	case pressed:
		if d.moving != nil {
			d.moving.x, d.moving.y = x-d.grabX, y-d.grabY
			d.clampWindow(d.moving)
			return
		}
		if w := d.capture; w != nil {
			w.setPointer(x, y)
			cx, cy := w.local(x, y)
			w.push(display.MouseDrag{X: cx, Y: cy, Button: button})
		}

	default:
		d.capture = nil
		d.moving = nil
		if w := d.windowAt(x, y); w != nil {
			w.setPointer(x, y)
		}
	}
}

func mouseButton(b tcell.ButtonMask) (input.MouseButton, bool) {
	switch {
	case b&tcell.Button1 != 0:
		return input.MouseLeft, true
	case b&tcell.Button2 != 0:
		return input.MouseRight, true
	case b&tcell.Button3 != 0:
		return input.MouseMiddle, true
	}
	return input.MouseLeft, false
}

// newest returns the most recently opened live window
// The fleet polls windows in opening order, so this one is polled last in a pass
func (d *Desktop) newest() *Window {
	var last *Window
	for _, w := range d.windows {
		if last == nil || w.seq > last.seq {
			last = w
		}
	}
	return last
}

// render composites all windows back to front
func (d *Desktop) render() {
	if d.closed {
		return
	}
	d.screen.Clear()
	for _, w := range d.windows {
		w.draw(d.screen, w == d.focused)
	}
	d.screen.Show()
}
