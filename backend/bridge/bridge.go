// Package bridge talks to a backend computer running in a child process.
//
// The protocol is one JSON object per line in each direction. Every request carries an id
// echoed by its response; requests are strictly sequential. The first request is create with
// the construction parameters. advance returns the whole frame, which answers the line and
// cursor getters until the next advance, so a rendered frame costs one round trip.
package bridge

import (
	"bufio"
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/mimic/backend"
)

// DefaultCloseTimeout bounds how long Close waits for the process to exit
const DefaultCloseTimeout = 3 * time.Second

const maxLineSize = 4 * 1024 * 1024

// ErrClosed is returned by calls after Close
var ErrClosed = errors.New("bridge closed")

// ErrProtocol is wrapped by malformed or out-of-order responses
var ErrProtocol = errors.New("bridge protocol violation")

// Computer is a backend.Computer served by a child process
type Computer struct {
	mu sync.Mutex

	proc    Process
	params  backend.Params
	scanner *bufio.Scanner
	enc     *json.Encoder
	log     *zap.Logger
	timeout time.Duration

	nextID uint64
	frame  *Frame
	closed bool
}

// Option configures a Computer
type Option func(*Computer)

// WithLogger sets the protocol logger
func WithLogger(log *zap.Logger) Option {
	return func(c *Computer) {
		if log != nil {
			c.log = log
		}
	}
}

// WithCloseTimeout sets how long Close waits before killing the process
func WithCloseTimeout(d time.Duration) Option {
	return func(c *Computer) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Launch starts command and creates a computer in it
func Launch(ctx context.Context, command, env []string, p backend.Params, opts ...Option) (*Computer, error) {
	c := &Computer{log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	proc, err := Start(ctx, command, env, c.log.With(zap.Uint32("instance", p.ID)))
	if err != nil {
		return nil, err
	}
	return New(proc, p, opts...)
}

// New sends create over an already running process
// The process is killed when creation fails
func New(proc Process, p backend.Params, opts ...Option) (*Computer, error) {
	scanner := bufio.NewScanner(proc.Stdout())
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	c := &Computer{
		proc:    proc,
		params:  p,
		scanner: scanner,
		enc:     json.NewEncoder(proc.Stdin()),
		log:     zap.NewNop(),
		timeout: DefaultCloseTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With(zap.Uint32("instance", p.ID))

	if err := c.call("create", []any{p}, nil); err != nil {
		_ = proc.Stdin().Close()
		_ = proc.Kill()
		_ = proc.Wait()
		return nil, errors.WithMessage(err, "bridge: create")
	}
	return c, nil
}

// call performs one request/response exchange; caller must not hold mu
func (c *Computer) call(method string, params []any, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callLocked(method, params, result)
}

func (c *Computer) callLocked(method string, params []any, result any) error {
	if c.closed {
		return ErrClosed
	}
	c.nextID++
	req := Request{ID: c.nextID, Method: method, Params: params}
	if err := c.enc.Encode(req); err != nil {
		return errors.Wrapf(err, "send %s", method)
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return errors.Wrapf(err, "receive %s", method)
		}
		return errors.Wrapf(ErrProtocol, "%s: backend closed its output", method)
	}
	var resp Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return errors.Wrapf(ErrProtocol, "%s: %v", method, err)
	}
	if resp.ID != req.ID {
		return errors.Wrapf(ErrProtocol, "%s: response id %d, want %d", method, resp.ID, req.ID)
	}
	if resp.Error != "" {
		return &RemoteError{Method: method, Message: resp.Error}
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return errors.Wrapf(ErrProtocol, "%s result: %v", method, err)
		}
	}
	return nil
}

// Advance runs the computer and caches the returned frame
func (c *Computer) Advance(delta float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var f Frame
	if err := c.callLocked("advance", []any{delta}, &f); err != nil {
		c.frame = nil
		return err
	}
	c.frame = &f
	return nil
}

// cached returns the current frame; nil before the first advance
func (c *Computer) cached() *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

func (c *Computer) Line(row int) (string, error) {
	if f := c.cached(); f != nil && row >= 0 && row < len(f.Lines) {
		return f.Lines[row], nil
	}
	var s string
	err := c.call("getLine", []any{row}, &s)
	return s, err
}

func (c *Computer) ColorLine(row int) (string, error) {
	if f := c.cached(); f != nil && row >= 0 && row < len(f.ColorLines) {
		return f.ColorLines[row], nil
	}
	var s string
	err := c.call("getColorLine", []any{row}, &s)
	return s, err
}

func (c *Computer) cursorInt(method string, pick func(*Frame) int) (int, error) {
	if f := c.cached(); f != nil {
		return pick(f), nil
	}
	var n int
	err := c.call(method, nil, &n)
	return n, err
}

func (c *Computer) CursorX() (int, error) {
	return c.cursorInt("getCursorX", func(f *Frame) int { return f.CursorX })
}

func (c *Computer) CursorY() (int, error) {
	return c.cursorInt("getCursorY", func(f *Frame) int { return f.CursorY })
}

func (c *Computer) CursorColor() (int, error) {
	return c.cursorInt("getCursorColor", func(f *Frame) int { return f.CursorColor })
}

func (c *Computer) CursorBlink() (bool, error) {
	if f := c.cached(); f != nil {
		return f.CursorBlink, nil
	}
	var b bool
	err := c.call("getCursorBlink", nil, &b)
	return b, err
}

func (c *Computer) KeyEvent(code int) error {
	return c.call("keyEvent", []any{code}, nil)
}

func (c *Computer) CharEvent(ch string) error {
	return c.call("charEvent", []any{ch}, nil)
}

func (c *Computer) MouseClick(button, x, y int) error {
	return c.call("mouseClickEvent", []any{button, x, y}, nil)
}

func (c *Computer) MouseDrag(button, x, y int) error {
	return c.call("mouseDragEvent", []any{button, x, y}, nil)
}

func (c *Computer) MouseScroll(direction, x, y int) error {
	return c.call("mouseScrollEvent", []any{direction, x, y}, nil)
}

func (c *Computer) AttachModem() error { return c.call("attachModem", nil, nil) }

func (c *Computer) DetachModem() error { return c.call("detachModem", nil, nil) }

func (c *Computer) Paste(text string) error {
	return c.call("paste", []any{text}, nil)
}

func (c *Computer) Terminate() error { return c.call("terminate", nil, nil) }

func (c *Computer) Shutdown() error { return c.call("shutdown", nil, nil) }

func (c *Computer) Reboot() error { return c.call("reboot", nil, nil) }

// Close sends destroy, closes stdin and waits for the process to exit
// The process is killed if it outlives the close timeout
func (c *Computer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	destroyErr := c.callLocked("destroy", nil, nil)
	c.closed = true
	c.frame = nil
	_ = c.proc.Stdin().Close()

	done := make(chan error, 1)
	go func() { done <- c.proc.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			c.log.Debug("backend exited", zap.Error(err))
		}
	case <-time.After(c.timeout):
		c.log.Warn("backend did not exit, killing", zap.Duration("timeout", c.timeout))
		if err := c.proc.Kill(); err != nil {
			c.log.Error("kill failed", zap.Error(err))
		}
		<-done
	}
	return destroyErr
}

var _ backend.Computer = (*Computer)(nil)
