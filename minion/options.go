package minion

import "time"

// Chime plays audible feedback
type Chime interface {
	PlayConfirm()
}

// Option configures a Minion
type Option func(*Minion)

// WithClipboard overrides the clipboard reader used for paste
func WithClipboard(read func() (string, error)) Option {
	return func(m *Minion) {
		if read != nil {
			m.clipboard = read
		}
	}
}

// WithChime plays a confirmation sound when a timed shortcut fires
func WithChime(c Chime) Option {
	return func(m *Minion) {
		m.chime = c
	}
}

// WithFrameInterval sets the pacing target, zero selects the 60 FPS default
func WithFrameInterval(d time.Duration) Option {
	return func(m *Minion) {
		m.frameInterval = d
	}
}
