// Package audio plays short feedback sounds.
//
// Audio is optional: when the speaker cannot be initialized every Play call is a no-op.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Chime plays confirmation and error sounds through a shared mixer
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	enabled     bool
	initialized bool

	// play is replaced in tests to capture streamers
	play func(beep.Streamer)
}

// NewChime creates a chime at volume (0.0 - 1.0)
func NewChime(enabled bool, volume float64) *Chime {
	c := &Chime{
		mixer:   &beep.Mixer{},
		volume:  volume,
		enabled: enabled,
	}
	c.play = c.mix
	return c
}

// Initialize sets up the speaker
// A disabled chime initializes without touching the audio device
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || !c.enabled {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup stops all sounds
func (c *Chime) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

func (c *Chime) mix(s beep.Streamer) {
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// PlayConfirm plays the confirmation chime
func (c *Chime) PlayConfirm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	c.play(CreateConfirmSound(sampleRate, c.volume))
}

// PlayError plays the error buzz
func (c *Chime) PlayError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	c.play(CreateErrorSound(sampleRate, c.volume))
}
