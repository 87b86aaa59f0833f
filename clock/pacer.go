package clock

import "time"

// DefaultFrameInterval is the target frame interval (60 FPS)
const DefaultFrameInterval = time.Second / 60

// Pacer holds a loop to a target frame interval on a best-effort basis
// An over-budget frame is not compensated by shortening the next one
type Pacer struct {
	clock    Clock
	interval time.Duration
	mark     time.Time
}

// NewPacer creates a pacer whose first frame starts now
func NewPacer(c Clock, interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Pacer{
		clock:    c,
		interval: interval,
		mark:     c.Now(),
	}
}

// Interval returns the target frame interval
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks for the remainder of the current frame and starts the next one
// Returns the duration slept, zero when the frame was over budget
func (p *Pacer) Wait() time.Duration {
	elapsed := p.clock.Now().Sub(p.mark)
	var slept time.Duration
	if elapsed < p.interval {
		slept = p.interval - elapsed
		p.clock.Sleep(slept)
	}
	p.mark = p.clock.Now()
	return slept
}
