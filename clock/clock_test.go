package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockAdvanceAndSleep(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)

	m.Advance(250 * time.Millisecond)
	assert.Equal(t, start.Add(250*time.Millisecond), m.Now())

	m.Sleep(time.Second)
	assert.Equal(t, start.Add(1250*time.Millisecond), m.Now())
	assert.Equal(t, time.Second, m.Slept())

	m.Set(start)
	assert.Equal(t, start, m.Now())
	assert.Equal(t, time.Second, m.Slept())
}

func TestPacerSleepsRemainder(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	p := NewPacer(m, 16*time.Millisecond)

	m.Advance(4 * time.Millisecond)
	slept := p.Wait()

	assert.Equal(t, 12*time.Millisecond, slept)
	assert.Equal(t, 12*time.Millisecond, m.Slept())
}

func TestPacerDoesNotCatchUp(t *testing.T) {
	m := NewMock(time.Unix(0, 0))
	p := NewPacer(m, 16*time.Millisecond)

	// Over-budget frame: no sleep
	m.Advance(40 * time.Millisecond)
	assert.Zero(t, p.Wait())

	// Next frame gets a full interval, not a shortened one
	m.Advance(6 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, p.Wait())
}

func TestPacerDefaultInterval(t *testing.T) {
	p := NewPacer(NewMock(time.Unix(0, 0)), 0)
	assert.Equal(t, DefaultFrameInterval, p.Interval())
}

func TestRealClockMonotonic(t *testing.T) {
	c := NewReal()
	a := c.Now()
	c.Sleep(time.Millisecond)
	assert.True(t, c.Now().After(a))
}
