package gameloop

import "time"

// TimeSource supplies the instants a Clock samples.
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the wall clock. Instants returned by time.Now carry a
// monotonic reading, so differences are unaffected by wall clock adjustments.
type SystemTime struct{}

// Now returns time.Now().
func (SystemTime) Now() time.Time {
	return time.Now()
}

// Clock measures the time elapsed between consecutive samples.
type Clock struct {
	src     TimeSource
	last    time.Time
	sampled bool
}

// NewClock creates a Clock reading from src. A nil src uses SystemTime.
func NewClock(src TimeSource) *Clock {
	if src == nil {
		src = SystemTime{}
	}
	return &Clock{src: src}
}

// Sample returns the duration since the previous call. The first call after
// construction or Reset returns 0. A source that moves backwards yields 0,
// never a negative duration.
func (c *Clock) Sample() time.Duration {
	now := c.src.Now()
	if !c.sampled {
		c.last = now
		c.sampled = true
		return 0
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	return d
}

// Since returns the time elapsed since the last sample without consuming it.
func (c *Clock) Since() time.Duration {
	if !c.sampled {
		return 0
	}
	if d := c.src.Now().Sub(c.last); d > 0 {
		return d
	}
	return 0
}

// Last returns the instant of the previous sample (zero before the first).
func (c *Clock) Last() time.Time {
	return c.last
}

// Reset forgets the previous sample.
func (c *Clock) Reset() {
	c.sampled = false
	c.last = time.Time{}
}
