package main

import "time"

// FrameClock supplies per-tick elapsed time. Tick returns the raw delta dt
// and a smoothed delta dtSmooth; the movement controller uses the smoothed
// value for head translation and the raw one for follow factors.
type FrameClock interface {
	Tick() (dt, dtSmooth float64)
}

// wallClock measures real elapsed time between ticks, clamped to
// MaxFrameDelta, with an exponential moving average for the smoothed value.
type wallClock struct {
	now      func() time.Time
	last     time.Time
	smoothed float64
	started  bool
}

// NewWallClock creates a frame clock backed by time.Now.
func NewWallClock() FrameClock {
	return &wallClock{now: time.Now}
}

func (c *wallClock) Tick() (float64, float64) {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		c.smoothed = 1.0 / TickRate
		return c.smoothed, c.smoothed
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}
	c.smoothed += (dt - c.smoothed) * FrameSmoothing
	return dt, c.smoothed
}

// fixedClock returns a constant step every tick. Used by tests and
// wherever deterministic simulation is needed.
type fixedClock struct {
	step float64
}

// NewFixedClock creates a deterministic frame clock with the given step in
// seconds.
func NewFixedClock(step float64) FrameClock {
	return &fixedClock{step: step}
}

func (c *fixedClock) Tick() (float64, float64) {
	return c.step, c.step
}
