package sweep

import "time"

// SweepClock converts elapsed wall-clock time into a fractional sample
// advance: samplingRate * elapsed * speedFactor. The only state is the
// last-tick timestamp, seeded on the first tick so a viewer that spent
// seconds loading does not open with a huge jump.
type SweepClock struct {
	samplingRate float64
	speedFactor  float64
	last         time.Time
	paused       bool
}

// NewSweepClock creates a clock for the given recording rate and playback
// speed factor.
func NewSweepClock(samplingRate, speedFactor float64) *SweepClock {
	return &SweepClock{
		samplingRate: samplingRate,
		speedFactor:  speedFactor,
	}
}

// Advance returns the fractional sample count covered since the previous
// call. The first call seeds the timestamp and returns 0. While paused the
// timestamp keeps re-seeding, so resuming never jumps over the paused span.
func (c *SweepClock) Advance(now time.Time) float64 {
	if c.last.IsZero() || c.paused {
		c.last = now
		return 0
	}
	elapsed := now.Sub(c.last).Seconds()
	c.last = now
	if elapsed <= 0 {
		return 0
	}
	return c.samplingRate * elapsed * c.speedFactor
}

// SetPaused freezes or resumes the clock without touching any window state.
func (c *SweepClock) SetPaused(paused bool) { c.paused = paused }

// Paused reports whether the clock is frozen.
func (c *SweepClock) Paused() bool { return c.paused }

// SpeedFactor returns the current playback speed factor.
func (c *SweepClock) SpeedFactor() float64 { return c.speedFactor }

// SetSpeedFactor changes the playback speed; takes effect from the next tick.
func (c *SweepClock) SetSpeedFactor(f float64) {
	if f > 0 {
		c.speedFactor = f
	}
}
