package app

import "time"

// Clock tracks frame timing. Headless runs drive it with a fixed step so
// output does not depend on wall time.
type Clock struct {
	Start   time.Time
	Now     time.Time
	Delta   time.Duration
	Elapsed time.Duration
	Frame   int
}

// Tick advances to now. The first tick has zero Delta.
func (c *Clock) Tick(now time.Time) {
	if c.Start.IsZero() {
		c.Start = now
		c.Now = now
	}
	c.Delta = now.Sub(c.Now)
	c.Now = now
	c.Elapsed = now.Sub(c.Start)
	c.Frame++
}

// Seconds is Delta in seconds.
func (c *Clock) Seconds() float64 {
	return c.Delta.Seconds()
}
