package graph

import "math"

const (
	// ClockStep is how far the shared animation clock advances per tick.
	// At ~60 ticks per second this gives the slow breathing cadence the
	// drift and edge oscillation are tuned for.
	ClockStep = 0.005

	driftAmplitude = 8.0
)

// Clock is the shared animation time source. It only ever moves
// forward; the owner advances it once per display frame. The zero value
// is ready to use.
type Clock struct {
	time float64
}

// Tick advances the clock by one step and returns the new time.
func (c *Clock) Tick() float64 {
	c.time += ClockStep
	return c.time
}

// Now returns the current clock time without advancing it.
func (c *Clock) Now() float64 {
	return c.time
}

// Drift returns the positional jitter for the node at stable index i at
// clock time t. The phase offsets 2i and 1.5i keep neighboring nodes
// out of sync so the whole graph breathes instead of swaying as one.
func Drift(t float64, i int) (dx, dy float64) {
	fi := float64(i)
	dx = math.Sin(0.5*t+2*fi) * driftAmplitude
	dy = math.Cos(0.3*t+1.5*fi) * driftAmplitude
	return dx, dy
}
