package object

import "time"

// SpeedCurve maps remaining run time to a launch-rate multiplier.
type SpeedCurve interface {
	Multiplier(remaining time.Duration) float64
}

// Band is one step of a piecewise curve.
type Band struct {
	Above      time.Duration
	Multiplier float64
}

// Bands is a piecewise-constant curve evaluated top to bottom.
type Bands []Band

// DefaultBands speeds launches up in the last fifteen seconds.
var DefaultBands = Bands{
	{Above: 15 * time.Second, Multiplier: 1},
	{Above: 10 * time.Second, Multiplier: 1.35},
	{Above: 5 * time.Second, Multiplier: 1.8},
	{Above: 0, Multiplier: 2.5},
}

// Multiplier implements SpeedCurve.
func (b Bands) Multiplier(remaining time.Duration) float64 {
	for _, band := range b {
		if remaining > band.Above {
			return band.Multiplier
		}
	}
	return 1
}

// Ramp accelerates smoothly from 1 to Peak over the final Window.
type Ramp struct {
	Window time.Duration
	Peak   float64
}

// DefaultRamp matches the end rate of DefaultBands.
var DefaultRamp = Ramp{Window: 15 * time.Second, Peak: 2.5}

// Multiplier implements SpeedCurve.
func (r Ramp) Multiplier(remaining time.Duration) float64 {
	if r.Window <= 0 || remaining >= r.Window {
		return 1
	}
	if remaining <= 0 {
		return r.Peak
	}
	t := 1 - float64(remaining)/float64(r.Window)
	return 1 + (r.Peak-1)*t
}

// Fixed is a constant curve, used when the multiplier is driven externally.
type Fixed float64

// Multiplier implements SpeedCurve.
func (f Fixed) Multiplier(time.Duration) float64 {
	return float64(f)
}

// Boost scales simulated physics time while the remaining time is inside
// [To, From].
type Boost struct {
	From, To time.Duration
	Scale    float64
}

// TimeScale returns the physics step scale for the remaining time.
func (b Boost) TimeScale(remaining time.Duration) float64 {
	if b.Scale <= 0 {
		return 1
	}
	if remaining <= b.From && remaining >= b.To {
		return b.Scale
	}
	return 1
}
