// Package judge classifies a trigger against the firework closest to its
// apex.
package judge

import (
	"math"

	"github.com/tomz197/fireworks/internal/object"
)

// Accuracy is the outcome of a judged trigger.
type Accuracy string

const (
	Perfect Accuracy = "perfect"
	Good    Accuracy = "good"
	Miss    Accuracy = "miss" // premature trigger; the firework becomes a dud
	Wet     Accuracy = "wet"  // late trigger, or a firework that fell unhit
)

// Hit reports whether the accuracy counts as a successful hit.
func (a Accuracy) Hit() bool {
	return a == Perfect || a == Good
}

// Thresholds are vertical velocities in world units per frame. Negative
// velocity is upward.
type Thresholds struct {
	Apex float64 // |vy| at or below this is perfect
	Dud  float64 // rising faster than this is a dud
}

// DefaultThresholds are the stock classification bounds.
var DefaultThresholds = Thresholds{Apex: 1.8, Dud: 6}

// Classify maps a vertical velocity to an accuracy. The apex window is
// inclusive on both sides.
func Classify(vy float64, th Thresholds) Accuracy {
	switch {
	case math.Abs(vy) <= th.Apex:
		return Perfect
	case vy < -th.Apex && vy < -th.Dud:
		return Miss
	case vy < -th.Apex:
		return Good
	default:
		return Wet
	}
}

// Select returns the rising firework closest to its apex, preferring the
// earliest launched on ties. It returns nil when nothing is rising.
func Select(fireworks []*object.Firework) *object.Firework {
	var best *object.Firework
	bestVY := math.Inf(1)
	for _, f := range fireworks {
		if f.Status != object.Rising {
			continue
		}
		vy := math.Abs(f.Vel.Y)
		if vy < bestVY || (vy == bestVY && best != nil && f.ID < best.ID) {
			best = f
			bestVY = vy
		}
	}
	return best
}
