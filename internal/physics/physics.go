// Package physics provides the per-frame kinematics shared by fireworks and
// particles, and the tempo-to-kinematics derivations used at launch.
package physics

import (
	"math"
	"time"
)

// Particle motion constants.
const (
	ParticleGravityFactor = 0.5  // particles fall at half gravity
	AirDrag               = 0.96 // per-axis velocity damping per frame
)

// Vec is a 2D vector in world units (y grows downward).
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * f.
func (v Vec) Scale(f float64) Vec {
	return Vec{v.X * f, v.Y * f}
}

// Len returns the Euclidean length.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// FromAngle returns a vector of the given length pointing at angle radians.
func FromAngle(angle, length float64) Vec {
	return Vec{math.Cos(angle) * length, math.Sin(angle) * length}
}

// BeatDuration converts a tempo to the length of one beat.
func BeatDuration(bpm float64) time.Duration {
	if bpm <= 0 {
		return 0
	}
	return time.Duration(float64(time.Minute) / bpm)
}

// FramesToApex is the number of integration steps a firework takes to
// reach its apex when the flight lasts flight at the given frame interval.
func FramesToApex(flight, frameInterval time.Duration) float64 {
	if frameInterval <= 0 {
		return 0
	}
	return float64(flight) / float64(frameInterval)
}

// LaunchVelocity is the initial vertical velocity that decays to zero
// after frames steps of gravity.
func LaunchVelocity(gravity, frames float64) float64 {
	return -(gravity * frames)
}

// ApexY is the height reached after frames steps from startY with launch
// velocity vy0 under gravity.
func ApexY(startY, vy0, gravity, frames float64) float64 {
	return startY + vy0*frames + 0.5*gravity*frames*frames
}

// StepProjectile advances a firework by one frame. scale speeds up or
// slows down simulated time without changing the trajectory shape.
func StepProjectile(pos, vel *Vec, gravity, scale float64) {
	pos.X += vel.X * scale
	pos.Y += vel.Y * scale
	vel.Y += gravity * scale
}

// StepParticle advances a particle by one frame: move, apply the lighter
// gravity, then damp both axes.
func StepParticle(pos, vel *Vec, gravity float64) {
	pos.X += vel.X
	pos.Y += vel.Y
	vel.Y += gravity * ParticleGravityFactor
	vel.X *= AirDrag
	vel.Y *= AirDrag
}
