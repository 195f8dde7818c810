package physics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeatDuration(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, BeatDuration(120))
	assert.Equal(t, time.Second, BeatDuration(60))
	assert.Equal(t, time.Duration(0), BeatDuration(0))
}

func TestLaunchVelocityReachesApex(t *testing.T) {
	const g = 0.15
	frameInterval := time.Second / 60
	for _, beats := range []float64{1, 2, 3.5} {
		flight := time.Duration(beats * float64(BeatDuration(132)))
		frames := FramesToApex(flight, frameInterval)
		vy0 := LaunchVelocity(g, frames)
		assert.InDelta(t, -g*frames, vy0, 1e-9)

		pos := Vec{0, 600}
		vel := Vec{0, vy0}
		n := int(math.Round(frames))
		for i := 0; i < n; i++ {
			StepProjectile(&pos, &vel, g, 1)
		}
		assert.LessOrEqual(t, math.Abs(vel.Y), g, "beats=%v", beats)
	}
}

func TestApexY(t *testing.T) {
	const g = 0.15
	frames := 60.0
	vy0 := LaunchVelocity(g, frames)
	assert.InDelta(t, 600-0.5*g*frames*frames, ApexY(600, vy0, g, frames), 1e-9)
}

func TestStepProjectileScale(t *testing.T) {
	pos := Vec{10, 100}
	vel := Vec{1, -4}
	StepProjectile(&pos, &vel, 0.15, 2)
	assert.Equal(t, Vec{12, 92}, pos)
	assert.InDelta(t, -3.7, vel.Y, 1e-9)
}

func TestStepParticle(t *testing.T) {
	pos := Vec{0, 0}
	vel := Vec{2, 0}
	StepParticle(&pos, &vel, 0.2)
	assert.Equal(t, Vec{2, 0}, pos)
	assert.InDelta(t, 2*AirDrag, vel.X, 1e-9)
	assert.InDelta(t, 0.1*AirDrag, vel.Y, 1e-9)
}
