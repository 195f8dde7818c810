package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/physics"
)

// LaunchParams describes the shells a Launcher creates.
type LaunchParams struct {
	Bounds       Bounds
	Difficulty   config.Difficulty
	Gravity      float64
	Frames       float64 // integration steps from launch to apex
	Palette      []draw.Color
	TrailPalette []draw.Color
}

// Launcher decides when the next firework goes up and where it starts.
// Timestamps are run-clock offsets so pausing the run pauses launches.
type Launcher struct {
	rng      *rand.Rand
	last     time.Duration // anchor of the current interval
	interval time.Duration // latched when the anchor moves
	nextID   int
}

// NewLauncher creates a launcher drawing positions from rng.
func NewLauncher(rng *rand.Rand) *Launcher {
	return &Launcher{rng: rng, nextID: 1}
}

// Reset anchors the first interval at now.
func (l *Launcher) Reset(now, base time.Duration, multiplier float64) {
	l.last = now
	l.interval = scaledInterval(base, multiplier)
}

// Interval returns the interval currently being waited out.
func (l *Launcher) Interval() time.Duration {
	return l.interval
}

// Due reports whether a launch is due at now. When it is, the anchor moves
// forward by exactly one interval so frame jitter does not accumulate, and
// the next interval is computed from base and multiplier.
func (l *Launcher) Due(now, base time.Duration, multiplier float64) bool {
	elapsed := now - l.last
	if elapsed <= l.interval {
		return false
	}
	drift := elapsed - l.interval
	next := scaledInterval(base, multiplier)
	// Drift carried into a shorter interval must not make the very next
	// frame due as well.
	if drift >= next {
		drift = 0
	}
	l.last = now - drift
	l.interval = next
	return true
}

// Launch creates a firework at the bottom of the playfield.
func (l *Launcher) Launch(p LaunchParams) *Firework {
	w := p.Bounds.Width
	spread := p.Difficulty.Spread()
	x := w*((1-spread)/2) + l.rng.Float64()*w*spread
	y := p.Bounds.Height

	vy := physics.LaunchVelocity(p.Gravity, p.Frames)
	vx := (l.rng.Float64() - 0.5) * p.Difficulty.DriftRange()

	f := &Firework{
		ID:     l.nextID,
		Pos:    physics.Vec{X: x, Y: y},
		Vel:    physics.Vec{X: vx, Y: vy},
		Color:  l.pick(p.Palette, draw.White),
		Status: Rising,
		ApexY:  physics.ApexY(y, vy, p.Gravity, p.Frames),
	}
	f.TrailColor = l.pick(p.TrailPalette, f.Color)
	l.nextID++
	return f
}

func (l *Launcher) pick(colors []draw.Color, fallback draw.Color) draw.Color {
	if len(colors) == 0 {
		return fallback
	}
	return colors[l.rng.Intn(len(colors))]
}

func scaledInterval(base time.Duration, multiplier float64) time.Duration {
	if multiplier <= 0 {
		multiplier = 1
	}
	return time.Duration(float64(base) / multiplier)
}
