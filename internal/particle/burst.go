package particle

import (
	"math"
	"time"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/physics"
)

// Burst emits the particles for one explosion shape.
type Burst interface {
	Emit(s *System, origin physics.Vec, color draw.Color)
}

// BurstFunc adapts a function to Burst.
type BurstFunc func(s *System, origin physics.Vec, color draw.Color)

// Emit implements Burst.
func (f BurstFunc) Emit(s *System, origin physics.Vec, color draw.Color) {
	f(s, origin, color)
}

// plainBurst scatters particles in random directions at random speeds up
// to the configured maximum. Perfect bursts are half again as large and a
// fifth faster.
type plainBurst struct {
	perfect bool
}

func (b plainBurst) Emit(s *System, origin physics.Vec, color draw.Color) {
	set := s.Settings()
	count := float64(set.Count)
	speed := set.Speed
	if b.perfect {
		count *= 1.5
		speed *= 1.2
	}
	rng := s.Rand()
	for i := 0; i < int(count); i++ {
		angle := rng.Float64() * 2 * math.Pi
		v := rng.Float64() * speed
		c := color
		if b.perfect {
			c = s.sparkle(color)
		}
		size := rng.Float64()*3 + 1
		decay := set.Decay * (0.5 + rng.Float64()*0.5)
		s.Add(origin, physics.FromAngle(angle, v), c, size, decay)
	}
}

type ringBurst struct {
	count int
	speed float64
}

func (b ringBurst) Emit(s *System, origin physics.Vec, color draw.Color) {
	for i := 0; i < b.count; i++ {
		angle := float64(i) / float64(b.count) * 2 * math.Pi
		s.Add(origin, physics.FromAngle(angle, b.speed), s.sparkle(color), 2, s.Settings().Decay)
	}
}

// spiralBurst places particle i at angle i*step with speed i*accel, so
// later particles travel further and trace a spiral.
type spiralBurst struct {
	count int
	step  float64
	accel float64
}

func (b spiralBurst) Emit(s *System, origin physics.Vec, color draw.Color) {
	decay := s.Settings().Decay * 0.8
	for i := 0; i < b.count; i++ {
		fi := float64(i)
		s.Add(origin, physics.FromAngle(fi*b.step, fi*b.accel), s.sparkle(color), 2, decay)
	}
}

// doubleBurst fires a perfect burst now and a normal one shortly after,
// nudged by up to jitter/2 on each axis.
type doubleBurst struct {
	delay  time.Duration
	jitter float64
}

func (b doubleBurst) Emit(s *System, origin physics.Vec, color draw.Color) {
	s.Emit(Perfect, origin, color)
	rng := s.Rand()
	second := physics.Vec{
		X: origin.X + (rng.Float64()-0.5)*b.jitter,
		Y: origin.Y + (rng.Float64()-0.5)*b.jitter,
	}
	s.EmitAfter(b.delay, Plain, second, color)
}
