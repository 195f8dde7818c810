package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/object"
	"github.com/tomz197/fireworks/internal/particle"
)

// Read-only accessors for drivers and renderers.

// Fireworks returns copies of the active fireworks in launch order.
func (s *Simulation) Fireworks() []object.Firework {
	out := make([]object.Firework, len(s.fireworks))
	for i, f := range s.fireworks {
		out[i] = *f
	}
	return out
}

// Particles returns a copy of the live particles.
func (s *Simulation) Particles() []particle.Particle {
	if s.particles == nil {
		return nil
	}
	return append([]particle.Particle(nil), s.particles.Particles()...)
}

// Phase returns the run state.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Paused reports whether the run clock is frozen.
func (s *Simulation) Paused() bool {
	return s.paused
}

// RunID identifies the current or last run.
func (s *Simulation) RunID() uuid.UUID {
	return s.runID
}

// Elapsed is the run time at the last Update, excluding pauses.
func (s *Simulation) Elapsed() time.Duration {
	return s.elapsed
}

// Remaining is the countdown at the last Update.
func (s *Simulation) Remaining() time.Duration {
	r := s.cfg.Duration - s.elapsed
	if r < 0 {
		return 0
	}
	return r
}

// SpeedMultiplier is the launch-rate multiplier in effect.
func (s *Simulation) SpeedMultiplier() float64 {
	return s.multiplier(s.Remaining())
}

// Bounds returns the playfield size.
func (s *Simulation) Bounds() object.Bounds {
	return s.bounds
}

// Config returns the validated configuration of the current run.
func (s *Simulation) Config() config.Config {
	return s.cfg
}
