// Package particle owns burst particles: their arena, their integration and
// the burst shapes that create them.
package particle

import (
	"math/rand"
	"sort"
	"time"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/physics"
)

// Particle is a single spark. Life runs from 1 down to 0.
type Particle struct {
	ID      int
	Pos     physics.Vec
	Vel     physics.Vec
	Life    float64
	MaxLife float64
	Decay   float64
	Color   draw.Color
	Size    float64
}

// Fade returns the remaining life as a fraction of MaxLife.
func (p *Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}

// Settings tunes the plain explosion that the other shapes are based on.
type Settings struct {
	Count   int     // particles in a normal burst
	Speed   float64 // maximum speed of a normal burst
	Decay   float64 // base life decrement per frame
	Gravity float64 // world gravity; particles use half of it
	Text    string  // word used by the text burst
}

type pendingBurst struct {
	at     time.Duration
	kind   Kind
	origin physics.Vec
	color  draw.Color
}

// System owns the particle arena and any delayed bursts. It is not safe for
// concurrent use; the simulation drives it from a single goroutine.
type System struct {
	settings  Settings
	rng       *rand.Rand
	bursts    map[Kind]Burst
	particles []Particle
	pending   []pendingBurst
	nextID    int
	now       time.Duration
}

// NewSystem creates a system with every built-in burst registered.
func NewSystem(settings Settings, rng *rand.Rand) *System {
	s := &System{
		settings: settings,
		rng:      rng,
		bursts:   make(map[Kind]Burst),
		nextID:   1,
	}
	s.Register(Plain, plainBurst{perfect: false})
	s.Register(Perfect, plainBurst{perfect: true})
	s.Register(Ring, ringBurst{count: 60, speed: 3})
	s.Register(Spiral, spiralBurst{count: 80, step: 0.35, accel: 0.04})
	s.Register(Double, doubleBurst{delay: 120 * time.Millisecond, jitter: 30})
	s.Register(Text, newTextBurst(settings.Text, 4))
	return s
}

// Register installs or replaces the burst for kind.
func (s *System) Register(kind Kind, b Burst) {
	s.bursts[kind] = b
}

// Emit creates a burst of kind at origin. Unknown kinds fall back to Plain.
func (s *System) Emit(kind Kind, origin physics.Vec, color draw.Color) {
	b, ok := s.bursts[kind]
	if !ok {
		b = s.bursts[Plain]
	}
	b.Emit(s, origin, color)
}

// EmitAfter schedules a burst delay from now in simulation time.
func (s *System) EmitAfter(delay time.Duration, kind Kind, origin physics.Vec, color draw.Color) {
	s.pending = append(s.pending, pendingBurst{
		at:     s.now + delay,
		kind:   kind,
		origin: origin,
		color:  color,
	})
}

// Update advances the system to now: live particles take one step, expired
// ones are dropped, then any delayed bursts that came due are emitted.
func (s *System) Update(now time.Duration) {
	s.now = now

	kept := s.particles[:0]
	for i := range s.particles {
		p := s.particles[i]
		physics.StepParticle(&p.Pos, &p.Vel, s.settings.Gravity)
		p.Life -= p.Decay
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	s.particles = kept

	if len(s.pending) == 0 {
		return
	}
	sort.SliceStable(s.pending, func(i, j int) bool { return s.pending[i].at < s.pending[j].at })
	n := 0
	for n < len(s.pending) && s.pending[n].at <= now {
		n++
	}
	due := append([]pendingBurst(nil), s.pending[:n]...)
	s.pending = append(s.pending[:0], s.pending[n:]...)
	for _, pb := range due {
		s.Emit(pb.kind, pb.origin, pb.color)
	}
}

// Particles returns the live particles. The slice is owned by the system
// and only valid until the next Update or Emit.
func (s *System) Particles() []Particle {
	return s.particles
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// Pending returns the number of scheduled bursts.
func (s *System) Pending() int {
	return len(s.pending)
}

// Clear drops every particle and cancels scheduled bursts.
func (s *System) Clear() {
	s.particles = s.particles[:0]
	s.pending = s.pending[:0]
}

// Reset clears the system and rewinds its clock.
func (s *System) Reset() {
	s.Clear()
	s.now = 0
}

// Settings returns the tuning the system was created with.
func (s *System) Settings() Settings {
	return s.settings
}

// Rand exposes the system's random source to burst implementations.
func (s *System) Rand() *rand.Rand {
	return s.rng
}

// Add appends one particle at full life.
func (s *System) Add(pos, vel physics.Vec, color draw.Color, size, decay float64) {
	s.particles = append(s.particles, Particle{
		ID:      s.nextID,
		Pos:     pos,
		Vel:     vel,
		Life:    1,
		MaxLife: 1,
		Decay:   decay,
		Color:   color,
		Size:    size,
	})
	s.nextID++
}

// sparkle picks white half of the time for perfect bursts.
func (s *System) sparkle(base draw.Color) draw.Color {
	if s.rng.Float64() > 0.5 {
		return draw.White
	}
	return base
}
