// Package sim owns a run: the fireworks and particles, the run clock, the
// launcher and the judgment of triggers. Drivers call Update once per frame
// and Trigger for each player action from the same goroutine.
package sim

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/fireworks/internal/beat"
	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/judge"
	"github.com/tomz197/fireworks/internal/object"
	"github.com/tomz197/fireworks/internal/particle"
	"github.com/tomz197/fireworks/internal/physics"
)

// Phase is the run state.
type Phase int

const (
	Idle    Phase = iota // not started, or stopped
	Playing              // launching and judging
	Over                 // time is up; the sky keeps animating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Over:
		return "over"
	}
	return "unknown"
}

// ScoreEvent is the judgment of one firework.
type ScoreEvent struct {
	Accuracy   judge.Accuracy
	Points     int
	FireworkID int
	RunID      uuid.UUID
}

// ScoreFunc receives one call per judged firework.
type ScoreFunc func(ScoreEvent)

// Options are the collaborators of a Simulation.
type Options struct {
	Rand   *rand.Rand
	Tempo  beat.Tempo       // nil uses the configured BPM
	Now    func() time.Time // wall clock for Start and SetPaused
	Logger *log.Logger
}

// Simulation is a single run.
type Simulation struct {
	cfg        config.Config
	rng        *rand.Rand
	external   beat.Tempo
	tempo      beat.Tempo
	now        func() time.Time
	logger     *log.Logger
	onScore    ScoreFunc
	onGameOver func(runID uuid.UUID)

	phase     Phase
	runID     uuid.UUID
	fireworks []*object.Firework
	particles *particle.System
	launcher  *object.Launcher

	bounds     object.Bounds
	palette    []draw.Color
	trail      []draw.Color
	thresholds judge.Thresholds
	weights    particle.Weights
	curve      object.SpeedCurve
	boost      object.Boost
	override   float64

	start       time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
	elapsed     time.Duration
}

// New creates an idle simulation.
func New(opts Options) *Simulation {
	s := &Simulation{
		rng:      opts.Rand,
		external: opts.Tempo,
		now:      opts.Now,
		logger:   opts.Logger,
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.launcher = object.NewLauncher(s.rng)
	return s
}

// OnScore installs the score callback.
func (s *Simulation) OnScore(fn ScoreFunc) {
	s.onScore = fn
}

// OnGameOver installs the game-over callback, called once per run.
func (s *Simulation) OnGameOver(fn func(runID uuid.UUID)) {
	s.onGameOver = fn
}

// Start begins a new run with cfg. Invalid configuration is rejected before
// anything changes; an empty palette is replaced by the default one.
func (s *Simulation) Start(cfg *config.Config) error {
	c := *cfg
	c.Palette = append([]string(nil), cfg.Palette...)
	c.TrailPalette = append([]string(nil), cfg.TrailPalette...)
	if err := c.Validate(); err != nil {
		return err
	}
	weights, err := particle.ParseWeights(c.Bursts.Weights)
	if err != nil {
		return err
	}

	s.cfg = c
	s.palette, s.trail = c.Colors()
	s.weights = weights
	s.bounds = object.Bounds{Width: c.World.Width, Height: c.World.Height}
	s.thresholds = judge.Thresholds{Apex: c.Judge.ApexThreshold, Dud: c.Judge.DudVelocity}
	s.boost = object.Boost{From: c.Pace.BoostFrom, To: c.Pace.BoostTo, Scale: c.Pace.BoostScale}
	if c.Pace.Curve == "ramp" {
		s.curve = object.DefaultRamp
	} else {
		s.curve = object.DefaultBands
	}
	s.tempo = s.external
	if s.tempo == nil {
		s.tempo = beat.Fixed(c.Tempo.BPM)
	}

	s.particles = particle.NewSystem(particle.Settings{
		Count:   c.Particles.Count,
		Speed:   c.Particles.Speed,
		Decay:   c.Particles.Decay,
		Gravity: c.Gravity,
		Text:    c.Bursts.Text,
	}, s.rng)
	s.fireworks = s.fireworks[:0]
	s.runID = uuid.New()
	s.start = s.now()
	s.paused = false
	s.pausedTotal = 0
	s.elapsed = 0
	s.phase = Playing
	s.launcher.Reset(0, s.baseInterval(), s.multiplier(c.Duration))

	s.logger.Info("run started",
		"run", s.runID,
		"difficulty", c.Difficulty,
		"bpm", c.Tempo.BPM,
		"interval", s.launcher.Interval())
	return nil
}

// Stop ends the run, clearing every firework, particle and delayed burst.
func (s *Simulation) Stop() {
	if s.phase == Idle {
		return
	}
	s.fireworks = s.fireworks[:0]
	if s.particles != nil {
		s.particles.Reset()
	}
	s.paused = false
	s.phase = Idle
	s.logger.Info("run stopped", "run", s.runID)
}

// SetPaused freezes or resumes the run clock. Launches, the countdown,
// physics and delayed bursts all stop while paused.
func (s *Simulation) SetPaused(paused bool) {
	if s.phase == Idle || s.paused == paused {
		return
	}
	now := s.now()
	if paused {
		s.pausedAt = now
	} else {
		s.pausedTotal += now.Sub(s.pausedAt)
	}
	s.paused = paused
}

// SetSpeedMultiplier overrides the launch-rate curve. Zero restores it.
func (s *Simulation) SetSpeedMultiplier(m float64) {
	if m < 0 {
		m = 0
	}
	s.override = m
}

// Update advances the run by one frame at wall time now.
func (s *Simulation) Update(now time.Time) {
	if s.phase == Idle || s.paused {
		return
	}
	// The countdown is recomputed from the anchor every frame.
	s.elapsed = now.Sub(s.start) - s.pausedTotal
	remaining := s.Remaining()

	if s.phase == Playing && remaining <= 0 {
		s.phase = Over
		s.logger.Info("run over", "run", s.runID)
		if s.onGameOver != nil {
			s.onGameOver(s.runID)
		}
	}

	if s.phase == Playing {
		if s.launcher.Due(s.elapsed, s.baseInterval(), s.multiplier(remaining)) {
			s.launch()
		}
	}

	scale := s.boost.TimeScale(remaining)
	for _, f := range s.fireworks {
		s.stepFirework(f, scale)
	}
	s.compact()
	s.particles.Update(s.elapsed)
}

func (s *Simulation) stepFirework(f *object.Firework, scale float64) {
	if f.Status != object.Rising && f.Status != object.Wet && f.Status != object.Dud {
		return
	}
	f.Step(s.cfg.Gravity, scale)
	if f.Status == object.Rising && f.Vel.Y > s.cfg.Judge.WetVelocity {
		f.Douse()
		s.emitScore(f, 0, judge.Wet)
	}
	if !s.bounds.Contains(f.Pos, object.OffscreenMargin) {
		// Only fireworks that never produced a score event count here.
		if !f.Scored {
			f.Scored = true
			s.emitScore(f, 0, judge.Miss)
		}
		f.Retire()
	}
}

func (s *Simulation) launch() {
	beatLen := s.tempo.BeatDuration()
	flight := time.Duration(float64(beatLen) * s.cfg.Tempo.FlightBeats)
	f := s.launcher.Launch(object.LaunchParams{
		Bounds:       s.bounds,
		Difficulty:   s.cfg.Difficulty,
		Gravity:      s.cfg.Gravity,
		Frames:       physics.FramesToApex(flight, s.cfg.FrameInterval()),
		Palette:      s.palette,
		TrailPalette: s.trail,
	})
	s.fireworks = append(s.fireworks, f)
	s.logger.Debug("launch", "run", s.runID, "id", f.ID, "x", f.Pos.X, "vy", f.Vel.Y)
}

// Trigger judges a player action against the firework nearest its apex.
// It reports false, changing nothing, when no firework is rising, the run
// is paused or the run is not in play.
func (s *Simulation) Trigger() (judge.Accuracy, bool) {
	if s.phase != Playing || s.paused {
		return "", false
	}
	target := judge.Select(s.fireworks)
	if target == nil {
		return "", false
	}

	acc := judge.Classify(target.Vel.Y, s.thresholds)
	switch acc {
	case judge.Perfect:
		target.Explode()
		s.particles.Emit(s.weights.Pick(s.rng), target.Pos, target.Color)
		target.Retire()
		s.emitScore(target, s.cfg.Scoring.Perfect, acc)
	case judge.Good:
		target.Explode()
		s.particles.Emit(particle.Plain, target.Pos, target.Color)
		target.Retire()
		s.emitScore(target, s.cfg.Scoring.Good, acc)
	case judge.Miss:
		target.Fizzle()
		s.emitScore(target, 0, acc)
	case judge.Wet:
		target.Douse()
		s.emitScore(target, 0, acc)
	}
	s.compact()
	return acc, true
}

func (s *Simulation) emitScore(f *object.Firework, points int, acc judge.Accuracy) {
	if s.phase != Playing {
		return
	}
	s.logger.Debug("judged", "run", s.runID, "id", f.ID, "accuracy", acc, "points", points)
	if s.onScore != nil {
		s.onScore(ScoreEvent{Accuracy: acc, Points: points, FireworkID: f.ID, RunID: s.runID})
	}
}

func (s *Simulation) compact() {
	kept := s.fireworks[:0]
	for _, f := range s.fireworks {
		if f.Active() {
			kept = append(kept, f)
		}
	}
	clear(s.fireworks[len(kept):])
	s.fireworks = kept
}

func (s *Simulation) baseInterval() time.Duration {
	beats := s.cfg.Tempo.LaunchBeats * s.cfg.Difficulty.LaunchModifier()
	return time.Duration(float64(s.tempo.BeatDuration()) * beats)
}

func (s *Simulation) multiplier(remaining time.Duration) float64 {
	if s.override > 0 {
		return s.override
	}
	return s.curve.Multiplier(remaining)
}
