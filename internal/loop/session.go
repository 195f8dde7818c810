package loop

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/fireworks/internal/audio"
	"github.com/tomz197/fireworks/internal/beat"
	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/score"
	"github.com/tomz197/fireworks/internal/sim"
)

// restartDelay guards the game-over screen against triggers that were
// meant for the last firework.
const restartDelay = time.Second

// SessionOptions are the collaborators of a Session. Zero values are
// replaced by sensible defaults.
type SessionOptions struct {
	Logger *log.Logger
	Now    func() time.Time
	Rand   *rand.Rand
}

// Session is one player's game: the simulation, its score board, the beat
// clock and the optional backing track. Frontends call Apply and Update
// once per frame from the same goroutine.
type Session struct {
	ctx    context.Context
	cfg    config.Config
	logger *log.Logger
	now    func() time.Time
	rng    *rand.Rand

	sim    *sim.Simulation
	board  *score.Board
	clock  *beat.Clock
	wall   *beat.WallSource
	player *audio.Player

	overAt time.Time
	final  score.Stats
}

// NewSession validates cfg and prepares a session. When audio is enabled
// the track is loaded here; a load failure is logged and the session plays
// silent on the wall clock.
func NewSession(ctx context.Context, cfg *config.Config, opts SessionOptions) (*Session, error) {
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ctx:    ctx,
		cfg:    c,
		logger: opts.Logger,
		now:    opts.Now,
		rng:    opts.Rand,
		board:  score.NewBoard(c.Scoring.ComboStep),
		wall:   beat.NewWallSource(),
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if c.Audio.Enabled && c.Audio.Track != "" {
		p := audio.NewPlayer(audio.WithLogger(s.logger))
		if err := p.LoadTrack(ctx, c.Audio.Track); err != nil {
			s.logger.Warn("audio unavailable, playing silent", "track", c.Audio.Track, "err", err)
		} else {
			p.SetLoop(c.Audio.Loop)
			p.SetBPM(c.Tempo.BPM)
			s.player = p
		}
	}
	if s.player != nil {
		s.useSource(s.player)
	} else {
		s.useSource(s.wall)
	}
	return s, nil
}

func (s *Session) useSource(src beat.Source) {
	s.clock = beat.New(src, s.cfg.Tempo.BPM)
	s.sim = sim.New(sim.Options{
		Rand:   s.rng,
		Tempo:  s.clock,
		Now:    s.now,
		Logger: s.logger,
	})
	s.sim.OnScore(func(e sim.ScoreEvent) {
		s.board.Record(e.Points, e.Accuracy, s.now())
	})
	s.sim.OnGameOver(s.gameOver)
}

// Start begins a new run, restarting audio and the beat clock.
func (s *Session) Start() error {
	s.clock.Stop()
	if s.player != nil {
		if err := s.player.Start(); err != nil {
			s.logger.Warn("audio start failed, playing silent", "err", err)
			s.player = nil
			s.useSource(s.wall)
		}
	}
	if s.player == nil {
		s.wall.Reset()
	}
	if err := s.sim.Start(&s.cfg); err != nil {
		s.stopAudio()
		return err
	}
	s.board.Reset()
	s.final = score.Stats{}
	s.clock.Start(s.ctx)
	return nil
}

func (s *Session) gameOver(runID uuid.UUID) {
	s.overAt = s.now()
	s.final = s.board.Stats()
	s.clock.Stop()
	s.stopAudio()
	s.logger.Info("run complete",
		"run", runID,
		"score", s.final.Score,
		"max_combo", s.final.MaxCombo,
		"accuracy", s.final.Accuracy())
}

func (s *Session) stopAudio() {
	if s.player != nil {
		s.player.Stop()
	}
}

// Close stops the run and releases audio.
func (s *Session) Close() {
	s.sim.Stop()
	s.clock.Stop()
	s.stopAudio()
}

// TogglePause freezes or resumes a run in play, along with its beat clock
// and audio.
func (s *Session) TogglePause() {
	if s.sim.Phase() != sim.Playing {
		return
	}
	paused := !s.sim.Paused()
	s.sim.SetPaused(paused)
	if paused {
		s.clock.Pause()
	} else {
		s.clock.Resume()
	}
}

// SetDifficulty selects the profile for the next run.
func (s *Session) SetDifficulty(d config.Difficulty) {
	s.cfg.Difficulty = d
}

// Apply handles one frame of player input. It reports whether the player
// asked to quit.
func (s *Session) Apply(in input.Input) (quit bool, err error) {
	if in.Quit || in.Closed {
		return true, nil
	}
	phase := s.sim.Phase()
	if in.Difficulty > 0 && in.Difficulty <= len(config.Difficulties) && phase != sim.Playing {
		s.SetDifficulty(config.Difficulties[in.Difficulty-1])
	}
	if in.Restart {
		return false, s.Start()
	}
	if in.Pause {
		s.TogglePause()
	}
	if in.Triggers == 0 {
		return false, nil
	}
	switch phase {
	case sim.Idle:
		return false, s.Start()
	case sim.Over:
		if s.CanRestart() {
			return false, s.Start()
		}
		return false, nil
	}
	for range in.Triggers {
		s.sim.Trigger()
	}
	return false, nil
}

// CanRestart reports whether a trigger on the game-over screen starts a
// new run.
func (s *Session) CanRestart() bool {
	return s.sim.Phase() == sim.Over && s.now().Sub(s.overAt) >= restartDelay
}

// Update advances the simulation to now.
func (s *Session) Update(now time.Time) {
	s.sim.Update(now)
}

// Sim exposes the simulation for rendering.
func (s *Session) Sim() *sim.Simulation {
	return s.sim
}

// Board returns the live score board.
func (s *Session) Board() *score.Board {
	return s.board
}

// Final returns the tally of the last finished run.
func (s *Session) Final() score.Stats {
	return s.final
}

// Beat returns the current beat index, or -1 when the clock is stopped.
func (s *Session) Beat() int64 {
	return s.clock.Beat()
}

// Difficulty returns the profile used by the next run.
func (s *Session) Difficulty() config.Difficulty {
	return s.cfg.Difficulty
}

// Silent reports whether the session plays without a backing track.
func (s *Session) Silent() bool {
	return s.player == nil
}

// Config returns the session's validated configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}
