package loop

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/judge"
	"github.com/tomz197/fireworks/internal/score"
	"github.com/tomz197/fireworks/internal/sim"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

func newTestSession(t *testing.T, mutate func(*config.Config)) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cfg := config.Default()
	cfg.Audio.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}
	sess, err := NewSession(context.Background(), cfg, SessionOptions{
		Now:  clock.now,
		Rand: rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	t.Cleanup(sess.Close)
	return sess, clock
}

func TestNewSessionRejectsBadPalette(t *testing.T) {
	cfg := config.Default()
	cfg.Palette = []string{"#zzzzzz"}
	_, err := NewSession(context.Background(), cfg, SessionOptions{})
	assert.ErrorIs(t, err, config.ErrInvalidColor)
}

func TestNewSessionWithMissingTrackPlaysSilent(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.Track = "/nonexistent/track.mp3"
	sess, err := NewSession(context.Background(), cfg, SessionOptions{})
	require.NoError(t, err)
	defer sess.Close()
	assert.True(t, sess.Silent())
}

func TestTriggerStartsRunFromIdle(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	assert.Equal(t, sim.Idle, sess.Sim().Phase())

	quit, err := sess.Apply(input.Input{Triggers: 2})
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, sim.Playing, sess.Sim().Phase())
	assert.Equal(t, score.Stats{}, sess.Board().Stats())
}

func TestDifficultyKeysOnlyBetweenRuns(t *testing.T) {
	sess, _ := newTestSession(t, nil)

	_, err := sess.Apply(input.Input{Difficulty: 3})
	require.NoError(t, err)
	assert.Equal(t, config.Hard, sess.Difficulty())

	_, err = sess.Apply(input.Input{Triggers: 1})
	require.NoError(t, err)
	assert.Equal(t, config.Hard, sess.Sim().Config().Difficulty)

	_, err = sess.Apply(input.Input{Difficulty: 1})
	require.NoError(t, err)
	assert.Equal(t, config.Hard, sess.Difficulty())
}

func TestPauseToggle(t *testing.T) {
	sess, _ := newTestSession(t, nil)

	// Ignored before a run.
	_, _ = sess.Apply(input.Input{Pause: true})
	assert.False(t, sess.Sim().Paused())

	_, _ = sess.Apply(input.Input{Triggers: 1})
	_, _ = sess.Apply(input.Input{Pause: true})
	assert.True(t, sess.Sim().Paused())
	_, _ = sess.Apply(input.Input{Pause: true})
	assert.False(t, sess.Sim().Paused())
}

func TestQuitAndClosedInput(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	quit, err := sess.Apply(input.Input{Quit: true})
	require.NoError(t, err)
	assert.True(t, quit)

	quit, _ = sess.Apply(input.Input{Closed: true})
	assert.True(t, quit)
}

func TestTriggerFeedsBoard(t *testing.T) {
	sess, clock := newTestSession(t, nil)
	_, _ = sess.Apply(input.Input{Triggers: 1})

	// The first shell launches one interval in and is still climbing fast.
	sess.Update(clock.advance(time.Second + 20*time.Millisecond))
	require.Len(t, sess.Sim().Fireworks(), 1)

	_, err := sess.Apply(input.Input{Triggers: 1})
	require.NoError(t, err)

	st := sess.Board().Stats()
	assert.Equal(t, 1, st.Misses)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, judge.Miss, sess.Board().Last().Accuracy)
}

func TestRestartAfterGameOver(t *testing.T) {
	sess, clock := newTestSession(t, func(c *config.Config) {
		c.Duration = 2 * time.Second
	})
	_, _ = sess.Apply(input.Input{Triggers: 1})

	sess.Update(clock.advance(3 * time.Second))
	require.Equal(t, sim.Over, sess.Sim().Phase())
	assert.False(t, sess.CanRestart())

	// Too soon after the end.
	_, _ = sess.Apply(input.Input{Triggers: 1})
	assert.Equal(t, sim.Over, sess.Sim().Phase())

	clock.advance(restartDelay)
	assert.True(t, sess.CanRestart())
	_, err := sess.Apply(input.Input{Triggers: 1})
	require.NoError(t, err)
	assert.Equal(t, sim.Playing, sess.Sim().Phase())
}

func TestRestartKey(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	_, _ = sess.Apply(input.Input{Triggers: 1})
	first := sess.Sim().RunID()

	_, err := sess.Apply(input.Input{Restart: true})
	require.NoError(t, err)
	assert.NotEqual(t, first, sess.Sim().RunID())
	assert.Equal(t, sim.Playing, sess.Sim().Phase())
}

func TestHUDLine(t *testing.T) {
	st := score.Stats{Score: 1234, Combo: 3}
	got := HUDLine(st, 42*time.Second+100*time.Millisecond, 1.35, config.Easy, 7)
	assert.Equal(t, "SCORE 1234  COMBO x3  TIME 0:43  SPEED x1.35  EASY  BEAT 8", got)

	got = HUDLine(score.Stats{}, 0, 1, config.Normal, -1)
	assert.Equal(t, "SCORE 0  COMBO x0  TIME 0:00  SPEED x1.00  NORMAL  BEAT -", got)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "1:00", FormatClock(60*time.Second))
	assert.Equal(t, "0:01", FormatClock(time.Millisecond))
	assert.Equal(t, "0:00", FormatClock(-time.Second))
}

func TestFeedbackLabel(t *testing.T) {
	label, _ := FeedbackLabel(judge.Perfect)
	assert.Equal(t, "PERFECT!", label)
	label, _ = FeedbackLabel(judge.Wet)
	assert.Equal(t, "TOO LATE!", label)
	label, _ = FeedbackLabel(judge.Miss)
	assert.Equal(t, "TOO EARLY!", label)
}

func TestScreenFitKeepsAspect(t *testing.T) {
	canvas := draw.NewScaledCanvas(0, 0, 960, 600)
	var s screen

	// Wide terminal: height bound.
	s.fit(canvas, 200, 41, 2)
	assert.Equal(t, 40, s.rows)
	assert.Equal(t, 160, s.cols)
	assert.Equal(t, 20, s.offCol)
	assert.Equal(t, hudRows, s.offRow)
	assert.Equal(t, 160, canvas.TerminalWidth())

	// Narrow terminal: width bound.
	s.fit(canvas, 64, 100, 2)
	assert.Equal(t, 64, s.cols)
	assert.Equal(t, 16, s.rows)
	assert.Equal(t, 0, s.offCol)
}
