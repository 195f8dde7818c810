package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/fireworks/internal/judge"
)

func TestComboMultiplier(t *testing.T) {
	b := NewBoard(0.1)
	now := time.Now()
	assert.Equal(t, 110, b.Record(100, judge.Perfect, now))
	assert.Equal(t, 60, b.Record(50, judge.Good, now))
	assert.Equal(t, 130, b.Record(100, judge.Perfect, now))

	s := b.Stats()
	assert.Equal(t, 300, s.Score)
	assert.Equal(t, 3, s.Combo)
	assert.Equal(t, 3, s.MaxCombo)
	assert.Equal(t, 3, s.Hits)
	assert.Equal(t, 2, s.Perfects)
}

func TestMissResetsCombo(t *testing.T) {
	b := NewBoard(0.1)
	now := time.Now()
	b.Record(100, judge.Perfect, now)
	b.Record(100, judge.Perfect, now)
	assert.Equal(t, 0, b.Record(0, judge.Wet, now))
	assert.Equal(t, 110, b.Record(100, judge.Perfect, now))

	s := b.Stats()
	assert.Equal(t, 1, s.Combo)
	assert.Equal(t, 2, s.MaxCombo)
	assert.Equal(t, 1, s.Misses)
	assert.InDelta(t, 0.75, s.Accuracy(), 1e-9)
}

func TestFeedbackVisibility(t *testing.T) {
	b := NewBoard(0.1)
	now := time.Now()
	assert.False(t, b.Last().Visible(now))

	b.Record(0, judge.Miss, now)
	assert.True(t, b.Last().Visible(now.Add(799*time.Millisecond)))
	assert.False(t, b.Last().Visible(now.Add(FeedbackDuration)))

	b.Reset()
	assert.Equal(t, Stats{}, b.Stats())
}
