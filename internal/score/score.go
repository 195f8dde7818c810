// Package score keeps the per-run tally fed by the simulation's score
// events.
package score

import (
	"math"
	"sync"
	"time"

	"github.com/tomz197/fireworks/internal/judge"
)

// FeedbackDuration is how long the last judgment stays on screen.
const FeedbackDuration = 800 * time.Millisecond

// Stats is a snapshot of a run's tally.
type Stats struct {
	Score    int
	Combo    int
	MaxCombo int
	Hits     int
	Misses   int
	Perfects int
}

// Accuracy returns hits as a fraction of judged fireworks.
func (s Stats) Accuracy() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Feedback is the most recent judgment and when it happened.
type Feedback struct {
	Accuracy judge.Accuracy
	Points   int
	At       time.Time
}

// Visible reports whether the feedback should still be shown at now.
func (f Feedback) Visible(now time.Time) bool {
	return f.Accuracy != "" && now.Sub(f.At) < FeedbackDuration
}

// Board accumulates score events. It is safe for concurrent use so the
// score callback may be invoked from the simulation while a renderer reads.
type Board struct {
	mu        sync.Mutex
	comboStep float64
	stats     Stats
	last      Feedback
}

// NewBoard creates a board with the given combo multiplier step.
func NewBoard(comboStep float64) *Board {
	return &Board{comboStep: comboStep}
}

// Record applies one judgment. Hits extend the combo and multiply the base
// points by 1 + combo*step; anything else resets the combo. It returns the
// points awarded.
func (b *Board) Record(base int, acc judge.Accuracy, now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	awarded := 0
	if acc.Hit() {
		b.stats.Combo++
		mult := 1 + float64(b.stats.Combo)*b.comboStep
		awarded = int(math.Round(float64(base) * mult))
		b.stats.Score += awarded
		b.stats.Hits++
		if acc == judge.Perfect {
			b.stats.Perfects++
		}
		if b.stats.Combo > b.stats.MaxCombo {
			b.stats.MaxCombo = b.stats.Combo
		}
	} else {
		b.stats.Combo = 0
		b.stats.Misses++
	}
	b.last = Feedback{Accuracy: acc, Points: awarded, At: now}
	return awarded
}

// Stats returns a snapshot of the tally.
func (b *Board) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Last returns the most recent judgment.
func (b *Board) Last() Feedback {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// Reset clears the tally for a new run.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats = Stats{}
	b.last = Feedback{}
}
