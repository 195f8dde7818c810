package beat

import (
	"sync"
	"time"
)

// WallSource is a pausable wall-clock Source used when no audio is
// playing.
type WallSource struct {
	mu       sync.Mutex
	now      func() time.Time
	start    time.Time
	pausedAt time.Time
	paused   bool
	idle     time.Duration
}

// NewWallSource starts a wall clock at zero.
func NewWallSource() *WallSource {
	return newWallSource(time.Now)
}

func newWallSource(now func() time.Time) *WallSource {
	return &WallSource{now: now, start: now()}
}

// Now implements Source.
func (w *WallSource) Now() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	t := w.now()
	if w.paused {
		t = w.pausedAt
	}
	return t.Sub(w.start) - w.idle
}

// Pause implements Pauser.
func (w *WallSource) Pause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.paused {
		w.paused = true
		w.pausedAt = w.now()
	}
}

// Resume implements Pauser.
func (w *WallSource) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.paused {
		w.paused = false
		w.idle += w.now().Sub(w.pausedAt)
	}
}

// Reset rewinds the clock to zero and clears any pause.
func (w *WallSource) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.start = w.now()
	w.paused = false
	w.idle = 0
}
