// Package beat schedules beat boundaries ahead of an audio clock. It is
// the only link between the music and the simulation: the simulation reads
// the current beat index and beat duration and never calls back into audio.
package beat

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/physics"
)

// Scheduler timing.
const (
	TickInterval = 25 * time.Millisecond
	Lookahead    = 100 * time.Millisecond
)

// Source reports the playback position of the audio device. It must only
// advance while audio is actually playing.
type Source interface {
	Now() time.Duration
}

// Pauser is implemented by sources the clock may freeze itself.
type Pauser interface {
	Pause()
	Resume()
}

// Tempo provides the beat length consumed by the launcher.
type Tempo interface {
	BeatDuration() time.Duration
}

// Fixed is a constant tempo in BPM.
type Fixed float64

// BeatDuration implements Tempo.
func (f Fixed) BeatDuration() time.Duration {
	return physics.BeatDuration(float64(f))
}

type scheduled struct {
	index int64
	at    time.Duration
}

// Clock is a lookahead beat scheduler. Tick schedules every beat boundary
// that falls within Lookahead of the source's current position, and
// promotes boundaries the source has already passed into the current beat
// index.
type Clock struct {
	src Source

	mu         sync.Mutex
	bpm        float64
	next       time.Duration // position of the next boundary to schedule
	lastAt     time.Duration // position of the last scheduled boundary
	nextIndex  int64
	queue      []scheduled
	paused     bool
	cancel     context.CancelFunc
	done       chan struct{}
	onSchedule func(index int64, at time.Duration)

	beat      atomic.Int64
	beatNanos atomic.Int64
}

// New creates a clock over src at bpm (clamped to the supported range).
func New(src Source, bpm float64) *Clock {
	c := &Clock{src: src}
	c.beat.Store(-1)
	c.setBPM(bpm)
	return c
}

// OnSchedule installs a hook called (under the clock's lock, from Tick) for
// every boundary as it enters the lookahead window. It is where sample
// accurate work such as metronome clicks is queued.
func (c *Clock) OnSchedule(fn func(index int64, at time.Duration)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSchedule = fn
}

// Tick runs one scheduler pass.
func (c *Clock) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	now := c.src.Now()
	step := time.Duration(c.beatNanos.Load())
	for c.next < now+Lookahead {
		s := scheduled{index: c.nextIndex, at: c.next}
		c.queue = append(c.queue, s)
		if c.onSchedule != nil {
			c.onSchedule(s.index, s.at)
		}
		c.lastAt = c.next
		c.next += step
		c.nextIndex++
	}
	n := 0
	for n < len(c.queue) && c.queue[n].at <= now {
		c.beat.Store(c.queue[n].index)
		n++
	}
	c.queue = append(c.queue[:0], c.queue[n:]...)
}

// Start runs Tick every TickInterval until ctx is done or Stop is called.
func (c *Clock) Start(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()
		c.Tick()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Tick()
			}
		}
	}()
}

// Stop halts the scheduler goroutine, drops scheduled boundaries and
// rewinds to beat zero.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = c.queue[:0]
	c.next = 0
	c.lastAt = 0
	c.nextIndex = 0
	c.paused = false
	c.beat.Store(-1)
}

// Pause freezes scheduling, and the source when it supports it.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	if p, ok := c.src.(Pauser); ok {
		p.Pause()
	}
}

// Resume undoes Pause.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.paused = false
	if p, ok := c.src.(Pauser); ok {
		p.Resume()
	}
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// SetBPM changes the tempo. Boundaries already scheduled keep their
// positions; the new spacing applies from the next one.
func (c *Clock) SetBPM(bpm float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setBPM(bpm)
}

func (c *Clock) setBPM(bpm float64) {
	if bpm < config.MinBPM {
		bpm = config.MinBPM
	}
	if bpm > config.MaxBPM {
		bpm = config.MaxBPM
	}
	c.bpm = bpm
	step := physics.BeatDuration(bpm)
	c.beatNanos.Store(int64(step))
	if c.nextIndex > 0 {
		c.next = c.lastAt + step
	}
}

// BPM returns the current tempo.
func (c *Clock) BPM() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bpm
}

// BeatDuration implements Tempo. It is safe to call from any goroutine.
func (c *Clock) BeatDuration() time.Duration {
	return time.Duration(c.beatNanos.Load())
}

// Beat returns the index of the last boundary the source has passed, or -1
// before the first one.
func (c *Clock) Beat() int64 {
	return c.beat.Load()
}

// Pending returns the number of boundaries scheduled but not yet reached.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}
