// Package audio plays the backing track and exposes its playback position
// as the clock the beat scheduler runs against.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const (
	sampleRate = beep.SampleRate(48000)
	// speakerBuffer is both the device buffer size and the latency
	// subtracted from the sample count to get the audible position.
	speakerBuffer = 100 * time.Millisecond
)

var (
	// ErrNoTrack is returned by Start before a track has been loaded.
	ErrNoTrack = errors.New("no track loaded")
	// ErrUnsupportedFormat is returned for tracks that are not mp3 or wav.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// counter passes samples through and counts them. It sits inside the
// pause control, so it stops counting while paused.
type counter struct {
	s beep.Streamer
	n atomic.Int64
}

func (c *counter) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.s.Stream(samples)
	c.n.Add(int64(n))
	return n, ok
}

func (c *counter) Err() error {
	return c.s.Err()
}

// Player is the backing-track player.
type Player struct {
	mu          sync.Mutex
	logger      *log.Logger
	client      *http.Client
	buffer      *beep.Buffer
	source      string
	loop        bool
	bpm         float64
	ctrl        *beep.Ctrl
	count       *counter
	speakerInit bool
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// WithHTTPClient sets the client used for URL tracks.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Player) { p.client = c }
}

// NewPlayer creates an idle player.
func NewPlayer(opts ...Option) *Player {
	p := &Player{
		logger: log.New(io.Discard),
		client: &http.Client{Timeout: 30 * time.Second},
		loop:   true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadTrack fetches and decodes an mp3 or wav track from a file path or an
// http(s) URL into memory.
func (p *Player) LoadTrack(ctx context.Context, src string) error {
	data, err := p.fetch(ctx, src)
	if err != nil {
		return fmt.Errorf("load %s: %w", src, err)
	}
	streamer, format, err := decode(src, data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	p.mu.Lock()
	p.buffer = buf
	p.source = src
	p.mu.Unlock()
	p.logger.Info("track loaded", "source", src, "length", format.SampleRate.D(buf.Len()))
	return nil
}

func (p *Player) fetch(ctx context.Context, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		return os.ReadFile(src)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func decode(src string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(path.Ext(strings.SplitN(src, "?", 2)[0]))
	switch ext {
	case ".mp3":
		return mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	case ".wav":
		return wav.Decode(bytes.NewReader(data))
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// SetLoop selects whether the track repeats. It applies from the next Start.
func (p *Player) SetLoop(loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loop = loop
}

// SetBPM records the track's tempo.
func (p *Player) SetBPM(bpm float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bpm = bpm
}

// BPM returns the tempo set with SetBPM.
func (p *Player) BPM() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bpm
}

// stream builds the playback chain: the track (looped, or followed by
// silence so the clock keeps running), resampled to the device rate and
// counted.
func (p *Player) stream() (*beep.Ctrl, *counter, error) {
	if p.buffer == nil {
		return nil, nil, ErrNoTrack
	}
	track := p.buffer.Streamer(0, p.buffer.Len())
	var s beep.Streamer
	if p.loop {
		s = beep.Loop(-1, track)
	} else {
		s = beep.Seq(track, beep.Silence(-1))
	}
	if rate := p.buffer.Format().SampleRate; rate != sampleRate {
		s = beep.Resample(4, rate, sampleRate, s)
	}
	c := &counter{s: s}
	return &beep.Ctrl{Streamer: c}, c, nil
}

// Start plays the loaded track from the beginning.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctrl, c, err := p.stream()
	if err != nil {
		return err
	}
	if !p.speakerInit {
		if err := speaker.Init(sampleRate, sampleRate.N(speakerBuffer)); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		p.speakerInit = true
	}
	speaker.Clear()
	p.ctrl, p.count = ctrl, c
	speaker.Play(ctrl)
	p.logger.Debug("playback started", "source", p.source, "loop", p.loop)
	return nil
}

// Stop halts playback and rewinds the clock.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.speakerInit {
		speaker.Clear()
	}
	p.ctrl, p.count = nil, nil
}

// Pause silences playback and freezes Now.
func (p *Player) Pause() {
	p.setPaused(true)
}

// Resume continues after Pause.
func (p *Player) Resume() {
	p.setPaused(false)
}

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// Now returns the audible playback position: samples handed to the device
// minus the device buffer.
func (p *Player) Now() time.Duration {
	p.mu.Lock()
	c := p.count
	p.mu.Unlock()
	if c == nil {
		return 0
	}
	d := sampleRate.D(int(c.n.Load())) - speakerBuffer
	if d < 0 {
		return 0
	}
	return d
}
