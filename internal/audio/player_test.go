package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWav writes d of silence at rate and returns the path.
func writeWav(t *testing.T, rate beep.SampleRate, d time.Duration) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "track.wav")
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(rate.N(d), beep.Silence(-1)), format))
	return p
}

func pull(t *testing.T, s beep.Streamer, n int) {
	t.Helper()
	buf := make([][2]float64, 512)
	for n > 0 {
		chunk := buf
		if n < len(chunk) {
			chunk = chunk[:n]
		}
		got, ok := s.Stream(chunk)
		require.True(t, ok)
		n -= got
	}
}

func TestLoadTrackFromFile(t *testing.T) {
	p := NewPlayer()
	require.NoError(t, p.LoadTrack(context.Background(), writeWav(t, sampleRate, time.Second)))
	assert.Equal(t, sampleRate.N(time.Second), p.buffer.Len())
}

func TestLoadTrackFromURL(t *testing.T) {
	data, err := os.ReadFile(writeWav(t, sampleRate, 200*time.Millisecond))
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/song.wav" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	p := NewPlayer()
	require.NoError(t, p.LoadTrack(context.Background(), srv.URL+"/song.wav?v=1"))
	assert.Error(t, p.LoadTrack(context.Background(), srv.URL+"/missing.wav"))
}

func TestLoadTrackErrors(t *testing.T) {
	p := NewPlayer()
	err := p.LoadTrack(context.Background(), filepath.Join(t.TempDir(), "nope.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	odd := filepath.Join(t.TempDir(), "track.ogg")
	require.NoError(t, os.WriteFile(odd, []byte("OggS"), 0644))
	assert.ErrorIs(t, p.LoadTrack(context.Background(), odd), ErrUnsupportedFormat)
}

func TestStartWithoutTrack(t *testing.T) {
	assert.ErrorIs(t, NewPlayer().Start(), ErrNoTrack)
}

func TestCounterFreezesWhilePaused(t *testing.T) {
	p := NewPlayer()
	p.SetLoop(false)
	require.NoError(t, p.LoadTrack(context.Background(), writeWav(t, 44100, 100*time.Millisecond)))

	ctrl, c, err := p.stream()
	require.NoError(t, err)

	// Past the end of the track: silence keeps the clock running.
	pull(t, ctrl, sampleRate.N(300*time.Millisecond))
	counted := c.n.Load()
	assert.InDelta(t, float64(sampleRate.N(300*time.Millisecond)), float64(counted), 1024)

	ctrl.Paused = true
	pull(t, ctrl, 4800)
	assert.Equal(t, counted, c.n.Load())
}

func TestNowWithoutPlayback(t *testing.T) {
	assert.Equal(t, time.Duration(0), NewPlayer().Now())
}
