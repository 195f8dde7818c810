package particle

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/physics"
)

func newTestSystem(seed int64) *System {
	return NewSystem(Settings{
		Count:   40,
		Speed:   4,
		Decay:   0.015,
		Gravity: 0.15,
		Text:    "SPARK",
	}, rand.New(rand.NewSource(seed)))
}

var origin = physics.Vec{X: 100, Y: 100}

func TestPlainBurstSizes(t *testing.T) {
	s := newTestSystem(1)
	s.Emit(Plain, origin, draw.White)
	require.Equal(t, 40, s.Len())
	for _, p := range s.Particles() {
		assert.LessOrEqual(t, p.Vel.Len(), 4.0+1e-9)
		assert.GreaterOrEqual(t, p.Size, 1.0)
		assert.Less(t, p.Size, 4.0)
		assert.Equal(t, 1.0, p.Life)
	}

	s.Clear()
	s.Emit(Perfect, origin, draw.Grey)
	require.Equal(t, 60, s.Len())
	for _, p := range s.Particles() {
		assert.LessOrEqual(t, p.Vel.Len(), 4.8+1e-9)
		assert.Contains(t, []draw.Color{draw.White, draw.Grey}, p.Color)
	}
}

func TestRingAndSpiral(t *testing.T) {
	s := newTestSystem(2)
	s.Emit(Ring, origin, draw.White)
	require.Equal(t, 60, s.Len())
	for _, p := range s.Particles() {
		assert.InDelta(t, 3.0, p.Vel.Len(), 1e-9)
	}

	s.Clear()
	s.Emit(Spiral, origin, draw.White)
	ps := s.Particles()
	require.Len(t, ps, 80)
	for i := 1; i < len(ps); i++ {
		assert.Greater(t, ps[i].Vel.Len(), ps[i-1].Vel.Len())
	}
}

func TestDoubleBurstFiresSecondLater(t *testing.T) {
	s := newTestSystem(3)
	s.Update(time.Second)
	s.Emit(Double, origin, draw.White)
	assert.Equal(t, 60, s.Len())
	assert.Equal(t, 1, s.Pending())

	s.Update(time.Second + 100*time.Millisecond)
	assert.Equal(t, 60, s.Len())
	assert.Equal(t, 1, s.Pending())

	s.Update(time.Second + 120*time.Millisecond)
	assert.Equal(t, 100, s.Len())
	assert.Equal(t, 0, s.Pending())
}

func TestClearCancelsPendingBursts(t *testing.T) {
	s := newTestSystem(4)
	s.Emit(Double, origin, draw.White)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Pending())
	s.Update(time.Second)
	assert.Equal(t, 0, s.Len())
}

func TestTextBurstShape(t *testing.T) {
	offsets := TextOffsets("SPARK", 4)
	require.GreaterOrEqual(t, len(offsets), textMinPoints)
	for _, o := range offsets {
		assert.LessOrEqual(t, math.Abs(o.X), 5*7*4/2.0)
		assert.LessOrEqual(t, math.Abs(o.Y), 13*4/2.0)
	}

	s := newTestSystem(5)
	s.Emit(Text, origin, draw.White)
	assert.Equal(t, len(offsets), s.Len())
	first := s.Particles()[0]
	assert.InDelta(t, offsets[0].X*textSpread, first.Vel.X, 1e-9)
}

func TestTextBurstFallsBackWhenEmpty(t *testing.T) {
	s := NewSystem(Settings{Count: 40, Speed: 4, Decay: 0.015, Gravity: 0.15}, rand.New(rand.NewSource(6)))
	s.Emit(Text, origin, draw.White)
	assert.Equal(t, 60, s.Len())
}

func TestLifeDecreasesAndExpires(t *testing.T) {
	s := newTestSystem(7)
	s.Emit(Plain, origin, draw.White)
	prev := map[int]float64{}
	for _, p := range s.Particles() {
		prev[p.ID] = p.Life
	}
	count := s.Len()
	for frame := 1; s.Len() > 0; frame++ {
		s.Update(time.Duration(frame) * 16 * time.Millisecond)
		require.LessOrEqual(t, s.Len(), count)
		count = s.Len()
		for _, p := range s.Particles() {
			require.Greater(t, p.Life, 0.0)
			require.Less(t, p.Life, prev[p.ID])
			prev[p.ID] = p.Life
		}
		require.Less(t, frame, 1000)
	}
}

func TestRegisterCustomBurst(t *testing.T) {
	s := newTestSystem(8)
	var calls int
	s.Register(Ring, BurstFunc(func(s *System, o physics.Vec, c draw.Color) {
		calls++
		s.Add(o, physics.Vec{}, c, 1, 0.5)
	}))
	s.Emit(Ring, origin, draw.White)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.Len())
}

func TestWeightsPick(t *testing.T) {
	w, err := ParseWeights(map[string]float64{"ring": 1, "plain": 0})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		assert.Equal(t, Ring, w.Pick(rng))
	}
	assert.Equal(t, Perfect, Weights{}.Pick(rng))

	_, err = ParseWeights(map[string]float64{"fountain": 1})
	assert.Error(t, err)
}
