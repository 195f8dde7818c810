package object

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBands(t *testing.T) {
	assert.Equal(t, 1.0, DefaultBands.Multiplier(60*time.Second))
	assert.Equal(t, 1.0, DefaultBands.Multiplier(15*time.Second+1))
	assert.Equal(t, 1.35, DefaultBands.Multiplier(15*time.Second))
	assert.Equal(t, 1.8, DefaultBands.Multiplier(10*time.Second))
	assert.Equal(t, 2.5, DefaultBands.Multiplier(time.Second))
	assert.Equal(t, 1.0, DefaultBands.Multiplier(0))
}

func TestRamp(t *testing.T) {
	assert.Equal(t, 1.0, DefaultRamp.Multiplier(30*time.Second))
	assert.InDelta(t, 1.75, DefaultRamp.Multiplier(7500*time.Millisecond), 1e-9)
	assert.Equal(t, 2.5, DefaultRamp.Multiplier(0))
}

func TestBoost(t *testing.T) {
	b := Boost{From: 20 * time.Second, To: 10 * time.Second, Scale: 2}
	assert.Equal(t, 1.0, b.TimeScale(21*time.Second))
	assert.Equal(t, 2.0, b.TimeScale(20*time.Second))
	assert.Equal(t, 2.0, b.TimeScale(10*time.Second))
	assert.Equal(t, 1.0, b.TimeScale(9*time.Second))
	assert.Equal(t, 1.0, Boost{}.TimeScale(15*time.Second))
}
