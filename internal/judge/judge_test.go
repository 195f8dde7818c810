package judge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/fireworks/internal/object"
	"github.com/tomz197/fireworks/internal/physics"
)

func TestClassifyBoundaries(t *testing.T) {
	th := DefaultThresholds
	const eps = 1e-6
	assert.Equal(t, Perfect, Classify(0, th))
	assert.Equal(t, Perfect, Classify(1.8, th))
	assert.Equal(t, Perfect, Classify(-1.8, th))
	assert.Equal(t, Wet, Classify(1.8+eps, th))
	assert.Equal(t, Wet, Classify(5, th))
	assert.Equal(t, Good, Classify(-1.8-eps, th))
	assert.Equal(t, Good, Classify(-6, th))
	assert.Equal(t, Miss, Classify(-6-eps, th))
	assert.Equal(t, Miss, Classify(-9, th))
}

func TestAccuracyHit(t *testing.T) {
	assert.True(t, Perfect.Hit())
	assert.True(t, Good.Hit())
	assert.False(t, Miss.Hit())
	assert.False(t, Wet.Hit())
}

func fw(id int, vy float64, status object.Status) *object.Firework {
	return &object.Firework{ID: id, Vel: physics.Vec{Y: vy}, Status: status}
}

func TestSelectClosestToApex(t *testing.T) {
	fs := []*object.Firework{
		fw(1, -5, object.Rising),
		fw(2, 0.5, object.Rising),
		fw(3, 0.1, object.Dud),
		fw(4, -1, object.Rising),
	}
	assert.Equal(t, 2, Select(fs).ID)
}

func TestSelectTieGoesToEarliest(t *testing.T) {
	fs := []*object.Firework{
		fw(7, 1, object.Rising),
		fw(3, -1, object.Rising),
		fw(5, 1, object.Rising),
	}
	assert.Equal(t, 3, Select(fs).ID)
}

func TestSelectNoCandidates(t *testing.T) {
	assert.Nil(t, Select(nil))
	assert.Nil(t, Select([]*object.Firework{fw(1, 0, object.Wet)}))
}
