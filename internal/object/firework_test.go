package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/physics"
)

func TestTrailKeepsNewestPoints(t *testing.T) {
	var tr Trail
	for i := 0; i < TrailLength+5; i++ {
		tr.Push(physics.Vec{X: float64(i)})
	}
	require.Equal(t, TrailLength, tr.Len())
	pts := tr.Points()
	assert.Equal(t, 5.0, pts[0].X)
	assert.Equal(t, float64(TrailLength+4), pts[len(pts)-1].X)
}

func TestTrailSampledOnlyWhileRising(t *testing.T) {
	f := &Firework{Status: Rising, Vel: physics.Vec{Y: -9}}
	for i := 0; i < 9; i++ {
		f.Step(0.15, 1)
	}
	assert.Equal(t, 3, f.Trail.Len())

	f.Douse()
	for i := 0; i < 9; i++ {
		f.Step(0.15, 1)
	}
	assert.Equal(t, 3, f.Trail.Len())
}

func TestTransitionsOnlyFromRising(t *testing.T) {
	f := &Firework{Status: Rising, Color: draw.White, Vel: physics.Vec{Y: -8}}
	require.True(t, f.Fizzle())
	assert.Equal(t, Dud, f.Status)
	assert.Equal(t, -4.0, f.Vel.Y)
	assert.Equal(t, draw.Grey, f.Color)
	assert.True(t, f.Scored)

	assert.False(t, f.Fizzle())
	assert.False(t, f.Douse())
	assert.False(t, f.Explode())
	assert.Equal(t, -4.0, f.Vel.Y)

	g := &Firework{Status: Rising}
	require.True(t, g.Explode())
	assert.Equal(t, Exploding, g.Status)
	g.Retire()
	assert.False(t, g.Active())
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	assert.True(t, b.Contains(physics.Vec{X: 50, Y: -500}, OffscreenMargin))
	assert.True(t, b.Contains(physics.Vec{X: -50, Y: 100}, OffscreenMargin))
	assert.False(t, b.Contains(physics.Vec{X: 50, Y: 101}, OffscreenMargin))
	assert.False(t, b.Contains(physics.Vec{X: 151, Y: 0}, OffscreenMargin))
}
