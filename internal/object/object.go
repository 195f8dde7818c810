// Package object holds the simulated fireworks, the launcher that creates
// them and the pace curves that speed a run up as time runs out.
package object

import "github.com/tomz197/fireworks/internal/physics"

// OffscreenMargin is how far past the visible area an entity may travel
// before it is considered gone.
const OffscreenMargin = 50

// Bounds is the logical playfield. Fireworks launch from the bottom edge
// (y == Height) and y grows downward.
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether p is inside the bounds extended by margin on the
// left, right and bottom. The top is open: a firework above the screen
// will come back down.
func (b Bounds) Contains(p physics.Vec, margin float64) bool {
	return p.X >= -margin && p.X <= b.Width+margin && p.Y <= b.Height+margin
}
