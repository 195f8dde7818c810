package object

import (
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/physics"
)

// Status is the lifecycle state of a firework.
type Status int

const (
	Rising    Status = iota // launched and waiting for a trigger
	Exploding               // hit; bursts are being emitted
	Dud                     // triggered too early; decelerated and greyed
	Wet                     // passed its apex without a timely trigger
	Dead                    // ready to be removed
)

func (s Status) String() string {
	switch s {
	case Rising:
		return "rising"
	case Exploding:
		return "exploding"
	case Dud:
		return "dud"
	case Wet:
		return "wet"
	case Dead:
		return "dead"
	}
	return "unknown"
}

// Trail sampling.
const (
	TrailLength = 10
	TrailEvery  = 3 // integration steps between samples
)

// Trail is a fixed-size FIFO of past positions.
type Trail struct {
	points [TrailLength]physics.Vec
	start  int
	n      int
}

// Push appends p, dropping the oldest point when full.
func (t *Trail) Push(p physics.Vec) {
	if t.n < TrailLength {
		t.points[(t.start+t.n)%TrailLength] = p
		t.n++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % TrailLength
}

// Len returns the number of stored points.
func (t *Trail) Len() int {
	return t.n
}

// Points returns the stored points, oldest first.
func (t *Trail) Points() []physics.Vec {
	out := make([]physics.Vec, t.n)
	for i := range out {
		out[i] = t.points[(t.start+i)%TrailLength]
	}
	return out
}

// Firework is a single launched shell.
type Firework struct {
	ID         int // monotonic; also the spawn order
	Pos        physics.Vec
	Vel        physics.Vec
	Color      draw.Color
	TrailColor draw.Color
	Status     Status
	ApexY      float64
	Trail      Trail
	// Scored is set once the firework has produced its score event.
	Scored bool

	steps int
}

// Step integrates one frame and samples the trail while rising.
func (f *Firework) Step(gravity, scale float64) {
	physics.StepProjectile(&f.Pos, &f.Vel, gravity, scale)
	f.steps++
	if f.Status == Rising && f.steps%TrailEvery == 0 {
		f.Trail.Push(f.Pos)
	}
}

// Explode moves a rising firework into Exploding.
func (f *Firework) Explode() bool {
	if f.Status != Rising {
		return false
	}
	f.Status = Exploding
	f.Scored = true
	return true
}

// Fizzle turns a rising firework into a dud: it keeps flying at half its
// vertical speed, greyed out.
func (f *Firework) Fizzle() bool {
	if f.Status != Rising {
		return false
	}
	f.Status = Dud
	f.Color = draw.Grey
	f.Vel.Y *= 0.5
	f.Scored = true
	return true
}

// Douse marks a rising firework as wet. It keeps falling until it leaves
// the screen.
func (f *Firework) Douse() bool {
	if f.Status != Rising {
		return false
	}
	f.Status = Wet
	f.Color = draw.Grey
	f.Scored = true
	return true
}

// Retire marks the firework for removal.
func (f *Firework) Retire() {
	f.Status = Dead
}

// Active reports whether the firework is still being simulated.
func (f *Firework) Active() bool {
	return f.Status != Dead
}
