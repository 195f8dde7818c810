package loop

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/judge"
	"github.com/tomz197/fireworks/internal/object"
	"github.com/tomz197/fireworks/internal/physics"
	"github.com/tomz197/fireworks/internal/score"
	"github.com/tomz197/fireworks/internal/sim"
)

// Shell and spark radii in world units.
const (
	shellRadius = 3
	sparkScale  = 1.5
)

var (
	hudColor    = draw.MustParseHex("#e2e8f0")
	accentColor = draw.MustParseHex("#fde68a")
)

// FeedbackLabel is the text and color shown for a judgment.
func FeedbackLabel(acc judge.Accuracy) (string, draw.Color) {
	switch acc {
	case judge.Perfect:
		return "PERFECT!", draw.MustParseHex("#eab308")
	case judge.Good:
		return "GOOD!", draw.MustParseHex("#22c55e")
	case judge.Miss:
		return "TOO EARLY!", draw.MustParseHex("#ef4444")
	case judge.Wet:
		return "TOO LATE!", draw.MustParseHex("#3b82f6")
	}
	return "", draw.White
}

// HUDLine is the status line shown above the playfield.
func HUDLine(st score.Stats, remaining time.Duration, speed float64, d config.Difficulty, beat int64) string {
	b := "-"
	if beat >= 0 {
		b = fmt.Sprint(beat + 1)
	}
	return fmt.Sprintf("SCORE %d  COMBO x%d  TIME %s  SPEED x%.2f  %s  BEAT %s",
		st.Score, st.Combo, FormatClock(remaining), speed, d, b)
}

// FormatClock renders a countdown as m:ss, rounding partial seconds up.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// SummaryLine describes a finished run.
func SummaryLine(st score.Stats) string {
	return fmt.Sprintf("Score %d   Max combo %d   Perfects %d   Accuracy %.0f%%",
		st.Score, st.MaxCombo, st.Perfects, st.Accuracy()*100)
}

func point(v physics.Vec) draw.Point {
	return draw.Point{X: v.X, Y: v.Y}
}

// drawScene rasterizes fireworks, their trails and the particles.
func drawScene(c *draw.Canvas, s *sim.Simulation) {
	for _, f := range s.Fireworks() {
		drawTrail(c, &f)
		c.FillCircle(point(f.Pos), shellRadius, f.Color)
	}
	for _, p := range s.Particles() {
		c.FillCircle(point(p.Pos), p.Size*sparkScale, p.Color.Scale(p.Fade()))
	}
}

// drawTrail connects the trail samples to the shell, fading toward the
// oldest point.
func drawTrail(c *draw.Canvas, f *object.Firework) {
	pts := f.Trail.Points()
	if f.Status != object.Rising || len(pts) == 0 {
		return
	}
	pts = append(pts, f.Pos)
	for i := 1; i < len(pts); i++ {
		fade := float64(i) / float64(len(pts))
		c.DrawLine(point(pts[i-1]), point(pts[i]), f.TrailColor.Scale(fade))
	}
}

// drawFrame writes one full frame to out.
func drawFrame(out *draw.ChunkWriter, canvas *draw.Canvas, view *screen, sess *Session, now time.Time) {
	draw.ClearScreen(out)
	canvas.Clear()
	s := sess.Sim()
	drawScene(canvas, s)
	canvas.Render(out)

	if view.termHeight < 1 {
		return
	}
	st := sess.Board().Stats()
	out.WriteCentered(1, view.termWidth,
		HUDLine(st, s.Remaining(), s.SpeedMultiplier(), sess.Difficulty(), sess.Beat()), hudColor)

	mid := view.offRow + view.rows/2
	switch {
	case s.Phase() == sim.Idle:
		drawStartScreen(out, view.termWidth, mid, sess.Difficulty())
	case s.Phase() == sim.Over:
		drawOverScreen(out, view.termWidth, mid, sess.Final(), sess.CanRestart())
	case s.Paused():
		out.WriteCentered(mid, view.termWidth, "P A U S E D", accentColor)
		out.WriteCentered(mid+2, view.termWidth, "Press P to resume", hudColor)
	default:
		if fb := sess.Board().Last(); fb.Visible(now) {
			label, col := FeedbackLabel(fb.Accuracy)
			if fb.Points > 0 {
				label = fmt.Sprintf("%s +%d", label, fb.Points)
			}
			out.WriteCentered(view.offRow+2, view.termWidth, label, col)
		}
	}
}

func drawStartScreen(out *draw.ChunkWriter, width, mid int, d config.Difficulty) {
	out.WriteCentered(mid-3, width, "F I R E W O R K S", accentColor)
	out.WriteCentered(mid-1, width, "Burst each shell at the top of its flight", hudColor)
	out.WriteCentered(mid+1, width, "Press SPACE to start", hudColor)
	out.WriteCentered(mid+3, width, fmt.Sprintf("Difficulty: %s  (1 easy, 2 normal, 3 hard)", d), hudColor)
	out.WriteCentered(mid+5, width, "SPACE/ENTER/click to burst   P pause   R restart   Q quit", draw.Slate)
}

func drawOverScreen(out *draw.ChunkWriter, width, mid int, st score.Stats, canRestart bool) {
	out.WriteCentered(mid-2, width, "T I M E   U P", accentColor)
	out.WriteCentered(mid, width, SummaryLine(st), hudColor)
	if canRestart {
		out.WriteCentered(mid+2, width, "Press SPACE to play again", hudColor)
	}
}
