// Package gui is the desktop window frontend, built on ebiten. It drives
// the same loop.Session as the terminal game.
package gui

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
	"github.com/tomz197/fireworks/internal/loop"
	"github.com/tomz197/fireworks/internal/object"
	"github.com/tomz197/fireworks/internal/sim"
)

// Debug font cell size.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var background = draw.MustParseHex("#0b1020")

// Game implements ebiten.Game over a session.
type Game struct {
	sess          *loop.Session
	width, height int
	now           func() time.Time
}

// New creates a window game for sess.
func New(sess *loop.Session) *Game {
	c := sess.Config()
	return &Game{
		sess:   sess,
		width:  int(c.World.Width),
		height: int(c.World.Height),
		now:    time.Now,
	}
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.sess.Config().FrameRate)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	clicks := 0
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		clicks++
	}
	clicks += len(inpututil.AppendJustPressedTouchIDs(nil))

	quit, err := g.sess.Apply(readKeys(inpututil.IsKeyJustPressed, clicks))
	if err != nil {
		return err
	}
	if quit {
		return ebiten.Termination
	}
	g.sess.Update(g.now())
	return nil
}

// readKeys maps this tick's key presses onto the shared input actions.
func readKeys(justPressed func(ebiten.Key) bool, clicks int) input.Input {
	in := input.Input{Triggers: clicks}
	for _, k := range []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyNumpadEnter} {
		if justPressed(k) {
			in.Triggers++
		}
	}
	in.Quit = justPressed(ebiten.KeyQ)
	in.Pause = justPressed(ebiten.KeyP) != justPressed(ebiten.KeyEscape)
	in.Restart = justPressed(ebiten.KeyR)
	for i, k := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3} {
		if justPressed(k) {
			in.Difficulty = i + 1
		}
	}
	return in
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	s := g.sess.Sim()

	for _, f := range s.Fireworks() {
		drawTrail(screen, &f)
		vector.DrawFilledCircle(screen, float32(f.Pos.X), float32(f.Pos.Y), 3, f.Color, true)
	}
	for _, p := range s.Particles() {
		vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y),
			float32(p.Size), p.Color.WithAlpha(p.Fade()), true)
	}

	ebitenutil.DebugPrintAt(screen,
		loop.HUDLine(g.sess.Board().Stats(), s.Remaining(), s.SpeedMultiplier(), g.sess.Difficulty(), g.sess.Beat()),
		8, 4)
	g.drawOverlay(screen, s)
}

func drawTrail(screen *ebiten.Image, f *object.Firework) {
	pts := f.Trail.Points()
	if f.Status != object.Rising || len(pts) == 0 {
		return
	}
	pts = append(pts, f.Pos)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		alpha := float64(i) / float64(len(pts))
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
			2, f.TrailColor.WithAlpha(alpha), true)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image, s *sim.Simulation) {
	mid := g.height / 2
	switch {
	case s.Phase() == sim.Idle:
		g.centered(screen, mid-2*glyphHeight, "F I R E W O R K S")
		g.centered(screen, mid, "Click or press SPACE at the top of each flight")
		g.centered(screen, mid+glyphHeight, "Difficulty: "+string(g.sess.Difficulty())+"  (1 easy, 2 normal, 3 hard)")
		g.centered(screen, mid+3*glyphHeight, "P pause   R restart   Q quit")
	case s.Phase() == sim.Over:
		g.centered(screen, mid-glyphHeight, "T I M E   U P")
		g.centered(screen, mid+glyphHeight, loop.SummaryLine(g.sess.Final()))
		if g.sess.CanRestart() {
			g.centered(screen, mid+3*glyphHeight, "Click to play again")
		}
	case s.Paused():
		g.centered(screen, mid, "P A U S E D")
	default:
		if fb := g.sess.Board().Last(); fb.Visible(g.now()) {
			label, _ := loop.FeedbackLabel(fb.Accuracy)
			g.centered(screen, 3*glyphHeight, label)
		}
	}
}

func (g *Game) centered(screen *ebiten.Image, y int, s string) {
	ebitenutil.DebugPrintAt(screen, s, (g.width-len(s)*glyphWidth)/2, y)
}

// Layout implements ebiten.Game. The world is drawn at its logical size
// and scaled to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
