// Package loop provides the terminal game loop and the per-player session
// shared with the window frontend.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/input"
)

// hudRows is the number of terminal rows above the playfield.
const hudRows = 1

// Options configures a terminal run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
}

// Run starts the main game loop with the standard Input → Update → Draw
// cycle. It returns when the player quits, the input closes or ctx is done.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, cfg *config.Config, opts Options) error {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sess, err := NewSession(ctx, cfg, SessionOptions{Logger: logger})
	if err != nil {
		return err
	}
	defer sess.Close()

	c := sess.Config()
	stream := input.StartStream(r)
	canvas := draw.NewScaledCanvas(0, 0, c.World.Width, c.World.Height)
	out := draw.NewChunkWriter(w, 0, 0)
	frameTime := c.FrameInterval()
	view := &screen{}

	draw.HideCursor(w)
	draw.EnableMouse(w)
	defer func() {
		draw.DisableMouse(w)
		draw.ShowCursor(w)
		draw.ClearScreen(w)
	}()
	logger.Info("session started", "difficulty", c.Difficulty, "bpm", c.Tempo.BPM, "silent", sess.Silent())

	for {
		frameStart := time.Now()
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// ===== INPUT PHASE =====
		quit, err := sess.Apply(input.ReadInput(stream))
		if err != nil {
			return err
		}
		if quit {
			logger.Info("session ended", "run", sess.Sim().RunID())
			return nil
		}

		// ===== UPDATE PHASE =====
		if tw, th, err := termSize(); err == nil {
			view.fit(canvas, tw, th, c.World.Width/c.World.Height)
		}
		sess.Update(frameStart)

		// ===== DRAW PHASE =====
		drawFrame(out, canvas, view, sess, frameStart)
		if err := out.Flush(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}

// screen is the terminal layout for the current window size.
type screen struct {
	termWidth, termHeight int
	cols, rows            int // playfield size in cells
	offCol, offRow        int // 0-based playfield origin
}

// fit sizes the playfield to the largest area below the HUD that keeps the
// world's aspect ratio, centered horizontally. Each cell holds two square
// sub-pixels stacked vertically.
func (s *screen) fit(canvas *draw.Canvas, termWidth, termHeight int, aspect float64) {
	if termWidth == s.termWidth && termHeight == s.termHeight {
		return
	}
	s.termWidth, s.termHeight = termWidth, termHeight
	rows := max(termHeight-hudRows, 0)
	cols := int(float64(rows*2) * aspect)
	if cols > termWidth {
		cols = termWidth
		rows = int(float64(cols) / aspect / 2)
	}
	s.cols, s.rows = cols, rows
	s.offCol = (termWidth - cols) / 2
	s.offRow = hudRows
	canvas.Resize(cols, rows)
	canvas.SetOffset(s.offCol, s.offRow)
}
