package draw

import (
	"io"
	"math"
	"strconv"
)

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. It scales from logical coordinates to terminal
// cells.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	set            []bool  // Whether the pixel was drawn this frame

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf []byte
}

// NewScaledCanvas creates a canvas that maps logicalWidth x logicalHeight
// onto a termWidth x termHeight terminal.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	subPixelHeight := termHeight * 2
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.set = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.set)
}

func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = col
		c.set[i] = true
	}
}

// At returns the pixel at terminal sub-pixel coordinates.
func (c *Canvas) At(x, y int) (Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Color{}, false
	}
	i := y*c.termWidth + x
	return c.pixels[i], c.set[i]
}

// SetFloat sets a pixel using logical coordinates.
func (c *Canvas) SetFloat(x, y float64, col Color) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)), col)
}

// FillCircle fills a disc of logical radius r. Small discs still cover at
// least one pixel.
func (c *Canvas) FillCircle(center Point, r float64, col Color) {
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.setPixel(int(math.Round(cx)), int(math.Round(cy)), col)
		return
	}
	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			dx := (float64(x) - cx) / math.Max(rx, 0.5)
			dy := (float64(y) - cy) / math.Max(ry, 0.5)
			if dx*dx+dy*dy <= 1 {
				c.setPixel(x, y, col)
			}
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1, col)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for smooth SSH output.
const maxChunkSize = 1400

// Render writes the drawn cells to w. Each terminal cell shows two pixels:
// the upper half-block takes the top color as foreground and the bottom
// color as background.
func (c *Canvas) Render(w io.Writer) {
	b := c.renderBuf[:0]
	for row := 0; row < c.termHeight; row++ {
		top := row * 2 * c.termWidth
		bottom := top + c.termWidth
		for col := 0; col < c.termWidth; col++ {
			ts, bs := c.set[top+col], c.set[bottom+col]
			if !ts && !bs {
				continue
			}
			b = append(b, "\033["...)
			b = strconv.AppendInt(b, int64(row+1+c.offsetRow), 10)
			b = append(b, ';')
			b = strconv.AppendInt(b, int64(col+1+c.offsetCol), 10)
			b = append(b, 'H')
			switch {
			case ts && bs:
				b = appendFg(b, c.pixels[top+col])
				b = appendBg(b, c.pixels[bottom+col])
				b = append(b, string(BlockUpperHalf)...)
			case ts:
				b = appendFg(b, c.pixels[top+col])
				b = append(b, string(BlockUpperHalf)...)
			default:
				b = appendFg(b, c.pixels[bottom+col])
				b = append(b, string(BlockLowerHalf)...)
			}
			b = append(b, ResetStyle...)
		}
	}
	c.renderBuf = b

	for len(b) > 0 {
		chunk := b
		if len(chunk) > maxChunkSize {
			chunk = b[:maxChunkSize]
		}
		_, _ = w.Write(chunk)
		b = b[len(chunk):]
	}
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position (col, row), for text overlays.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
