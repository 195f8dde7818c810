// Package draw renders to ANSI terminals: a color half-block canvas, a
// chunked writer for network output and cursor helpers.
package draw

import (
	"fmt"
	"io"
	"strconv"
)

// Point is a 2D coordinate in logical canvas units.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

// EnableMouse turns on button press reporting in SGR encoding.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1006h")
}

// DisableMouse undoes EnableMouse.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1000l")
}

// ResetStyle is the SGR reset sequence.
const ResetStyle = "\033[0m"

// appendFg appends a truecolor foreground SGR sequence.
func appendFg(b []byte, c Color) []byte {
	b = append(b, "\033[38;2;"...)
	return appendRGB(b, c)
}

// appendBg appends a truecolor background SGR sequence.
func appendBg(b []byte, c Color) []byte {
	b = append(b, "\033[48;2;"...)
	return appendRGB(b, c)
}

func appendRGB(b []byte, c Color) []byte {
	b = strconv.AppendInt(b, int64(c.R), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(c.G), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(c.B), 10)
	return append(b, 'm')
}

// Fg returns the foreground SGR sequence for c.
func Fg(c Color) string {
	return string(appendFg(nil, c))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
