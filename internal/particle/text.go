package particle

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tomz197/fireworks/internal/draw"
	"github.com/tomz197/fireworks/internal/physics"
)

// Text raster tuning.
const (
	textStride     = 3    // keep pixels where (x+y) % textStride == 0
	textSpread     = 0.06 // velocity per pixel of offset from the center
	textDecayRatio = 0.9
	textMinPoints  = 40 // fewer samples than this falls back to a perfect burst
)

// textBurst disperses particles in the shape of a word. The word is
// rasterized once with the 7x13 bitmap font, scaled up, and sampled on a
// diagonal stride.
type textBurst struct {
	offsets []physics.Vec
}

func newTextBurst(text string, scale int) textBurst {
	return textBurst{offsets: TextOffsets(text, scale)}
}

func (b textBurst) Emit(s *System, origin physics.Vec, color draw.Color) {
	if len(b.offsets) < textMinPoints {
		s.Emit(Perfect, origin, color)
		return
	}
	decay := s.Settings().Decay * textDecayRatio
	for _, off := range b.offsets {
		s.Add(origin, off.Scale(textSpread), s.sparkle(color), 2, decay)
	}
}

// TextOffsets rasterizes text and returns the sampled lit pixels as offsets
// from the center of the bitmap.
func TextOffsets(text string, scale int) []physics.Vec {
	if text == "" || scale < 1 {
		return nil
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	width := d.MeasureString(text).Ceil()
	if width <= 0 {
		return nil
	}
	glyphs := image.NewAlpha(image.Rect(0, 0, width, face.Height))
	d.Dst = glyphs
	d.Src = image.Opaque
	d.Dot = fixed.P(0, face.Ascent)
	d.DrawString(text)

	w, h := width*scale, face.Height*scale
	cx, cy := float64(w)/2, float64(h)/2
	var out []physics.Vec
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			if (px+py)%textStride != 0 {
				continue
			}
			if glyphs.AlphaAt(px/scale, py/scale).A < 0x80 {
				continue
			}
			out = append(out, physics.Vec{X: float64(px) - cx, Y: float64(py) - cy})
		}
	}
	return out
}
