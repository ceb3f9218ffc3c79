package ebiten

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is the console's drawing surface: an offscreen image that keeps
// everything drawn so far. The window copies it to the screen every frame.
type Canvas struct {
	image   *ebiten.Image
	scratch *ebiten.Image // Scroll target, swapped with image

	face       *text.GoTextFace
	metrics    text.Metrics
	background color.Color

	beeper *beeper
}

// newCanvas creates a width x height canvas filled with background
func newCanvas(width, height int, src *text.GoTextFaceSource, size float64, background color.Color, b *beeper) *Canvas {
	face := &text.GoTextFace{
		Source: src,
		Size:   size,
	}

	c := &Canvas{
		image:      ebiten.NewImage(width, height),
		scratch:    ebiten.NewImage(width, height),
		face:       face,
		metrics:    face.Metrics(),
		background: background,
		beeper:     b,
	}
	c.image.Fill(background)
	return c
}

// Image returns the current canvas contents
func (c *Canvas) Image() *ebiten.Image {
	return c.image
}

// MeasureTextWidth returns the advance of text, ignoring line terminators
func (c *Canvas) MeasureTextWidth(s string) float64 {
	return text.Advance(strings.TrimRight(s, "\r\n"), c.face)
}

// DrawText draws s with its baseline at y. text/v2 draws from the top of the
// line, so the origin is raised by the ascent.
func (c *Canvas) DrawText(s string, x, y float64, col color.Color) {
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-c.metrics.HAscent)
	op.ColorScale.ScaleWithColor(col)

	text.Draw(c.image, s, c.face, op)
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	vector.DrawFilledRect(c.image, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *Canvas) Ascent() float64 {
	return c.metrics.HAscent
}

func (c *Canvas) Descent() float64 {
	return c.metrics.HDescent
}

// Scroll moves the contents up by dy and clears the exposed strip
func (c *Canvas) Scroll(dy float64) {
	c.scratch.Fill(c.background)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, -dy)
	c.scratch.DrawImage(c.image, op)

	c.image, c.scratch = c.scratch, c.image
}

func (c *Canvas) Beep() {
	if c.beeper != nil {
		c.beeper.play()
	}
}
