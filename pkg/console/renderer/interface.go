package renderer

import "image/color"

// Surface defines the interface for console rendering backends.
// Implementations include the Ebiten window and the raw terminal (TUI).
//
// Drawing methods are only called from the render loop. Beep may be called
// from whichever goroutine delivers key events.
type Surface interface {
	// MeasureTextWidth returns the rendered width of s
	MeasureTextWidth(s string) float64

	// DrawText draws s with its baseline at (x, y)
	DrawText(s string, x, y float64, c color.Color)

	// FillRect fills a rectangle whose top-left corner is (x, y)
	FillRect(x, y, w, h float64, c color.Color)

	// Ascent and Descent are the font extents above and below the baseline
	Ascent() float64
	Descent() float64

	// Scroll moves everything drawn so far up by dy, clearing the exposed
	// strip at the bottom to the background
	Scroll(dy float64)

	// Beep plays the audible alert
	Beep()
}
