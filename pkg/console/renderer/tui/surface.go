// Package tui hosts the console in a raw-mode terminal.
package tui

import (
	"fmt"
	imagecolor "image/color"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// Surface writes console drawing calls to a terminal. Positions are in
// character cells and one line is one cell high. The console draws
// sequentially, so text is written at the terminal's own cursor and the
// coordinates are only used for erasing.
type Surface struct {
	out   io.Writer
	mutex sync.Mutex
	err   error // First write error
}

// NewSurface creates a surface writing to out
func NewSurface(out io.Writer) *Surface {
	return &Surface{out: out}
}

// MeasureTextWidth returns the number of cells s occupies
func (s *Surface) MeasureTextWidth(text string) float64 {
	return float64(runewidth.StringWidth(strings.TrimRight(text, "\r\n")))
}

// DrawText writes text in the given color. Raw mode needs an explicit
// carriage return before every line feed.
func (s *Surface) DrawText(text string, x, y float64, c imagecolor.Color) {
	body, newline := strings.CutSuffix(text, "\n")
	out := ""
	if body != "" {
		out = rgb(c).Sprint(body)
	}
	if newline {
		out += "\r\n"
	}
	s.write(out)
}

// FillRect erases w cells left of the terminal cursor
func (s *Surface) FillRect(x, y, w, h float64, c imagecolor.Color) {
	n := int(w + 0.5)
	if n <= 0 {
		return
	}
	s.write(strings.Repeat("\b \b", n))
}

func (s *Surface) Ascent() float64  { return 1 }
func (s *Surface) Descent() float64 { return 0 }

// Scroll does nothing: the terminal scrolls on its own when a line feed
// reaches the bottom row.
func (s *Surface) Scroll(dy float64) {}

// Beep rings the terminal bell
func (s *Surface) Beep() {
	s.write("\a")
}

// Err returns the first write error, if any
func (s *Surface) Err() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.err
}

func (s *Surface) write(text string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.out, text); err != nil {
		s.err = fmt.Errorf("writing to terminal: %w", err)
	}
}

// rgb converts an image color to a foreground terminal color
func rgb(c imagecolor.Color) color.RGBColor {
	r, g, b, _ := c.RGBA()
	return color.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
