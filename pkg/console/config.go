package console

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Default colors
var (
	DefaultBackground = color.RGBA{87, 88, 87, 255}    // Mid gray
	DefaultOutput     = color.RGBA{49, 255, 129, 255}  // Phosphor green
	DefaultInput      = color.RGBA{224, 227, 225, 255} // Off-white
)

// Config holds the console settings. They are fixed once the console is
// constructed.
type Config struct {
	Width  int // Window width in surface units (pixels, or cells for a terminal)
	Height int

	Margin  float64 // Left and top margin
	Leading float64 // Extra space between lines
	Prompt  string

	Background color.RGBA
	Output     color.RGBA
	Input      color.RGBA

	FontSize float64
	FontPath string // TTF/OTF file; empty selects the built-in monospace font

	// Debug logs every drawn string, entered line and layout metric
	Debug bool
}

// DefaultConfig returns the settings of a 600x500 window with a "> " prompt.
func DefaultConfig() Config {
	return Config{
		Width:      600,
		Height:     500,
		Margin:     10,
		Leading:    3,
		Prompt:     "> ",
		Background: DefaultBackground,
		Output:     DefaultOutput,
		Input:      DefaultInput,
		FontSize:   14,
	}
}

// Validate reports settings that cannot produce a usable console
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Margin < 0 || c.Leading < 0 {
		return fmt.Errorf("margin and leading must not be negative")
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("invalid font size %v", c.FontSize)
	}
	return nil
}

// ParseColor parses "R,G,B" or "R,G,B,A" into color.RGBA. Values 0-255;
// alpha defaults to 255.
func ParseColor(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want R,G,B[,A]", s)
	}
	vals := [4]uint8{3: 255}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, fmt.Errorf("invalid color %q: component %d must be 0-255", s, i+1)
		}
		vals[i] = uint8(n)
	}
	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

// FormatColor is the inverse of ParseColor
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}
