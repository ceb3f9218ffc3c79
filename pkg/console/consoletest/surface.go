// Package consoletest provides an in-memory renderer.Surface for tests.
package consoletest

import (
	"image/color"
	"strings"
	"sync"
	"unicode/utf8"
)

// OpKind identifies a recorded surface call
type OpKind int

const (
	OpText OpKind = iota
	OpFill
	OpScroll
)

// Op is one recorded drawing call
type Op struct {
	Kind  OpKind
	Text  string
	X, Y  float64
	W, H  float64
	Color color.Color
}

// Surface records drawing calls. Every rune is GlyphWidth wide, so layout
// arithmetic in tests is exact.
type Surface struct {
	GlyphWidth float64
	Asc        float64
	Desc       float64

	mutex sync.Mutex
	ops   []Op
	beeps int
}

// New returns a surface with 8-unit glyphs, ascent 10 and descent 4
func New() *Surface {
	return &Surface{GlyphWidth: 8, Asc: 10, Desc: 4}
}

// MeasureTextWidth counts runes, ignoring line terminators
func (s *Surface) MeasureTextWidth(text string) float64 {
	text = strings.TrimRight(text, "\r\n")
	return float64(utf8.RuneCountInString(text)) * s.GlyphWidth
}

func (s *Surface) DrawText(text string, x, y float64, c color.Color) {
	s.record(Op{Kind: OpText, Text: text, X: x, Y: y, Color: c})
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	s.record(Op{Kind: OpFill, X: x, Y: y, W: w, H: h, Color: c})
}

func (s *Surface) Ascent() float64  { return s.Asc }
func (s *Surface) Descent() float64 { return s.Desc }

func (s *Surface) Scroll(dy float64) {
	s.record(Op{Kind: OpScroll, H: dy})
}

func (s *Surface) Beep() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.beeps++
}

func (s *Surface) record(op Op) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ops = append(s.ops, op)
}

// Ops returns a copy of the recorded calls
func (s *Surface) Ops() []Op {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]Op, len(s.ops))
	copy(out, s.ops)
	return out
}

// Beeps returns how many alerts were played
func (s *Surface) Beeps() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.beeps
}

// Reset forgets all recorded calls
func (s *Surface) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ops = nil
	s.beeps = 0
}

// Transcript replays the recorded text calls as a terminal would show them:
// fills remove the last character of the current line.
func (s *Surface) Transcript() string {
	var lines []string
	var cur []rune
	for _, op := range s.Ops() {
		switch op.Kind {
		case OpText:
			for _, r := range op.Text {
				if r == '\n' {
					lines = append(lines, string(cur))
					cur = nil
					continue
				}
				cur = append(cur, r)
			}
		case OpFill:
			n := int(op.W / s.GlyphWidth)
			if n > len(cur) {
				n = len(cur)
			}
			cur = cur[:len(cur)-n]
		}
	}
	lines = append(lines, string(cur))
	return strings.Join(lines, "\n")
}
