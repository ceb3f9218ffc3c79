// Package console implements a text console drawn inside a graphical window:
// program output and typed input share one display queue that the render loop
// drains every frame, while typed lines are handed to the program through a
// token scanner.
package console

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"strings"
	"sync"

	"sketchconsole/pkg/console/renderer"
	"sketchconsole/pkg/engine/input"
	"sketchconsole/pkg/engine/scanner"
)

// Cursor is the position the next string will be drawn at
type Cursor struct {
	Column     float64 // x of the next glyph
	LineNumber int     // 1-based
	Baseline   float64 // y of the current line's baseline
}

// Option configures a Console
type Option func(*Console)

// WithLogger sends diagnostics to l instead of the standard logger
func WithLogger(l *log.Logger) Option {
	return func(c *Console) {
		c.logger = l
	}
}

// Console is the text console. Print, Println and Printf may be called from
// any goroutine; OnFrame must only be called from the render loop.
type Console struct {
	cfg     Config
	surface renderer.Surface
	logger  *log.Logger

	output  *OutputQueue
	editor  *Editor
	scanner *scanner.Scanner

	// Layout, measured once at construction
	lineAscent  float64
	lineDescent float64
	lineHeight  float64
	promptWidth float64

	// Owned by the render loop
	cursor      Cursor
	cursorMutex sync.RWMutex

	// Program lifecycle
	ctx       context.Context
	cancel    context.CancelFunc
	startOnce sync.Once
	done      chan struct{}
	err       error
	errMutex  sync.RWMutex
}

// New creates a console drawing on surface and queues the first prompt.
func New(surface renderer.Surface, cfg Config, opts ...Option) (*Console, error) {
	if surface == nil {
		return nil, fmt.Errorf("console: nil surface")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	c := &Console{
		cfg:     cfg,
		surface: surface,
		logger:  log.Default(),
		output:  NewOutputQueue(),
		scanner: scanner.New(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	// Compute the size of the line and the prompt
	c.lineAscent = surface.Ascent()
	c.lineDescent = surface.Descent()
	c.lineHeight = c.lineAscent + c.lineDescent
	c.promptWidth = surface.MeasureTextWidth(cfg.Prompt)
	c.debugf("line height is %v", c.lineHeight)
	c.debugf("prompt width is %v", c.promptWidth)

	// Start at the margin
	c.cursor = Cursor{
		Column:     cfg.Margin,
		LineNumber: 1,
		Baseline:   cfg.Margin + c.lineHeight,
	}

	c.editor = NewEditor(c.scanner, c.output, cfg.Prompt, surface.MeasureTextWidth, surface.Beep)
	c.editor.logger = c.logger
	c.editor.debug = cfg.Debug

	c.output.Enqueue(DisplayRequest{Text: cfg.Prompt, Tag: TagOutput})
	return c, nil
}

// Config returns the settings the console was built with
func (c *Console) Config() Config {
	return c.cfg
}

// Scanner returns the token reader for typed input
func (c *Console) Scanner() *scanner.Scanner {
	return c.scanner
}

// Editor returns the line editor that receives key events
func (c *Console) Editor() *Editor {
	return c.editor
}

// Cursor returns a snapshot of the drawing position
func (c *Console) Cursor() Cursor {
	c.cursorMutex.RLock()
	defer c.cursorMutex.RUnlock()
	return c.cursor
}

// Pending returns the number of display requests not yet drawn
func (c *Console) Pending() int {
	return c.output.Len()
}

// Print queues text as program output
func (c *Console) Print(text string) {
	c.output.Enqueue(DisplayRequest{Text: text, Tag: TagOutput})
}

// Println queues text and a line break, followed by a fresh prompt
func (c *Console) Println(text string) {
	c.output.Enqueue(
		DisplayRequest{Text: text + "\n", Tag: TagOutput},
		DisplayRequest{Text: c.cfg.Prompt, Tag: TagOutput},
	)
}

// Printf formats according to a format specifier and queues the result as
// program output
func (c *Console) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

// OnKey routes a key event to the editor. Safe to call from any goroutine.
func (c *Console) OnKey(ev input.KeyEvent) {
	c.editor.HandleKey(ev)
}

// OnFrame draws everything queued since the previous frame.
func (c *Console) OnFrame() {
	c.cursorMutex.Lock()
	defer c.cursorMutex.Unlock()

	c.output.Drain(func(req DisplayRequest) {
		if req.Tag == TagErase {
			c.eraseLocked(req.Width)
			return
		}
		c.drawLocked(req.Text, c.colorFor(req.Tag))
	})
}

// colorFor maps a tag to its configured color
func (c *Console) colorFor(tag ColorTag) color.Color {
	if tag == TagInput {
		return c.cfg.Input
	}
	return c.cfg.Output
}

// drawLocked draws one string at the cursor and advances it.
// Caller must hold cursorMutex.
func (c *Console) drawLocked(text string, col color.Color) {
	c.debugf("Printing string %q at %v/%v", text, c.cursor.Column, c.cursor.Baseline)
	c.surface.DrawText(text, c.cursor.Column, c.cursor.Baseline, col)

	// If the string ends with "\n", then advance to the start of the next line.
	if strings.HasSuffix(text, "\n") {
		c.cursor.Column = c.cfg.Margin
		c.cursor.LineNumber++
		c.advanceLineLocked()
		return
	}

	// Otherwise, just move the cursor over by the width of the string.
	c.cursor.Column += c.surface.MeasureTextWidth(text)
}

// advanceLineLocked moves the baseline down one line, scrolling the surface
// when the new line would not fit. Caller must hold cursorMutex.
func (c *Console) advanceLineLocked() {
	step := c.lineHeight + c.cfg.Leading
	next := c.cursor.Baseline + step
	if next+c.lineDescent > float64(c.cfg.Height)-c.cfg.Margin && c.cursor.Baseline > c.cfg.Margin+c.lineHeight {
		c.surface.Scroll(step)
		return
	}
	c.cursor.Baseline = next
}

// eraseLocked covers the glyph left of the cursor with the background and
// moves the cursor back over it. An erase that would reach into the prompt
// is dropped. Caller must hold cursorMutex.
func (c *Console) eraseLocked(width float64) {
	start := c.cursor.Column - width
	if start < c.cfg.Margin+c.promptWidth-0.5 {
		c.debugf("Dropping erase at %v, inside the prompt", start)
		return
	}

	c.surface.FillRect(start, c.cursor.Baseline-c.lineAscent, width, c.lineHeight, c.cfg.Background)
	c.cursor.Column = start
}

// debugf logs only in debug mode
func (c *Console) debugf(format string, args ...any) {
	if c.cfg.Debug {
		c.logger.Printf(format, args...)
	}
}
