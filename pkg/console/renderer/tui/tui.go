package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"sketchconsole/pkg/console"
	"sketchconsole/pkg/engine/input"
	"sketchconsole/pkg/engine/terminal"
)

const (
	frameInterval = time.Second / 60
	keyBuffer     = 256
)

// Config adapts cfg to a terminal: the size comes from the terminal, in
// cells, and there is no margin or leading.
func Config(cfg console.Config) console.Config {
	cfg.Width, cfg.Height = terminal.GetSize()
	cfg.Margin = 0
	cfg.Leading = 0
	return cfg
}

// Host runs a console on a terminal: keys are read from in, drawing goes
// to out.
type Host struct {
	in      io.Reader
	surface *Surface
	console *console.Console
	logger  *log.Logger
}

// New builds a console over out. A nil logger selects the standard logger.
func New(cfg console.Config, in io.Reader, out io.Writer, logger *log.Logger) (*Host, error) {
	if logger == nil {
		logger = log.Default()
	}

	s := NewSurface(out)
	c, err := console.New(s, cfg, console.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	return &Host{
		in:      in,
		surface: s,
		console: c,
		logger:  logger,
	}, nil
}

// Console returns the hosted console
func (h *Host) Console() *console.Console {
	return h.console
}

// Run starts p and drives the console until p returns, ctx is done or the
// user presses Ctrl+C. When input ends, a partly typed line is committed and
// the program's context is cancelled at once. Committed input stays
// readable after that: Scanner.Wait returns while data is left, so a
// program that keeps reading still sees everything that was typed.
// The program's failure, if any, is returned.
func (h *Host) Run(ctx context.Context, p console.Program) error {
	if f, ok := h.in.(*os.File); ok && terminal.IsTerminal(f) {
		restore, err := terminal.MakeRaw(f)
		if err != nil {
			return err
		}
		defer restore()
	}

	// Show the first prompt before any key can ring the bell
	h.console.OnFrame()

	// Reads block and cannot be interrupted, so the reader lives outside
	// the group and is abandoned on exit.
	keys := make(chan input.KeyEvent, keyBuffer)
	readErr := make(chan error, 1)
	go func() {
		readErr <- input.ReadKeys(h.in, keys)
	}()

	h.console.Start(p)
	defer h.console.Close()

	g, ctx := errgroup.WithContext(ctx)

	// Key handler
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-h.console.Done():
				return nil
			case ev := <-keys:
				h.console.OnKey(ev)
			case err := <-readErr:
				h.flushKeys(keys)
				if err != nil {
					return err
				}
				h.endOfInput()
				return nil
			}
		}
	})

	// Render loop
	g.Go(func() error {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				h.console.OnFrame()
			case <-h.console.Done():
				h.console.OnFrame()
				return h.console.Err()
			case <-ctx.Done():
				h.console.OnFrame()
				return nil
			}
		}
	})

	err := g.Wait()
	h.surface.DrawText("\n", 0, 0, h.console.Config().Output)

	if errors.Is(err, input.ErrInterrupt) {
		h.logger.Printf("interrupted")
		return nil
	}
	if err != nil {
		return err
	}
	if err := h.surface.Err(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// flushKeys delivers events the reader queued before it stopped
func (h *Host) flushKeys(keys <-chan input.KeyEvent) {
	for {
		select {
		case ev := <-keys:
			h.console.OnKey(ev)
		default:
			return
		}
	}
}

// endOfInput commits a partly typed line and cancels the program's context
func (h *Host) endOfInput() {
	if h.console.Editor().Line() != "" {
		h.console.OnKey(input.Named(input.DeviceTerminal, "enter"))
	}
	h.console.Close()
}
