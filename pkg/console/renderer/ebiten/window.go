package ebiten

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/zyedidia/generic/mapset"

	"sketchconsole/pkg/console"
)

// Window runs a console in an Ebiten window. It implements ebiten.Game:
// Update feeds key events to the console and Draw drains its display queue
// onto the canvas.
type Window struct {
	cfg     console.Config
	console *console.Console
	canvas  *Canvas
	logger  *log.Logger

	// Key state, touched only from Update
	repeater  *keyRepeater
	repeating mapset.Set[ebiten.Key]
	chars     []rune
	keys      []ebiten.Key

	// Flag to track if we've logged window opening
	windowOpenedLogged bool
}

// NewWindow loads the font, creates the canvas and builds the console on it.
// A nil logger selects the standard logger.
func NewWindow(cfg console.Config, logger *log.Logger) (*Window, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}

	src, err := loadFontSource(cfg.FontPath)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}

	w := &Window{
		cfg:       cfg,
		canvas:    newCanvas(cfg.Width, cfg.Height, src, cfg.FontSize, cfg.Background, newBeeper(logger)),
		logger:    logger,
		repeater:  newKeyRepeater(),
		repeating: repeatingKeys(),
	}

	w.console, err = console.New(w.canvas, cfg, console.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Console returns the console shown in the window
func (w *Window) Console() *console.Console {
	return w.console
}

// Run opens the window and starts p next to the render loop. It returns when
// the window is closed; the program's context is cancelled at that point.
func (w *Window) Run(p console.Program) error {
	ebiten.SetWindowSize(w.cfg.Width, w.cfg.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	w.console.Start(p)
	defer w.console.Close()

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// Update handles input (Ebiten interface). F12 saves a screenshot.
func (w *Window) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !w.windowOpenedLogged {
		w.windowOpenedLogged = true
		width, height := ebiten.WindowSize()
		w.logger.Printf("Console window opened (%dx%d)", width, height)
	}

	for _, ev := range w.pollKeys() {
		w.console.OnKey(ev)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		w.screenshot()
	}
	return nil
}

// screenshot saves the canvas to the working directory
func (w *Window) screenshot() {
	path, err := saveScreenshot(w.canvas.Image(), ".", time.Now())
	if err != nil {
		w.logger.Printf("screenshot: %v", err)
		return
	}
	w.logger.Printf("Saved screenshot to %s", path)
}

// Draw renders pending console output and shows the canvas (Ebiten interface)
func (w *Window) Draw(screen *ebiten.Image) {
	w.console.OnFrame()
	screen.DrawImage(w.canvas.Image(), nil)
}

// Layout keeps the console's logical size; Ebiten scales it to the window
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.cfg.Width, w.cfg.Height
}
