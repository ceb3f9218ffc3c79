package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/leonelquinteros/gotext"
	"github.com/spf13/cobra"

	"sketchconsole/pkg/console"
	"sketchconsole/pkg/console/renderer/ebiten"
	"sketchconsole/pkg/console/renderer/tui"
	"sketchconsole/pkg/programs"
)

// options holds the flag values
type options struct {
	tty        bool
	program    string
	lang       string
	locales    string
	width      int
	height     int
	prompt     string
	background string
	output     string
	input      string
	font       string
	fontSize   float64
	debug      bool
}

var opts options

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sketchconsole",
	Short: "Text console drawn inside a window",
	Long: `sketchconsole runs a small interactive program inside a console overlay.
Program output and your typing share the window; finished lines are handed
to the program as whitespace-separated tokens.

Examples:
  sketchconsole                          Echo program in a window
  sketchconsole --program sum            Add up numbers
  sketchconsole --tty --program guess    Number guessing in the terminal
  sketchconsole list                     Show the available programs`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		gotext.Configure(opts.locales, opts.lang, "default")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := programs.Lookup(opts.program)
		if err != nil {
			return err
		}
		cfg, err := opts.config()
		if err != nil {
			return err
		}

		logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
		if opts.tty {
			return runTerminal(cmd.Context(), cfg, p, logger)
		}
		return runWindow(cfg, p, logger)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// config builds the console settings from the flags
func (o options) config() (console.Config, error) {
	cfg := console.DefaultConfig()
	cfg.Width = o.width
	cfg.Height = o.height
	cfg.Prompt = o.prompt
	cfg.FontPath = o.font
	cfg.FontSize = o.fontSize
	cfg.Debug = o.debug

	var err error
	if cfg.Background, err = console.ParseColor(o.background); err != nil {
		return cfg, fmt.Errorf("--background: %w", err)
	}
	if cfg.Output, err = console.ParseColor(o.output); err != nil {
		return cfg, fmt.Errorf("--output-color: %w", err)
	}
	if cfg.Input, err = console.ParseColor(o.input); err != nil {
		return cfg, fmt.Errorf("--input-color: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runWindow runs p in a graphical window
func runWindow(cfg console.Config, p console.Program, logger *log.Logger) error {
	w, err := ebiten.NewWindow(cfg, logger)
	if err != nil {
		return err
	}
	return w.Run(p)
}

// runTerminal runs p on the controlling terminal until it returns or the
// process is interrupted
func runTerminal(ctx context.Context, cfg console.Config, p console.Program, logger *log.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	h, err := tui.New(tui.Config(cfg), os.Stdin, os.Stdout, logger)
	if err != nil {
		return err
	}
	return h.Run(ctx, p)
}

func init() {
	defaults := console.DefaultConfig()
	flags := rootCmd.Flags()

	flags.BoolVar(&opts.tty, "tty", false, "Run in the terminal instead of a window")
	flags.StringVarP(&opts.program, "program", "p", "echo", "Program to run (see 'list')")
	flags.IntVar(&opts.width, "width", defaults.Width, "Window width in pixels")
	flags.IntVar(&opts.height, "height", defaults.Height, "Window height in pixels")
	flags.StringVar(&opts.prompt, "prompt", defaults.Prompt, "Prompt shown at the start of every input line")
	flags.StringVar(&opts.background, "background", console.FormatColor(defaults.Background), "Background color as R,G,B[,A]")
	flags.StringVar(&opts.output, "output-color", console.FormatColor(defaults.Output), "Program output color as R,G,B[,A]")
	flags.StringVar(&opts.input, "input-color", console.FormatColor(defaults.Input), "Typed input color as R,G,B[,A]")
	flags.StringVar(&opts.font, "font", "", "TTF/OTF font file (default: built-in Go Mono)")
	flags.Float64Var(&opts.fontSize, "font-size", defaults.FontSize, "Font size in points")
	flags.BoolVar(&opts.debug, "debug", false, "Log every drawn string and entered line")

	rootCmd.PersistentFlags().StringVar(&opts.lang, "lang", "en_US", "Language of program messages")
	rootCmd.PersistentFlags().StringVar(&opts.locales, "locales", "locales", "Directory holding the message catalogs")

	// Register commands
	rootCmd.AddCommand(listCmd)
}
