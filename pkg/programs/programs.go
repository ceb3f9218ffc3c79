// Package programs contains demo programs that read from the console's
// scanner while the render loop keeps running.
package programs

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"

	"sketchconsole/pkg/console"
)

// Token that ends Echo and closes a sum in Sum
const (
	quitToken = "quit"
	doneToken = "done"
)

// registry holds the programs selectable by name
var registry = map[string]func() console.Program{
	"echo":  func() console.Program { return Echo },
	"sum":   func() console.Program { return Sum },
	"guess": func() console.Program { return NewGuess(rand.New(rand.NewSource(time.Now().UnixNano()))) },
}

// Lookup returns the program registered as name
func Lookup(name string) (console.Program, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown program %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return build(), nil
}

// Names lists the registered programs in order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Echo repeats every line typed, with runs of spaces collapsed, until "quit"
// is entered.
func Echo(ctx context.Context, c *console.Console) error {
	c.Println(gotext.Get("ECHO_WELCOME"))
	sc := c.Scanner()

	for {
		if err := sc.Wait(ctx); err != nil {
			return err
		}
		line, err := sc.NextLine()
		if err != nil {
			return err
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		if words[0] == quitToken {
			c.Println(gotext.Get("GOODBYE"))
			return nil
		}
		c.Println(strings.Join(words, " "))
	}
}

// Sum adds up integers until "done" is entered, prints the total and starts
// over.
func Sum(ctx context.Context, c *console.Console) error {
	c.Println(gotext.Get("SUM_WELCOME"))
	sc := c.Scanner()
	total, count := 0, 0

	for {
		if err := sc.Wait(ctx); err != nil {
			return err
		}

		if sc.HasNextInt() {
			n, err := sc.NextInt()
			if err != nil {
				return err
			}
			total += n
			count++
			continue
		}

		switch word := sc.Next(); word {
		case "":
		case quitToken:
			c.Println(gotext.Get("GOODBYE"))
			return nil
		case doneToken:
			c.Println(fmt.Sprintf(gotext.Get("SUM_TOTAL"), count, total))
			total, count = 0, 0
		default:
			c.Println(fmt.Sprintf(gotext.Get("SUM_NOT_A_NUMBER"), word))
		}
	}
}

// Guess ranges
const (
	guessMin = 1
	guessMax = 100
)

// NewGuess returns a number guessing game drawing its secret from r.
func NewGuess(r *rand.Rand) console.Program {
	return func(ctx context.Context, c *console.Console) error {
		secret := guessMin + r.Intn(guessMax-guessMin+1)
		c.Println(fmt.Sprintf(gotext.Get("GUESS_WELCOME"), guessMin, guessMax))
		sc := c.Scanner()

		for tries := 1; ; {
			if err := sc.Wait(ctx); err != nil {
				return err
			}

			if !sc.HasNextInt() {
				if word := sc.Next(); word != "" {
					c.Println(fmt.Sprintf(gotext.Get("GUESS_NOT_A_NUMBER"), word))
				}
				continue
			}

			guess, err := sc.NextInt()
			if err != nil {
				return err
			}
			switch {
			case guess < secret:
				c.Println(gotext.Get("GUESS_TOO_LOW"))
			case guess > secret:
				c.Println(gotext.Get("GUESS_TOO_HIGH"))
			default:
				c.Println(fmt.Sprintf(gotext.Get("GUESS_CORRECT"), secret, tries))
				return nil
			}
			tries++
		}
	}
}
