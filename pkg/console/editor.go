package console

import (
	"log"
	"sync"

	"sketchconsole/pkg/engine/input"
	"sketchconsole/pkg/engine/scanner"
)

// Editor owns the line the user is typing. It feeds keystrokes to the
// scanner and queues the matching echo, erase and prompt requests.
type Editor struct {
	scanner *scanner.Scanner
	output  *OutputQueue
	prompt  string

	measure func(string) float64
	alert   func()

	logger *log.Logger
	debug  bool

	// Uncommitted line
	line      []rune
	lineMutex sync.Mutex
}

// NewEditor wires an editor to its scanner and output queue. measure returns
// the rendered width of a string; alert plays the audible alert.
func NewEditor(sc *scanner.Scanner, out *OutputQueue, prompt string, measure func(string) float64, alert func()) *Editor {
	return &Editor{
		scanner: sc,
		output:  out,
		prompt:  prompt,
		measure: measure,
		alert:   alert,
		logger:  log.Default(),
	}
}

// HandleKey applies one key event. Releases and coded keys are ignored.
func (ed *Editor) HandleKey(ev input.KeyEvent) {
	if ev.Action != input.ActionPress {
		return
	}

	switch ev.Code {
	case input.CodeEnter:
		ed.commit()
	case input.CodeBackspace:
		ed.backspace()
	case input.CodeCharacter:
		if ev.Coded || !input.IsPrintable(ev.Char) {
			return
		}
		ed.insert(ev.Char)
	}
}

// Line returns a copy of the uncommitted line
func (ed *Editor) Line() string {
	ed.lineMutex.Lock()
	defer ed.lineMutex.Unlock()
	return string(ed.line)
}

// insert appends a character to the line, the scanner and the screen.
func (ed *Editor) insert(r rune) {
	ed.lineMutex.Lock()
	defer ed.lineMutex.Unlock()

	ed.line = append(ed.line, r)
	ed.scanner.Enqueue(r)
	ed.output.Enqueue(DisplayRequest{Text: string(r), Tag: TagInput})
}

// commit ends the line: the scanner gets its terminator and the screen gets a
// line break and a fresh prompt.
func (ed *Editor) commit() {
	ed.lineMutex.Lock()
	defer ed.lineMutex.Unlock()

	entered := string(ed.line)
	ed.line = ed.line[:0]
	if ed.debug {
		ed.logger.Printf("String is %q", entered)
	}

	ed.scanner.Enqueue('\n')
	ed.output.Enqueue(
		DisplayRequest{Text: "\n", Tag: TagOutput},
		DisplayRequest{Text: ed.prompt, Tag: TagOutput},
	)
}

// backspace removes the last typed character, or beeps when nothing typed
// is left on the current screen line. Program output ending a line leaves
// the earlier input out of reach, as it no longer sits next to the cursor.
func (ed *Editor) backspace() {
	if !ed.erase() && ed.alert != nil {
		ed.alert()
	}
}

// erase pops the last character if its glyph can still be erased
func (ed *Editor) erase() bool {
	ed.lineMutex.Lock()
	defer ed.lineMutex.Unlock()

	if len(ed.line) == 0 {
		return false
	}

	// Measure before popping: the erase must cover exactly this glyph
	last := string(ed.line[len(ed.line)-1])
	width := ed.measure(last)
	if !ed.output.EnqueueErase(DisplayRequest{Text: last, Tag: TagErase, Width: width}) {
		return false
	}

	ed.line = ed.line[:len(ed.line)-1]
	if ed.debug {
		ed.logger.Printf("The previous character was %q", last)
	}
	ed.scanner.DequeueLast()
	return true
}
