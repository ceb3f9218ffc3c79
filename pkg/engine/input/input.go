package input

import (
	"bufio"
	"errors"
	"io"
	"time"
)

// ErrInterrupt is returned by Decoder.Next when the user presses Ctrl+C.
var ErrInterrupt = errors.New("interrupted")

// Decoder turns the byte stream of a terminal in raw mode into key events.
type Decoder struct {
	reader *bufio.Reader

	// Set after '\r' so the '\n' of a CRLF pair is one Enter
	afterCR bool
}

// NewDecoder wraps r, typically os.Stdin after the terminal was made raw
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{reader: bufio.NewReader(r)}
}

// tryReadEscape reads the rest of an escape sequence after ESC and returns
// the raw name of the key, or "escape" for a lone ESC.
func (d *Decoder) tryReadEscape() string {
	if d.reader.Buffered() == 0 {
		return "escape"
	}

	b2, err := d.reader.ReadByte()
	if err != nil {
		return "escape"
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "escape"
	}

	b3, err := d.reader.ReadByte()
	if err != nil {
		return "escape"
	}

	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}

	// Swallow parameters of longer sequences (e.g. ESC [ 3 ~)
	for b3 >= '0' && b3 <= '9' || b3 == ';' {
		if b3, err = d.reader.ReadByte(); err != nil {
			break
		}
	}
	return "escape"
}

// Next blocks until the next key press is available.
func (d *Decoder) Next() (KeyEvent, error) {
	r, _, err := d.reader.ReadRune()
	if err != nil {
		return KeyEvent{}, err
	}
	if r == '\n' && d.afterCR {
		d.afterCR = false
		if r, _, err = d.reader.ReadRune(); err != nil {
			return KeyEvent{}, err
		}
	}
	d.afterCR = r == '\r'

	raw := RawInput{Device: DeviceTerminal, Timestamp: time.Now()}

	switch r {
	case 3: // Ctrl+C
		return KeyEvent{}, ErrInterrupt
	case '\r', '\n':
		raw.Name = "enter"
	case 127, 8:
		raw.Name = "backspace"
	case '\t':
		raw.Name = "tab"
	case 0x1b:
		raw.Name = d.tryReadEscape()
	default:
		raw.Char = r
	}

	return MapToKeyEvent(raw), nil
}

// ReadKeys decodes key events from r and sends them on out until r fails or
// Ctrl+C is pressed. The terminating error is returned; io.EOF is reported
// as nil.
func ReadKeys(r io.Reader, out chan<- KeyEvent) error {
	d := NewDecoder(r)
	for {
		ev, err := d.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		out <- ev
	}
}
