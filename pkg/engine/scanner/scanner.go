// Package scanner provides a line-buffered token reader fed one rune at a time
// by a keyboard handler and read by a separately running program.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/zyedidia/generic/list"
)

// Sentinel errors for comparison with errors.Is
var (
	ErrNoElementAvailable = errors.New("no element available")
	ErrNotANumber         = errors.New("not a number")
)

// Scanner splits committed input lines into whitespace-delimited tokens.
//
// Keystrokes are held in a pending buffer until a line terminator arrives, at
// which point the whole line is moved into the committed stream in one step.
// Readers only ever look at the committed stream, so they never observe half
// of a line the user is still editing.
type Scanner struct {
	// Keystrokes since the last terminator
	pending      *list.List[rune]
	pendingLen   int
	pendingMutex sync.Mutex

	// Committed, newline-terminated input
	stream      *list.List[rune]
	streamLen   int
	streamMutex sync.Mutex

	// Closed and replaced on every commit to wake Wait callers.
	// Guarded by streamMutex.
	ready chan struct{}
}

// New creates an empty scanner
func New() *Scanner {
	return &Scanner{
		pending: list.New[rune](),
		stream:  list.New[rune](),
		ready:   make(chan struct{}),
	}
}

// isTerminator reports whether r ends a line
func isTerminator(r rune) bool {
	return r == '\n' || r == '\r'
}

// Enqueue adds a keystroke. A line terminator commits everything typed since
// the previous terminator, followed by a single '\n'.
func (s *Scanner) Enqueue(r rune) {
	s.pendingMutex.Lock()
	defer s.pendingMutex.Unlock()

	if !isTerminator(r) {
		s.pending.PushBack(r)
		s.pendingLen++
		return
	}

	// Lock order is always pending then stream
	s.streamMutex.Lock()
	s.pending.Front.Each(func(c rune) {
		s.stream.PushBack(c)
	})
	s.stream.PushBack('\n')
	s.streamLen += s.pendingLen + 1
	close(s.ready)
	s.ready = make(chan struct{})
	s.streamMutex.Unlock()

	s.pending = list.New[rune]()
	s.pendingLen = 0
}

// DequeueLast removes the most recent uncommitted keystroke, if there is one.
func (s *Scanner) DequeueLast() {
	s.pendingMutex.Lock()
	defer s.pendingMutex.Unlock()

	if s.pending.Back == nil {
		return
	}
	s.pending.Remove(s.pending.Back)
	s.pendingLen--
}

// Buffered returns the number of uncommitted keystrokes
func (s *Scanner) Buffered() int {
	s.pendingMutex.Lock()
	defer s.pendingMutex.Unlock()
	return s.pendingLen
}

// Len returns the number of committed runes not yet consumed
func (s *Scanner) Len() int {
	s.streamMutex.Lock()
	defer s.streamMutex.Unlock()
	return s.streamLen
}

// HasNext reports whether committed input is available
func (s *Scanner) HasNext() bool {
	s.streamMutex.Lock()
	defer s.streamMutex.Unlock()
	return s.streamLen > 0
}

// Wait blocks until committed input is available or ctx is done.
func (s *Scanner) Wait(ctx context.Context) error {
	for {
		s.streamMutex.Lock()
		if s.streamLen > 0 {
			s.streamMutex.Unlock()
			return nil
		}
		ready := s.ready
		s.streamMutex.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Next removes and returns the token at the head of the stream. The single
// whitespace rune ending the token and any whitespace run after it are
// consumed as well. An empty stream yields "".
func (s *Scanner) Next() string {
	s.streamMutex.Lock()
	defer s.streamMutex.Unlock()
	return s.takeTokenLocked()
}

// NextLine removes and returns the rest of the current line, without its
// terminator.
func (s *Scanner) NextLine() (string, error) {
	s.streamMutex.Lock()
	defer s.streamMutex.Unlock()

	if s.streamLen == 0 {
		return "", ErrNoElementAvailable
	}

	var line strings.Builder
	for s.stream.Front != nil {
		c := s.popFrontLocked()
		if c == '\n' {
			break
		}
		line.WriteRune(c)
	}
	return line.String(), nil
}

// HasNextInt reports whether the head token parses as an integer.
// Nothing is consumed.
func (s *Scanner) HasNextInt() bool {
	word, ok := s.peekToken()
	if !ok {
		return false
	}
	_, err := parseInt(word)
	return err == nil
}

// NextInt consumes the head token and parses it as an integer. A token that
// does not parse is still consumed.
func (s *Scanner) NextInt() (int, error) {
	word, err := s.takeToken()
	if err != nil {
		return 0, err
	}
	n, err := parseInt(word)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, word)
	}
	return n, nil
}

// HasNextFloat reports whether the head token parses as a float.
// Nothing is consumed.
func (s *Scanner) HasNextFloat() bool {
	word, ok := s.peekToken()
	if !ok {
		return false
	}
	_, err := strconv.ParseFloat(word, 64)
	return err == nil
}

// NextFloat consumes the head token and parses it as a float. A token that
// does not parse is still consumed.
func (s *Scanner) NextFloat() (float64, error) {
	word, err := s.takeToken()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, word)
	}
	return f, nil
}

// takeToken is Next for the numeric readers: an empty stream is an error
func (s *Scanner) takeToken() (string, error) {
	s.streamMutex.Lock()
	defer s.streamMutex.Unlock()

	if s.streamLen == 0 {
		return "", ErrNoElementAvailable
	}
	return s.takeTokenLocked(), nil
}

// takeTokenLocked consumes one token and the whitespace that follows it.
// Caller must hold streamMutex.
func (s *Scanner) takeTokenLocked() string {
	var word strings.Builder
	for s.stream.Front != nil {
		c := s.popFrontLocked()
		if isSpace(c) {
			break
		}
		word.WriteRune(c)
	}

	// Skip the rest of the whitespace run
	for s.stream.Front != nil && isSpace(s.stream.Front.Value) {
		s.popFrontLocked()
	}

	return word.String()
}

// popFrontLocked removes the head rune. Caller must hold streamMutex and
// ensure the stream is not empty.
func (s *Scanner) popFrontLocked() rune {
	node := s.stream.Front
	s.stream.Remove(node)
	s.streamLen--
	return node.Value
}

// peekToken returns the head token without consuming it
func (s *Scanner) peekToken() (string, bool) {
	s.streamMutex.Lock()
	defer s.streamMutex.Unlock()

	if s.streamLen == 0 {
		return "", false
	}

	var word strings.Builder
	for node := s.stream.Front; node != nil; node = node.Next {
		if isSpace(node.Value) {
			break
		}
		word.WriteRune(node.Value)
	}
	return word.String(), true
}

// parseInt accepts decimal integers in the 32-bit range
func parseInt(word string) (int, error) {
	n, err := strconv.ParseInt(word, 10, 32)
	return int(n), err
}

// isSpace reports whether r separates tokens. No-break spaces join words,
// and NEL is not a separator.
func isSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f', '\u0085':
		return false
	case '\t', '\n', '\v', '\f', '\r', '\x1c', '\x1d', '\x1e', '\x1f':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}
