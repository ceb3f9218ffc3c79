package console

import (
	"strings"
	"sync"

	"github.com/zyedidia/generic/queue"
)

// ColorTag selects how a DisplayRequest is drawn
type ColorTag int

const (
	TagOutput ColorTag = iota // Program output
	TagInput                  // Echo of typed characters
	TagErase                  // Backspace: cover the previous glyph
)

// DisplayRequest is a unit of work for the render loop
type DisplayRequest struct {
	Text  string
	Tag   ColorTag
	Width float64 // Only for TagErase: width of the glyph being erased
}

// OutputQueue is a FIFO of display requests shared by any number of
// producers and drained by the render loop.
type OutputQueue struct {
	pending *queue.Queue[DisplayRequest]
	size    int

	// Input echoes queued since the last line break, less queued erases.
	// Only these glyphs share a screen line with the next erase.
	erasable int

	mutex sync.Mutex
}

// NewOutputQueue creates an empty queue
func NewOutputQueue() *OutputQueue {
	return &OutputQueue{pending: queue.New[DisplayRequest]()}
}

// Enqueue appends reqs in order. They are contiguous in the queue even when
// other producers enqueue at the same time.
func (q *OutputQueue) Enqueue(reqs ...DisplayRequest) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	for _, req := range reqs {
		q.pushLocked(req)
	}
}

// EnqueueErase appends an erase request if an echoed input glyph is still
// on the current line, and reports whether it did.
func (q *OutputQueue) EnqueueErase(req DisplayRequest) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.erasable == 0 {
		return false
	}
	req.Tag = TagErase
	q.pushLocked(req)
	return true
}

// Erasable returns the number of input glyphs a backspace may still erase
func (q *OutputQueue) Erasable() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.erasable
}

// pushLocked appends one request and tracks erasable input.
// Caller must hold mutex.
func (q *OutputQueue) pushLocked(req DisplayRequest) {
	q.pending.Enqueue(req)
	q.size++

	switch {
	case strings.HasSuffix(req.Text, "\n") && req.Tag != TagErase:
		q.erasable = 0
	case req.Tag == TagInput:
		q.erasable++
	case req.Tag == TagErase && q.erasable > 0:
		q.erasable--
	}
}

// Len returns the number of queued requests
func (q *OutputQueue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.size
}

// pop removes the head request, if any
func (q *OutputQueue) pop() (DisplayRequest, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.pending.Empty() {
		return DisplayRequest{}, false
	}
	q.size--
	return q.pending.Dequeue(), true
}

// Drain calls fn for every queued request, head first, until the queue is
// empty. fn runs without the queue lock held so producers are never blocked
// by drawing. Returns the number of requests processed.
func (q *OutputQueue) Drain(fn func(DisplayRequest)) int {
	n := 0
	for {
		req, ok := q.pop()
		if !ok {
			return n
		}
		fn(req)
		n++
	}
}
