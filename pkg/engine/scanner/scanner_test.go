package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// typeLine feeds every rune of line to s, followed by a terminator
func typeLine(s *Scanner, line string) {
	for _, r := range line {
		s.Enqueue(r)
	}
	s.Enqueue('\n')
}

func TestEnqueue_NoTerminatorKeepsStreamEmpty(t *testing.T) {
	s := New()
	for i, r := range "hello world" {
		s.Enqueue(r)
		if s.HasNext() {
			t.Fatalf("HasNext() = true after %d runes, want false", i+1)
		}
		if got := s.Buffered(); got != i+1 {
			t.Errorf("Buffered() = %d, want %d", got, i+1)
		}
	}
}

func TestEnqueue_TerminatorCommitsLine(t *testing.T) {
	for _, term := range []rune{'\n', '\r'} {
		t.Run(string(term), func(t *testing.T) {
			s := New()
			for _, r := range "abc" {
				s.Enqueue(r)
			}
			s.Enqueue(term)

			if !s.HasNext() {
				t.Fatal("HasNext() = false after terminator, want true")
			}
			if got := s.Buffered(); got != 0 {
				t.Errorf("Buffered() = %d, want 0", got)
			}
			// "abc" plus one '\n'
			if got := s.Len(); got != 4 {
				t.Errorf("Len() = %d, want 4", got)
			}
			if got := s.Next(); got != "abc" {
				t.Errorf("Next() = %q, want %q", got, "abc")
			}
			if s.HasNext() {
				t.Error("HasNext() = true after consuming the line, want false")
			}
		})
	}
}

func TestDequeueLast(t *testing.T) {
	s := New()

	// No-op on empty buffer, repeatedly
	s.DequeueLast()
	s.DequeueLast()
	if got := s.Buffered(); got != 0 {
		t.Fatalf("Buffered() = %d, want 0", got)
	}

	for _, r := range "abx" {
		s.Enqueue(r)
	}
	s.DequeueLast()
	s.Enqueue('c')
	s.Enqueue('\n')

	if got := s.Next(); got != "abc" {
		t.Errorf("Next() = %q, want %q", got, "abc")
	}
}

func TestDequeueLast_DoesNotTouchCommittedStream(t *testing.T) {
	s := New()
	typeLine(s, "done")
	s.DequeueLast()
	s.DequeueLast()

	if got := s.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if got := s.Next(); got != "done" {
		t.Errorf("Next() = %q, want %q", got, "done")
	}
}

func TestNext_Tokens(t *testing.T) {
	s := New()
	typeLine(s, "ab cd")

	want := []string{"ab", "cd", ""}
	for i, w := range want {
		if got := s.Next(); got != w {
			t.Errorf("Next() #%d = %q, want %q", i+1, got, w)
		}
	}
	if s.HasNext() {
		t.Error("HasNext() = true after both tokens, want false")
	}
}

func TestNext_SkipsWhitespaceRun(t *testing.T) {
	s := New()
	typeLine(s, "one   \t two")
	typeLine(s, "three")

	for _, w := range []string{"one", "two", "three"} {
		if got := s.Next(); got != w {
			t.Errorf("Next() = %q, want %q", got, w)
		}
	}
}

func TestNext_LeadingWhitespaceYieldsEmptyToken(t *testing.T) {
	s := New()
	typeLine(s, " x")

	if got := s.Next(); got != "" {
		t.Errorf("Next() = %q, want empty token", got)
	}
	if got := s.Next(); got != "x" {
		t.Errorf("Next() = %q, want %q", got, "x")
	}
}

func TestNextInt(t *testing.T) {
	s := New()
	typeLine(s, "42 x")

	n, err := s.NextInt()
	if err != nil {
		t.Fatalf("NextInt() error = %v", err)
	}
	if n != 42 {
		t.Errorf("NextInt() = %d, want 42", n)
	}
	if got := s.Next(); got != "x" {
		t.Errorf("Next() = %q, want %q", got, "x")
	}
}

func TestNextInt_NotANumberConsumesToken(t *testing.T) {
	s := New()
	typeLine(s, "x 7")

	_, err := s.NextInt()
	if !errors.Is(err, ErrNotANumber) {
		t.Fatalf("NextInt() error = %v, want ErrNotANumber", err)
	}
	n, err := s.NextInt()
	if err != nil || n != 7 {
		t.Errorf("NextInt() = %d, %v, want 7, nil", n, err)
	}
}

func TestNextInt_OutOfRange(t *testing.T) {
	s := New()
	typeLine(s, "3000000000 5")

	if _, err := s.NextInt(); !errors.Is(err, ErrNotANumber) {
		t.Fatalf("NextInt() error = %v, want ErrNotANumber", err)
	}
	if got, err := s.NextInt(); err != nil || got != 5 {
		t.Errorf("NextInt() = (%d, %v), want (5, nil)", got, err)
	}
}

func TestNext_Separators(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"no-break space joins", "a\u00a0b c", []string{"a\u00a0b", "c"}},
		{"figure space joins", "1\u20072", []string{"1\u20072"}},
		{"narrow no-break space joins", "x\u202fy", []string{"x\u202fy"}},
		{"next line joins", "p\u0085q", []string{"p\u0085q"}},
		{"ideographic space splits", "a\u3000b", []string{"a", "b"}},
		{"line separator splits", "a\u2028b", []string{"a", "b"}},
		{"unit separator splits", "a\x1fb", []string{"a", "b"}},
		{"vertical tab splits", "a\vb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			typeLine(s, tt.line)
			for i, want := range tt.want {
				if got := s.Next(); got != want {
					t.Errorf("Next() #%d = %q, want %q", i, got, want)
				}
			}
			if s.HasNext() {
				t.Errorf("HasNext() = true after %d tokens, want false", len(tt.want))
			}
		})
	}
}

func TestNextInt_Empty(t *testing.T) {
	s := New()
	if _, err := s.NextInt(); !errors.Is(err, ErrNoElementAvailable) {
		t.Errorf("NextInt() error = %v, want ErrNoElementAvailable", err)
	}
	if _, err := s.NextFloat(); !errors.Is(err, ErrNoElementAvailable) {
		t.Errorf("NextFloat() error = %v, want ErrNoElementAvailable", err)
	}
}

func TestNextInt_UncommittedInputIsNotAvailable(t *testing.T) {
	s := New()
	s.Enqueue('5')
	if _, err := s.NextInt(); !errors.Is(err, ErrNoElementAvailable) {
		t.Errorf("NextInt() error = %v, want ErrNoElementAvailable", err)
	}
}

func TestNextFloat(t *testing.T) {
	tests := []struct {
		line    string
		want    float64
		wantErr error
	}{
		{"3.5", 3.5, nil},
		{"-2", -2, nil},
		{"1e3", 1000, nil},
		{"pi", 0, ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := New()
			typeLine(s, tt.line)
			got, err := s.NextFloat()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NextFloat() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NextFloat() = %v, want %v", got, tt.want)
			}
			if s.HasNext() {
				t.Error("HasNext() = true, want false (token and newline consumed)")
			}
		})
	}
}

func TestHasNextNumber_DoesNotConsume(t *testing.T) {
	tests := []struct {
		line      string
		wantInt   bool
		wantFloat bool
	}{
		{"12 rest", true, true},
		{"1.25", false, true},
		{"abc", false, false},
		{"+7", true, true},
		{"2147483647", true, true},
		{"-2147483648", true, true},
		{"2147483648", false, true},
		{"3000000000", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := New()
			typeLine(s, tt.line)
			before := s.Len()

			if got := s.HasNextInt(); got != tt.wantInt {
				t.Errorf("HasNextInt() = %v, want %v", got, tt.wantInt)
			}
			if got := s.HasNextFloat(); got != tt.wantFloat {
				t.Errorf("HasNextFloat() = %v, want %v", got, tt.wantFloat)
			}
			if got := s.Len(); got != before {
				t.Errorf("Len() = %d after peek, want %d", got, before)
			}
		})
	}
}

func TestHasNextNumber_Empty(t *testing.T) {
	s := New()
	if s.HasNextInt() {
		t.Error("HasNextInt() = true on empty stream")
	}
	if s.HasNextFloat() {
		t.Error("HasNextFloat() = true on empty stream")
	}
}

func TestWait_ReturnsOnCommit(t *testing.T) {
	s := New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Wait(ctx)
	}()

	s.Enqueue('h')
	s.Enqueue('i')
	s.Enqueue('\n')

	if err := <-done; err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if got := s.Next(); got != "hi" {
		t.Errorf("Next() = %q, want %q", got, "hi")
	}
}

func TestWait_AlreadyAvailable(t *testing.T) {
	s := New()
	typeLine(s, "x")
	if err := s.Wait(context.Background()); err != nil {
		t.Errorf("Wait() error = %v, want nil", err)
	}
}

func TestWait_Cancelled(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

// A reader racing the writer must see whole lines only: every token read is
// one of the words written.
func TestConcurrentReadersSeeWholeTokens(t *testing.T) {
	s := New()
	const lines = 200

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < lines; i++ {
			typeLine(s, "alpha beta")
		}
	}()

	counts := map[string]int{}
	var mu sync.Mutex
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var readers sync.WaitGroup
	for r := 0; r < 2; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				mu.Lock()
				total := counts["alpha"] + counts["beta"]
				mu.Unlock()
				if total >= 2*lines {
					return
				}
				if s.Wait(ctx) != nil {
					return
				}
				tok := s.Next()
				if tok == "" {
					continue
				}
				mu.Lock()
				counts[tok]++
				if counts["alpha"]+counts["beta"] >= 2*lines {
					cancel()
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	readers.Wait()

	if counts["alpha"] != lines || counts["beta"] != lines {
		t.Errorf("counts = %v, want %d of each", counts, lines)
	}
	if len(counts) != 2 {
		t.Errorf("unexpected tokens: %v", counts)
	}
}

func TestNextLine(t *testing.T) {
	s := New()
	typeLine(s, "  two  words ")
	typeLine(s, "")
	typeLine(s, "last")

	want := []string{"  two  words ", "", "last"}
	for _, w := range want {
		got, err := s.NextLine()
		if err != nil {
			t.Fatalf("NextLine() error = %v", err)
		}
		if got != w {
			t.Errorf("NextLine() = %q, want %q", got, w)
		}
	}

	if _, err := s.NextLine(); !errors.Is(err, ErrNoElementAvailable) {
		t.Errorf("NextLine() on empty stream error = %v, want %v", err, ErrNoElementAvailable)
	}
}

func TestNextLine_AfterToken(t *testing.T) {
	s := New()
	typeLine(s, "cmd rest of line")

	if got := s.Next(); got != "cmd" {
		t.Errorf("Next() = %q, want %q", got, "cmd")
	}
	got, err := s.NextLine()
	if err != nil {
		t.Fatalf("NextLine() error = %v", err)
	}
	if got != "rest of line" {
		t.Errorf("NextLine() = %q, want %q", got, "rest of line")
	}
	if s.HasNext() {
		t.Errorf("HasNext() = true, want false")
	}
}
