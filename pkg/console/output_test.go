package console

import (
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputQueue_FIFO(t *testing.T) {
	q := NewOutputQueue()
	q.Enqueue(DisplayRequest{Text: "a"}, DisplayRequest{Text: "b"})
	q.Enqueue(DisplayRequest{Text: "c", Tag: TagInput})
	assert.Equal(t, 3, q.Len())

	var got []string
	n := q.Drain(func(req DisplayRequest) { got = append(got, req.Text) })

	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Drain(func(DisplayRequest) { t.Fatal("queue should be empty") }))
}

// Requests enqueued while draining are processed in the same drain.
func TestOutputQueue_DrainSeesLateRequests(t *testing.T) {
	q := NewOutputQueue()
	q.Enqueue(DisplayRequest{Text: "first"})

	var got []string
	q.Drain(func(req DisplayRequest) {
		got = append(got, req.Text)
		if req.Text == "first" {
			q.Enqueue(DisplayRequest{Text: "second"})
		}
	})
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestOutputQueue_BatchesStayContiguous(t *testing.T) {
	q := NewOutputQueue()
	const n = 200

	var wg sync.WaitGroup
	for _, name := range []string{"x", "y"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for i := 0; i < n; i++ {
				q.Enqueue(DisplayRequest{Text: name + "1"}, DisplayRequest{Text: name + "2"})
			}
		}(name)
	}
	wg.Wait()

	var got []string
	q.Drain(func(req DisplayRequest) { got = append(got, req.Text) })
	require.Len(t, got, 4*n)
	for i := 0; i < len(got); i += 2 {
		assert.Equal(t, got[i][:1], got[i+1][:1], "batch split at %d", i)
		assert.Equal(t, "1", got[i][1:])
		assert.Equal(t, "2", got[i+1][1:])
	}
}

func TestOutputQueue_EraseNeedsInputOnLine(t *testing.T) {
	q := NewOutputQueue()
	erase := DisplayRequest{Text: "a", Width: 8}

	assert.False(t, q.EnqueueErase(erase), "nothing typed yet")

	q.Enqueue(DisplayRequest{Text: "a", Tag: TagInput}, DisplayRequest{Text: "b", Tag: TagInput})
	assert.Equal(t, 2, q.Erasable())
	assert.True(t, q.EnqueueErase(erase))
	assert.Equal(t, 1, q.Erasable())

	// Output without a line break keeps the input reachable
	q.Enqueue(DisplayRequest{Text: "out"})
	assert.Equal(t, 1, q.Erasable())

	q.Enqueue(DisplayRequest{Text: "out\n"}, DisplayRequest{Text: "> "})
	assert.Equal(t, 0, q.Erasable())
	assert.False(t, q.EnqueueErase(erase))

	var tags []ColorTag
	q.Drain(func(req DisplayRequest) { tags = append(tags, req.Tag) })
	assert.Equal(t, []ColorTag{TagInput, TagInput, TagErase, TagOutput, TagOutput, TagOutput}, tags)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"87,88,87", color.RGBA{87, 88, 87, 255}, false},
		{" 1, 2 ,3 ,4", color.RGBA{1, 2, 3, 4}, false},
		{"0,0,0,0", color.RGBA{}, false},
		{"256,0,0", color.RGBA{}, true},
		{"-1,0,0", color.RGBA{}, true},
		{"1,2", color.RGBA{}, true},
		{"a,b,c", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseColor(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseColor(%q)", tt.in)
		assert.Equal(t, tt.want, got)
		roundTrip, err := ParseColor(FormatColor(got))
		require.NoError(t, err)
		assert.Equal(t, got, roundTrip)
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Margin = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.FontSize = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Height = -5
	assert.Error(t, cfg.Validate())
}
