package ebiten

import (
	"encoding/binary"
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// beeper plays a short tone. The audio context is created on first use.
type beeper struct {
	pcm    []byte
	logger *log.Logger

	player *audio.Player
	mutex  sync.Mutex
}

func newBeeper(logger *log.Logger) *beeper {
	return &beeper{
		pcm:    sineWave(beepSampleRate, beepFrequency, beepDuration, beepVolume),
		logger: logger,
	}
}

// play restarts the tone unless it is still sounding
func (b *beeper) play() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		ctx := audio.CurrentContext()
		if ctx == nil {
			ctx = audio.NewContext(beepSampleRate)
		}
		b.player = ctx.NewPlayerFromBytes(b.pcm)
	}
	if b.player.IsPlaying() {
		return
	}
	if err := b.player.SetPosition(0); err != nil {
		b.logger.Printf("beep: %v", err)
		return
	}
	b.player.Play()
}

// sineWave renders a tone as 16-bit little-endian stereo PCM with a linear
// fade-out over the last quarter.
func sineWave(sampleRate int, freq float64, durationMs int, volume float64) []byte {
	n := sampleRate * durationMs / 1000
	fade := n / 4
	buf := make([]byte, n*4)

	for i := 0; i < n; i++ {
		amp := volume
		if remaining := n - i; remaining < fade {
			amp *= float64(remaining) / float64(fade)
		}
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * amp * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[4*i:], uint16(v))
		binary.LittleEndian.PutUint16(buf[4*i+2:], uint16(v))
	}
	return buf
}
