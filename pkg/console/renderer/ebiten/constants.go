// Package ebiten hosts the console in an Ebiten window.
package ebiten

const windowTitle = "Console"

const (
	keyRepeatInitialDelay = 500 // Initial delay before first repeat (milliseconds)
	keyRepeatInterval     = 50  // Interval between repeat events (milliseconds)
)

// Audible alert
const (
	beepSampleRate = 44100
	beepFrequency  = 880.0 // Hz
	beepDuration   = 120   // milliseconds
	beepVolume     = 0.3
)
