package input

import (
	"time"
	"unicode"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action distinguishes key presses from releases.
type Action int

const (
	ActionPress Action = iota
	ActionRelease
)

// Code is the device‑neutral identity of a key.
type Code int

const (
	CodeNone      Code = iota
	CodeCharacter      // Printable character, see KeyEvent.Char
	CodeEnter          // Enter, Return or keypad Enter
	CodeBackspace
	CodeOther // Modifiers, arrows, function keys
)

// KeyEvent is a single key press or release delivered to the console.
type KeyEvent struct {
	Device    Device
	Action    Action
	Code      Code
	Char      rune
	Coded     bool // Modifier or navigation key rather than a character
	Timestamp time.Time
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Name is a device‑specific identifier (e.g. "enter", "backspace", "arrow_up").
type RawInput struct {
	Device    Device
	Name      string
	Char      rune
	Timestamp time.Time
}

// bindings maps raw names to key codes.
// Multiple names may point to the same Code.
var bindings = map[string]Code{
	"enter":     CodeEnter,
	"return":    CodeEnter,
	"kp_enter":  CodeEnter,
	"backspace": CodeBackspace,
	"delete":    CodeBackspace, // DEL (0x7f) from most terminals

	"arrow_up":    CodeOther,
	"arrow_down":  CodeOther,
	"arrow_left":  CodeOther,
	"arrow_right": CodeOther,
	"escape":      CodeOther,
	"shift":       CodeOther,
	"control":     CodeOther,
	"alt":         CodeOther,
	"meta":        CodeOther,
	"tab":         CodeOther,
}

// MapToKeyEvent applies the bindings to a raw input. Inputs with no binding
// but a printable character become character presses; anything else is a
// coded key.
func MapToKeyEvent(raw RawInput) KeyEvent {
	ev := KeyEvent{
		Device:    raw.Device,
		Action:    ActionPress,
		Char:      raw.Char,
		Timestamp: raw.Timestamp,
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	if code, ok := bindings[raw.Name]; ok {
		ev.Code = code
		ev.Coded = code == CodeOther
		return ev
	}

	if raw.Char != 0 && IsPrintable(raw.Char) {
		ev.Code = CodeCharacter
		return ev
	}

	ev.Code = CodeOther
	ev.Coded = true
	return ev
}

// IsPrintable reports whether r can be echoed and buffered as typed text.
func IsPrintable(r rune) bool {
	return unicode.IsPrint(r) && !unicode.Is(unicode.Mn, r)
}

// Char builds a character press event
func Char(device Device, r rune) KeyEvent {
	return MapToKeyEvent(RawInput{Device: device, Char: r})
}

// Named builds a press event for a bound key name such as "enter"
func Named(device Device, name string) KeyEvent {
	return MapToKeyEvent(RawInput{Device: device, Name: name})
}

// CodeName returns a human-friendly name for a code.
func CodeName(c Code) string {
	switch c {
	case CodeCharacter:
		return "Character"
	case CodeEnter:
		return "Enter"
	case CodeBackspace:
		return "Backspace"
	case CodeOther:
		return "Other"
	default:
		return "None"
	}
}
