package ebiten

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/zyedidia/generic/mapset"

	"sketchconsole/pkg/engine/input"
)

// namedKeys maps the non-printing keys the console cares about to the names
// understood by input.MapToKeyEvent.
var namedKeys = map[ebiten.Key]string{
	ebiten.KeyEnter:        "enter",
	ebiten.KeyNumpadEnter:  "kp_enter",
	ebiten.KeyBackspace:    "backspace",
	ebiten.KeyDelete:       "delete",
	ebiten.KeyArrowUp:      "arrow_up",
	ebiten.KeyArrowDown:    "arrow_down",
	ebiten.KeyArrowLeft:    "arrow_left",
	ebiten.KeyArrowRight:   "arrow_right",
	ebiten.KeyEscape:       "escape",
	ebiten.KeyTab:          "tab",
	ebiten.KeyShiftLeft:    "shift",
	ebiten.KeyShiftRight:   "shift",
	ebiten.KeyControlLeft:  "control",
	ebiten.KeyControlRight: "control",
	ebiten.KeyAltLeft:      "alt",
	ebiten.KeyAltRight:     "alt",
	ebiten.KeyMetaLeft:     "meta",
	ebiten.KeyMetaRight:    "meta",
}

// editingKeys fire again while held, in this order within a tick.
// Printable characters repeat through the platform's own text input.
var editingKeys = []ebiten.Key{
	ebiten.KeyBackspace,
	ebiten.KeyDelete,
	ebiten.KeyEnter,
	ebiten.KeyNumpadEnter,
}

// repeatingKeys returns editingKeys as a set
func repeatingKeys() mapset.Set[ebiten.Key] {
	keys := mapset.New[ebiten.Key]()
	for _, key := range editingKeys {
		keys.Put(key)
	}
	return keys
}

// keyRepeatInfo tracks the repeat state for a key
type keyRepeatInfo struct {
	firstPressed int64 // Timestamp when first pressed (milliseconds)
	lastRepeat   int64 // Timestamp when last repeat event was sent (milliseconds)
}

// keyRepeater turns a held key into a press followed by repeats
type keyRepeater struct {
	state map[ebiten.Key]keyRepeatInfo
	mutex sync.Mutex
}

func newKeyRepeater() *keyRepeater {
	return &keyRepeater{state: make(map[ebiten.Key]keyRepeatInfo)}
}

// trigger reports whether key should fire at time now (milliseconds)
func (r *keyRepeater) trigger(key ebiten.Key, pressed bool, now int64) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	state, exists := r.state[key]
	if !pressed {
		// Key released - clean up state
		delete(r.state, key)
		return false
	}

	if !exists {
		// First press - record it and trigger immediately
		r.state[key] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}

	// Key is held - check if we should repeat
	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		r.state[key] = state
		return true
	}
	return false
}

// fire returns the keys that trigger at now, in the order given
func (r *keyRepeater) fire(keys []ebiten.Key, pressed func(ebiten.Key) bool, now int64) []ebiten.Key {
	var fired []ebiten.Key
	for _, key := range keys {
		if r.trigger(key, pressed(key), now) {
			fired = append(fired, key)
		}
	}
	return fired
}

// pollKeys collects this tick's key events: typed characters first, then
// the repeating editing keys, then presses and releases of other named keys.
func (w *Window) pollKeys() []input.KeyEvent {
	now := time.Now()
	var events []input.KeyEvent

	w.chars = ebiten.AppendInputChars(w.chars[:0])
	for _, r := range w.chars {
		events = append(events, input.MapToKeyEvent(input.RawInput{
			Device:    input.DeviceKeyboard,
			Char:      r,
			Timestamp: now,
		}))
	}

	// Ebiten reports no order between characters and keys of one tick:
	// a character typed after Enter in the same tick lands before it.
	for _, key := range w.repeater.fire(editingKeys, ebiten.IsKeyPressed, now.UnixMilli()) {
		events = append(events, namedEvent(key, input.ActionPress, now))
	}

	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, key := range w.keys {
		if _, ok := namedKeys[key]; ok && !w.repeating.Has(key) {
			events = append(events, namedEvent(key, input.ActionPress, now))
		}
	}

	w.keys = inpututil.AppendJustReleasedKeys(w.keys[:0])
	for _, key := range w.keys {
		if _, ok := namedKeys[key]; ok {
			events = append(events, namedEvent(key, input.ActionRelease, now))
		}
	}

	return events
}

// namedEvent builds the event for a key in namedKeys
func namedEvent(key ebiten.Key, action input.Action, now time.Time) input.KeyEvent {
	ev := input.MapToKeyEvent(input.RawInput{
		Device:    input.DeviceKeyboard,
		Name:      namedKeys[key],
		Timestamp: now,
	})
	ev.Action = action
	return ev
}
