// Package input normalizes raw device events into the four logical intents
// the session engine understands. Adapters own device discovery and
// raw-to-logical mapping; the engine never sees device protocol details.
package input

import (
	"fmt"
	"time"

	"imgsieve/internal/model"
)

// Intent is a normalized logical input.
type Intent int

const (
	// IntentA selects the first labeled category.
	IntentA Intent = iota
	// IntentUnknown selects the skip/unsure bucket.
	IntentUnknown
	// IntentB selects the second labeled category.
	IntentB
	// IntentUndo reverts the last classification.
	IntentUndo
)

// Label maps a classification intent to its label. ok is false for
// IntentUndo, which carries no label.
func (i Intent) Label() (label model.Label, ok bool) {
	switch i {
	case IntentA:
		return model.LabelA, true
	case IntentUnknown:
		return model.LabelUnknown, true
	case IntentB:
		return model.LabelB, true
	default:
		return 0, false
	}
}

// EventKind distinguishes the two halves of a button actuation.
type EventKind int

const (
	// Press is the button going down.
	Press EventKind = iota
	// Release is the button coming back up.
	Release
)

// Event is one normalized input event fed to the hold-confirm gate.
type Event struct {
	Kind   EventKind
	Intent Intent
}

// Keymap maps bubbletea key names to intents.
type Keymap map[string]Intent

// DefaultKeymap mirrors the arrow-key layout: left/right pick the two
// categories, up skips to the unknown bucket, down undoes.
func DefaultKeymap() Keymap {
	return Keymap{
		"left":  IntentA,
		"up":    IntentUnknown,
		"right": IntentB,
		"down":  IntentUndo,
	}
}

// ParseIntent resolves a config-file intent name.
func ParseIntent(name string) (Intent, error) {
	switch name {
	case "a":
		return IntentA, nil
	case "unknown", "skip":
		return IntentUnknown, nil
	case "b":
		return IntentB, nil
	case "undo":
		return IntentUndo, nil
	default:
		return 0, fmt.Errorf("unknown intent %q (want a, unknown, b, or undo)", name)
	}
}

// FromConfig builds a keymap from config key→intent-name bindings, merged
// over the defaults so partial configs stay usable.
func FromConfig(bindings map[string]string) (Keymap, error) {
	km := DefaultKeymap()
	for key, name := range bindings {
		intent, err := ParseIntent(name)
		if err != nil {
			return nil, fmt.Errorf("binding for key %q: %w", key, err)
		}
		km[key] = intent
	}
	return km, nil
}

// Lookup resolves a key name. ok is false for unbound keys.
func (k Keymap) Lookup(key string) (Intent, bool) {
	intent, ok := k[key]
	return intent, ok
}

// DebounceWindow is how long the debouncer waits for another auto-repeat
// before concluding the key was released. It must exceed the terminal's
// initial key-repeat delay (typically ~500 ms) or a held key would read as
// a tap.
const DebounceWindow = 600 * time.Millisecond

// Debouncer synthesizes Release events for terminals, which report key
// presses (and auto-repeats) but no key-up. The first press of a key emits
// Press; each auto-repeat reschedules a flush; a flush that is not
// superseded emits Release. Sequence numbers invalidate superseded flushes
// the same way the gate invalidates superseded timers.
//
// Driven from a single event loop; not safe for concurrent use.
type Debouncer struct {
	intent Intent
	held   bool
	seq    int
}

// Observe processes one raw key event. It returns the events to deliver
// immediately (a Press for a fresh key, plus a Release for a previously
// held different key) and the sequence to schedule Flush with after
// DebounceWindow.
func (d *Debouncer) Observe(in Intent) (events []Event, seq int) {
	d.seq++

	switch {
	case d.held && d.intent == in:
		// Auto-repeat: just push the flush out.
	case d.held:
		// A different key while one is held: close out the old one first.
		events = append(events,
			Event{Kind: Release, Intent: d.intent},
			Event{Kind: Press, Intent: in},
		)
		d.intent = in
	default:
		events = append(events, Event{Kind: Press, Intent: in})
		d.intent = in
		d.held = true
	}
	return events, d.seq
}

// Flush fires when the debounce window elapses with no further repeats,
// meaning the key was physically released. Superseded flushes return ok
// false and must be discarded.
func (d *Debouncer) Flush(seq int) (ev Event, ok bool) {
	if !d.held || seq != d.seq {
		return Event{}, false
	}
	d.held = false
	return Event{Kind: Release, Intent: d.intent}, true
}
