package tui

import "time"

// statsTickMsg drives the once-a-second stats refresh.
type statsTickMsg time.Time

// gateExpireMsg is the gate's single-shot wake-up: the press was held past
// the threshold. Carries the arm sequence so superseded wake-ups are
// discarded.
type gateExpireMsg struct {
	seq int
}

// flushMsg is the keyboard debouncer's wake-up: no auto-repeat arrived
// within the window, so the key was released.
type flushMsg struct {
	seq int
}
