package session

import (
	"time"

	"imgsieve/internal/model"
)

// HoldThreshold is how long a press may be held before it is treated as
// accidental and cancelled. Releasing before the threshold commits; holding
// past it cancels. Quick tap = commit, long hold = guard against stray
// presses that times out and clears.
const HoldThreshold = 1000 * time.Millisecond

// Committer is the slice of the queue the gate drives.
type Committer interface {
	Classify(label model.Label) error
	Undo() error
}

// GateState is the gate's current phase.
type GateState int

const (
	// GateIdle means no press is pending.
	GateIdle GateState = iota
	// GateArmed means a press is awaiting its commit-or-cancel decision.
	GateArmed
)

// Gate converts raw press/release events into confirmed-or-cancelled
// classification intents. It owns no timer itself: Press returns an arm
// sequence number, the caller schedules a single-shot wake-up after
// HoldThreshold and calls Expire with that sequence. A new press supersedes
// any outstanding wake-up because its sequence no longer matches, so only
// one logical timer is ever live.
//
// The gate is driven from a single event loop and is not safe for
// concurrent use.
type Gate struct {
	committer     Committer
	state         GateState
	pending       model.Label
	commitAllowed bool
	armSeq        int
}

// NewGate creates a gate driving the given committer. One gate per session.
func NewGate(c Committer) *Gate {
	return &Gate{committer: c}
}

// Press arms the gate for a label. Auto-repeated presses while armed are
// ignored and do not re-arm: armed is false and the previous schedule
// stands. When armed is true the caller must schedule Expire(seq) after
// HoldThreshold.
func (g *Gate) Press(label model.Label) (seq int, armed bool) {
	if g.state == GateArmed {
		return g.armSeq, false
	}
	g.state = GateArmed
	g.pending = label
	g.commitAllowed = true
	g.armSeq++
	return g.armSeq, true
}

// Release resolves an armed press. Released before the threshold (the
// wake-up has not fired), it commits by invoking Classify; the gate returns
// to idle regardless of the commit's outcome and any commit error is
// surfaced to the caller. A release that does not match the armed label is
// a stray and is ignored.
func (g *Gate) Release(label model.Label) error {
	if g.state != GateArmed || g.pending != label {
		return nil
	}

	var err error
	if g.commitAllowed {
		err = g.committer.Classify(label)
	}
	g.disarm()
	return err
}

// Expire handles the single-shot wake-up firing: the press was held past
// the threshold, so the pending classification is cancelled. Wake-ups from
// a superseded arm (stale seq) are ignored.
func (g *Gate) Expire(seq int) {
	if g.state != GateArmed || seq != g.armSeq {
		return
	}
	g.disarm()
}

// Undo forwards an undo press straight to the queue. It is out-of-band: the
// armed state, pending label, and any scheduled wake-up are untouched.
func (g *Gate) Undo() error {
	return g.committer.Undo()
}

// Armed reports whether a press is pending, and for which label.
func (g *Gate) Armed() (label model.Label, armed bool) {
	return g.pending, g.state == GateArmed
}

func (g *Gate) disarm() {
	g.state = GateIdle
	g.commitAllowed = false
	g.armSeq++ // invalidates any outstanding wake-up
}
