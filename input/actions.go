// Package input maps device state onto named player actions.
//
// A Source is read once per frame by Actions.Poll. The resulting snapshot is
// what every reader sees for the rest of that frame, and look deltas are
// dispatched to subscribers from Poll, before the frame's update runs.
package input

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"
)

// Action names used by sources and bindings.
const (
	ActionMove   = "move"
	ActionLook   = "look"
	ActionSprint = "sprint"
	ActionCrouch = "crouch"
	ActionPause  = "pause"
)

// ErrUnknownKey is returned (wrapped) when a binding names a key that does not exist.
var ErrUnknownKey = errors.New("unknown key")

// Source provides raw action values.
type Source interface {
	// Poll is called once at the start of every frame.
	Poll()
	// MoveAxis returns the 2D move vector (x = strafe right, y = forward).
	MoveAxis() r2.Vec
	// LookDelta returns the look delta since the last poll (y = up).
	LookDelta() r2.Vec
	// Button returns the value of a button action; > 0 means held.
	Button(action string) float64
}

// Snapshot is the state of all actions for one frame.
type Snapshot struct {
	Move   r2.Vec
	Look   r2.Vec
	Sprint float64
	Crouch float64
	Pause  float64
}

// Actions exposes the per-frame action snapshot and look subscriptions.
type Actions struct {
	source Source
	snap   Snapshot

	lookHandlers []func(delta r2.Vec)
	lookMuted    bool
}

// NewActions creates an action set reading from src.
func NewActions(src Source) *Actions {
	return &Actions{source: src}
}

// SetSource swaps the input source. Subscriptions are kept.
func (a *Actions) SetSource(src Source) {
	a.source = src
	a.snap = Snapshot{}
}

// Poll reads the source and dispatches a look event when the delta is non-zero.
func (a *Actions) Poll() Snapshot {
	a.source.Poll()
	a.snap = Snapshot{
		Move:   a.source.MoveAxis(),
		Look:   a.source.LookDelta(),
		Sprint: a.source.Button(ActionSprint),
		Crouch: a.source.Button(ActionCrouch),
		Pause:  a.source.Button(ActionPause),
	}

	if a.snap.Look != (r2.Vec{}) && !a.lookMuted {
		for _, fn := range a.lookHandlers {
			fn(a.snap.Look)
		}
	}
	return a.snap
}

// Clear drops the current snapshot, e.g. while the game is paused.
func (a *Actions) Clear() {
	a.snap = Snapshot{}
}

// MuteLook stops look events from reaching subscribers until unmuted.
// Buttons are still read, so pause can be toggled while muted.
func (a *Actions) MuteLook(muted bool) {
	a.lookMuted = muted
}

// OnLook subscribes fn to look events.
func (a *Actions) OnLook(fn func(delta r2.Vec)) {
	a.lookHandlers = append(a.lookHandlers, fn)
}

// Move returns this frame's move vector.
func (a *Actions) Move() r2.Vec { return a.snap.Move }

// Sprint returns this frame's sprint value.
func (a *Actions) Sprint() float64 { return a.snap.Sprint }

// Crouch returns this frame's crouch value.
func (a *Actions) Crouch() float64 { return a.snap.Crouch }

// PausePressed reports whether pause was triggered this frame.
func (a *Actions) PausePressed() bool { return a.snap.Pause > 0 }

// Snapshot returns the current frame's snapshot.
func (a *Actions) Snapshot() Snapshot { return a.snap }

// ClampAxis limits a composite axis to unit length so diagonals are not faster.
func ClampAxis(v r2.Vec) r2.Vec {
	if r2.Norm(v) > 1 {
		return r2.Unit(v)
	}
	return v
}
