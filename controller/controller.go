// Package controller implements first-person movement and mouse-look.
//
// A Controller is driven by a host: Initialize is called once, Update once
// per frame, and look events arrive through the callback registered on the
// look action. All calls happen on the host's main loop goroutine.
package controller

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Body is the transform the controller moves and turns.
type Body interface {
	Position() r3.Vec
	SetPosition(p r3.Vec)
	SetRotation(r r3.Rotation)
}

// CameraMount receives the camera's local (pitch) rotation.
type CameraMount interface {
	SetLocalRotation(r r3.Rotation)
}

// Actions is the input binding layer the controller reads.
type Actions interface {
	Move() r2.Vec
	Sprint() float64
	Crouch() float64
	OnLook(fn func(delta r2.Vec))
}

// Cursor hides and locks the pointer.
type Cursor interface {
	Lock()
}

// Deps are the collaborators a controller is composed with.
type Deps struct {
	Body    Body
	Camera  CameraMount
	Actions Actions
	Cursor  Cursor
	Logger  *slog.Logger
}

// Controller turns move and look input into body motion.
type Controller struct {
	deps     Deps
	settings Settings

	orientation Orientation
	pending     r3.Vec  // displacement waiting to be applied this frame
	speed       float64 // effective speed of the last update

	initialized bool
}

// New creates a controller. Nothing is registered until Initialize.
func New(settings Settings, deps Deps) *Controller {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Controller{deps: deps, settings: settings}
}

// Initialize subscribes to look events and locks the cursor.
// Calling it again is a no-op.
func (c *Controller) Initialize() {
	if c.initialized {
		return
	}
	c.initialized = true

	c.deps.Actions.OnLook(c.OnLook)
	if c.deps.Cursor != nil {
		c.deps.Cursor.Lock()
	}

	c.deps.Logger.Info("controller initialized",
		"speed", c.settings.DefaultSpeed,
		"sensitivity", c.settings.Sensitivity,
		"look_cap", c.settings.VerticalLookCap,
	)
}

// OnLook handles one look event.
func (c *Controller) OnLook(delta r2.Vec) {
	ApplyLook(&c.orientation, delta, c.settings)
}

// Update runs one frame: apply orientation, integrate movement, then move
// the body by the pending displacement and reset it.
func (c *Controller) Update(dt float64) {
	c.deps.Camera.SetLocalRotation(CameraRotation(c.orientation.Pitch))
	c.deps.Body.SetRotation(BodyRotation(c.orientation.Yaw))

	c.updateMovement(dt)

	c.deps.Body.SetPosition(r3.Add(c.deps.Body.Position(), c.pending))
	c.pending = r3.Vec{}
}

func (c *Controller) updateMovement(dt float64) {
	in := Intent{
		Move:   c.deps.Actions.Move(),
		Sprint: c.deps.Actions.Sprint(),
		Crouch: c.deps.Actions.Crouch(),
	}
	c.speed = EffectiveSpeed(c.settings, in)
	c.pending = r3.Add(c.pending, Displacement(c.orientation.Yaw, in.Move, c.speed, dt))
}

// SetSettings swaps in new tuning between frames. Pitch is re-clamped so a
// smaller look cap takes effect immediately.
func (c *Controller) SetSettings(s Settings) {
	c.settings = s
	c.orientation.Pitch = clamp(c.orientation.Pitch, -s.VerticalLookCap, s.VerticalLookCap)
}

// Settings returns the current tuning.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Orientation returns the accumulated yaw and pitch.
func (c *Controller) Orientation() Orientation {
	return c.orientation
}

// Pending returns the displacement not yet applied. It is zero outside Update.
func (c *Controller) Pending() r3.Vec {
	return c.pending
}

// Speed returns the effective speed computed by the last Update.
func (c *Controller) Speed() float64 {
	return c.speed
}
