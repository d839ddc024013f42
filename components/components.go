// Package components defines ECS components for the walker.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Identity is the rotation that leaves vectors unchanged.
// The zero r3.Rotation is not a valid rotation, so components must start here.
var Identity = r3.NewRotation(0, r3.Vec{Y: 1})

// Transform is an entity's world position and rotation.
type Transform struct {
	Position r3.Vec      `inspect:"vec,fmt:%.2f"`
	Rotation r3.Rotation `inspect:"skip"`
}

// NewTransform returns a transform at pos with no rotation.
func NewTransform(pos r3.Vec) Transform {
	return Transform{Position: pos, Rotation: Identity}
}

// CameraRig is a camera attached to an entity.
// Offset and LocalRotation are relative to the owning Transform.
type CameraRig struct {
	Offset        r3.Vec      `inspect:"vec,fmt:%.2f"`
	LocalRotation r3.Rotation `inspect:"skip"`
	FOV           float64     `inspect:"label,fmt:%.0f"` // vertical, degrees
}

// NewCameraRig returns a rig at eye height with no local rotation.
func NewCameraRig(eyeHeight, fov float64) CameraRig {
	return CameraRig{
		Offset:        r3.Vec{Y: eyeHeight},
		LocalRotation: Identity,
		FOV:           fov,
	}
}

// Player marks the entity driven by the first-person controller.
type Player struct {
	ID uint32 `inspect:"label"`
}
