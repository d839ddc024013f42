package controller

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Orientation is the accumulated look state in degrees.
// Yaw turns the body about the vertical axis, Pitch tilts the camera about
// the horizontal axis. Pitch always stays within the configured look cap.
type Orientation struct {
	Yaw   float64
	Pitch float64
}

// ApplyLook adds a look delta scaled by sensitivity and clamps pitch to
// [-VerticalLookCap, +VerticalLookCap]. Yaw is left unbounded.
func ApplyLook(o *Orientation, delta r2.Vec, s Settings) {
	o.Yaw += delta.X * s.Sensitivity
	o.Pitch += delta.Y * s.Sensitivity
	o.Pitch = clamp(o.Pitch, -s.VerticalLookCap, s.VerticalLookCap)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	return math.Max(min, math.Min(x, max))
}
