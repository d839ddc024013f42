package controller

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fpwalk/config"
)

// World axes. The world is right-handed with +Y up; a body at yaw 0 faces -Z
// with +X on its right.
var (
	Up           = r3.Vec{Y: 1}
	Left         = r3.Vec{X: -1}
	LocalForward = r3.Vec{Z: -1}
	LocalRight   = r3.Vec{X: 1}
)

// Settings holds the immutable tuning values of a controller.
type Settings struct {
	DefaultSpeed    float64
	WalkModifier    float64
	SprintModifier  float64
	CrouchModifier  float64
	Sensitivity     float64
	VerticalLookCap float64
	CameraSmoothing float64
}

// SettingsFromConfig returns controller settings for the given config.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		DefaultSpeed:    cfg.Player.DefaultSpeed,
		WalkModifier:    cfg.Player.WalkSpeedModifier,
		SprintModifier:  cfg.Player.SprintSpeedModifier,
		CrouchModifier:  cfg.Player.CrouchSpeedModifier,
		Sensitivity:     cfg.Look.Sensitivity,
		VerticalLookCap: cfg.Look.VerticalLookCap,
		CameraSmoothing: cfg.Look.CameraSmoothing,
	}
}

// Intent is the held-action snapshot read once per frame.
// Sprint and Crouch count as active when greater than zero.
type Intent struct {
	Move   r2.Vec
	Sprint float64
	Crouch float64
}

// EffectiveSpeed returns the movement speed for this frame.
// Crouch and sprint are checked independently, so holding both applies both
// modifiers (5 * 0.5 * 2.0 = 5 with the default tuning).
func EffectiveSpeed(s Settings, in Intent) float64 {
	speed := s.DefaultSpeed
	if in.Crouch > 0 {
		speed *= s.CrouchModifier
	}
	if in.Sprint > 0 {
		speed *= s.SprintModifier
	}
	return speed
}

// MaxSpeed is the fastest EffectiveSpeed any combination of held modifiers
// reaches. Modifiers above 1 on crouch make crouch-sprint the fastest.
func MaxSpeed(s Settings) float64 {
	best := 0.0
	for _, crouch := range []float64{0, 1} {
		for _, sprint := range []float64{0, 1} {
			best = max(best, EffectiveSpeed(s, Intent{Crouch: crouch, Sprint: sprint}))
		}
	}
	return best
}

// BodyRotation is the body's rotation for the given yaw in degrees.
// Positive yaw turns right.
func BodyRotation(yaw float64) r3.Rotation {
	return r3.NewRotation(-radians(yaw), Up)
}

// CameraRotation is the camera's local rotation for the given pitch in
// degrees. Positive pitch looks up.
func CameraRotation(pitch float64) r3.Rotation {
	return r3.NewRotation(-radians(pitch), Left)
}

// Forward returns the body's forward direction for the given yaw.
func Forward(yaw float64) r3.Vec {
	return BodyRotation(yaw).Rotate(LocalForward)
}

// Right returns the body's right direction for the given yaw.
func Right(yaw float64) r3.Vec {
	return BodyRotation(yaw).Rotate(LocalRight)
}

// LookDirection returns the camera's world-space view direction.
func LookDirection(o Orientation) r3.Vec {
	return BodyRotation(o.Yaw).Rotate(CameraRotation(o.Pitch).Rotate(LocalForward))
}

// Displacement projects a move input onto the body's forward and right
// directions, scaled by speed and frame time.
func Displacement(yaw float64, move r2.Vec, speed, dt float64) r3.Vec {
	d := r3.Scale(move.Y*speed*dt, Forward(yaw))
	return r3.Add(d, r3.Scale(move.X*speed*dt, Right(yaw)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
