// Package camera derives the first-person view from the player's transform
// and camera rig.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fpwalk/components"
	"github.com/pthm-cable/fpwalk/controller"
)

// View is a perspective camera in world space.
type View struct {
	// Eye is the camera position
	Eye r3.Vec

	// Forward and Up are unit vectors; Right completes the basis
	Forward, Up, Right r3.Vec

	// FOV is the vertical field of view in degrees
	FOV float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Clip distances
	Near, Far float64
}

// FromRig builds the view of a camera rig mounted on a body.
// The rig's offset and local rotation are applied in the body's frame.
func FromRig(body components.Transform, rig components.CameraRig, viewportW, viewportH float64) View {
	local := func(v r3.Vec) r3.Vec {
		return body.Rotation.Rotate(rig.LocalRotation.Rotate(v))
	}

	return View{
		Eye:       r3.Add(body.Position, body.Rotation.Rotate(rig.Offset)),
		Forward:   local(controller.LocalForward),
		Up:        local(controller.Up),
		Right:     local(controller.LocalRight),
		FOV:       rig.FOV,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Near:      0.05,
		Far:       500,
	}
}

// Target returns a point one unit in front of the eye.
func (v View) Target() r3.Vec {
	return r3.Add(v.Eye, v.Forward)
}

// Aspect returns the viewport aspect ratio.
func (v View) Aspect() float64 {
	if v.ViewportH == 0 {
		return 1
	}
	return v.ViewportW / v.ViewportH
}

// toView converts a world point into camera space: x right, y up, z depth.
func (v View) toView(p r3.Vec) (x, y, z float64) {
	d := r3.Sub(p, v.Eye)
	return r3.Dot(d, v.Right), r3.Dot(d, v.Up), r3.Dot(d, v.Forward)
}

// WorldToScreen projects a world point to screen coordinates.
// ok is false for points behind the near plane.
func (v View) WorldToScreen(p r3.Vec) (sx, sy float64, ok bool) {
	x, y, z := v.toView(p)
	if z < v.Near {
		return 0, 0, false
	}

	f := 1 / math.Tan(radians(v.FOV)/2)
	ndcX := x * f / (z * v.Aspect())
	ndcY := y * f / z

	sx = (ndcX + 1) / 2 * v.ViewportW
	sy = (1 - ndcY) / 2 * v.ViewportH
	return sx, sy, true
}

// IsVisible returns true if a sphere at p with the given radius could be
// visible (conservative check for culling).
func (v View) IsVisible(p r3.Vec, radius float64) bool {
	x, y, z := v.toView(p)
	if z+radius < v.Near || z-radius > v.Far {
		return false
	}

	halfV := radians(v.FOV) / 2
	halfH := math.Atan(math.Tan(halfV) * v.Aspect())

	// Distance from each side plane; the planes pass through the eye
	if x*math.Cos(halfH)-z*math.Sin(halfH) > radius {
		return false
	}
	if -x*math.Cos(halfH)-z*math.Sin(halfH) > radius {
		return false
	}
	if y*math.Cos(halfV)-z*math.Sin(halfV) > radius {
		return false
	}
	if -y*math.Cos(halfV)-z*math.Sin(halfV) > radius {
		return false
	}
	return true
}

// Resize updates viewport dimensions.
func (v *View) Resize(viewportW, viewportH float64) {
	v.ViewportW = viewportW
	v.ViewportH = viewportH
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
