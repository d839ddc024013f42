// Package physics keeps colliders in a 2D space lying on the ground plane.
//
// World X maps to space X and world Z maps to space Y. Heights are handled
// outside the space: capsules and boxes both stand on the ground, so any
// overlap in the plane is an overlap in 3D.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fpwalk/components"
)

// World owns the collision space and the bodies of registered entities.
type World struct {
	space  *cp.Space
	bodies map[ecs.Entity]*cp.Body
	shapes map[ecs.Entity]*cp.Shape
}

// NewWorld creates an empty space without gravity.
func NewWorld() *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &World{
		space:  space,
		bodies: make(map[ecs.Entity]*cp.Body),
		shapes: make(map[ecs.Entity]*cp.Shape),
	}
}

// AddCapsule registers a kinematic capsule for e at pos.
func (w *World) AddCapsule(e ecs.Entity, pos r3.Vec, c components.CapsuleCollider) {
	body := cp.NewKinematicBody()
	body.SetPosition(toPlane(pos))
	shape := cp.NewCircle(body, c.Radius, cp.Vector{})

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.bodies[e] = body
	w.shapes[e] = shape
}

// AddBox registers a static box centred on pos in the ground plane.
func (w *World) AddBox(e ecs.Entity, pos r3.Vec, o components.Obstacle) {
	body := cp.NewStaticBody()
	body.SetPosition(toPlane(pos))
	shape := cp.NewBox(body, o.Width, o.Depth, 0)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.bodies[e] = body
	w.shapes[e] = shape
}

// Remove drops e's body and shape from the space.
func (w *World) Remove(e ecs.Entity) {
	if shape, ok := w.shapes[e]; ok {
		w.space.RemoveShape(shape)
		delete(w.shapes, e)
	}
	if body, ok := w.bodies[e]; ok {
		w.space.RemoveBody(body)
		delete(w.bodies, e)
	}
}

// SetPosition moves e's body to pos.
func (w *World) SetPosition(e ecs.Entity, pos r3.Vec) {
	body, ok := w.bodies[e]
	if !ok {
		return
	}
	body.SetPosition(toPlane(pos))
}

// Position returns e's body position lifted back into world space (Y = 0).
func (w *World) Position(e ecs.Entity) (r3.Vec, bool) {
	body, ok := w.bodies[e]
	if !ok {
		return r3.Vec{}, false
	}
	return fromPlane(body.Position()), true
}

// Contacts reports whether e's shape overlaps any other shape.
func (w *World) Contacts(e ecs.Entity) bool {
	shape, ok := w.shapes[e]
	if !ok {
		return false
	}
	return w.space.ShapeQuery(shape, func(*cp.Shape, *cp.ContactPointSet) {})
}

// Step advances the space by dt seconds.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// Len returns the number of registered entities.
func (w *World) Len() int {
	return len(w.bodies)
}

func toPlane(p r3.Vec) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Z}
}

func fromPlane(v cp.Vector) r3.Vec {
	return r3.Vec{X: v.X, Z: v.Y}
}
