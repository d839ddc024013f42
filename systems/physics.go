package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fpwalk/components"
	"github.com/pthm-cable/fpwalk/physics"
)

// PhysicsSystem mirrors collider entities into the collision space.
// Bodies follow their transforms; the space never moves them back.
type PhysicsSystem struct {
	space *physics.World

	bodies    *ecs.Filter3[components.Transform, components.CapsuleCollider, components.RigidBody]
	obstacles *ecs.Filter2[components.Transform, components.Obstacle]

	contacts map[ecs.Entity]bool
}

// NewPhysicsSystem creates a physics system over the given space.
func NewPhysicsSystem(space *physics.World) *PhysicsSystem {
	return &PhysicsSystem{
		space:    space,
		contacts: make(map[ecs.Entity]bool),
	}
}

// Initialize registers every collider present in the world.
func (s *PhysicsSystem) Initialize(w *ecs.World) {
	s.bodies = ecs.NewFilter3[components.Transform, components.CapsuleCollider, components.RigidBody](w)
	s.obstacles = ecs.NewFilter2[components.Transform, components.Obstacle](w)

	query := s.obstacles.Query()
	for query.Next() {
		t, o := query.Get()
		s.space.AddBox(query.Entity(), t.Position, *o)
	}

	bodies := s.bodies.Query()
	for bodies.Next() {
		t, c, _ := bodies.Get()
		s.space.AddCapsule(bodies.Entity(), t.Position, *c)
	}
}

// Update syncs body positions, steps the space and refreshes contacts.
func (s *PhysicsSystem) Update(w *ecs.World, dt float32) {
	query := s.bodies.Query()
	for query.Next() {
		t, _, _ := query.Get()
		s.space.SetPosition(query.Entity(), t.Position)
	}

	s.space.Step(float64(dt))

	query = s.bodies.Query()
	for query.Next() {
		e := query.Entity()
		s.contacts[e] = s.space.Contacts(e)
	}
}

// Finalize removes every registered collider from the space.
func (s *PhysicsSystem) Finalize(w *ecs.World) {
	query := s.obstacles.Query()
	for query.Next() {
		s.space.Remove(query.Entity())
	}
	bodies := s.bodies.Query()
	for bodies.Next() {
		s.space.Remove(bodies.Entity())
	}
	clear(s.contacts)
}

// Contact reports whether e overlapped another collider on the last update.
func (s *PhysicsSystem) Contact(e ecs.Entity) bool {
	return s.contacts[e]
}

// Bodies returns the number of colliders in the space.
func (s *PhysicsSystem) Bodies() int {
	return s.space.Len()
}
