package components

// CapsuleCollider is an upright capsule whose base sits at the transform position.
type CapsuleCollider struct {
	Radius float64 `inspect:"label,fmt:%.2f"`
	Height float64 `inspect:"label,fmt:%.2f"`
}

// RigidBody holds physical properties of an entity.
// Bodies are kinematic: their owner moves them and the solver never does.
type RigidBody struct {
	Mass float64 `inspect:"label,fmt:%.1f"`
}

// Obstacle is a static axis-aligned box resting on the ground.
type Obstacle struct {
	Width  float64 `inspect:"label,fmt:%.1f"`
	Depth  float64 `inspect:"label,fmt:%.1f"`
	Height float64 `inspect:"label,fmt:%.1f"`
}
