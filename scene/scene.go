// Package scene populates an ECS world from configuration.
package scene

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fpwalk/components"
	"github.com/pthm-cable/fpwalk/config"
)

// Scene holds the mappers used to spawn entities and the entities spawned.
type Scene struct {
	playerMapper *ecs.Map5[
		components.Transform,
		components.CameraRig,
		components.Player,
		components.CapsuleCollider,
		components.RigidBody,
	]
	obstacleMapper *ecs.Map2[components.Transform, components.Obstacle]

	Player    ecs.Entity
	Obstacles []ecs.Entity

	nextID uint32
}

// New creates mappers for w. Nothing is spawned yet.
func New(w *ecs.World) *Scene {
	return &Scene{
		playerMapper: ecs.NewMap5[
			components.Transform,
			components.CameraRig,
			components.Player,
			components.CapsuleCollider,
			components.RigidBody,
		](w),
		obstacleMapper: ecs.NewMap2[components.Transform, components.Obstacle](w),
		nextID:         1,
	}
}

// Populate spawns the player and every configured obstacle.
func (s *Scene) Populate(cfg *config.Config) {
	s.SpawnPlayer(r3.Vec{X: cfg.Body.SpawnX, Z: cfg.Body.SpawnZ}, cfg.Body, cfg.Look.FOV)
	for _, o := range cfg.Scene.Obstacles {
		s.SpawnObstacle(o)
	}
}

// SpawnPlayer creates the player entity standing at pos.
func (s *Scene) SpawnPlayer(pos r3.Vec, body config.BodyConfig, fov float64) ecs.Entity {
	t := components.NewTransform(pos)
	rig := components.NewCameraRig(body.EyeHeight, fov)
	player := components.Player{ID: s.nextID}
	s.nextID++
	collider := components.CapsuleCollider{Radius: body.Radius, Height: body.Height}
	rb := components.RigidBody{Mass: body.Mass}

	s.Player = s.playerMapper.NewEntity(&t, &rig, &player, &collider, &rb)
	return s.Player
}

// SpawnObstacle creates a static box from its config.
func (s *Scene) SpawnObstacle(o config.ObstacleConfig) ecs.Entity {
	t := components.NewTransform(r3.Vec{X: o.X, Z: o.Z})
	box := components.Obstacle{Width: o.Width, Depth: o.Depth, Height: o.Height}

	e := s.obstacleMapper.NewEntity(&t, &box)
	s.Obstacles = append(s.Obstacles, e)
	return e
}
