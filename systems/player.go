package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fpwalk/components"
	"github.com/pthm-cable/fpwalk/controller"
)

// PlayerSystem drives the player entity with a first-person controller.
type PlayerSystem struct {
	settings controller.Settings
	actions  controller.Actions
	cursor   controller.Cursor
	logger   *slog.Logger

	filter     *ecs.Filter3[components.Transform, components.CameraRig, components.Player]
	transforms *ecs.Map1[components.Transform]
	rigs       *ecs.Map1[components.CameraRig]

	entity ecs.Entity
	found  bool
	ctrl   *controller.Controller
}

// NewPlayerSystem creates a player system. The controller is built in Initialize,
// once the player entity exists.
func NewPlayerSystem(settings controller.Settings, actions controller.Actions, cursor controller.Cursor, logger *slog.Logger) *PlayerSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerSystem{
		settings: settings,
		actions:  actions,
		cursor:   cursor,
		logger:   logger,
	}
}

// Initialize finds the player entity and initializes its controller.
func (s *PlayerSystem) Initialize(w *ecs.World) {
	s.filter = ecs.NewFilter3[components.Transform, components.CameraRig, components.Player](w)
	s.transforms = ecs.NewMap1[components.Transform](w)
	s.rigs = ecs.NewMap1[components.CameraRig](w)

	count := 0
	query := s.filter.Query()
	for query.Next() {
		if count == 0 {
			s.entity = query.Entity()
			s.found = true
		}
		count++
	}

	if !s.found {
		s.logger.Warn("no player entity; controller disabled")
		return
	}
	if count > 1 {
		s.logger.Warn("multiple player entities; controlling the first", "count", count)
	}

	s.ctrl = controller.New(s.settings, controller.Deps{
		Body:    entityBody{transforms: s.transforms, entity: s.entity},
		Camera:  entityCamera{rigs: s.rigs, entity: s.entity},
		Actions: s.actions,
		Cursor:  s.cursor,
		Logger:  s.logger,
	})
	s.ctrl.Initialize()
}

// Update advances the controller by one frame.
func (s *PlayerSystem) Update(w *ecs.World, dt float32) {
	if s.ctrl == nil {
		return
	}
	s.ctrl.Update(float64(dt))
}

// Finalize implements System.
func (s *PlayerSystem) Finalize(w *ecs.World) {}

// SetSettings forwards new tuning to the controller.
func (s *PlayerSystem) SetSettings(settings controller.Settings) {
	s.settings = settings
	if s.ctrl != nil {
		s.ctrl.SetSettings(settings)
	}
}

// Controller returns the player's controller, or nil if there is no player.
func (s *PlayerSystem) Controller() *controller.Controller {
	return s.ctrl
}

// Entity returns the controlled entity and whether one was found.
func (s *PlayerSystem) Entity() (ecs.Entity, bool) {
	return s.entity, s.found
}

// entityBody adapts an entity's Transform to controller.Body.
// Components are looked up on every call so no pointer outlives a frame.
type entityBody struct {
	transforms *ecs.Map1[components.Transform]
	entity     ecs.Entity
}

func (b entityBody) Position() r3.Vec {
	return b.transforms.Get(b.entity).Position
}

func (b entityBody) SetPosition(p r3.Vec) {
	b.transforms.Get(b.entity).Position = p
}

func (b entityBody) SetRotation(r r3.Rotation) {
	b.transforms.Get(b.entity).Rotation = r
}

// entityCamera adapts an entity's CameraRig to controller.CameraMount.
type entityCamera struct {
	rigs   *ecs.Map1[components.CameraRig]
	entity ecs.Entity
}

func (c entityCamera) SetLocalRotation(r r3.Rotation) {
	c.rigs.Get(c.entity).LocalRotation = r
}
