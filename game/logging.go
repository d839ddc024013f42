package game

import (
	"log/slog"
)

// logWorldState logs where the player is and what the world holds.
func (g *Game) logWorldState(msg string) {
	e, ok := g.player.Entity()
	if !ok {
		slog.Warn(msg, "tick", g.tick, "player", "missing")
		return
	}

	pos := g.transforms.Get(e).Position
	o := g.player.Controller().Orientation()
	slog.Info(msg,
		"tick", g.tick,
		slog.Group("player",
			"x", pos.X,
			"y", pos.Y,
			"z", pos.Z,
			"yaw", o.Yaw,
			"pitch", o.Pitch,
			"contact", g.physics.Contact(e),
		),
		"obstacles", len(g.scene.Obstacles),
		"bodies", g.physics.Bodies(),
	)
}
