package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fpwalk/ui"
)

// handleOverlayKeys toggles overlays for the keys pressed this frame.
func (g *Game) handleOverlayKeys() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		id, enabled, ok := g.uiOverlays.HandleKeyPress(key)
		if ok && id == ui.OverlayHelp {
			g.uiControlsPanel.SetVisible(enabled)
		}
	}
}

// drawWorldOverlays renders the enabled overlays that live in world space.
// Must be called between BeginMode3D and EndMode3D.
func (g *Game) drawWorldOverlays() {
	for _, id := range g.uiOverlays.EnabledOverlays() {
		switch id {
		case ui.OverlayGrid:
			cfg := g.config()
			rl.DrawGrid(int32(cfg.Scene.GridSlices), float32(cfg.Scene.GridSpacing))
		case ui.OverlayColliders:
			g.drawColliders()
		}
	}
}

// drawColliders outlines the player capsule and every obstacle box.
func (g *Game) drawColliders() {
	color := rl.Color{R: 100, G: 220, B: 120, A: 200}
	if e, ok := g.player.Entity(); ok {
		pos := g.transforms.Get(e).Position
		c := g.colliders.Get(e)
		if g.physics.Contact(e) {
			color = rl.Color{R: 230, G: 90, B: 80, A: 220}
		}
		base := rl.Vector3{X: float32(pos.X), Y: float32(pos.Y + c.Radius), Z: float32(pos.Z)}
		top := rl.Vector3{X: base.X, Y: float32(pos.Y + c.Height - c.Radius), Z: base.Z}
		rl.DrawCapsuleWires(base, top, float32(c.Radius), 8, 4, color)
	}

	boxColor := rl.Color{R: 255, G: 200, B: 80, A: 200}
	query := g.obstacles.Query()
	for query.Next() {
		t, o := query.Get()
		center := rl.Vector3{X: float32(t.Position.X), Y: float32(o.Height / 2), Z: float32(t.Position.Z)}
		rl.DrawCubeWires(center, float32(o.Width), float32(o.Height), float32(o.Depth), boxColor)
	}
}
