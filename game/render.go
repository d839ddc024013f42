package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fpwalk/camera"
	"github.com/pthm-cable/fpwalk/controller"
	"github.com/pthm-cable/fpwalk/inspector"
	"github.com/pthm-cable/fpwalk/ui"
)

var (
	colorSky      = rl.Color{R: 24, G: 28, B: 38, A: 255}
	colorGround   = rl.Color{R: 46, G: 52, B: 60, A: 255}
	colorObstacle = rl.Color{R: 120, G: 128, B: 142, A: 255}
	colorEdge     = rl.Color{R: 30, G: 30, B: 36, A: 255}
)

const controlsLegend = "WASD: move | Shift: sprint | Ctrl: crouch | Esc: pause | F1: overlays | F3: inspector | F11: fullscreen"

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorSky)

	e, ok := g.player.Entity()
	if !ok {
		rl.EndDrawing()
		return
	}

	view := camera.FromRig(*g.transforms.Get(e), *g.rigs.Get(e), float64(g.screenWidth), float64(g.screenHeight))

	rl.BeginMode3D(toCamera3D(view))
	g.drawGround()
	g.drawObstacles(view)
	g.drawWorldOverlays()
	rl.EndMode3D()

	g.drawUI(e)

	rl.EndDrawing()
}

// toCamera3D converts a view into raylib's camera.
func toCamera3D(v camera.View) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(v.Eye),
		Target:     vec3(v.Target()),
		Up:         vec3(v.Up),
		Fovy:       float32(v.FOV),
		Projection: rl.CameraPerspective,
	}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// drawGround draws the floor plane under the grid.
func (g *Game) drawGround() {
	cfg := g.config()
	size := float32(float64(cfg.Scene.GridSlices) * cfg.Scene.GridSpacing)
	rl.DrawPlane(rl.Vector3{}, rl.Vector2{X: size, Y: size}, colorGround)
}

// drawObstacles draws every obstacle box inside the view frustum.
func (g *Game) drawObstacles(view camera.View) {
	query := g.obstacles.Query()
	for query.Next() {
		t, o := query.Get()
		center := r3.Vec{X: t.Position.X, Y: o.Height / 2, Z: t.Position.Z}
		radius := 0.5 * math.Sqrt(o.Width*o.Width+o.Height*o.Height+o.Depth*o.Depth)
		if !view.IsVisible(center, radius) {
			continue
		}

		c := vec3(center)
		rl.DrawCube(c, float32(o.Width), float32(o.Height), float32(o.Depth), colorObstacle)
		rl.DrawCubeWires(c, float32(o.Width), float32(o.Height), float32(o.Depth), colorEdge)
	}
}

// drawUI renders the 2D layer: HUD, panels, inspector and pause menu.
func (g *Game) drawUI(e ecs.Entity) {
	cfg := g.config()
	w, h := int32(g.screenWidth), int32(g.screenHeight)
	ctrl := g.player.Controller()
	settings := ctrl.Settings()
	frame := g.lastFrame

	if g.uiOverlays.IsEnabled(ui.OverlayMovement) {
		g.uiHUD.Draw(ui.HUDData{
			Title:        cfg.Screen.Title,
			Position:     g.transforms.Get(e).Position,
			Yaw:          frame.Yaw,
			Pitch:        frame.Pitch,
			PitchCap:     settings.VerticalLookCap,
			Speed:        frame.Speed,
			MaxSpeed:     controller.MaxSpeed(settings),
			Moving:       frame.Moving,
			Sprint:       frame.Sprint,
			Crouch:       frame.Crouch,
			Contact:      frame.Contact,
			Tick:         g.tick,
			FPS:          rl.GetFPS(),
			Paused:       g.paused,
			CursorLocked: g.cursor.Locked(),
			ScreenWidth:  w,
			ScreenHeight: h,
		})
	}

	if g.uiOverlays.IsEnabled(ui.OverlayPerf) {
		g.uiPerfPanel.Draw(ui.PerfPanelData{
			Stats:    g.perfCollector.Stats(),
			Registry: g.registry,
		})
	}

	g.uiControlsPanel.Draw(ui.ControlsData{
		Bindings:    cfg.Bindings,
		Sensitivity: settings.Sensitivity,
		LookCap:     settings.VerticalLookCap,
		InvertY:     cfg.Look.InvertY,
	}, g.uiOverlays)

	o := ctrl.Orientation()
	g.inspector.Draw(e, inspector.ControllerState{
		Yaw:      o.Yaw,
		Pitch:    o.Pitch,
		Speed:    ctrl.Speed(),
		MaxSpeed: controller.MaxSpeed(settings),
		Sprint:   frame.Sprint,
		Crouch:   frame.Crouch,
		Contact:  frame.Contact,
	}, []inspector.Section{
		{Title: "TRANSFORM", Component: *g.transforms.Get(e)},
		{Title: "CAMERA", Component: *g.rigs.Get(e)},
		{Title: "COLLIDER", Component: *g.colliders.Get(e)},
		{Title: "BODY", Component: *g.bodies.Get(e)},
		{Title: "PLAYER", Component: *g.players.Get(e)},
	})

	if g.paused {
		switch g.uiPauseMenu.Draw(w, h) {
		case ui.PauseResume:
			g.setPaused(false)
		case ui.PauseQuit:
			g.quit = true
		}
	}

	g.uiHUD.DrawControls(w, h, controlsLegend)
}
