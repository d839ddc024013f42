package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes window and debug keys. Player actions are read by
// the action set in step.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	g.handleOverlayKeys()
	g.inspector.HandleInput()

	// Clicking into the window takes the cursor back after it was freed
	if !g.paused && !g.cursor.Locked() && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.cursor.Lock()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.inspector.Resize(int32(w), int32(h))
	g.uiPerfPanel.SetPosition(int32(w)-260, int32(h)-140)
}
