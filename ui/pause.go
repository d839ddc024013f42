package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PauseAction is the choice made in the pause menu this frame.
type PauseAction int

const (
	PauseNone PauseAction = iota
	PauseResume
	PauseQuit
)

// PauseMenu renders the pause overlay with raygui buttons.
type PauseMenu struct {
	renderer *Renderer
}

// NewPauseMenu creates a pause menu.
func NewPauseMenu() *PauseMenu {
	return &PauseMenu{renderer: NewRenderer()}
}

// Draw renders the menu centered on screen and returns the clicked action.
func (m *PauseMenu) Draw(screenWidth, screenHeight int32) PauseAction {
	// Dim the scene
	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.Color{R: 0, G: 0, B: 0, A: 140})

	const (
		width   = 240
		height  = 150
		buttonW = 200
		buttonH = 30
	)
	x := float32(screenWidth-width) / 2
	y := float32(screenHeight-height) / 2

	m.renderer.DrawPanel(int32(x), int32(y), width, height)

	title := "PAUSED"
	titleW := rl.MeasureText(title, 20)
	rl.DrawText(title, int32(x)+(width-titleW)/2, int32(y)+15, 20, rl.White)

	bx := x + (width-buttonW)/2
	action := PauseNone
	if gui.Button(rl.Rectangle{X: bx, Y: y + 55, Width: buttonW, Height: buttonH}, "Resume") {
		action = PauseResume
	}
	if gui.Button(rl.Rectangle{X: bx, Y: y + 95, Width: buttonW, Height: buttonH}, "Quit") {
		action = PauseQuit
	}
	return action
}
