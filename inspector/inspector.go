package inspector

import (
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

// Panel dimensions
const (
	PanelWidth   = 340
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// ControllerState is the per-frame controller readout shown in the panel.
type ControllerState struct {
	Yaw      float64 `inspect:"angle"`
	Pitch    float64 `inspect:"angle"`
	Speed    float64 `inspect:"bar"`
	MaxSpeed float64 `inspect:"skip"`
	Sprint   bool
	Crouch   bool
	Contact  bool
}

// Section is one titled block of component fields.
type Section struct {
	Title     string
	Component interface{}
}

// Inspector renders the player's components in a side panel.
type Inspector struct {
	visible      bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance. The panel starts hidden.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		panelX:       screenWidth - PanelWidth - 10,
		panelY:       10,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// HandleInput toggles the panel on F3.
func (ins *Inspector) HandleInput() {
	if rl.IsKeyPressed(rl.KeyF3) {
		ins.Toggle()
	}
}

// Toggle shows or hides the panel.
func (ins *Inspector) Toggle() {
	ins.visible = !ins.visible
}

// Visible reports whether the panel is shown.
func (ins *Inspector) Visible() bool {
	return ins.visible
}

// Resize keeps the panel anchored to the right edge.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
}

// Draw renders the panel for entity e.
func (ins *Inspector) Draw(e ecs.Entity, state ControllerState, sections []Section) {
	if !ins.visible {
		return
	}

	controller := ExtractFields(state)
	for i := range controller {
		if controller[i].Name == "Speed" && state.MaxSpeed > 0 {
			controller[i].Options["max"] = strconv.FormatFloat(state.MaxSpeed, 'f', -1, 64)
		}
	}

	blocks := make([][]Field, len(sections))
	for i, s := range sections {
		blocks[i] = ExtractFields(s.Component)
	}

	panelHeight := ins.calculatePanelHeight(controller, blocks)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)
	rl.DrawText("F3", ins.panelX+PanelWidth-30, ins.panelY+8, 14, ColorTextDim)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("Entity: %d", e.ID()), x, y, 14, ColorHeaderText)
	y += 22

	y = ins.drawSection(x, y, "CONTROLLER", controller)
	for i, s := range sections {
		y = ins.drawSection(x, y, s.Title, blocks[i])
	}
}

// drawSection renders a separator, a header and the section's fields.
// Returns the y position below the section.
func (ins *Inspector) drawSection(x, y int32, title string, fields []Field) int32 {
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	ins.drawSectionHeader(x, y, title)
	y += 20

	for _, f := range fields {
		y += DrawField(x, y, f)
	}
	return y + 4
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight computes the dynamic panel height.
func (ins *Inspector) calculatePanelHeight(controller []Field, blocks [][]Field) int32 {
	height := int32(HeaderHeight + PanelPadding) // header
	height += 22                                  // entity line

	for _, fields := range append([][]Field{controller}, blocks...) {
		height += 8 + 20 + 4 // separator, section header, trailing gap
		for _, f := range fields {
			height += fieldHeight(f.Widget)
		}
	}

	return height + PanelPadding
}

// fieldHeight mirrors the row heights returned by the Draw* widgets.
func fieldHeight(w Widget) int32 {
	switch w {
	case WidgetAngle:
		return 44
	case WidgetBar, WidgetBool:
		return 18
	default:
		return 20
	}
}
