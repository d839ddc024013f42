package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fpwalk/systems"
	"github.com/pthm-cable/fpwalk/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Position     r3.Vec
	Yaw          float64
	Pitch        float64
	PitchCap     float64
	Speed        float64
	MaxSpeed     float64
	Moving       bool
	Sprint       bool
	Crouch       bool
	Contact      bool
	Tick         int32
	FPS          int32
	Paused       bool
	CursorLocked bool
	ScreenWidth  int32
	ScreenHeight int32
}

// movementSection describes the movement readout panel.
var movementSection = SectionDescriptor{
	ID:    "movement",
	Title: "Movement",
	Fields: []FieldDescriptor{
		{
			ID: "speed", Label: "Speed", Widget: WidgetBar,
			Getter: func(d any) float32 { return float32(d.(HUDData).Speed) },
		},
		{
			ID: "yaw", Label: "Yaw", Widget: WidgetText, Format: "%.1f",
			Getter: func(d any) float32 { return float32(d.(HUDData).Yaw) },
		},
		{
			ID: "pitch", Label: "Pitch", Widget: WidgetCenteredBar,
			Getter: func(d any) float32 { return float32(d.(HUDData).Pitch) },
		},
		{ID: "spacer", Widget: WidgetSpacer},
		{
			ID: "sprint", Label: "Sprint", Widget: WidgetFlag,
			FlagGetter: func(d any) bool { return d.(HUDData).Sprint },
		},
		{
			ID: "crouch", Label: "Crouch", Widget: WidgetFlag,
			FlagGetter: func(d any) bool { return d.(HUDData).Crouch },
		},
		{
			ID: "contact", Label: "Contact", Widget: WidgetFlag,
			FlagGetter: func(d any) bool { return d.(HUDData).Contact },
		},
	},
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Pos: (%.2f, %.2f, %.2f)", data.Position.X, data.Position.Y, data.Position.Z),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	} else if !data.CursorLocked {
		statusText = "Cursor free"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)

	// Movement panel, bars sized to the current tuning
	section := movementSection
	section.Fields = append([]FieldDescriptor(nil), movementSection.Fields...)
	for i := range section.Fields {
		switch section.Fields[i].ID {
		case "speed":
			section.Fields[i].Range = FieldRange{Min: 0, Max: float32(data.MaxSpeed)}
		case "pitch":
			section.Fields[i].Range = CenteredRange(float32(data.PitchCap))
		}
	}

	r := h.renderer
	width := int32(220)
	x, y := int32(10), int32(100)
	height := r.SectionHeight(section, data) + 2*r.Theme.Padding
	r.DrawPanel(x, y, width, height)
	r.DrawSection(x+r.Theme.Padding, y+r.Theme.Padding, section, data, width-2*r.Theme.Padding)

	if !data.Paused {
		drawCrosshair(data.ScreenWidth, data.ScreenHeight)
	}
}

// drawCrosshair marks the screen center.
func drawCrosshair(screenWidth, screenHeight int32) {
	cx, cy := screenWidth/2, screenHeight/2
	color := rl.Color{R: 255, G: 255, B: 255, A: 180}
	rl.DrawLine(cx-8, cy, cx-3, cy, color)
	rl.DrawLine(cx+3, cy, cx+8, cy, color)
	rl.DrawLine(cx, cy-8, cx, cy-3, color)
	rl.DrawLine(cx, cy+3, cx, cy+8, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Registry *systems.Registry
}

// PerfPanel renders the frame phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, slowest phase first.
func (p *PerfPanel) Draw(data PerfPanelData) {
	stats := data.Stats
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Frame: %s (max %s) | %d frames", stats.AvgFrame.Round(time.Microsecond), stats.MaxFrame.Round(time.Microsecond), stats.Frames),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, ps := range stats.Slowest() {
		color := rl.LightGray
		if ps.Pct > 50 {
			color = rl.Red
		} else if ps.Pct > 25 {
			color = rl.Orange
		}

		// Systems show their registered name; input and telemetry keep theirs
		name := ps.Name
		if data.Registry != nil {
			name = data.Registry.GetName(ps.Name)
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, ps.Avg.Round(time.Microsecond), ps.Pct),
			x, y, 12, color,
		)
		y += 14
	}
}
