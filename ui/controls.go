package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fpwalk/config"
)

// ControlsData is the live input setup shown by the controls panel.
type ControlsData struct {
	Bindings    config.BindingsConfig
	Sensitivity float64
	LookCap     float64
	InvertY     bool
}

func bindingText(get func(config.BindingsConfig) string) func(any) string {
	return func(d any) string { return get(d.(ControlsData).Bindings) }
}

// bindingsSection lists the resolved key for every player action.
var bindingsSection = SectionDescriptor{
	ID:    "bindings",
	Title: "Keys",
	Fields: []FieldDescriptor{
		{ID: "forward", Label: "Forward", Widget: WidgetText, TextGetter: bindingText(func(b config.BindingsConfig) string { return b.Forward })},
		{ID: "back", Label: "Back", Widget: WidgetText, TextGetter: bindingText(func(b config.BindingsConfig) string { return b.Back })},
		{ID: "left", Label: "Left", Widget: WidgetText, TextGetter: bindingText(func(b config.BindingsConfig) string { return b.Left })},
		{ID: "right", Label: "Right", Widget: WidgetText, TextGetter: bindingText(func(b config.BindingsConfig) string { return b.Right })},
		{ID: "sprint", Label: "Sprint", Widget: WidgetText, TextGetter: bindingText(func(b config.BindingsConfig) string { return b.Sprint })},
		{ID: "crouch", Label: "Crouch", Widget: WidgetText, TextGetter: bindingText(func(b config.BindingsConfig) string { return b.Crouch })},
		{ID: "pause", Label: "Pause", Widget: WidgetText, TextGetter: bindingText(func(b config.BindingsConfig) string { return b.Pause })},
	},
}

// lookSection shows the mouse-look tuning in effect.
var lookSection = SectionDescriptor{
	ID:    "look",
	Title: "Look",
	Fields: []FieldDescriptor{
		{
			ID: "sensitivity", Label: "Sens", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 3},
			Getter: func(d any) float32 { return float32(d.(ControlsData).Sensitivity) },
		},
		{
			ID: "cap", Label: "Pitch cap", Widget: WidgetText,
			TextGetter: func(d any) string { return fmt.Sprintf("+/-%.0f deg", d.(ControlsData).LookCap) },
		},
		{
			ID: "invert", Label: "Invert Y", Widget: WidgetFlag,
			FlagGetter: func(d any) bool { return d.(ControlsData).InvertY },
		},
	},
}

// ControlsPanel shows key bindings, look tuning and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Draw renders the panel and returns the y position below it.
func (c *ControlsPanel) Draw(data ControlsData, overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := c.width - padding*2

	toggles := overlays.All()
	height := r.SectionHeight(bindingsSection, data) +
		r.SectionHeight(lookSection, data) +
		lineHeight + int32(len(toggles))*lineHeight +
		padding*2
	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + padding
	y := c.y + padding
	y = r.DrawSection(x, y, bindingsSection, data, inner)
	y = r.DrawSection(x, y, lookSection, data, inner)

	y = r.DrawSectionHeader(x, y, "Overlays")
	for _, desc := range toggles {
		c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), inner)
		y += lineHeight
	}
	return y + padding
}

// drawToggle draws one overlay line: status box, name and key.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	theme := c.renderer.Theme

	status, name := theme.FlagOff, theme.LabelColor
	if enabled {
		status, name = theme.FlagOn, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, status)
	rl.DrawText(desc.Name, x+14, y, theme.FontSize, name)

	if desc.KeyLabel != "" {
		key := fmt.Sprintf("[%s]", desc.KeyLabel)
		w := rl.MeasureText(key, theme.FontSize)
		rl.DrawText(key, x+width-w, y, theme.FontSize, theme.LabelColor)
	}
}
