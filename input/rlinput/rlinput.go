// Package rlinput binds input actions to raylib keyboard and mouse state.
package rlinput

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fpwalk/config"
	"github.com/pthm-cable/fpwalk/input"
)

// KeyNames maps binding names to raylib key codes.
var KeyNames = map[string]int32{
	"a": rl.KeyA, "b": rl.KeyB, "c": rl.KeyC, "d": rl.KeyD, "e": rl.KeyE,
	"f": rl.KeyF, "g": rl.KeyG, "h": rl.KeyH, "i": rl.KeyI, "j": rl.KeyJ,
	"k": rl.KeyK, "l": rl.KeyL, "m": rl.KeyM, "n": rl.KeyN, "o": rl.KeyO,
	"p": rl.KeyP, "q": rl.KeyQ, "r": rl.KeyR, "s": rl.KeyS, "t": rl.KeyT,
	"u": rl.KeyU, "v": rl.KeyV, "w": rl.KeyW, "x": rl.KeyX, "y": rl.KeyY,
	"z": rl.KeyZ,

	"up":    rl.KeyUp,
	"down":  rl.KeyDown,
	"left":  rl.KeyLeft,
	"right": rl.KeyRight,

	"space":         rl.KeySpace,
	"tab":           rl.KeyTab,
	"escape":        rl.KeyEscape,
	"enter":         rl.KeyEnter,
	"left_shift":    rl.KeyLeftShift,
	"right_shift":   rl.KeyRightShift,
	"left_control":  rl.KeyLeftControl,
	"right_control": rl.KeyRightControl,
	"left_alt":      rl.KeyLeftAlt,
	"right_alt":     rl.KeyRightAlt,
}

// Keymap holds resolved key codes per action.
type Keymap struct {
	Forward, Back, Left, Right int32
	Sprint, Crouch, Pause      int32
}

// KeymapFromConfig resolves binding names to key codes.
func KeymapFromConfig(b config.BindingsConfig) (Keymap, error) {
	var km Keymap
	bind := []struct {
		action string
		name   string
		dst    *int32
	}{
		{"forward", b.Forward, &km.Forward},
		{"back", b.Back, &km.Back},
		{"left", b.Left, &km.Left},
		{"right", b.Right, &km.Right},
		{input.ActionSprint, b.Sprint, &km.Sprint},
		{input.ActionCrouch, b.Crouch, &km.Crouch},
		{input.ActionPause, b.Pause, &km.Pause},
	}
	for _, e := range bind {
		code, ok := KeyNames[strings.ToLower(strings.TrimSpace(e.name))]
		if !ok {
			return Keymap{}, fmt.Errorf("binding %s: %w %q", e.action, input.ErrUnknownKey, e.name)
		}
		*e.dst = code
	}
	return km, nil
}

// Source reads the keyboard and mouse through raylib.
type Source struct {
	keys    Keymap
	invertY bool
	look    r2.Vec
}

// NewSource creates a raylib-backed input source.
func NewSource(keys Keymap, invertY bool) *Source {
	return &Source{keys: keys, invertY: invertY}
}

// Poll samples the mouse delta for this frame.
func (s *Source) Poll() {
	d := rl.GetMouseDelta()
	// Screen Y grows downward; look Y grows upward
	y := -float64(d.Y)
	if s.invertY {
		y = -y
	}
	s.look = r2.Vec{X: float64(d.X), Y: y}
}

// MoveAxis implements input.Source.
func (s *Source) MoveAxis() r2.Vec {
	var v r2.Vec
	if rl.IsKeyDown(s.keys.Right) {
		v.X++
	}
	if rl.IsKeyDown(s.keys.Left) {
		v.X--
	}
	if rl.IsKeyDown(s.keys.Forward) {
		v.Y++
	}
	if rl.IsKeyDown(s.keys.Back) {
		v.Y--
	}
	return input.ClampAxis(v)
}

// LookDelta implements input.Source.
func (s *Source) LookDelta() r2.Vec {
	return s.look
}

// Button implements input.Source.
func (s *Source) Button(action string) float64 {
	switch action {
	case input.ActionSprint:
		return keyValue(rl.IsKeyDown(s.keys.Sprint))
	case input.ActionCrouch:
		return keyValue(rl.IsKeyDown(s.keys.Crouch))
	case input.ActionPause:
		return keyValue(rl.IsKeyPressed(s.keys.Pause))
	}
	return 0
}

func keyValue(down bool) float64 {
	if down {
		return 1
	}
	return 0
}

// Cursor hides and locks the pointer through raylib.
type Cursor struct {
	locked bool
}

// Lock hides the cursor and locks it to the window.
func (c *Cursor) Lock() {
	rl.DisableCursor()
	c.locked = true
}

// Unlock shows and releases the cursor.
func (c *Cursor) Unlock() {
	rl.EnableCursor()
	c.locked = false
}

// Locked reports whether the cursor is currently locked.
func (c *Cursor) Locked() bool {
	return c.locked
}
