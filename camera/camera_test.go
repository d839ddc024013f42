package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fpwalk/components"
	"github.com/pthm-cable/fpwalk/controller"
)

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < 1e-9
}

func newView(pos r3.Vec, yaw, pitch float64) View {
	body := components.NewTransform(pos)
	body.Rotation = controller.BodyRotation(yaw)
	rig := components.NewCameraRig(1.6, 70)
	rig.LocalRotation = controller.CameraRotation(pitch)
	return FromRig(body, rig, 1280, 720)
}

func TestFromRigDefault(t *testing.T) {
	v := newView(r3.Vec{X: 2, Z: 3}, 0, 0)

	if !near(v.Eye, r3.Vec{X: 2, Y: 1.6, Z: 3}) {
		t.Errorf("expected eye at head height, got %v", v.Eye)
	}
	if !near(v.Forward, r3.Vec{Z: -1}) {
		t.Errorf("expected forward -Z, got %v", v.Forward)
	}
	if !near(v.Up, r3.Vec{Y: 1}) {
		t.Errorf("expected up +Y, got %v", v.Up)
	}
	if !near(v.Target(), r3.Vec{X: 2, Y: 1.6, Z: 2}) {
		t.Errorf("unexpected target %v", v.Target())
	}
}

func TestFromRigMatchesLookDirection(t *testing.T) {
	tests := []struct {
		yaw, pitch float64
	}{
		{90, 0},
		{-45, 30},
		{180, -60},
		{10, 90},
	}

	for _, tt := range tests {
		v := newView(r3.Vec{}, tt.yaw, tt.pitch)
		want := controller.LookDirection(controller.Orientation{Yaw: tt.yaw, Pitch: tt.pitch})
		if !near(v.Forward, want) {
			t.Errorf("yaw %v pitch %v: expected forward %v, got %v", tt.yaw, tt.pitch, want, v.Forward)
		}
		if math.Abs(r3.Dot(v.Forward, v.Up)) > 1e-9 {
			t.Errorf("yaw %v pitch %v: up not orthogonal to forward", tt.yaw, tt.pitch)
		}
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	v := newView(r3.Vec{}, 0, 0)

	// A point straight ahead maps to the screen center
	sx, sy, ok := v.WorldToScreen(r3.Vec{Y: 1.6, Z: -10})
	if !ok {
		t.Fatal("expected point in front to project")
	}
	if math.Abs(sx-640) > 0.01 || math.Abs(sy-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}

	// Right and up in the world are right and up on screen
	sx, sy, _ = v.WorldToScreen(r3.Vec{X: 1, Y: 2.6, Z: -10})
	if sx <= 640 || sy >= 360 {
		t.Errorf("expected upper-right quadrant, got (%f, %f)", sx, sy)
	}
}

func TestWorldToScreenBehind(t *testing.T) {
	v := newView(r3.Vec{}, 0, 0)

	if _, _, ok := v.WorldToScreen(r3.Vec{Y: 1.6, Z: 5}); ok {
		t.Error("expected point behind the camera not to project")
	}
}

func TestIsVisible(t *testing.T) {
	v := newView(r3.Vec{}, 0, 0)

	tests := []struct {
		name   string
		p      r3.Vec
		radius float64
		want   bool
	}{
		{"ahead", r3.Vec{Y: 1.6, Z: -10}, 1, true},
		{"behind", r3.Vec{Y: 1.6, Z: 10}, 1, false},
		{"far left", r3.Vec{X: -100, Y: 1.6, Z: -5}, 1, false},
		{"edge overlap", r3.Vec{X: -10, Y: 1.6, Z: -1}, 10, true},
		{"beyond far plane", r3.Vec{Y: 1.6, Z: -1000}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.IsVisible(tt.p, tt.radius); got != tt.want {
				t.Errorf("IsVisible(%v, %v) = %v, want %v", tt.p, tt.radius, got, tt.want)
			}
		})
	}
}

func TestResize(t *testing.T) {
	v := newView(r3.Vec{}, 0, 0)
	v.Resize(800, 800)

	if v.Aspect() != 1 {
		t.Errorf("expected aspect 1, got %f", v.Aspect())
	}
}
