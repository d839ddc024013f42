package controller

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func defaultSettings() Settings {
	return Settings{
		DefaultSpeed:    5,
		WalkModifier:    1,
		SprintModifier:  2,
		CrouchModifier:  0.5,
		Sensitivity:     0.5,
		VerticalLookCap: 90,
		CameraSmoothing: 1,
	}
}

type fakeBody struct {
	pos r3.Vec
	rot r3.Rotation
}

func (b *fakeBody) Position() r3.Vec { return b.pos }
func (b *fakeBody) SetPosition(p r3.Vec) { b.pos = p }
func (b *fakeBody) SetRotation(r r3.Rotation) { b.rot = r }

type fakeCamera struct {
	rot r3.Rotation
}

func (c *fakeCamera) SetLocalRotation(r r3.Rotation) { c.rot = r }

type fakeActions struct {
	move           r2.Vec
	sprint, crouch float64
	look           []func(r2.Vec)
}

func (a *fakeActions) Move() r2.Vec { return a.move }
func (a *fakeActions) Sprint() float64 { return a.sprint }
func (a *fakeActions) Crouch() float64 { return a.crouch }
func (a *fakeActions) OnLook(fn func(r2.Vec)) { a.look = append(a.look, fn) }

func (a *fakeActions) fireLook(d r2.Vec) {
	for _, fn := range a.look {
		fn(d)
	}
}

type fakeCursor struct {
	locks int
}

func (c *fakeCursor) Lock() { c.locks++ }

func newTestController(s Settings) (*Controller, *fakeBody, *fakeCamera, *fakeActions, *fakeCursor) {
	body := &fakeBody{}
	cam := &fakeCamera{}
	acts := &fakeActions{}
	cur := &fakeCursor{}
	c := New(s, Deps{
		Body:    body,
		Camera:  cam,
		Actions: acts,
		Cursor:  cur,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return c, body, cam, acts, cur
}

func vecNear(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < 1e-6
}

func TestInitializeRegistersLookAndLocksCursor(t *testing.T) {
	c, _, _, acts, cur := newTestController(defaultSettings())

	c.Initialize()
	c.Initialize() // second call must not double-register

	if len(acts.look) != 1 {
		t.Fatalf("expected 1 look callback, got %d", len(acts.look))
	}
	if cur.locks != 1 {
		t.Errorf("expected cursor locked once, got %d", cur.locks)
	}

	acts.fireLook(r2.Vec{X: 10, Y: 10})
	o := c.Orientation()
	if math.Abs(o.Yaw-5) > eps || math.Abs(o.Pitch-5) > eps {
		t.Errorf("expected orientation (5, 5) via callback, got (%f, %f)", o.Yaw, o.Pitch)
	}
}

func TestApplyLookScalesBySensitivity(t *testing.T) {
	var o Orientation
	ApplyLook(&o, r2.Vec{X: 10, Y: 10}, defaultSettings())

	if math.Abs(o.Yaw-5) > eps {
		t.Errorf("expected yaw 5, got %f", o.Yaw)
	}
	if math.Abs(o.Pitch-5) > eps {
		t.Errorf("expected pitch 5, got %f", o.Pitch)
	}
}

func TestApplyLookZeroSensitivity(t *testing.T) {
	s := defaultSettings()
	s.Sensitivity = 0

	o := Orientation{Yaw: 12, Pitch: -7}
	for _, d := range []r2.Vec{{X: 100, Y: -50}, {X: -3, Y: 1e6}, {}} {
		ApplyLook(&o, d, s)
	}

	if o.Yaw != 12 || o.Pitch != -7 {
		t.Errorf("expected orientation unchanged, got (%f, %f)", o.Yaw, o.Pitch)
	}
}

func TestPitchStaysWithinCap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, limit := range []float64{0, 15, 45, 90} {
		s := defaultSettings()
		s.Sensitivity = 3
		s.VerticalLookCap = limit

		var o Orientation
		for i := 0; i < 1000; i++ {
			d := r2.Vec{X: rng.NormFloat64() * 40, Y: rng.NormFloat64() * 40}
			ApplyLook(&o, d, s)
			if o.Pitch < -limit || o.Pitch > limit {
				t.Fatalf("cap %v: pitch %f escaped after %d events", limit, o.Pitch, i+1)
			}
		}
	}
}

func TestPitchClampEdges(t *testing.T) {
	s := defaultSettings()
	s.Sensitivity = 1
	s.VerticalLookCap = 30

	var o Orientation
	ApplyLook(&o, r2.Vec{Y: 100}, s)
	if o.Pitch != 30 {
		t.Errorf("expected pitch clamped to 30, got %f", o.Pitch)
	}
	// Looking back down starts from the clamped value, not the raw sum
	ApplyLook(&o, r2.Vec{Y: -10}, s)
	if o.Pitch != 20 {
		t.Errorf("expected pitch 20, got %f", o.Pitch)
	}
	ApplyLook(&o, r2.Vec{Y: -500}, s)
	if o.Pitch != -30 {
		t.Errorf("expected pitch clamped to -30, got %f", o.Pitch)
	}
}

func TestEffectiveSpeed(t *testing.T) {
	tests := []struct {
		name   string
		in     Intent
		expect float64
	}{
		{"no modifiers", Intent{}, 5},
		{"crouch", Intent{Crouch: 1}, 2.5},
		{"sprint", Intent{Sprint: 1}, 10},
		{"crouch and sprint compound", Intent{Crouch: 1, Sprint: 1}, 5},
		{"partial press counts", Intent{Sprint: 0.2}, 10},
		{"negative does not count", Intent{Sprint: -1, Crouch: -1}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveSpeed(defaultSettings(), tt.in)
			if math.Abs(got-tt.expect) > eps {
				t.Errorf("expected speed %f, got %f", tt.expect, got)
			}
		})
	}
}

func TestMaxSpeed(t *testing.T) {
	tests := []struct {
		name           string
		sprint, crouch float64
		expect         float64
	}{
		{"defaults: sprint alone", 2, 0.5, 10},
		{"crouch above 1 compounds with sprint", 2, 1.5, 15},
		{"sprint below 1: walking is fastest", 0.5, 0.5, 5},
		{"crouch alone fastest", 0.8, 1.2, 5 * 1.2},
		{"zero modifiers", 0, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaultSettings()
			s.SprintModifier = tt.sprint
			s.CrouchModifier = tt.crouch

			got := MaxSpeed(s)
			if math.Abs(got-tt.expect) > eps {
				t.Errorf("expected max speed %f, got %f", tt.expect, got)
			}
			for _, in := range []Intent{{}, {Crouch: 1}, {Sprint: 1}, {Crouch: 1, Sprint: 1}} {
				if v := EffectiveSpeed(s, in); v > got+eps {
					t.Errorf("%+v reaches %f above max %f", in, v, got)
				}
			}
		})
	}
}

func TestDirections(t *testing.T) {
	tests := []struct {
		yaw            float64
		forward, right r3.Vec
	}{
		{0, r3.Vec{Z: -1}, r3.Vec{X: 1}},
		{90, r3.Vec{X: 1}, r3.Vec{Z: 1}},
		{180, r3.Vec{Z: 1}, r3.Vec{X: -1}},
		{-90, r3.Vec{X: -1}, r3.Vec{Z: -1}},
	}

	for _, tt := range tests {
		if f := Forward(tt.yaw); !vecNear(f, tt.forward) {
			t.Errorf("yaw %v: expected forward %v, got %v", tt.yaw, tt.forward, f)
		}
		if r := Right(tt.yaw); !vecNear(r, tt.right) {
			t.Errorf("yaw %v: expected right %v, got %v", tt.yaw, tt.right, r)
		}
	}
}

func TestLookDirectionPitch(t *testing.T) {
	up := LookDirection(Orientation{Pitch: 90})
	if !vecNear(up, r3.Vec{Y: 1}) {
		t.Errorf("expected pitch 90 to look straight up, got %v", up)
	}

	down := LookDirection(Orientation{Yaw: 90, Pitch: -45})
	want := r3.Vec{X: math.Sqrt2 / 2, Y: -math.Sqrt2 / 2}
	if !vecNear(down, want) {
		t.Errorf("expected %v, got %v", want, down)
	}
}

func TestUpdateForwardScenario(t *testing.T) {
	c, body, _, acts, _ := newTestController(defaultSettings())
	c.Initialize()

	acts.move = r2.Vec{Y: 1}
	c.Update(0.1)

	if math.Abs(r3.Norm(body.pos)-0.5) > 1e-9 {
		t.Errorf("expected displacement magnitude 0.5, got %f", r3.Norm(body.pos))
	}
	if !vecNear(body.pos, r3.Scale(0.5, Forward(0))) {
		t.Errorf("expected displacement along forward, got %v", body.pos)
	}
	if c.Pending() != (r3.Vec{}) {
		t.Errorf("expected pending reset after update, got %v", c.Pending())
	}
}

func TestUpdateMovesAlongCurrentFacing(t *testing.T) {
	c, body, _, acts, _ := newTestController(defaultSettings())
	c.Initialize()

	acts.fireLook(r2.Vec{X: 180}) // yaw 90 at sensitivity 0.5
	acts.move = r2.Vec{X: 1, Y: 1}
	c.Update(1)

	want := r3.Add(r3.Scale(5, Forward(90)), r3.Scale(5, Right(90)))
	if !vecNear(body.pos, want) {
		t.Errorf("expected position %v, got %v", want, body.pos)
	}
	if !vecNear(body.rot.Rotate(LocalForward), Forward(90)) {
		t.Error("expected body rotation to match yaw")
	}
}

func TestUpdateZeroMoveKeepsPosition(t *testing.T) {
	start := r3.Vec{X: 3, Y: 1, Z: -2}

	for _, mods := range []struct{ sprint, crouch float64 }{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		c, body, _, acts, _ := newTestController(defaultSettings())
		c.Initialize()
		body.pos = start
		acts.sprint, acts.crouch = mods.sprint, mods.crouch

		for i := 0; i < 10; i++ {
			c.Update(0.016)
		}
		if body.pos != start {
			t.Errorf("sprint=%v crouch=%v: expected position unchanged, got %v", mods.sprint, mods.crouch, body.pos)
		}
	}
}

func TestUpdateCompoundedModifiers(t *testing.T) {
	c, body, _, acts, _ := newTestController(defaultSettings())
	c.Initialize()

	acts.move = r2.Vec{Y: 1}
	acts.sprint, acts.crouch = 1, 1
	c.Update(1)

	if c.Speed() != 5 {
		t.Errorf("expected compounded speed 5, got %f", c.Speed())
	}
	if math.Abs(r3.Norm(body.pos)-5) > 1e-9 {
		t.Errorf("expected 5 units moved, got %f", r3.Norm(body.pos))
	}
}

func TestUpdateAppliesCameraPitch(t *testing.T) {
	c, _, cam, acts, _ := newTestController(defaultSettings())
	c.Initialize()

	acts.fireLook(r2.Vec{Y: 60}) // pitch 30
	c.Update(0.016)

	got := cam.rot.Rotate(LocalForward)
	want := r3.Vec{Y: 0.5, Z: -math.Sqrt(3) / 2}
	if !vecNear(got, want) {
		t.Errorf("expected camera forward %v, got %v", want, got)
	}
}

func TestSetSettingsReclampsPitch(t *testing.T) {
	c, _, _, _, _ := newTestController(defaultSettings())
	c.OnLook(r2.Vec{Y: 160}) // pitch 80

	s := defaultSettings()
	s.VerticalLookCap = 45
	c.SetSettings(s)

	if c.Orientation().Pitch != 45 {
		t.Errorf("expected pitch re-clamped to 45, got %f", c.Orientation().Pitch)
	}
}
