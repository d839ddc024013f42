package physics

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/fpwalk/components"
)

func setupWorld(t *testing.T) (*World, ecs.Entity, ecs.Entity) {
	t.Helper()

	ecsWorld := ecs.NewWorld()
	player := ecsWorld.NewEntity()
	box := ecsWorld.NewEntity()

	w := NewWorld()
	w.AddCapsule(player, r3.Vec{}, components.CapsuleCollider{Radius: 0.5, Height: 1.8})
	w.AddBox(box, r3.Vec{X: 5}, components.Obstacle{Width: 2, Depth: 2, Height: 3})
	return w, player, box
}

func TestNoContactWhenApart(t *testing.T) {
	w, player, _ := setupWorld(t)
	w.Step(1.0 / 60)

	if w.Contacts(player) {
		t.Error("expected no contact with box 5 units away")
	}
}

func TestContactWhenOverlapping(t *testing.T) {
	w, player, _ := setupWorld(t)

	// Box spans x in [4, 6]; a 0.5 radius capsule at x=3.8 reaches 4.3
	w.SetPosition(player, r3.Vec{X: 3.8, Y: 0, Z: 0.2})
	w.Step(1.0 / 60)

	if !w.Contacts(player) {
		t.Error("expected contact after moving into the box")
	}
}

func TestSetPositionIgnoresHeight(t *testing.T) {
	w, player, _ := setupWorld(t)

	w.SetPosition(player, r3.Vec{X: 1, Y: 7, Z: -2})
	got, ok := w.Position(player)
	if !ok {
		t.Fatal("expected player body")
	}
	if got != (r3.Vec{X: 1, Z: -2}) {
		t.Errorf("expected plane position (1, 0, -2), got %v", got)
	}
}

func TestRemove(t *testing.T) {
	w, player, box := setupWorld(t)

	w.Remove(box)
	if w.Len() != 1 {
		t.Errorf("expected 1 body after removal, got %d", w.Len())
	}

	w.SetPosition(player, r3.Vec{X: 5})
	if w.Contacts(player) {
		t.Error("expected no contact after the box was removed")
	}
	if w.Contacts(box) {
		t.Error("removed entity must report no contact")
	}
}

func TestContactFollowsMovesWithoutStep(t *testing.T) {
	w, player, _ := setupWorld(t)

	tests := []struct {
		pos  r3.Vec
		want bool
	}{
		{r3.Vec{X: 3.8}, true},
		{r3.Vec{X: 0}, false},
		{r3.Vec{X: 5, Z: 1.2}, true},
		{r3.Vec{X: 5, Z: -3}, false},
	}
	for _, tt := range tests {
		w.SetPosition(player, tt.pos)
		if got := w.Contacts(player); got != tt.want {
			t.Errorf("at %v: contact = %v, want %v", tt.pos, got, tt.want)
		}
	}
}
