package camera

import (
	"testing"

	"github.com/Faultbox/penumbra/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestFlyCameraDefaults(t *testing.T) {
	c := NewFlyCamera()
	if c.Position() != (math.Vec3{Z: 3}) {
		t.Errorf("position = %+v", c.Position())
	}

	// Looking down -Z: the origin is 3 units in front
	p := c.ViewMatrix().TransformVec3(math.Vec3{})
	if !nearVec(p, math.Vec3{Z: -3}) {
		t.Errorf("origin in view space = %+v, want (0, 0, -3)", p)
	}
}

func TestFlyCameraMove(t *testing.T) {
	tests := []struct {
		name string
		move Movement
		want math.Vec3
	}{
		{"forward", Movement{Forward: true}, math.Vec3{Z: 1}},
		{"back", Movement{Back: true}, math.Vec3{Z: 5}},
		{"left", Movement{Left: true}, math.Vec3{X: -2, Z: 3}},
		{"right", Movement{Right: true}, math.Vec3{X: 2, Z: 3}},
		{"up", Movement{Up: true}, math.Vec3{Y: 2, Z: 3}},
		{"down", Movement{Down: true}, math.Vec3{Y: -2, Z: 3}},
		{"fast forward", Movement{Forward: true, Fast: true}, math.Vec3{Z: -13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFlyCamera()
			c.Move(tt.move, 1)
			if !nearVec(c.Pos, tt.want) {
				t.Errorf("position = %+v, want %+v", c.Pos, tt.want)
			}
		})
	}
}

func TestFlyCameraMoveIgnoresPitch(t *testing.T) {
	c := NewFlyCamera()
	c.Look(0, 400)
	c.Move(Movement{Forward: true}, 1)

	if !near(c.Pos.Y, 0) {
		t.Errorf("forward movement changed height: %v", c.Pos.Y)
	}
	if !near(c.Pos.Z, 1) {
		t.Errorf("z = %v, want 1", c.Pos.Z)
	}
}

func TestFlyCameraLook(t *testing.T) {
	c := NewFlyCamera()

	c.Look(900, 0) // yaw -90 -> 0
	if !nearVec(c.Front, math.Vec3{X: 1}) {
		t.Errorf("front after yaw = %+v, want +X", c.Front)
	}

	c.Look(0, 2000)
	if c.Pitch != 89 {
		t.Errorf("pitch = %v, want clamped to 89", c.Pitch)
	}
	c.Look(0, -5000)
	if c.Pitch != -89 {
		t.Errorf("pitch = %v, want clamped to -89", c.Pitch)
	}
}

func TestFlyCameraLookAt(t *testing.T) {
	c := NewFlyCamera()
	c.Pos = math.Vec3{X: 0, Y: 5, Z: 0}
	c.LookAt(math.Vec3{X: 10, Y: 5, Z: 0})

	if !nearVec(c.Front, math.Vec3{X: 1}) {
		t.Errorf("front = %+v, want +X", c.Front)
	}
	if !near(c.Yaw, 0) || !near(c.Pitch, 0) {
		t.Errorf("yaw/pitch = %v/%v", c.Yaw, c.Pitch)
	}
}

func TestOrbitCamera(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.RotationX = 0
	c.RotationY = 0
	c.Distance = 10

	if p := c.Position(); !nearVec(p, math.Vec3{X: 1, Y: 2, Z: 13}) {
		t.Errorf("position = %+v", p)
	}

	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want clamped to %v", c.Distance, c.MinDistance)
	}

	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %v, want %v", c.RotationX, c.MaxPitch)
	}

	var _ Camera = c
	var _ Camera = NewFlyCamera()
}

func TestOrbitCameraLookFrom(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Z: -2}

	eye := math.Vec3{X: 1 + 6, Y: 8, Z: -2}
	c.LookFrom(eye)
	if !near(c.Distance, 10) {
		t.Errorf("distance = %v, want 10", c.Distance)
	}
	if !nearVec(c.Position(), eye) {
		t.Errorf("position = %+v, want %+v", c.Position(), eye)
	}

	// Below the center the pitch clamps to the minimum
	c.LookFrom(math.Vec3{X: 1, Y: -5, Z: 3})
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.RotationX, c.MinPitch)
	}

	// Degenerate eye keeps the previous placement
	before := *c
	c.LookFrom(c.Center)
	if *c != before {
		t.Error("LookFrom at the center should be a no-op")
	}
}
