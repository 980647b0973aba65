package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/penumbra/pkg/math"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-3
}

func TestScreenToRayCenter(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(math.Radians(60), 1, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(400, 300, 800, 600, inv)
	if !near(r.Direction.X, 0) || !near(r.Direction.Y, 0) || !near(r.Direction.Z, -1) {
		t.Errorf("center ray should point down -Z, got %+v", r.Direction)
	}
	if !near(r.Origin.Z, 4.9) {
		t.Errorf("ray should start on the near plane, got z=%v", r.Origin.Z)
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.Vec3{Y: 10}, Direction: math.Vec3{X: 1, Y: -1}.Normalize()}
	x, z, ok := r.IntersectPlaneY(0)
	if !ok || !near(x, 10) || !near(z, 0) {
		t.Errorf("IntersectPlaneY = (%v, %v, %v), want (10, 0, true)", x, z, ok)
	}

	if _, _, ok := r.IntersectPlaneY(20); ok {
		t.Error("plane behind the ray should not intersect")
	}

	flat := Ray{Direction: math.Vec3{X: 1}}
	if _, _, ok := flat.IntersectPlaneY(0); ok {
		t.Error("parallel ray should not intersect")
	}
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name    string
		ray     Ray
		wantHit bool
		wantT   float32
	}{
		{"hit from front", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 4},
		{"miss", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"inside returns exit", Ray{Direction: math.Vec3{X: 1}}, true, 1},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if hit && !near(got, tt.wantT) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestTransformAABB(t *testing.T) {
	local := AABB{Min: math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, Max: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	model := math.Translate(10, 0, 0).Mul(math.RotateY(math.Radians(45))).Mul(math.Scale(2, 2, 2))

	box := TransformAABB(local, model)
	half := float32(math32.Sqrt2) // rotated unit cube scaled by 2
	if !near(box.Min.X, 10-half) || !near(box.Max.X, 10+half) {
		t.Errorf("x range = [%v, %v], want [%v, %v]", box.Min.X, box.Max.X, 10-half, 10+half)
	}
	if !near(box.Min.Y, -1) || !near(box.Max.Y, 1) {
		t.Errorf("y range = [%v, %v], want [-1, 1]", box.Min.Y, box.Max.Y)
	}
}

type box struct {
	pos   math.Vec3
	empty bool
}

func (b box) ModelMatrix() math.Mat4 { return math.Translate(b.pos.X, b.pos.Y, b.pos.Z) }

func (b box) LocalBounds() (AABB, bool) {
	return AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}, !b.empty
}

func TestPickNearest(t *testing.T) {
	targets := []box{
		{pos: math.Vec3{Z: -20}},
		{pos: math.Vec3{Z: -5}, empty: true},
		{pos: math.Vec3{Z: -10}},
		{pos: math.Vec3{X: 10, Z: -3}},
	}
	r := Ray{Direction: math.Vec3{Z: -1}}

	if got := Pick(r, targets); got != 2 {
		t.Errorf("Pick = %d, want 2", got)
	}
	if got := Pick(Ray{Direction: math.Vec3{Z: 1}}, targets); got != -1 {
		t.Errorf("Pick behind = %d, want -1", got)
	}
}
