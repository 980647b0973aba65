package scene

import (
	"github.com/Faultbox/penumbra/internal/engine/csm"
	"github.com/Faultbox/penumbra/internal/engine/mesh"
	"github.com/Faultbox/penumbra/internal/engine/picking"
	"github.com/Faultbox/penumbra/pkg/math"
)

// Drawable is a GPU mesh that can issue its own draw call.
type Drawable interface {
	Draw()
}

// Model is a named set of meshes shared by any number of instances.
type Model struct {
	Name   string
	Meshes []Drawable
}

// Instance places a model in the world. Rotation is in degrees.
type Instance struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
	Color    [3]float32

	Model   *Model
	Visible bool
}

var (
	_ csm.Caster     = (*Instance)(nil)
	_ picking.Target = (*Instance)(nil)
)

// Bounded is implemented by meshes that know their local bounds.
type Bounded interface {
	Bounds() mesh.Bounds
}

// NewInstance creates a visible instance with unit scale and a white color.
func NewInstance(model *Model, position math.Vec3) *Instance {
	return &Instance{
		Position: position,
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Color:    [3]float32{1, 1, 1},
		Model:    model,
		Visible:  true,
	}
}

// Drawable reports whether the instance has a model with geometry and is visible.
func (i *Instance) Drawable() bool {
	return i.Visible && i.Model != nil && len(i.Model.Meshes) > 0
}

// ModelMatrix returns translate * rotZ * rotX * rotY * scale.
func (i *Instance) ModelMatrix() math.Mat4 {
	m := math.Translate(i.Position.X, i.Position.Y, i.Position.Z)
	m = m.Mul(math.RotateZ(math.Radians(i.Rotation.Z)))
	m = m.Mul(math.RotateX(math.Radians(i.Rotation.X)))
	m = m.Mul(math.RotateY(math.Radians(i.Rotation.Y)))
	return m.Mul(math.Scale(i.Scale.X, i.Scale.Y, i.Scale.Z))
}

// Draw draws every mesh of the model with the bound program.
func (i *Instance) Draw() {
	if !i.Drawable() {
		return
	}
	for _, m := range i.Model.Meshes {
		m.Draw()
	}
}

// LocalBounds returns the union of the model's mesh bounds in model space.
// Meshes without bounds are ignored.
func (i *Instance) LocalBounds() (picking.AABB, bool) {
	if !i.Drawable() {
		return picking.AABB{}, false
	}

	var box picking.AABB
	found := false
	for _, d := range i.Model.Meshes {
		b, ok := d.(Bounded)
		if !ok {
			continue
		}
		mb := b.Bounds()
		lo := math.Vec3{X: mb.Min[0], Y: mb.Min[1], Z: mb.Min[2]}
		hi := math.Vec3{X: mb.Max[0], Y: mb.Max[1], Z: mb.Max[2]}
		if !found {
			box = picking.AABB{Min: lo, Max: hi}
			found = true
			continue
		}
		box.Min = box.Min.Min(lo)
		box.Max = box.Max.Max(hi)
	}
	return box, found
}
