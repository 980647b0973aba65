package editor

import (
	"github.com/Faultbox/penumbra/internal/engine/scene"
)

// InstanceProperties edits whichever instance selected returns. With no
// selection the properties read zero and ignore writes.
func InstanceProperties(selected func() *scene.Instance) []Property {
	field := func(name string, step, lo, hi float32, ptr func(*scene.Instance) *float32) Property {
		return FloatProperty(name, step, lo, hi,
			func() float32 {
				if inst := selected(); inst != nil {
					return *ptr(inst)
				}
				return 0
			},
			func(v float32) {
				if inst := selected(); inst != nil {
					*ptr(inst) = v
				}
			})
	}

	return []Property{
		field("Position X", 0.25, -500, 500, func(i *scene.Instance) *float32 { return &i.Position.X }),
		field("Position Y", 0.25, -500, 500, func(i *scene.Instance) *float32 { return &i.Position.Y }),
		field("Position Z", 0.25, -500, 500, func(i *scene.Instance) *float32 { return &i.Position.Z }),
		field("Rotation X", 5, -360, 360, func(i *scene.Instance) *float32 { return &i.Rotation.X }),
		field("Rotation Y", 5, -360, 360, func(i *scene.Instance) *float32 { return &i.Rotation.Y }),
		field("Rotation Z", 5, -360, 360, func(i *scene.Instance) *float32 { return &i.Rotation.Z }),
		FloatProperty("Scale", 0.1, 0.1, 100,
			func() float32 {
				if inst := selected(); inst != nil {
					return inst.Scale.X
				}
				return 0
			},
			func(v float32) {
				if inst := selected(); inst != nil {
					inst.Scale.X, inst.Scale.Y, inst.Scale.Z = v, v, v
				}
			}),
		BoolProperty("Visible",
			func() bool {
				inst := selected()
				return inst != nil && inst.Visible
			},
			func(b bool) {
				if inst := selected(); inst != nil {
					inst.Visible = b
				}
			}),
	}
}
