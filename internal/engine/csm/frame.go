package csm

import "github.com/Faultbox/penumbra/pkg/math"

// ViewParams describes the camera a frame is rendered from.
type ViewParams struct {
	View math.Mat4
	// FovY is the vertical field of view in radians.
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

// Projection returns the full camera projection.
func (v ViewParams) Projection() math.Mat4 {
	return math.Perspective(v.FovY, v.Aspect, v.Near, v.Far)
}

// Frame is the per-frame cascade data. It is rebuilt from scratch every
// frame and read by both the depth pass and the shading pass.
type Frame struct {
	Splits         []float32
	Cascades       []Cascade
	PCFMultipliers []float32
}

// LightSpaceMatrices returns the matrix of every cascade in order.
func (f *Frame) LightSpaceMatrices() []math.Mat4 {
	out := make([]math.Mat4, len(f.Cascades))
	for i, c := range f.Cascades {
		out[i] = c.LightSpace
	}
	return out
}

// Empty reports whether the frame holds no cascades.
func (f *Frame) Empty() bool {
	return len(f.Cascades) == 0
}

// PlanFrame splits the camera range, fits every cascade to the light and
// derives the per-cascade PCF multipliers.
func PlanFrame(view ViewParams, lightDir math.Vec3, s Settings) Frame {
	splits := BuildSplits(view.Near, view.Far, s.Cascades, s.SplitBlend)
	n := len(splits) - 1

	cascades := make([]Cascade, n)
	extents := make([]float32, n)
	for i := range cascades {
		near, far := SliceRange(i, splits, s.BlendOffset)
		sliceProj := math.Perspective(view.FovY, view.Aspect, near, far)

		c := FitCascade(sliceProj, view.View, lightDir, s.ZMultiplier)
		c.Index = i
		c.Near, c.Far = splits[i], splits[i+1]
		cascades[i] = c
		extents[i] = c.Extent
	}

	multipliers := PCFMultipliers(extents)
	for i := range cascades {
		cascades[i].PCFScale = multipliers[i]
	}

	return Frame{
		Splits:         splits,
		Cascades:       cascades,
		PCFMultipliers: multipliers,
	}
}
