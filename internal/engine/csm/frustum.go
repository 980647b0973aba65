package csm

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/penumbra/pkg/math"
)

// Bounds is an axis-aligned box in light view space.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Contains reports whether p lies inside the box, allowing eps of slack.
func (b Bounds) Contains(p math.Vec3, eps float32) bool {
	return p.X >= b.Min.X-eps && p.X <= b.Max.X+eps &&
		p.Y >= b.Min.Y-eps && p.Y <= b.Max.Y+eps &&
		p.Z >= b.Min.Z-eps && p.Z <= b.Max.Z+eps
}

// Depth returns the z extent of the box.
func (b Bounds) Depth() float32 {
	return b.Max.Z - b.Min.Z
}

// ScaleZ stretches the depth range by mult. Negative minimum z is multiplied
// and positive minimum z divided, with the opposite rule for maximum z, so the
// box always grows. The factor is an empirical tuning value.
func (b Bounds) ScaleZ(mult float32) Bounds {
	if b.Min.Z < 0 {
		b.Min.Z *= mult
	} else {
		b.Min.Z /= mult
	}
	if b.Max.Z < 0 {
		b.Max.Z /= mult
	} else {
		b.Max.Z *= mult
	}
	return b
}

// Ortho builds the orthographic projection spanning the box.
func (b Bounds) Ortho() math.Mat4 {
	return math.Ortho(b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z)
}

// FrustumCorners returns the 8 world-space corners of the volume seen through
// proj * view, ordered x-major then y then z over the NDC cube {-1, 1}^3.
func FrustumCorners(proj, view math.Mat4) [8]math.Vec4 {
	inv := proj.Mul(view).Inverse()

	var corners [8]math.Vec4
	i := 0
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				ndc := math.Vec4{2*float32(x) - 1, 2*float32(y) - 1, 2*float32(z) - 1, 1}
				corners[i] = inv.MulVec4(ndc).PerspectiveDivide()
				i++
			}
		}
	}
	return corners
}

// CornersCenter returns the mean of the corners.
func CornersCenter(corners [8]math.Vec4) math.Vec3 {
	var c math.Vec3
	for _, v := range corners {
		c = c.Add(v.XYZ())
	}
	return c.Scale(1.0 / float32(len(corners)))
}

// LightView looks at center from one unit along lightDir. lightDir points
// towards the light. A light parallel to world up switches the up vector to +Z.
func LightView(center, lightDir math.Vec3) math.Mat4 {
	dir := lightDir.Normalize()
	up := math.Vec3{Y: 1}
	if math32.Abs(dir.Y) > 0.999 {
		up = math.Vec3{Z: 1}
	}
	return math.LookAt(center.Add(dir), center, up)
}

// LightBounds transforms the corners with view and returns their bounding box.
func LightBounds(corners [8]math.Vec4, view math.Mat4) Bounds {
	inf := math32.Inf(1)
	b := Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
	for _, c := range corners {
		p := view.MulVec4(c).XYZ()
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// FitCascade computes the light-space transform of the frustum slice seen
// through sliceProj * camView. Index, split distances and PCFScale are left
// for the caller.
func FitCascade(sliceProj, camView math.Mat4, lightDir math.Vec3, zMult float32) Cascade {
	corners := FrustumCorners(sliceProj, camView)
	view := LightView(CornersCenter(corners), lightDir)

	bounds := LightBounds(corners, view)
	proj := bounds.ScaleZ(zMult).Ortho()

	return Cascade{
		View:       view,
		Projection: proj,
		LightSpace: proj.Mul(view),
		Bounds:     bounds,
		Extent:     bounds.Max.X - bounds.Min.X,
		PCFScale:   1,
	}
}
