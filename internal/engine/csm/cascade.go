package csm

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/penumbra/pkg/math"
)

// Cascade is one depth slice of the camera frustum and the light-space
// transform that covers it. Index 0 is nearest to the camera.
type Cascade struct {
	Index int
	// Near and Far are the split distances of the slice, without blend overlap.
	Near, Far float32

	View       math.Mat4
	Projection math.Mat4
	// LightSpace is Projection * View.
	LightSpace math.Mat4

	// Bounds is the light-space box of the slice before z stretching.
	Bounds Bounds
	// Extent is the light-space width of the slice (maxX - minX).
	Extent float32
	// PCFScale keeps filter softness constant in world units across cascades.
	PCFScale float32
}

// BuildSplits partitions [near, far] into count slices and returns count+1
// distances. Each inner split blends a logarithmic position with a uniform
// one: lerp(pow(mult, i), (far-near)/count*i, blend) + near, where
// mult = (far-near)^(1/count). The first split is near and the last is far.
func BuildSplits(near, far float32, count int, blend float32) []float32 {
	if count < 1 {
		count = 1
	}
	blend = math32.Max(0, math32.Min(1, blend))

	depth := far - near
	mult := math32.Pow(depth, 1/float32(count))

	splits := make([]float32, 0, count+1)
	splits = append(splits, near)
	for i := 1; i < count; i++ {
		logarithmic := math32.Pow(mult, float32(i))
		uniform := depth / float32(count) * float32(i)
		splits = append(splits, math.Lerp(logarithmic, uniform, blend)+near)
	}
	splits = append(splits, far)
	return splits
}

// SliceRange returns the near and far distances of cascade i widened by the
// blend overlap. Boundaries shared with a neighbour move out by offset/2; the
// camera near and far planes never move and no slice starts before the
// camera near plane. A single cascade gets no overlap.
func SliceRange(i int, splits []float32, offset float32) (near, far float32) {
	last := len(splits) - 2
	near, far = splits[i], splits[i+1]
	half := offset / 2
	if i > 0 {
		near = max(near-half, splits[0])
	}
	if i < last {
		far += half
	}
	return near, far
}

// PCFMultipliers returns extents[0]/extents[i] for every cascade so the
// filter radius shrinks on cascades whose texels cover more world space.
func PCFMultipliers(extents []float32) []float32 {
	out := make([]float32, len(extents))
	for i, e := range extents {
		if e == 0 {
			out[i] = 1
			continue
		}
		out[i] = extents[0] / e
	}
	return out
}
