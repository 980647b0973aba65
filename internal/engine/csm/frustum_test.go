package csm

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/penumbra/pkg/math"
)

func testView() ViewParams {
	return ViewParams{
		View:   math.LookAt(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{Y: 1}),
		FovY:   math.Radians(45),
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    200,
	}
}

func TestFrustumCornersIdentity(t *testing.T) {
	corners := FrustumCorners(math.Identity(), math.Identity())

	assert.Equal(t, math.Vec4{-1, -1, -1, 1}, corners[0])
	assert.Equal(t, math.Vec4{-1, -1, 1, 1}, corners[1])
	assert.Equal(t, math.Vec4{1, 1, 1, 1}, corners[7])
	assert.Equal(t, math.Vec3{}, CornersCenter(corners))
}

func TestFrustumCornersRoundTrip(t *testing.T) {
	view := math.LookAt(math.Vec3{X: 3, Y: 4, Z: -2}, math.Vec3{X: 0, Y: 1, Z: 5}, math.Vec3{Y: 1})
	proj := math.Perspective(math.Radians(45), 16.0/9.0, 0.1, 200)
	viewProj := proj.Mul(view)

	corners := FrustumCorners(proj, view)
	i := 0
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				c := corners[i]
				assert.InDelta(t, 1, c[3], 1e-6, "corner %d w", i)

				ndc := viewProj.MulVec4(c).PerspectiveDivide()
				assert.InDelta(t, 2*float32(x)-1, ndc[0], 1e-4, "corner %d x", i)
				assert.InDelta(t, 2*float32(y)-1, ndc[1], 1e-4, "corner %d y", i)
				assert.InDelta(t, 2*float32(z)-1, ndc[2], 1e-4, "corner %d z", i)
				i++
			}
		}
	}
}

func TestFitCascadeContainsCorners(t *testing.T) {
	v := testView()
	lights := []math.Vec3{
		{X: 0, Y: -1, Z: 0},
		{X: 0.3, Y: 1, Z: 0.2},
		{X: -1, Y: 0.5, Z: 1},
	}

	for _, light := range lights {
		proj := math.Perspective(v.FovY, v.Aspect, 0.1, 20)
		c := FitCascade(proj, v.View, light, DefaultZMultiplier)

		corners := FrustumCorners(proj, v.View)
		for i, corner := range corners {
			p := c.View.MulVec4(corner).XYZ()
			assert.True(t, c.Bounds.Contains(p, 1e-3), "light %v: corner %d outside bounds", light, i)

			ndc := c.LightSpace.MulVec4(corner).PerspectiveDivide()
			assert.InDelta(t, 0, ndc[0], 1+1e-4, "light %v: corner %d x", light, i)
			assert.InDelta(t, 0, ndc[1], 1+1e-4, "light %v: corner %d y", light, i)
		}

		assert.InDelta(t, c.Bounds.Max.X-c.Bounds.Min.X, c.Extent, 1e-6)
		assert.Equal(t, float32(1), c.PCFScale)
	}
}

func TestLightViewParallelUp(t *testing.T) {
	m := LightView(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{Y: -1})
	for i, v := range m {
		assert.False(t, math32.IsNaN(v), "element %d is NaN", i)
	}

	// the centre sits one unit in front of the light
	p := m.MulVec4(math.Vec4{1, 2, 3, 1})
	assert.InDelta(t, -1, p[2], 1e-5)
}

func TestBoundsScaleZ(t *testing.T) {
	b := Bounds{Min: math.Vec3{Z: -2}, Max: math.Vec3{Z: 3}}
	s := b.ScaleZ(10)
	assert.Equal(t, float32(-20), s.Min.Z)
	assert.Equal(t, float32(30), s.Max.Z)

	b = Bounds{Min: math.Vec3{Z: 2}, Max: math.Vec3{Z: 4}}
	s = b.ScaleZ(2)
	assert.Equal(t, float32(1), s.Min.Z)
	assert.Equal(t, float32(8), s.Max.Z)

	b = Bounds{Min: math.Vec3{Z: -8}, Max: math.Vec3{Z: -4}}
	s = b.ScaleZ(2)
	assert.Equal(t, float32(-16), s.Min.Z)
	assert.Equal(t, float32(-2), s.Max.Z)
}

func TestPlanFrameDepthRanges(t *testing.T) {
	s := DefaultSettings()
	frame := PlanFrame(testView(), math.Vec3{Y: -1}, s)

	require.Len(t, frame.Splits, s.Cascades+1)
	require.Len(t, frame.Cascades, s.Cascades)
	require.Len(t, frame.PCFMultipliers, s.Cascades)

	for i, c := range frame.Cascades {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, frame.Splits[i], c.Near)
		assert.Equal(t, frame.Splits[i+1], c.Far)
		assert.Equal(t, frame.PCFMultipliers[i], c.PCFScale)
		if i == 0 {
			continue
		}
		prev := frame.Cascades[i-1]
		assert.GreaterOrEqual(t, c.Bounds.Depth(), prev.Bounds.Depth(), "cascade %d depth range shrank", i)
		assert.GreaterOrEqual(t, c.Bounds.ScaleZ(s.ZMultiplier).Depth(), prev.Bounds.ScaleZ(s.ZMultiplier).Depth())
		assert.LessOrEqual(t, c.PCFScale, prev.PCFScale)
	}

	assert.Equal(t, float32(1), frame.PCFMultipliers[0])
	assert.Len(t, frame.LightSpaceMatrices(), s.Cascades)
	assert.False(t, frame.Empty())
}

func TestSettingsNormalized(t *testing.T) {
	s := Settings{Cascades: 99, PoissonSamples: -1, SplitBlend: 2, BlendOffset: -1}.Normalized()

	assert.Equal(t, MaxCascades, s.Cascades)
	assert.Equal(t, 1, s.PoissonSamples)
	assert.Equal(t, int32(DefaultResolution), s.Resolution)
	assert.Equal(t, float32(1), s.SplitBlend)
	assert.Equal(t, float32(0), s.BlendOffset)
	assert.Equal(t, DefaultZMultiplier, s.ZMultiplier)

	assert.Equal(t, DefaultSettings(), DefaultSettings().Normalized())

	shrink := DefaultSettings()
	shrink.ZMultiplier = 0.5
	assert.Equal(t, float32(1), shrink.Normalized().ZMultiplier)

	box := Bounds{Min: math.Vec3{Z: -4}, Max: math.Vec3{Z: 6}}
	assert.GreaterOrEqual(t, box.ScaleZ(shrink.Normalized().ZMultiplier).Depth(), box.Depth())
}
