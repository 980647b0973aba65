// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/penumbra/internal/engine/csm"
	"github.com/Faultbox/penumbra/pkg/math"
)

// LineVertex is one endpoint of a colored debug line.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// BoxEdgeCount is the number of edges of a box or frustum wireframe.
const BoxEdgeCount = 12

// BBoxLines creates a wireframe for an axis-aligned box.
// Returns 24 vertices (12 edges x 2 endpoints).
func BBoxLines(lo, hi math.Vec3, color [3]float32) []LineVertex {
	var corners [8]math.Vec4
	i := 0
	for _, x := range [2]float32{lo.X, hi.X} {
		for _, y := range [2]float32{lo.Y, hi.Y} {
			for _, z := range [2]float32{lo.Z, hi.Z} {
				corners[i] = math.Vec4{x, y, z, 1}
				i++
			}
		}
	}
	return CornerLines(corners, color)
}

// CornerLines connects 8 corners ordered x-major then y then z (the order of
// csm.FrustumCorners) into 12 edges. Corners i and j share an edge when
// their indices differ in exactly one bit.
func CornerLines(corners [8]math.Vec4, color [3]float32) []LineVertex {
	out := make([]LineVertex, 0, BoxEdgeCount*2)
	for i := range 8 {
		for _, bit := range [3]int{1, 2, 4} {
			if i&bit != 0 {
				continue
			}
			out = append(out, vertex(corners[i], color), vertex(corners[i|bit], color))
		}
	}
	return out
}

func vertex(p math.Vec4, c [3]float32) LineVertex {
	return LineVertex{X: p[0], Y: p[1], Z: p[2], R: c[0], G: c[1], B: c[2]}
}

// CascadeColors tints cascades in order; the forward shader uses the same palette.
var CascadeColors = [4][3]float32{
	{1.0, 0.4, 0.4},
	{0.4, 1.0, 0.4},
	{0.4, 0.4, 1.0},
	{1.0, 1.0, 0.4},
}

// CascadeLines outlines, for every cascade of frame, the camera slice it
// covers and the light-space box fitted around it (drawn at half intensity).
func CascadeLines(view csm.ViewParams, frame *csm.Frame) []LineVertex {
	var out []LineVertex
	for _, c := range frame.Cascades {
		color := CascadeColors[c.Index%len(CascadeColors)]
		dim := [3]float32{color[0] * 0.5, color[1] * 0.5, color[2] * 0.5}

		slice := math.Perspective(view.FovY, view.Aspect, c.Near, c.Far)
		out = append(out, CornerLines(csm.FrustumCorners(slice, view.View), color)...)
		out = append(out, CornerLines(csm.FrustumCorners(c.Projection, c.View), dim)...)
	}
	return out
}

// GridLines returns a square grid on the XZ plane at height y, centred on the
// origin, with divisions cells per side.
func GridLines(size float32, divisions int, y float32, color [3]float32) []LineVertex {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float32(divisions)

	out := make([]LineVertex, 0, (divisions+1)*4)
	for i := 0; i <= divisions; i++ {
		p := -half + float32(i)*step
		out = append(out,
			vertex(math.Vec4{p, y, -half, 1}, color), vertex(math.Vec4{p, y, half, 1}, color),
			vertex(math.Vec4{-half, y, p, 1}, color), vertex(math.Vec4{half, y, p, 1}, color),
		)
	}
	return out
}
