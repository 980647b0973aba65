package mesh

import (
	"github.com/chewxy/math32"
)

// Builder accumulates triangles and tracks the bounding box.
type Builder struct {
	vertices []Vertex
	indices  []uint32
	bounds   Bounds
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{bounds: emptyBounds()}
}

// AddTriangle appends a counter-clockwise triangle with a flat face normal.
// Degenerate triangles are dropped.
func (b *Builder) AddTriangle(p0, p1, p2 [3]float32) bool {
	e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	n := Cross(e1, e2)

	mag := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if mag < 1e-5 {
		return false
	}
	normal := [3]float32{n[0] / mag, n[1] / mag, n[2] / mag}

	base := uint32(len(b.vertices))
	for _, p := range [3][3]float32{p0, p1, p2} {
		updateBounds(&b.bounds, p)
		b.vertices = append(b.vertices, Vertex{Position: p, Normal: normal})
	}
	b.indices = append(b.indices, base, base+1, base+2)
	return true
}

// AddQuad appends two triangles for the counter-clockwise quad p0 p1 p2 p3.
func (b *Builder) AddQuad(p0, p1, p2, p3 [3]float32) {
	b.AddTriangle(p0, p1, p2)
	b.AddTriangle(p0, p2, p3)
}

// Build returns the accumulated mesh, or nil when nothing was added.
func (b *Builder) Build() *Mesh {
	if len(b.vertices) == 0 {
		return nil
	}
	return &Mesh{
		Vertices: b.vertices,
		Indices:  b.indices,
		Bounds:   b.bounds,
	}
}

// Cube builds an axis-aligned cube of edge length size centred on the origin.
func Cube(size float32) *Mesh {
	h := size / 2
	c := [8][3]float32{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}

	b := NewBuilder()
	b.AddQuad(c[4], c[5], c[6], c[7]) // +Z
	b.AddQuad(c[1], c[0], c[3], c[2]) // -Z
	b.AddQuad(c[5], c[1], c[2], c[6]) // +X
	b.AddQuad(c[0], c[4], c[7], c[3]) // -X
	b.AddQuad(c[7], c[6], c[2], c[3]) // +Y
	b.AddQuad(c[0], c[1], c[5], c[4]) // -Y
	return b.Build()
}

// Plane builds a flat square on the XZ plane facing +Y, split into
// divisions x divisions quads.
func Plane(size float32, divisions int) *Mesh {
	if divisions < 1 {
		divisions = 1
	}
	h := size / 2
	step := size / float32(divisions)

	b := NewBuilder()
	for i := 0; i < divisions; i++ {
		for j := 0; j < divisions; j++ {
			x0 := -h + float32(i)*step
			z0 := -h + float32(j)*step
			x1, z1 := x0+step, z0+step
			b.AddQuad(
				[3]float32{x0, 0, z1},
				[3]float32{x1, 0, z1},
				[3]float32{x1, 0, z0},
				[3]float32{x0, 0, z0},
			)
		}
	}
	return b.Build()
}

// Sphere builds a UV sphere with smoothed normals.
func Sphere(radius float32, stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	point := func(stack, slice int) [3]float32 {
		phi := math32.Pi * float32(stack) / float32(stacks)
		theta := 2 * math32.Pi * float32(slice) / float32(slices)
		sinPhi, cosPhi := math32.Sincos(phi)
		sinTheta, cosTheta := math32.Sincos(theta)
		return [3]float32{
			radius * sinPhi * cosTheta,
			radius * cosPhi,
			radius * sinPhi * sinTheta,
		}
	}

	b := NewBuilder()
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			p0 := point(i, j)
			p1 := point(i+1, j)
			p2 := point(i+1, j+1)
			p3 := point(i, j+1)
			// the pole rows collapse to triangles
			b.AddTriangle(p0, p2, p1)
			b.AddTriangle(p0, p3, p2)
		}
	}

	m := b.Build()
	SmoothNormals(m.Vertices)
	return m
}

// SmoothNormals averages normals at shared vertex positions.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(math32.Round(vertices[i].Position[0] / epsilon)),
			int32(math32.Round(vertices[i].Position[1] / epsilon)),
			int32(math32.Round(vertices[i].Position[2] / epsilon)),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum [3]float32
		for _, idx := range idxs {
			sum[0] += vertices[idx].Normal[0]
			sum[1] += vertices[idx].Normal[1]
			sum[2] += vertices[idx].Normal[2]
		}

		avg := Normalize(sum)
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

// Cross computes the cross product of two 3D vectors.
func Cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Normalize returns a unit vector in the same direction as v, or +Y for a
// near-zero vector.
func Normalize(v [3]float32) [3]float32 {
	length := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if length < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / length, v[1] / length, v[2] / length}
}
