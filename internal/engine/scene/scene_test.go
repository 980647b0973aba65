package scene

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/penumbra/internal/engine/mesh"
	"github.com/Faultbox/penumbra/internal/engine/picking"
	"github.com/Faultbox/penumbra/pkg/math"
)

type countingMesh struct{ draws int }

func (m *countingMesh) Draw() { m.draws++ }

func newTestScene() (*Scene, *countingMesh) {
	s := New("test")
	m := &countingMesh{}
	s.RegisterModel(&Model{Name: "cube", Meshes: []Drawable{m}})
	s.RegisterModel(&Model{Name: "empty"})
	return s, m
}

func TestInstanceModelMatrixOrder(t *testing.T) {
	inst := NewInstance(nil, math.Vec3{X: 1, Y: 2, Z: 3})
	inst.Rotation = math.Vec3{X: 10, Y: 20, Z: 30}
	inst.Scale = math.Vec3{X: 2, Y: 3, Z: 4}

	want := math.Translate(1, 2, 3).
		Mul(math.RotateZ(math.Radians(30))).
		Mul(math.RotateX(math.Radians(10))).
		Mul(math.RotateY(math.Radians(20))).
		Mul(math.Scale(2, 3, 4))

	assert.Equal(t, want, inst.ModelMatrix())

	// translation lands in the last column
	m := NewInstance(nil, math.Vec3{X: 5, Y: -1, Z: 7}).ModelMatrix()
	assert.Equal(t, float32(5), m[12])
	assert.Equal(t, float32(-1), m[13])
	assert.Equal(t, float32(7), m[14])
}

func TestInstanceDrawable(t *testing.T) {
	s, counter := newTestScene()

	cube, err := s.AddInstance("cube", math.Vec3{})
	require.NoError(t, err)
	empty, err := s.AddInstance("empty", math.Vec3{})
	require.NoError(t, err)
	orphan := NewInstance(nil, math.Vec3{})

	assert.True(t, cube.Drawable())
	assert.False(t, empty.Drawable())
	assert.False(t, orphan.Drawable())

	cube.Draw()
	orphan.Draw()
	assert.Equal(t, 1, counter.draws)

	cube.Visible = false
	assert.False(t, cube.Drawable())
	cube.Draw()
	assert.Equal(t, 1, counter.draws)
}

func TestAddInstanceUnknownModel(t *testing.T) {
	s, _ := newTestScene()
	_, err := s.AddInstance("teapot", math.Vec3{})
	assert.ErrorIs(t, err, ErrUnknownModel)
	assert.Empty(t, s.Instances)
}

func TestSceneCastersAndRemove(t *testing.T) {
	s, _ := newTestScene()
	for i := 0; i < 3; i++ {
		_, err := s.AddInstance("cube", math.Vec3{X: float32(i)})
		require.NoError(t, err)
	}

	assert.Len(t, s.Casters(), 3)
	assert.True(t, s.RemoveInstance(1))
	assert.False(t, s.RemoveInstance(5))
	require.Len(t, s.Instances, 2)
	assert.Equal(t, float32(2), s.Instances[1].Position.X)

	assert.Equal(t, []string{"cube", "empty"}, s.ModelNames())
}

func TestApplyFile(t *testing.T) {
	const doc = `
name: yard
sun:
  enabled: true
  direction: [0, 1, 0]
  ambient: [0.2, 0.2, 0.2]
  diffuse: [1, 1, 1]
  specular: [0.5, 0.5, 0.5]
lights:
  - position: [1, 2, 3]
    diffuse: [1, 0, 0]
    constant: 1
    linear: 0.7
    quadratic: 1.8
instances:
  - model: cube
    position: [0, 1, 0]
    rotation: [0, 45, 0]
    scale: [2, 2, 2]
  - model: teapot
    position: [4, 0, 0]
`
	f, err := ReadFile(strings.NewReader(doc))
	require.NoError(t, err)

	s, _ := newTestScene()
	s.Apply(f, nil)

	assert.Equal(t, "yard", s.Name)
	assert.Equal(t, math.Vec3{Y: 1}, s.Sun.Direction)
	assert.Equal(t, [3]float32{0.2, 0.2, 0.2}, s.Sun.Ambient)
	require.Equal(t, 1, s.Lights.Len())
	assert.Equal(t, float32(1.8), s.Lights.Lights[0].Quadratic)

	require.Len(t, s.Instances, 2)
	cube := s.Instances[0]
	assert.True(t, cube.Drawable())
	assert.Equal(t, math.Vec3{Y: 45}, cube.Rotation)
	assert.Equal(t, math.Vec3{X: 2, Y: 2, Z: 2}, cube.Scale)
	assert.Equal(t, [3]float32{1, 1, 1}, cube.Color, "missing color defaults to white")

	teapot := s.Instances[1]
	assert.False(t, teapot.Drawable())
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, teapot.Scale, "missing scale defaults to one")
}

func TestSaveAndLoadFile(t *testing.T) {
	s, _ := newTestScene()
	s.Apply(DefaultFile(), nil)

	path := filepath.Join(t.TempDir(), "scenes", "default.yaml")
	require.NoError(t, s.Snapshot().SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), loaded)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestReadFileEmpty(t *testing.T) {
	f, err := ReadFile(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Instances)
}

type boundedMesh struct {
	countingMesh
	bounds mesh.Bounds
}

func (m *boundedMesh) Bounds() mesh.Bounds { return m.bounds }

func TestInstanceLocalBounds(t *testing.T) {
	a := &boundedMesh{bounds: mesh.Bounds{Min: [3]float32{-1, 0, -1}, Max: [3]float32{1, 1, 1}}}
	b := &boundedMesh{bounds: mesh.Bounds{Min: [3]float32{0, -2, 0}, Max: [3]float32{3, 0, 0.5}}}
	model := &Model{Name: "pair", Meshes: []Drawable{a, b, &countingMesh{}}}

	inst := NewInstance(model, math.Vec3{})
	box, ok := inst.LocalBounds()
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: -1, Y: -2, Z: -1}, box.Min)
	assert.Equal(t, math.Vec3{X: 3, Y: 1, Z: 1}, box.Max)

	unbounded := NewInstance(&Model{Name: "raw", Meshes: []Drawable{&countingMesh{}}}, math.Vec3{})
	_, ok = unbounded.LocalBounds()
	assert.False(t, ok)

	inst.Visible = false
	_, ok = inst.LocalBounds()
	assert.False(t, ok)
}

func TestPickInstances(t *testing.T) {
	unit := &boundedMesh{bounds: mesh.Cube(1).Bounds}
	s := New("pick")
	s.RegisterModel(&Model{Name: "cube", Meshes: []Drawable{unit}})

	_, err := s.AddInstance("cube", math.Vec3{Z: -10})
	require.NoError(t, err)
	near, err := s.AddInstance("cube", math.Vec3{Z: -4})
	require.NoError(t, err)
	near.Scale = math.Vec3{X: 0.1, Y: 0.1, Z: 0.1}

	ray := picking.Ray{Direction: math.Vec3{Z: -1}}
	assert.Equal(t, 1, picking.Pick(ray, s.Instances))

	near.Position.X = 5
	assert.Equal(t, 0, picking.Pick(ray, s.Instances))
}
