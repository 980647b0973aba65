// Package forward implements the main shading pass. It consumes the cascade
// data published by the shadow system and lights every scene instance into
// the bound (HDR) target.
package forward

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/penumbra/internal/engine/csm"
	"github.com/Faultbox/penumbra/internal/engine/lighting"
	"github.com/Faultbox/penumbra/internal/engine/scene"
	"github.com/Faultbox/penumbra/internal/engine/shader"
	"github.com/Faultbox/penumbra/pkg/math"
)

//go:embed shaders/main.vert
var mainVertexShader string

//go:embed shaders/main.frag
var mainFragmentShader string

// Sink is the uniform surface the pass writes to. shader.Program implements it.
type Sink interface {
	csm.UniformSink
	lighting.UniformSink
	SetMat3(name string, m math.Mat4)
}

// Publisher hands the per-frame shadow uniforms to the pass. *csm.System
// implements it.
type Publisher interface {
	Publish(sink csm.UniformSink)
}

// View is the camera state for one frame.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
}

// Options are the pass settings adjustable at runtime.
type Options struct {
	Shininess    float32
	ShowCascades bool
	// LightMarkers draws an unlit marker at every light position.
	LightMarkers bool
	ClearColor   [3]float32
}

// DefaultOptions returns the startup pass settings.
func DefaultOptions() Options {
	return Options{
		Shininess:    32,
		LightMarkers: true,
		ClearColor:   [3]float32{0.05, 0.06, 0.08},
	}
}

// Renderer draws scenes with the forward shading program.
type Renderer struct {
	program *shader.Program
	log     *zap.Logger

	// Marker is drawn at light positions when LightMarkers is set.
	Marker  *scene.Model
	Options Options
}

// NewRenderer compiles the forward program.
func NewRenderer(log *zap.Logger) (*Renderer, error) {
	program, err := shader.NewProgram(mainVertexShader, mainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("forward program: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("forward program compiled", zap.Uint32("id", program.ID()))

	return &Renderer{
		program: program,
		log:     log,
		Options: DefaultOptions(),
	}, nil
}

// Render clears the bound target and draws every instance of sc. The shadow
// pass for this frame must already have run.
func (r *Renderer) Render(v View, sc *scene.Scene, shadows Publisher) {
	c := r.Options.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)

	r.program.Use()
	draw(r.program, v, sc, shadows, r.Options, r.Marker)
}

// draw issues every uniform write and draw call for one frame.
func draw(sink Sink, v View, sc *scene.Scene, shadows Publisher, opts Options, marker *scene.Model) {
	sink.SetMat4("view", v.View)
	sink.SetMat4("projection", v.Projection)
	sink.SetVec3("viewPos", v.Eye)
	sink.SetFloat("shininess", opts.Shininess)
	sink.SetBool("showCascades", opts.ShowCascades)

	if shadows != nil {
		shadows.Publish(sink)
	}
	lighting.Upload(sink, sc.Sun, sc.Lights)

	sink.SetBool("useLighting", true)
	for _, inst := range sc.Instances {
		if !inst.Drawable() {
			continue
		}
		drawInstance(sink, inst.ModelMatrix(), inst.Color, inst)
	}

	if !opts.LightMarkers || marker == nil || len(marker.Meshes) == 0 {
		return
	}
	sink.SetBool("useLighting", false)
	for _, m := range lightMarkers(sc) {
		drawInstance(sink, m.model, m.color, modelDrawer{marker})
	}
}

type drawer interface {
	Draw()
}

type modelDrawer struct{ m *scene.Model }

func (d modelDrawer) Draw() {
	for _, mesh := range d.m.Meshes {
		mesh.Draw()
	}
}

func drawInstance(sink Sink, model math.Mat4, color [3]float32, d drawer) {
	sink.SetMat4("model", model)
	sink.SetMat3("normalMatrix", NormalMatrix(model))
	sink.SetVec3("albedo", math.Vec3{X: color[0], Y: color[1], Z: color[2]})
	d.Draw()
}

// NormalMatrix returns transpose(inverse(model)); only the upper 3x3 is used.
func NormalMatrix(model math.Mat4) math.Mat4 {
	return model.Inverse().Transpose()
}

const (
	markerSize     = 0.2
	sunMarkerRange = 30
)

type marker struct {
	model math.Mat4
	color [3]float32
}

// lightMarkers places a small cube at each point light and one far out
// along the sun direction.
func lightMarkers(sc *scene.Scene) []marker {
	var out []marker
	if sc.Sun.Enabled {
		p := sc.Sun.Direction.Normalize().Scale(sunMarkerRange)
		out = append(out, marker{markerMatrix(p), sc.Sun.Diffuse})
	}
	if sc.Lights != nil {
		for _, l := range sc.Lights.Lights {
			p := math.Vec3{X: l.Position[0], Y: l.Position[1], Z: l.Position[2]}
			out = append(out, marker{markerMatrix(p), l.Diffuse})
		}
	}
	return out
}

func markerMatrix(p math.Vec3) math.Mat4 {
	return math.Translate(p.X, p.Y, p.Z).Mul(math.Scale(markerSize, markerSize, markerSize))
}

// Destroy frees the program.
func (r *Renderer) Destroy() {
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}
