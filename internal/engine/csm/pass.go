package csm

import (
	_ "embed"
	"fmt"

	"github.com/Faultbox/penumbra/internal/engine/shader"
	"github.com/Faultbox/penumbra/pkg/math"
)

//go:embed shaders/depth.vert
var depthVertexShader string

//go:embed shaders/depth.geom
var depthGeometryShader string

//go:embed shaders/depth.frag
var depthFragmentShader string

// Caster is anything that can be drawn into the shadow map.
type Caster interface {
	// Drawable reports whether the caster has geometry bound.
	Drawable() bool
	ModelMatrix() math.Mat4
	// Draw issues the draw calls for every mesh with the current program.
	Draw()
}

// Pass renders casters into a DepthArray.
type Pass interface {
	Render(target DepthArray, frame *Frame, casters []Caster)
	Destroy()
}

// GLDepthPass draws each caster once; a geometry shader with one invocation
// per cascade fans every triangle out to all layers.
type GLDepthPass struct {
	program *shader.Program
	layers  int
}

// NewGLDepthPass compiles the depth program for the given cascade count.
func NewGLDepthPass(layers int) (*GLDepthPass, error) {
	if layers < 1 || layers > MaxCascades {
		return nil, fmt.Errorf("cascade count %d out of range [1, %d]", layers, MaxCascades)
	}

	geom := shader.InjectDefines(depthGeometryShader,
		fmt.Sprintf("CASCADE_COUNT %d", layers),
		fmt.Sprintf("MAX_CASCADES %d", MaxCascades),
	)
	program, err := shader.NewProgramWithGeometry(depthVertexShader, geom, depthFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("depth program: %w", err)
	}

	return &GLDepthPass{program: program, layers: layers}, nil
}

// Render clears the target and draws every drawable caster into all layers.
func (p *GLDepthPass) Render(target DepthArray, frame *Frame, casters []Caster) {
	target.Bind()
	defer target.Unbind()

	p.program.Use()
	for i, c := range frame.Cascades {
		p.program.SetMat4(uniformIndex(uniformLightSpace, i), c.LightSpace)
	}

	for _, c := range casters {
		if !c.Drawable() {
			continue
		}
		p.program.SetMat4("model", c.ModelMatrix())
		c.Draw()
	}
}

// Destroy frees the depth program.
func (p *GLDepthPass) Destroy() {
	if p.program != nil {
		p.program.Delete()
		p.program = nil
	}
}

func uniformIndex(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}
