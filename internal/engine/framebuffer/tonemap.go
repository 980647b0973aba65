package framebuffer

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/penumbra/internal/engine/shader"
)

//go:embed shaders/fullscreen.vert
var fullscreenVertexShader string

//go:embed shaders/tonemap.frag
var tonemapFragmentShader string

// DefaultExposure is the exposure used when none is configured.
const DefaultExposure float32 = 1

// Tonemapper resolves an HDR color texture into the bound LDR target with
// exponential exposure mapping and gamma correction.
type Tonemapper struct {
	program *shader.Program
	vao     uint32

	Exposure     float32
	GammaCorrect bool
}

// NewTonemapper compiles the resolve program.
func NewTonemapper() (*Tonemapper, error) {
	program, err := shader.NewProgram(fullscreenVertexShader, tonemapFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("tonemap program: %w", err)
	}

	t := &Tonemapper{
		program:      program,
		Exposure:     DefaultExposure,
		GammaCorrect: true,
	}
	// Core profile refuses draws without a bound VAO
	gl.GenVertexArrays(1, &t.vao)
	return t, nil
}

// Resolve draws src into whatever framebuffer is currently bound.
func (t *Tonemapper) Resolve(src *Framebuffer) {
	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	t.program.Use()
	t.program.SetInt("hdrBuffer", 0)
	t.program.SetFloat("exposure", t.Exposure)
	t.program.SetBool("gammaCorrect", t.GammaCorrect)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, src.ColorTexture())

	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

// Destroy releases the program and VAO.
func (t *Tonemapper) Destroy() {
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		t.vao = 0
	}
	if t.program != nil {
		t.program.Delete()
		t.program = nil
	}
}
