// Package hud draws a 2D text overlay on top of the rendered frame.
package hud

import (
	_ "embed"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/penumbra/internal/engine/shader"
	"github.com/Faultbox/penumbra/pkg/math"
)

//go:embed shaders/hud.vert
var hudVertexShader string

//go:embed shaders/hud.frag
var hudFragmentShader string

// Renderer uploads a Batch and draws it in screen space.
type Renderer struct {
	*Batch

	program  *shader.Program
	vao, vbo uint32
	atlasTex uint32
	capacity int
}

// New compiles the overlay program and uploads the glyph atlas.
func New() (*Renderer, error) {
	program, err := shader.NewProgram(hudVertexShader, hudFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("hud program: %w", err)
	}

	atlas := NewAtlas()
	r := &Renderer{Batch: NewBatch(atlas), program: program}
	r.atlasTex = uploadAtlas(atlas)

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(unsafe.Sizeof(Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 8)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 16)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return r, nil
}

func uploadAtlas(a *Atlas) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	size := a.Image.Rect.Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(size.X), int32(size.Y), 0,
		gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&a.Image.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	// Nearest keeps the bitmap glyphs crisp at integer scales
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Flush draws everything queued since the last Flush onto the bound
// framebuffer of the given pixel size, then resets the batch.
func (r *Renderer) Flush(width, height int32) {
	defer r.Reset()
	if r.Empty() {
		return
	}

	prevBlend := gl.IsEnabled(gl.BLEND)
	prevDepth := gl.IsEnabled(gl.DEPTH_TEST)
	prevCull := gl.IsEnabled(gl.CULL_FACE)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	r.program.Use()
	r.program.SetMat4("projection", math.Ortho(0, float32(width), float32(height), 0, -1, 1))
	r.program.SetInt("glyphs", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)
	gl.BindVertexArray(r.vao)

	r.program.SetBool("textured", false)
	r.draw(r.Quads)
	r.program.SetBool("textured", true)
	r.draw(r.Glyphs)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if !prevBlend {
		gl.Disable(gl.BLEND)
	}
	if prevDepth {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull {
		gl.Enable(gl.CULL_FACE)
	}
}

func (r *Renderer) draw(vertices []Vertex) {
	if len(vertices) == 0 {
		return
	}
	size := len(vertices) * int(unsafe.Sizeof(Vertex{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(vertices) > r.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
		r.capacity = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&vertices[0]))
	}
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)))
}

// Destroy releases GPU resources.
func (r *Renderer) Destroy() {
	if r.atlasTex != 0 {
		gl.DeleteTextures(1, &r.atlasTex)
		r.atlasTex = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}
