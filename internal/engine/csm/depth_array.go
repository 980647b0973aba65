package csm

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrIncompleteTarget is returned when the depth framebuffer cannot be completed.
var ErrIncompleteTarget = errors.New("incomplete shadow framebuffer")

// DepthArray is the layered depth target written by the shadow pass and
// sampled by the shading pass.
type DepthArray interface {
	// Bind makes the target current, sets the viewport to the layer size and clears depth.
	Bind()
	// Unbind restores the default framebuffer and the previous viewport.
	Unbind()
	// BindTexture binds the depth array to GL_TEXTURE0 + unit.
	BindTexture(unit uint32)
	Resolution() int32
	Layers() int
	Destroy()
}

// GLDepthArray is a GL_TEXTURE_2D_ARRAY depth texture attached to its own framebuffer.
type GLDepthArray struct {
	fbo          uint32
	texture      uint32
	resolution   int32
	layers       int
	prevViewport [4]int32
}

// NewGLDepthArray allocates a resolution x resolution depth texture with one
// layer per cascade. Nothing is leaked when the framebuffer is incomplete.
func NewGLDepthArray(resolution int32, layers int) (*GLDepthArray, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	if layers < 1 {
		layers = 1
	}

	da := &GLDepthArray{
		resolution: resolution,
		layers:     layers,
	}

	gl.GenTextures(1, &da.texture)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, da.texture)
	gl.TexImage3D(
		gl.TEXTURE_2D_ARRAY,
		0,
		gl.DEPTH_COMPONENT32F,
		resolution,
		resolution,
		int32(layers),
		0,
		gl.DEPTH_COMPONENT,
		gl.FLOAT,
		nil,
	)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// Outside the light volume everything reads as lit
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	gl.GenFramebuffers(1, &da.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, da.fbo)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, da.texture, 0)

	// Depth only
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		da.Destroy()
		return nil, fmt.Errorf("%w: status 0x%x", ErrIncompleteTarget, status)
	}

	return da, nil
}

// Bind binds the framebuffer for the depth pass.
func (da *GLDepthArray) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &da.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, da.fbo)
	gl.Viewport(0, 0, da.resolution, da.resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Cull front faces to reduce shadow acne on closed meshes
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.FRONT)
}

// Unbind restores the default framebuffer, viewport and back-face culling.
func (da *GLDepthArray) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(da.prevViewport[0], da.prevViewport[1], da.prevViewport[2], da.prevViewport[3])
	gl.CullFace(gl.BACK)
}

// BindTexture binds the depth array to the given texture unit index.
func (da *GLDepthArray) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, da.texture)
}

// Resolution returns the width (= height) of every layer.
func (da *GLDepthArray) Resolution() int32 {
	return da.resolution
}

// Layers returns the number of layers.
func (da *GLDepthArray) Layers() int {
	return da.layers
}

// Destroy releases the framebuffer and texture. Safe to call twice.
func (da *GLDepthArray) Destroy() {
	if da.fbo != 0 {
		gl.DeleteFramebuffers(1, &da.fbo)
		da.fbo = 0
	}
	if da.texture != 0 {
		gl.DeleteTextures(1, &da.texture)
		da.texture = 0
	}
}
