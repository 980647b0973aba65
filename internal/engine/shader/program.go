package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/penumbra/pkg/math"
)

// Program is a linked shader program with a uniform location cache.
// Setters silently skip uniforms the driver optimised away.
type Program struct {
	id        uint32
	locations map[string]int32
}

// NewProgram compiles and links a vertex + fragment program.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return wrap(id), nil
}

// NewProgramWithGeometry compiles and links a vertex + geometry + fragment program.
func NewProgramWithGeometry(vertexSrc, geometrySrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgramWithGeometry(vertexSrc, geometrySrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return wrap(id), nil
}

func wrap(id uint32) *Program {
	return &Program{id: id, locations: make(map[string]int32)}
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Location returns the cached uniform location, querying GL on first use.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

// SetBool uploads a bool uniform.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

// SetInt uploads an int uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// SetFloat uploads a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// SetVec2 uploads a vec2 uniform.
func (p *Program) SetVec2(name string, v math.Vec2) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform2f(loc, v.X, v.Y)
	}
}

// SetVec3 uploads a vec3 uniform.
func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc := p.Location(name); loc >= 0 {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetMat4 uploads a mat4 uniform.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.Location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// SetMat3 uploads the upper-left 3x3 of m as a mat3 uniform.
func (p *Program) SetMat3(name string, m math.Mat4) {
	if loc := p.Location(name); loc >= 0 {
		m3 := [9]float32{
			m[0], m[1], m[2],
			m[4], m[5], m[6],
			m[8], m[9], m[10],
		}
		gl.UniformMatrix3fv(loc, 1, false, &m3[0])
	}
}

// Delete frees the GL program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
	clear(p.locations)
}
