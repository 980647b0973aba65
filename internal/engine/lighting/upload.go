package lighting

import (
	"fmt"

	"github.com/Faultbox/penumbra/pkg/math"
)

// UniformSink receives light uniforms. shader.Program implements it.
type UniformSink interface {
	SetBool(name string, v bool)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v math.Vec3)
}

// Upload writes the sun and every point light to the shading program.
// Everything is rewritten each frame.
func Upload(sink UniformSink, sun Sun, lights *Buffer) {
	sink.SetBool("useSunLight", sun.Enabled)
	if sun.Enabled {
		sink.SetVec3("sunLight.direction", sun.Direction.Normalize())
		sink.SetVec3("sunLight.ambient", vec3(sun.Ambient))
		sink.SetVec3("sunLight.diffuse", vec3(sun.Diffuse))
		sink.SetVec3("sunLight.specular", vec3(sun.Specular))
	}

	count := 0
	if lights != nil {
		count = min(lights.Len(), MaxPointLights)
	}
	sink.SetInt("lightsNumber", int32(count))
	for i := 0; i < count; i++ {
		l := lights.Lights[i]
		prefix := fmt.Sprintf("lights[%d].", i)
		sink.SetVec3(prefix+"position", vec3(l.Position))
		sink.SetVec3(prefix+"ambient", vec3(l.Ambient))
		sink.SetVec3(prefix+"diffuse", vec3(l.Diffuse))
		sink.SetVec3(prefix+"specular", vec3(l.Specular))
		sink.SetFloat(prefix+"constant", l.Constant)
		sink.SetFloat(prefix+"linear", l.Linear)
		sink.SetFloat(prefix+"quadratic", l.Quadratic)
	}
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
