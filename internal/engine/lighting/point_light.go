package lighting

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 16

// PointLight is an omnidirectional light with distance attenuation
// 1 / (constant + linear*d + quadratic*d^2).
type PointLight struct {
	Position  [3]float32
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Constant  float32
	Linear    float32
	Quadratic float32
}

// NewPointLight creates a white light at pos with a short falloff.
func NewPointLight(pos [3]float32) PointLight {
	return PointLight{
		Position:  pos,
		Ambient:   [3]float32{0.1, 0.1, 0.1},
		Diffuse:   [3]float32{1, 1, 1},
		Specular:  [3]float32{0.5, 0.5, 0.5},
		Constant:  1.0,
		Linear:    0.7,
		Quadratic: 1.8,
	}
}

// Buffer holds the point lights uploaded to the shader.
type Buffer struct {
	Lights []PointLight
}

// NewBuffer creates an empty point light buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Len returns the number of lights.
func (b *Buffer) Len() int {
	return len(b.Lights)
}

// Clear removes all lights from the buffer.
func (b *Buffer) Clear() {
	b.Lights = b.Lights[:0]
}

// Add adds a point light to the buffer.
// Returns false if buffer is full.
func (b *Buffer) Add(light PointLight) bool {
	if len(b.Lights) >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	return true
}

// Remove deletes the light at index i, keeping the order of the rest.
func (b *Buffer) Remove(i int) bool {
	if i < 0 || i >= len(b.Lights) {
		return false
	}
	b.Lights = append(b.Lights[:i], b.Lights[i+1:]...)
	return true
}

// Set replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *Buffer) Set(lights []PointLight) {
	b.Clear()
	count := min(len(lights), MaxPointLights)
	b.Lights = append(b.Lights, lights[:count]...)
}
