package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/penumbra/internal/engine/lighting"
	"github.com/Faultbox/penumbra/pkg/math"
)

// File is the on-disk form of a scene.
type File struct {
	Name      string         `yaml:"name"`
	Sun       SunFile        `yaml:"sun"`
	Lights    []LightFile    `yaml:"lights,omitempty"`
	Instances []InstanceFile `yaml:"instances"`
}

// SunFile describes the directional light.
type SunFile struct {
	Enabled   bool       `yaml:"enabled"`
	Direction [3]float32 `yaml:"direction"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
}

// LightFile describes a point light.
type LightFile struct {
	Position  [3]float32 `yaml:"position"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
	Constant  float32    `yaml:"constant"`
	Linear    float32    `yaml:"linear"`
	Quadratic float32    `yaml:"quadratic"`
}

// InstanceFile describes one placed model. Rotation is in degrees.
type InstanceFile struct {
	Model    string     `yaml:"model"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
	Scale    [3]float32 `yaml:"scale"`
	Color    [3]float32 `yaml:"color"`
}

// ReadFile decodes a scene from r.
func ReadFile(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return &f, nil
}

// LoadFile reads a scene file from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	f, err := ReadFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// SaveFile writes the scene file to path, creating the directory if needed.
func (f *File) SaveFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating scene dir: %w", err)
		}
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scene file: %w", err)
	}
	return nil
}

// Apply replaces the instances and lights of s with the content of f.
// Instances naming an unknown model are kept but never drawn, and reported
// through log.
func (s *Scene) Apply(f *File, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	s.Clear()
	if f.Name != "" {
		s.Name = f.Name
	}

	s.Sun = lighting.Sun{
		Enabled:   f.Sun.Enabled,
		Direction: vec3(f.Sun.Direction),
		Ambient:   f.Sun.Ambient,
		Diffuse:   f.Sun.Diffuse,
		Specular:  f.Sun.Specular,
	}
	if s.Sun.Direction.Length() == 0 {
		s.Sun.Direction = lighting.DefaultSun().Direction
	}

	lights := make([]lighting.PointLight, len(f.Lights))
	for i, l := range f.Lights {
		lights[i] = lighting.PointLight(l)
	}
	if len(lights) > lighting.MaxPointLights {
		log.Warn("point lights dropped, buffer full",
			zap.Int("max", lighting.MaxPointLights), zap.Int("count", len(lights)))
	}
	s.Lights.Set(lights)

	for _, fi := range f.Instances {
		model, ok := s.models[fi.Model]
		if !ok {
			log.Warn("scene instance references unknown model", zap.String("model", fi.Model))
		}
		inst := NewInstance(model, vec3(fi.Position))
		inst.Rotation = vec3(fi.Rotation)
		if fi.Scale != ([3]float32{}) {
			inst.Scale = vec3(fi.Scale)
		}
		if fi.Color != ([3]float32{}) {
			inst.Color = fi.Color
		}
		s.Instances = append(s.Instances, inst)
	}
}

// Snapshot captures the current scene as a File.
func (s *Scene) Snapshot() *File {
	f := &File{
		Name: s.Name,
		Sun: SunFile{
			Enabled:   s.Sun.Enabled,
			Direction: s.Sun.Direction.Array(),
			Ambient:   s.Sun.Ambient,
			Diffuse:   s.Sun.Diffuse,
			Specular:  s.Sun.Specular,
		},
	}
	for _, l := range s.Lights.Lights {
		f.Lights = append(f.Lights, LightFile(l))
	}
	for _, inst := range s.Instances {
		name := ""
		if inst.Model != nil {
			name = inst.Model.Name
		}
		f.Instances = append(f.Instances, InstanceFile{
			Model:    name,
			Position: inst.Position.Array(),
			Rotation: inst.Rotation.Array(),
			Scale:    inst.Scale.Array(),
			Color:    inst.Color,
		})
	}
	return f
}

// DefaultFile is the scene shown when no scene file is configured: a ground
// plane with a ring of boxes and spheres spread over the shadow range.
func DefaultFile() *File {
	sun := lighting.DefaultSun()
	f := &File{
		Name: "default",
		Sun: SunFile{
			Enabled:   true,
			Direction: sun.Direction.Array(),
			Ambient:   sun.Ambient,
			Diffuse:   sun.Diffuse,
			Specular:  sun.Specular,
		},
		Instances: []InstanceFile{
			{Model: "plane", Scale: [3]float32{1, 1, 1}, Color: [3]float32{0.8, 0.8, 0.8}},
		},
	}

	for i := 0; i < 12; i++ {
		d := float32(4 + i*i)
		model := "cube"
		if i%2 == 1 {
			model = "sphere"
		}
		size := 1 + float32(i)*0.25
		f.Instances = append(f.Instances, InstanceFile{
			Model:    model,
			Position: [3]float32{float32(i%3-1) * d * 0.5, size / 2, -d},
			Rotation: [3]float32{0, float32(i * 30), 0},
			Scale:    [3]float32{size, size, size},
			Color:    [3]float32{0.9, 0.55 + float32(i%3)*0.15, 0.4},
		})
	}
	return f
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
