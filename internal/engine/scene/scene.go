// Package scene holds the model instances and lights that make up a frame.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/penumbra/internal/engine/csm"
	"github.com/Faultbox/penumbra/internal/engine/lighting"
	"github.com/Faultbox/penumbra/pkg/math"
)

// ErrUnknownModel is returned when an instance names a model that was never registered.
var ErrUnknownModel = errors.New("unknown model")

// Scene manages the registered models, their instances and the lights.
type Scene struct {
	Name      string
	Instances []*Instance
	Sun       lighting.Sun
	Lights    *lighting.Buffer

	models map[string]*Model
}

// New creates an empty scene lit by the default sun.
func New(name string) *Scene {
	return &Scene{
		Name:   name,
		Sun:    lighting.DefaultSun(),
		Lights: lighting.NewBuffer(),
		models: make(map[string]*Model),
	}
}

// RegisterModel makes a model available to instances by name. A model with
// the same name is replaced.
func (s *Scene) RegisterModel(m *Model) {
	s.models[m.Name] = m
}

// Model returns the registered model with the given name.
func (s *Scene) Model(name string) (*Model, bool) {
	m, ok := s.models[name]
	return m, ok
}

// ModelNames returns the registered model names in sorted order.
func (s *Scene) ModelNames() []string {
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddInstance places a registered model at position.
func (s *Scene) AddInstance(model string, position math.Vec3) (*Instance, error) {
	m, ok := s.models[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	inst := NewInstance(m, position)
	s.Instances = append(s.Instances, inst)
	return inst, nil
}

// RemoveInstance removes the instance at index i.
func (s *Scene) RemoveInstance(i int) bool {
	if i < 0 || i >= len(s.Instances) {
		return false
	}
	s.Instances = append(s.Instances[:i], s.Instances[i+1:]...)
	return true
}

// Casters returns every instance as a shadow caster. Non-drawable instances
// are included; the shadow pass skips them.
func (s *Scene) Casters() []csm.Caster {
	out := make([]csm.Caster, len(s.Instances))
	for i, inst := range s.Instances {
		out[i] = inst
	}
	return out
}

// Clear removes every instance and light. Registered models are kept.
func (s *Scene) Clear() {
	s.Instances = nil
	s.Lights.Clear()
}
