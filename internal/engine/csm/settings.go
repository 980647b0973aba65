// Package csm implements cascaded shadow maps: cascade splitting, light-space
// frustum fitting, Poisson-disk PCF offsets, the layered depth pass and the
// uniform block handed to the forward shading pass.
package csm

// MaxPoissonSamples is the size of the PCF offset array in the shading pass.
const MaxPoissonSamples = 16

// MaxCascades bounds the cascade count. It matches the uniform array sizes
// declared by the depth and forward shaders.
const MaxCascades = 8

// DefaultResolution is the width and height of every depth layer. It does not
// follow the window size.
const DefaultResolution = 2048

// DefaultTextureUnit is the texture unit the depth array is bound to for the
// shading pass.
const DefaultTextureUnit = 8

// DefaultZMultiplier stretches the light-space depth range of each cascade so
// casters outside the camera slice still land in the map.
const DefaultZMultiplier float32 = 20

// Settings holds every runtime-adjustable shadow knob.
type Settings struct {
	UseShadows    bool
	UsePCF        bool
	UsePoissonPCF bool

	Cascades   int
	Resolution int32

	PoissonSamples  int
	PoissonDiameter float32

	// BlendOffset is the overlap, in view-space units, shared by neighbouring
	// cascades. Each side of a boundary gets half of it.
	BlendOffset float32
	// SplitBlend weighs uniform against logarithmic splitting (0 = logarithmic, 1 = uniform).
	SplitBlend  float32
	ZMultiplier float32

	BiasMultiplier float32
	BiasMinimum    float32

	TextureUnit uint32

	// Seed feeds the Poisson sampler. Zero picks a random seed.
	Seed uint64
}

// DefaultSettings returns the shadow configuration used when nothing is overridden.
func DefaultSettings() Settings {
	return Settings{
		UseShadows:      true,
		UsePCF:          true,
		UsePoissonPCF:   true,
		Cascades:        4,
		Resolution:      DefaultResolution,
		PoissonSamples:  MaxPoissonSamples,
		PoissonDiameter: 6,
		BlendOffset:     1,
		SplitBlend:      0.35,
		ZMultiplier:     DefaultZMultiplier,
		BiasMultiplier:  0.015,
		BiasMinimum:     0.0015,
		TextureUnit:     DefaultTextureUnit,
	}
}

// Normalized returns a copy with every value pulled into its valid range.
func (s Settings) Normalized() Settings {
	s.Cascades = clampInt(s.Cascades, 1, MaxCascades)
	s.PoissonSamples = clampInt(s.PoissonSamples, 1, MaxPoissonSamples)
	if s.Resolution <= 0 {
		s.Resolution = DefaultResolution
	}
	if s.SplitBlend < 0 {
		s.SplitBlend = 0
	}
	if s.SplitBlend > 1 {
		s.SplitBlend = 1
	}
	if s.BlendOffset < 0 {
		s.BlendOffset = 0
	}
	switch {
	case s.ZMultiplier <= 0:
		s.ZMultiplier = DefaultZMultiplier
	case s.ZMultiplier < 1:
		s.ZMultiplier = 1
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
