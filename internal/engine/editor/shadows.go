package editor

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/penumbra/internal/engine/csm"
	"github.com/Faultbox/penumbra/internal/engine/lighting"
)

// ShadowControls is the runtime surface of the shadow system. *csm.System
// implements it.
type ShadowControls interface {
	Settings() csm.Settings
	SetUseShadows(bool)
	SetUsePCF(bool)
	SetUsePoissonPCF(bool)
	SetPoissonSamples(int)
	SetPoissonDiameter(float32)
	SetBlendOffset(float32)
	SetSplitBlend(float32)
	SetZMultiplier(float32)
	SetBias(multiplier, minimum float32)
	SetCascadeCount(int) error
	SetResolution(int32) error
}

var _ ShadowControls = (*csm.System)(nil)

// Shadow resolutions are edited as powers of two.
const (
	minResolutionExp = 9  // 512
	maxResolutionExp = 13 // 8192
)

// ShadowProperties lists every shadow knob.
func ShadowProperties(s ShadowControls) []Property {
	return []Property{
		BoolProperty("Shadows",
			func() bool { return s.Settings().UseShadows }, s.SetUseShadows),
		BoolProperty("PCF",
			func() bool { return s.Settings().UsePCF }, s.SetUsePCF),
		BoolProperty("Poisson PCF",
			func() bool { return s.Settings().UsePoissonPCF }, s.SetUsePoissonPCF),
		IntProperty("Poisson samples", 1, csm.MaxPoissonSamples,
			func() int { return s.Settings().PoissonSamples },
			func(n int) error { s.SetPoissonSamples(n); return nil }),
		FloatProperty("Poisson diameter", 0.5, 0, 64,
			func() float32 { return s.Settings().PoissonDiameter }, s.SetPoissonDiameter),
		IntProperty("Cascades", 1, csm.MaxCascades,
			func() int { return s.Settings().Cascades }, s.SetCascadeCount),
		resolutionProperty(s),
		FloatProperty("Split blend", 0.05, 0, 1,
			func() float32 { return s.Settings().SplitBlend }, s.SetSplitBlend),
		FloatProperty("Blend offset", 0.1, 0, 50,
			func() float32 { return s.Settings().BlendOffset }, s.SetBlendOffset),
		FloatProperty("Z multiplier", 1, 1, 100,
			func() float32 { return s.Settings().ZMultiplier }, s.SetZMultiplier),
		FloatProperty("Bias multiplier", 0.001, 0, 1,
			func() float32 { return s.Settings().BiasMultiplier },
			func(v float32) { s.SetBias(v, s.Settings().BiasMinimum) }),
		FloatProperty("Bias minimum", 0.0001, 0, 1,
			func() float32 { return s.Settings().BiasMinimum },
			func(v float32) { s.SetBias(s.Settings().BiasMultiplier, v) }),
	}
}

func resolutionProperty(s ShadowControls) Property {
	return Property{
		Name: "Shadow resolution",
		Kind: Int,
		Step: 1,
		Min:  minResolutionExp,
		Max:  maxResolutionExp,
		Get: func() float32 {
			return math32.Round(math32.Log2(float32(s.Settings().Resolution)))
		},
		Set: func(v float32) error {
			return s.SetResolution(int32(1) << int(math32.Round(v)))
		},
		Format: func(v float32) string {
			r := int32(1) << int(v)
			return fmt.Sprintf("%dx%d", r, r)
		},
	}
}

// SunProperties edits the sun as azimuth/elevation angles.
func SunProperties(sun *lighting.Sun) []Property {
	angles := func() (float32, float32) { return lighting.Angles(sun.Direction) }
	return []Property{
		BoolProperty("Sun",
			func() bool { return sun.Enabled },
			func(b bool) { sun.Enabled = b }),
		FloatProperty("Sun azimuth", 5, -5, 365,
			func() float32 { az, _ := angles(); return az },
			func(v float32) {
				_, el := angles()
				sun.Direction = lighting.SunDirection(math32.Mod(v+360, 360), el)
			}),
		FloatProperty("Sun elevation", 1, 1, 89,
			func() float32 { _, el := angles(); return el },
			func(v float32) {
				az, _ := angles()
				sun.Direction = lighting.SunDirection(az, v)
			}),
	}
}
