package csm

import "github.com/Faultbox/penumbra/pkg/math"

// UniformSink receives shadow uniforms. shader.Program implements it.
type UniformSink interface {
	SetBool(name string, v bool)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec2(name string, v math.Vec2)
	SetMat4(name string, m math.Mat4)
}

// Uniform names shared with the forward shader.
const (
	uniformUseShadows      = "useShadows"
	uniformUsePCF          = "usePcf"
	uniformUsePoissonPCF   = "usePoissonPcf"
	uniformPoissonDiameter = "poissonPcfDiameter"
	uniformBlendOffset     = "csmBlendingOffset"
	uniformBiasMultiplier  = "shadowBiasMultiplier"
	uniformBiasMinimum     = "shadowBiasMinimum"
	uniformCascadeCount    = "cascadeCount"
	uniformLightSpace      = "lightSpaceMatrices"
	uniformPCFMultipliers  = "pcfMultipliers"
	uniformPlaneDistances  = "cascadePlaneDistances"
	uniformSampleCount     = "pcfSamplesNumber"
	uniformSamples         = "pcfSamples"
	uniformShadowMaps      = "shadowMaps"
)

// publishUniforms writes everything the shading pass needs for one frame.
// Shadows are reported off when enabled is false or the frame is empty, so the
// shader never reads matrices from an earlier configuration.
func publishUniforms(sink UniformSink, s Settings, frame *Frame, samples []math.Vec2, enabled bool) {
	on := enabled && s.UseShadows && !frame.Empty()

	sink.SetBool(uniformUseShadows, on)
	sink.SetBool(uniformUsePCF, s.UsePCF)
	sink.SetBool(uniformUsePoissonPCF, s.UsePoissonPCF)
	sink.SetFloat(uniformPoissonDiameter, s.PoissonDiameter)
	sink.SetFloat(uniformBlendOffset, s.BlendOffset)
	sink.SetFloat(uniformBiasMultiplier, s.BiasMultiplier)
	sink.SetFloat(uniformBiasMinimum, s.BiasMinimum)
	sink.SetInt(uniformShadowMaps, int32(s.TextureUnit))

	sink.SetInt(uniformSampleCount, int32(len(samples)))
	for i, p := range samples {
		sink.SetVec2(uniformIndex(uniformSamples, i), p)
	}

	if !on {
		sink.SetInt(uniformCascadeCount, 0)
		return
	}

	sink.SetInt(uniformCascadeCount, int32(len(frame.Cascades)))
	for i, c := range frame.Cascades {
		sink.SetMat4(uniformIndex(uniformLightSpace, i), c.LightSpace)
		sink.SetFloat(uniformIndex(uniformPCFMultipliers, i), c.PCFScale)
	}
	for i, d := range frame.Splits {
		sink.SetFloat(uniformIndex(uniformPlaneDistances, i), d)
	}
}
