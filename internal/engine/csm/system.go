package csm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/penumbra/pkg/math"
)

// TargetFactory creates the layered depth target.
type TargetFactory func(resolution int32, layers int) (DepthArray, error)

// PassFactory creates the depth pass for a cascade count.
type PassFactory func(layers int) (Pass, error)

// Option configures a System.
type Option func(*System)

// WithTargetFactory replaces the GL depth array constructor.
func WithTargetFactory(f TargetFactory) Option {
	return func(s *System) { s.newTarget = f }
}

// WithPassFactory replaces the GL depth pass constructor.
func WithPassFactory(f PassFactory) Option {
	return func(s *System) { s.newPass = f }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *System) { s.log = log }
}

// System owns the shadow resources and per-frame cascade state. All methods
// must be called from the render thread, ShadowPass strictly before Publish.
type System struct {
	settings Settings
	sampler  *Sampler
	samples  []math.Vec2

	target DepthArray
	pass   Pass
	frame  Frame

	newTarget TargetFactory
	newPass   PassFactory
	log       *zap.Logger
}

// New creates an uninitialized System. No GPU work happens until Initialize.
func New(settings Settings, opts ...Option) *System {
	s := &System{
		settings: settings.Normalized(),
		newTarget: func(resolution int32, layers int) (DepthArray, error) {
			return NewGLDepthArray(resolution, layers)
		},
		newPass: func(layers int) (Pass, error) {
			return NewGLDepthPass(layers)
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sampler = NewSampler(s.settings.Seed)
	return s
}

// Initialize generates the PCF offsets and creates the depth pass and target.
// On failure shadows stay disabled for the session; the error is returned for
// reporting only and rendering can continue.
func (s *System) Initialize() error {
	s.samples = s.sampler.Generate(s.settings.PoissonSamples)

	pass, target, err := s.build(s.settings.Resolution, s.settings.Cascades)
	if err != nil {
		s.log.Error("shadow resources unavailable, shadows disabled", zap.Error(err))
		return err
	}
	s.pass, s.target = pass, target

	s.log.Info("shadow maps initialized",
		zap.Int("cascades", s.settings.Cascades),
		zap.Int32("resolution", s.settings.Resolution),
		zap.Int("pcf_samples", len(s.samples)),
	)
	return nil
}

// build creates a pass and target pair, freeing the half that succeeded on error.
func (s *System) build(resolution int32, layers int) (Pass, DepthArray, error) {
	pass, err := s.newPass(layers)
	if err != nil {
		return nil, nil, fmt.Errorf("creating depth pass: %w", err)
	}
	target, err := s.newTarget(resolution, layers)
	if err != nil {
		pass.Destroy()
		return nil, nil, fmt.Errorf("creating depth target: %w", err)
	}
	return pass, target, nil
}

// Terminate releases the GPU resources. Safe to call more than once.
func (s *System) Terminate() {
	if s.target != nil {
		s.target.Destroy()
		s.target = nil
	}
	if s.pass != nil {
		s.pass.Destroy()
		s.pass = nil
	}
	s.frame = Frame{}
}

// Ready reports whether the depth target and pass exist.
func (s *System) Ready() bool {
	return s.target != nil && s.pass != nil
}

// ShadowPass rebuilds the cascades for the current camera and light and
// renders the casters into the depth array. lightDir points towards the light.
func (s *System) ShadowPass(view ViewParams, lightDir math.Vec3, casters []Caster) {
	if !s.settings.UseShadows || !s.Ready() {
		s.frame = Frame{}
		return
	}
	s.frame = PlanFrame(view, lightDir, s.settings)
	s.pass.Render(s.target, &s.frame, casters)
}

// Publish uploads this frame's shadow uniforms to the shading program and
// binds the depth array to the configured texture unit.
func (s *System) Publish(sink UniformSink) {
	publishUniforms(sink, s.settings, &s.frame, s.samples, s.Ready())
	if s.target != nil {
		s.target.BindTexture(s.settings.TextureUnit)
	}
}

// Frame returns the cascade data computed by the last ShadowPass.
func (s *System) Frame() *Frame {
	return &s.frame
}

// Samples returns the current PCF offsets.
func (s *System) Samples() []math.Vec2 {
	return s.samples
}

// Settings returns a copy of the current settings.
func (s *System) Settings() Settings {
	return s.settings
}

// SetPoissonSamples clamps n to [1, MaxPoissonSamples] and regenerates the offsets.
func (s *System) SetPoissonSamples(n int) {
	s.settings.PoissonSamples = clampInt(n, 1, MaxPoissonSamples)
	s.samples = s.sampler.Generate(s.settings.PoissonSamples)
	s.log.Debug("poisson samples regenerated",
		zap.Int("requested", n),
		zap.Int("generated", len(s.samples)),
	)
}

// SetCascadeCount rebuilds the depth pass and target for n cascades. The old
// resources are kept when the new ones cannot be created.
func (s *System) SetCascadeCount(n int) error {
	n = clampInt(n, 1, MaxCascades)
	if n == s.settings.Cascades && s.Ready() {
		return nil
	}

	pass, target, err := s.build(s.settings.Resolution, n)
	if err != nil {
		s.log.Error("cascade count change failed", zap.Int("cascades", n), zap.Error(err))
		return err
	}

	s.Terminate()
	s.pass, s.target = pass, target
	s.settings.Cascades = n
	s.log.Info("cascade count changed", zap.Int("cascades", n))
	return nil
}

// SetResolution recreates the depth target at a new layer size.
func (s *System) SetResolution(resolution int32) error {
	if resolution <= 0 {
		return fmt.Errorf("invalid shadow resolution %d", resolution)
	}
	if resolution == s.settings.Resolution && s.target != nil {
		return nil
	}

	target, err := s.newTarget(resolution, s.settings.Cascades)
	if err != nil {
		s.log.Error("shadow resolution change failed", zap.Int32("resolution", resolution), zap.Error(err))
		return fmt.Errorf("creating depth target: %w", err)
	}

	if s.target != nil {
		s.target.Destroy()
	}
	s.target = target
	s.settings.Resolution = resolution
	s.frame = Frame{}
	return nil
}

// SetPoissonDiameter sets the PCF filter diameter in texels.
func (s *System) SetPoissonDiameter(d float32) { s.settings.PoissonDiameter = d }

// SetBlendOffset sets the overlap shared by neighbouring cascades.
func (s *System) SetBlendOffset(offset float32) {
	s.settings.BlendOffset = max(offset, 0)
}

// SetSplitBlend sets the logarithmic/uniform split weight, clamped to [0, 1].
func (s *System) SetSplitBlend(f float32) {
	s.settings.SplitBlend = min(max(f, 0), 1)
}

// SetZMultiplier sets the light-space depth stretch. Non-positive values
// restore the default and values below 1 are raised to 1 so the depth range
// never shrinks.
func (s *System) SetZMultiplier(m float32) {
	s.settings.ZMultiplier = Settings{ZMultiplier: m}.Normalized().ZMultiplier
}

// SetBias sets the slope-scaled bias multiplier and its lower bound.
func (s *System) SetBias(multiplier, minimum float32) {
	s.settings.BiasMultiplier = multiplier
	s.settings.BiasMinimum = minimum
}

// SetUseShadows toggles shadowing.
func (s *System) SetUseShadows(b bool) { s.settings.UseShadows = b }

// SetUsePCF toggles percentage-closer filtering.
func (s *System) SetUsePCF(b bool) { s.settings.UsePCF = b }

// SetUsePoissonPCF switches PCF between the Poisson offsets and a regular grid.
func (s *System) SetUsePoissonPCF(b bool) { s.settings.UsePoissonPCF = b }
