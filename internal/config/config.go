// Package config handles viewer configuration loading and management.
package config

import "github.com/Faultbox/penumbra/internal/engine/csm"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Shadows  ShadowConfig   `yaml:"shadows"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and camera projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Exposure   float32 `yaml:"exposure"`
}

// ShadowConfig holds the cascaded shadow map settings.
type ShadowConfig struct {
	Enabled         bool    `yaml:"enabled"`
	PCF             bool    `yaml:"pcf"`
	PoissonPCF      bool    `yaml:"poisson_pcf"`
	Cascades        int     `yaml:"cascades"`
	Resolution      int32   `yaml:"resolution"`
	PoissonSamples  int     `yaml:"poisson_samples"`
	PoissonDiameter float32 `yaml:"poisson_diameter"`
	BlendOffset     float32 `yaml:"blend_offset"`
	SplitBlend      float32 `yaml:"split_blend"`
	ZMultiplier     float32 `yaml:"z_multiplier"`
	BiasMultiplier  float32 `yaml:"bias_multiplier"`
	BiasMinimum     float32 `yaml:"bias_minimum"`
	Seed            uint64  `yaml:"seed"`
}

// SceneConfig selects the scene file and where screenshots go.
type SceneConfig struct {
	Path             string `yaml:"path"`
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	s := csm.DefaultSettings()
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        45,
			Near:       0.1,
			Far:        200,
			Exposure:   1,
		},
		Shadows: ShadowConfig{
			Enabled:         s.UseShadows,
			PCF:             s.UsePCF,
			PoissonPCF:      s.UsePoissonPCF,
			Cascades:        s.Cascades,
			Resolution:      s.Resolution,
			PoissonSamples:  s.PoissonSamples,
			PoissonDiameter: s.PoissonDiameter,
			BlendOffset:     s.BlendOffset,
			SplitBlend:      s.SplitBlend,
			ZMultiplier:     s.ZMultiplier,
			BiasMultiplier:  s.BiasMultiplier,
			BiasMinimum:     s.BiasMinimum,
		},
		Scene: SceneConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Settings converts the shadow section to csm settings. Out-of-range values
// are clamped.
func (s ShadowConfig) Settings() csm.Settings {
	return csm.Settings{
		UseShadows:      s.Enabled,
		UsePCF:          s.PCF,
		UsePoissonPCF:   s.PoissonPCF,
		Cascades:        s.Cascades,
		Resolution:      s.Resolution,
		PoissonSamples:  s.PoissonSamples,
		PoissonDiameter: s.PoissonDiameter,
		BlendOffset:     s.BlendOffset,
		SplitBlend:      s.SplitBlend,
		ZMultiplier:     s.ZMultiplier,
		BiasMultiplier:  s.BiasMultiplier,
		BiasMinimum:     s.BiasMinimum,
		TextureUnit:     csm.DefaultTextureUnit,
		Seed:            s.Seed,
	}.Normalized()
}

// FromSettings copies runtime shadow settings back into the config so they
// can be saved.
func (s *ShadowConfig) FromSettings(st csm.Settings) {
	s.Enabled = st.UseShadows
	s.PCF = st.UsePCF
	s.PoissonPCF = st.UsePoissonPCF
	s.Cascades = st.Cascades
	s.Resolution = st.Resolution
	s.PoissonSamples = st.PoissonSamples
	s.PoissonDiameter = st.PoissonDiameter
	s.BlendOffset = st.BlendOffset
	s.SplitBlend = st.SplitBlend
	s.ZMultiplier = st.ZMultiplier
	s.BiasMultiplier = st.BiasMultiplier
	s.BiasMinimum = st.BiasMinimum
	s.Seed = st.Seed
}
