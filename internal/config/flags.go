package config

import "flag"

// overrides holds command-line settings that win over the config file.
// Zero values mean "not given".
type overrides struct {
	config     string
	scene      string
	debug      bool
	windowed   bool
	fullscreen bool
	width      int
	height     int
	cascades   int
	noShadows  bool
	seed       uint64
}

var cli overrides

func init() {
	cli.register(flag.CommandLine)
}

func (o *overrides) register(fs *flag.FlagSet) {
	fs.StringVar(&o.config, "config", "", "Path to config file")
	fs.StringVar(&o.scene, "scene", "", "Path to scene file")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&o.windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&o.fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&o.width, "width", 0, "Window width")
	fs.IntVar(&o.height, "height", 0, "Window height")
	fs.IntVar(&o.cascades, "cascades", 0, "Number of shadow cascades")
	fs.BoolVar(&o.noShadows, "no-shadows", false, "Disable shadow mapping")
	fs.Uint64Var(&o.seed, "seed", 0, "Poisson sampling seed (0 picks one at random)")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the path given with -config, or "".
func ConfigPath() string {
	return cli.config
}

func applyFlags(cfg *Config) {
	cli.apply(cfg)
}

func (o *overrides) apply(cfg *Config) {
	if o.debug {
		cfg.Logging.Level = "debug"
	}
	if o.scene != "" {
		cfg.Scene.Path = o.scene
	}
	if o.windowed {
		cfg.Graphics.Fullscreen = false
	}
	if o.fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if o.width > 0 {
		cfg.Graphics.Width = o.width
	}
	if o.height > 0 {
		cfg.Graphics.Height = o.height
	}
	if o.cascades > 0 {
		cfg.Shadows.Cascades = o.cascades
	}
	if o.noShadows {
		cfg.Shadows.Enabled = false
	}
	if o.seed != 0 {
		cfg.Shadows.Seed = o.seed
	}
}
