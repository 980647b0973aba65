package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appName  = "penumbra"
	fileName = "config.yaml"
)

// Load builds the effective config: defaults, then the config file if
// one is found, then command-line flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, checking the
// working directory before the user config directory.
func findConfigFile() string {
	for _, path := range []string{fileName, filepath.Join(ConfigDir(), fileName)} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for the viewer, or the
// working directory when the platform has none.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, appName)
}

// loadFromFile decodes path over cfg. Keys missing from the file keep
// their current values; unknown keys are an error.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate rejects settings the renderer cannot start with.
func (c *Config) Validate() error {
	g := c.Graphics
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("graphics size must be positive, got %dx%d", g.Width, g.Height)
	case g.Near <= 0:
		return fmt.Errorf("graphics.near must be positive, got %v", g.Near)
	case g.Far <= g.Near:
		return fmt.Errorf("graphics.far (%v) must be greater than graphics.near (%v)", g.Far, g.Near)
	case g.FOV <= 0 || g.FOV >= 180:
		return fmt.Errorf("graphics.fov must be in (0, 180), got %v", g.FOV)
	case g.Exposure <= 0:
		return fmt.Errorf("graphics.exposure must be positive, got %v", g.Exposure)
	}
	return nil
}
