// Package config loads application settings for Floorspace.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Backend names a preview kernel implementation.
type Backend string

const (
	// BackendPrism is the exact pure-Go mesher.
	BackendPrism Backend = "prism"
	// BackendSdfx is the SDF marching-cubes mesher.
	BackendSdfx Backend = "sdfx"
)

// Config configures the application. Fields omitted from the config file
// keep their defaults.
type Config struct {
	// DefaultStoryHeight is the floor-to-floor height, in plan units,
	// assigned to stories created without an explicit height.
	DefaultStoryHeight float64 `yaml:"default_story_height"`
	// MeshCells is the marching cubes resolution of the sdfx backend.
	MeshCells int `yaml:"mesh_cells"`
	// PreviewBackend selects the extrusion kernel for the 3-D preview.
	PreviewBackend Backend `yaml:"preview_backend"`
	// EvalTimeoutSeconds is the hard limit for a single script
	// evaluation.
	EvalTimeoutSeconds int `yaml:"eval_timeout_seconds"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		DefaultStoryHeight: 300,
		MeshCells:          120,
		PreviewBackend:     BackendPrism,
		EvalTimeoutSeconds: 5,
	}
}

// Load reads a YAML config file and merges it over the defaults. A
// missing file is not an error; it yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DefaultStoryHeight <= 0 {
		return fmt.Errorf("default_story_height %v must be positive", c.DefaultStoryHeight)
	}
	if c.MeshCells <= 0 {
		return fmt.Errorf("mesh_cells %d must be positive", c.MeshCells)
	}
	if c.EvalTimeoutSeconds <= 0 {
		return fmt.Errorf("eval_timeout_seconds %d must be positive", c.EvalTimeoutSeconds)
	}
	switch c.PreviewBackend {
	case BackendPrism, BackendSdfx:
		return nil
	}
	return fmt.Errorf("unknown preview_backend %q", c.PreviewBackend)
}
