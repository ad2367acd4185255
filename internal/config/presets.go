package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// Presets are named overrides applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"dense": func(c *Config) {
		c.Capacity = 80000
		c.ParticleRadius = 1.5
		c.CellSize = 3
		c.Initial.SpawnRate = 20
	},
	"zero_g": func(c *Config) {
		c.Gravity = 0
		c.Initial.Drag = 0.0005
		c.Initial.SpawnRate = 5
	},
	"small": func(c *Config) {
		c.Capacity = 2000
		c.Window = WindowConfig{Width: 800, Height: 600}
		c.FitBoundary()
		c.Spawn = SpawnConfig{X: 300, Y: 300}
		c.ParticleRadius = 4
		c.CellSize = 8
	},
}

// GetPreset returns the default config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// MustPreset is GetPreset with an error for unknown names.
func MustPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
