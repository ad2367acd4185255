package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	DefaultCapacity       = 50000
	DefaultGravity        = 1000.0
	DefaultSubSteps       = 8
	DefaultAttractor      = 5000.0
	DefaultThrust         = 2000.0
	DefaultWindowWidth    = 1920
	DefaultWindowHeight   = 800
	DefaultParticleRadius = 2.0
	DefaultCellSize       = 4.0
	DefaultFrameSeconds   = 0.016
	DefaultDragStep       = 0.0001
	DefaultSpawnX         = 660.0
	DefaultSpawnY         = 400.0
)

type Config struct {
	Capacity       int            `yaml:"capacity"`
	Gravity        float64        `yaml:"gravity"`
	Thrust         float64        `yaml:"thrust"`
	Attractor      float64        `yaml:"attractor"`
	SubSteps       int            `yaml:"sub_steps"`
	FrameSeconds   float64        `yaml:"frame_seconds"`
	CellSize       float64        `yaml:"cell_size"`
	ParticleRadius float64        `yaml:"particle_radius"`
	Seed           int64          `yaml:"seed"`
	Window         WindowConfig   `yaml:"window"`
	Boundary       BoundaryConfig `yaml:"boundary"`
	Spawn          SpawnConfig    `yaml:"spawn"`
	Initial        InitialConfig  `yaml:"initial"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type BoundaryConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type SpawnConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// InitialConfig holds the starting values of the host-steerable settings.
type InitialConfig struct {
	Collisions bool    `yaml:"collisions"`
	Drag       float64 `yaml:"drag"`
	DragStep   float64 `yaml:"drag_step"`
	SpawnRate  int     `yaml:"spawn_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Capacity:       DefaultCapacity,
		Gravity:        DefaultGravity,
		Thrust:         DefaultThrust,
		Attractor:      DefaultAttractor,
		SubSteps:       DefaultSubSteps,
		FrameSeconds:   DefaultFrameSeconds,
		CellSize:       DefaultCellSize,
		ParticleRadius: DefaultParticleRadius,
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Boundary: BoundaryConfig{
			X:      DefaultWindowWidth / 2,
			Y:      DefaultWindowHeight / 2,
			Radius: DefaultWindowHeight / 2,
		},
		Spawn: SpawnConfig{X: DefaultSpawnX, Y: DefaultSpawnY},
		Initial: InitialConfig{
			Collisions: true,
			DragStep:   DefaultDragStep,
			SpawnRate:  1,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base; keys absent from the file keep base's
// values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the constants the simulation cannot run without. An
// undersized cell is legal but logged: contacts can be missed.
func (c *Config) Validate() error {
	switch {
	case c.Capacity < 1:
		return fmt.Errorf("%w: capacity must be positive, got %d", dynamo.ErrParameterBounds, c.Capacity)
	case c.SubSteps < 1:
		return fmt.Errorf("%w: sub_steps must be positive, got %d", dynamo.ErrParameterBounds, c.SubSteps)
	case c.FrameSeconds <= 0:
		return fmt.Errorf("%w: frame_seconds must be positive, got %f", dynamo.ErrParameterBounds, c.FrameSeconds)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive, got %f", dynamo.ErrParameterBounds, c.CellSize)
	case c.ParticleRadius <= 0:
		return fmt.Errorf("%w: particle_radius must be positive, got %f", dynamo.ErrParameterBounds, c.ParticleRadius)
	case c.Boundary.Radius <= c.ParticleRadius:
		return fmt.Errorf("%w: boundary radius %f does not fit particle radius %f", dynamo.ErrParameterBounds, c.Boundary.Radius, c.ParticleRadius)
	case c.Initial.Drag < 0 || c.Initial.DragStep < 0:
		return fmt.Errorf("%w: drag and drag_step must be non-negative", dynamo.ErrParameterBounds)
	case c.Initial.SpawnRate < 1:
		return fmt.Errorf("%w: spawn_rate must be at least 1, got %d", dynamo.ErrParameterBounds, c.Initial.SpawnRate)
	}

	if c.CellSize < 2*c.ParticleRadius {
		slog.Warn("cell size below contact distance, collisions may be missed",
			"cell_size", c.CellSize,
			"contact", 2*c.ParticleRadius,
		)
	}
	return nil
}

// FitBoundary centers the boundary in the window with radius half the
// window height.
func (c *Config) FitBoundary() {
	c.Boundary = BoundaryConfig{
		X:      float64(c.Window.Width) / 2,
		Y:      float64(c.Window.Height) / 2,
		Radius: float64(c.Window.Height) / 2,
	}
}

// SubStepDt is the fixed integration step.
func (c *Config) SubStepDt() float64 {
	return c.FrameSeconds / float64(c.SubSteps)
}

func (c *Config) BoundaryCircle() dynamo.Circle {
	return dynamo.Circle{Center: dynamo.V(c.Boundary.X, c.Boundary.Y), Radius: c.Boundary.Radius}
}

func (c *Config) SpawnPoint() dynamo.Vec {
	return dynamo.V(c.Spawn.X, c.Spawn.Y)
}
