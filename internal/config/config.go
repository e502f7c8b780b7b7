// Package config loads and saves run configurations. Files are YAML
// overlaid on the defaults, so a config file only needs the fields it
// changes.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/vec"
)

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Magnets MagnetsConfig `yaml:"magnets"`
	Start   StartConfig   `yaml:"start"`
	Run     RunConfig     `yaml:"run"`
	Render  RenderConfig  `yaml:"render"`
}

type PhysicsConfig struct {
	Gravity     float64      `yaml:"gravity"`
	Mass        float64      `yaml:"mass"`
	RopeLength  float64      `yaml:"rope_length"`
	Pivot       VectorConfig `yaml:"pivot"`
	AirDrag     float64      `yaml:"air_drag"`
	MagnetCoeff float64      `yaml:"magnet_coeff"`
	MicroStep   float64      `yaml:"micro_step"`
	TimeScale   float64      `yaml:"time_scale"`
	LengthScale float64      `yaml:"length_scale"`
}

type VectorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// MagnetsConfig describes a ring of magnets. When Positions is set it
// replaces the ring entirely.
type MagnetsConfig struct {
	Count     int            `yaml:"count"`
	Radius    float64        `yaml:"radius"`
	Height    float64        `yaml:"height"`
	PhaseDeg  float64        `yaml:"phase_deg"`
	Positions []VectorConfig `yaml:"positions,omitempty"`
}

type StartConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RunConfig struct {
	Duration    float64 `yaml:"duration"`
	SampleEvery float64 `yaml:"sample_every"`
}

type RenderConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Settle float64 `yaml:"settle"`
}

func DefaultConfig() *Config {
	p := pendulum.DefaultConfig()
	return &Config{
		Physics: PhysicsConfig{
			Gravity:     p.Gravity,
			Mass:        p.Mass,
			RopeLength:  p.RopeLength,
			Pivot:       VectorConfig{X: p.Pivot.X, Y: p.Pivot.Y, Z: p.Pivot.Z},
			AirDrag:     p.AirDrag,
			MagnetCoeff: p.MagnetCoeff,
			MicroStep:   p.MicroStep,
			TimeScale:   p.TimeScale,
			LengthScale: p.LengthScale,
		},
		Magnets: MagnetsConfig{Count: 3, Radius: 0.04, Height: 0.04, PhaseDeg: 30},
		Start:   StartConfig{X: 0.1, Y: 0.05},
		Run:     RunConfig{Duration: 30, SampleEvery: 0.05},
		Render:  RenderConfig{Width: 400, Height: 400, Settle: 30},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Pendulum converts the physics section into the simulation configuration.
func (c *Config) Pendulum() pendulum.Config {
	return pendulum.Config{
		Gravity:     c.Physics.Gravity,
		Mass:        c.Physics.Mass,
		RopeLength:  c.Physics.RopeLength,
		Pivot:       vec.Vec3{X: c.Physics.Pivot.X, Y: c.Physics.Pivot.Y, Z: c.Physics.Pivot.Z},
		AirDrag:     c.Physics.AirDrag,
		MagnetCoeff: c.Physics.MagnetCoeff,
		MicroStep:   c.Physics.MicroStep,
		TimeScale:   c.Physics.TimeScale,
		LengthScale: c.Physics.LengthScale,
	}
}

// MagnetList materializes the magnet section: explicit positions when
// given, the ring otherwise. Tags follow list order.
func (c *Config) MagnetList() []pendulum.Magnet {
	if len(c.Magnets.Positions) > 0 {
		magnets := make([]pendulum.Magnet, 0, len(c.Magnets.Positions))
		for i, p := range c.Magnets.Positions {
			magnets = append(magnets, pendulum.Magnet{
				Position: vec.Vec3{X: p.X, Y: p.Y, Z: p.Z},
				Tag:      i,
			})
		}
		return magnets
	}
	return pendulum.Ring(c.Magnets.Count, c.Magnets.Radius, c.Magnets.Height, c.Magnets.PhaseDeg)
}

// StartState returns the configured release point at rest.
func (c *Config) StartState() (pendulum.State, error) {
	return pendulum.NewState(c.Pendulum(), vec.Vec2{X: c.Start.X, Y: c.Start.Y})
}

// Validate checks the whole configuration before a run starts.
func (c *Config) Validate() error {
	if err := c.Pendulum().Validate(); err != nil {
		return err
	}
	if len(c.MagnetList()) == 0 {
		return fmt.Errorf("%w: no magnets configured", pendulum.ErrBadConfig)
	}
	if c.Run.Duration <= 0 {
		return fmt.Errorf("%w: run duration must be positive, got %v", pendulum.ErrBadConfig, c.Run.Duration)
	}
	if c.Run.SampleEvery <= 0 {
		return fmt.Errorf("%w: sample interval must be positive, got %v", pendulum.ErrBadConfig, c.Run.SampleEvery)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", pendulum.ErrBadConfig, c.Render.Width, c.Render.Height)
	}
	if c.Render.Settle <= 0 {
		return fmt.Errorf("%w: settle duration must be positive, got %v", pendulum.ErrBadConfig, c.Render.Settle)
	}
	if _, err := c.StartState(); err != nil {
		return err
	}
	return nil
}
