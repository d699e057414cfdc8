package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"skyfall/internal/body"
	"skyfall/internal/canopy"
	"skyfall/internal/sim"
)

const (
	DefaultMass     = 80.0
	DefaultAltitude = 3000.0
	DefaultDt       = 0.01
	DefaultDuration = 300.0
	DefaultSubSteps = 1
	DefaultGravity  = 9.81
)

type Config struct {
	Mass     float64 `yaml:"mass"`
	Altitude float64 `yaml:"altitude"`
	Gravity  float64 `yaml:"gravity"`

	CanopyArea      float64 `yaml:"canopy_area"`
	DragVertical    float64 `yaml:"drag_vertical"`
	DragHorizontal  float64 `yaml:"drag_horizontal"`
	OpeningDuration float64 `yaml:"opening_duration"`

	Dt                 float64 `yaml:"dt"`
	Duration           float64 `yaml:"duration"`
	SubSteps           int     `yaml:"sub_steps"`
	AutoDeployAltitude float64 `yaml:"auto_deploy_altitude"`

	Wind WindConfig `yaml:"wind"`
}

type WindConfig struct {
	Strength  float64 `yaml:"strength"`
	Direction float64 `yaml:"direction"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass:            DefaultMass,
		Altitude:        DefaultAltitude,
		Gravity:         DefaultGravity,
		CanopyArea:      canopy.DefaultRoundCanopyArea,
		DragVertical:    canopy.DefaultCanopyDragVertical,
		DragHorizontal:  canopy.DefaultCanopyDragHorizontal,
		OpeningDuration: canopy.DefaultOpeningDuration,
		Dt:              DefaultDt,
		Duration:        DefaultDuration,
		SubSteps:        DefaultSubSteps,
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

// BodyConfig maps the jumper parameters onto a rigid-body configuration.
func (c *Config) BodyConfig() body.Config {
	cfg := body.DefaultConfig()
	cfg.Mass = c.Mass
	cfg.Position.Y = c.Altitude
	return cfg
}

// SimConfig maps the run parameters onto a simulation configuration.
func (c *Config) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = c.Dt
	cfg.Duration = c.Duration
	cfg.SubSteps = c.SubSteps
	cfg.AutoDeployAltitude = c.AutoDeployAltitude
	return cfg
}

// Apply pushes the canopy, wind, and gravity parameters into a simulator.
func (c *Config) Apply(s *sim.Simulator) error {
	if err := s.SetCanopyArea(c.CanopyArea); err != nil {
		return err
	}
	if err := s.SetDragCoefficients(c.DragVertical, c.DragHorizontal); err != nil {
		return err
	}
	if c.OpeningDuration > 0 {
		s.Canopy().SetOpeningDuration(c.OpeningDuration)
	}
	if c.Gravity > 0 {
		s.SetGravity(c.Gravity)
	}
	if c.Wind.Strength > 0 {
		return s.SetWind(c.Wind.Strength, c.Wind.Direction)
	}
	return nil
}
