package config

import (
	"fmt"
	"os"

	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/particle"
	"github.com/san-kum/trails/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.002
	DefaultProbability = 0.20
	DefaultCountScale  = 2.0
	DefaultExtent      = 100.0
	DefaultRadius      = 100.0
	DefaultOrbitSpeed  = 0.01
	DefaultFPS         = 60
	DefaultFrames      = 1200
	DefaultWidth       = 80
	DefaultHeight      = 24
	DefaultThreshold   = 100.0
)

type Config struct {
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Dt         float64            `yaml:"dt"`
	Seed       uint64             `yaml:"seed"`
	Frames     int                `yaml:"frames"`
	FPS        int                `yaml:"fps"`
	Spawn      SpawnConfig        `yaml:"spawn"`
	Camera     CameraConfig       `yaml:"camera"`
	View       ViewConfig         `yaml:"view"`
}

type SpawnConfig struct {
	Probability  float64     `yaml:"probability"`
	CountScale   float64     `yaml:"count_scale"`
	Count        int         `yaml:"count,omitempty"`
	Extent       float64     `yaml:"extent"`
	MaxAge       RangeConfig `yaml:"max_age"`
	TrailLength  RangeConfig `yaml:"trail_length"`
	MaxParticles int         `yaml:"max_particles,omitempty"`
}

// RangeConfig is a half-open integer range [Min, Max).
type RangeConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type CameraConfig struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
}

type ViewConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Threshold float64 `yaml:"divergence_threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "lorenz",
		Integrator: "euler",
		Dt:         DefaultDt,
		Frames:     DefaultFrames,
		FPS:        DefaultFPS,
		Spawn: SpawnConfig{
			Probability: DefaultProbability,
			CountScale:  DefaultCountScale,
			Extent:      DefaultExtent,
			MaxAge:      RangeConfig{Min: 180, Max: 480},
			TrailLength: RangeConfig{Min: 50, Max: 100},
		},
		Camera: CameraConfig{
			Radius: DefaultRadius,
			Speed:  DefaultOrbitSpeed,
		},
		View: ViewConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Threshold: DefaultThreshold,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith decodes path over base; keys missing from the file keep base's
// values.
func LoadWith(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if base.Params != nil {
		cfg.Params = make(map[string]float64, len(base.Params))
		for k, v := range base.Params {
			cfg.Params[k] = v
		}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func invalid(field string, v any) error {
	return &dynamo.FieldError{Field: field, Value: v, Wrapped: dynamo.ErrInvalidConfig}
}

// Validate checks every value the simulation depends on.
func (c *Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return invalid("dt", c.Dt)
	case c.Frames < 0:
		return invalid("frames", c.Frames)
	case c.FPS < 0:
		return invalid("fps", c.FPS)
	case c.Spawn.Probability < 0 || c.Spawn.Probability > 1:
		return invalid("spawn.probability", c.Spawn.Probability)
	case c.Spawn.CountScale < 0:
		return invalid("spawn.count_scale", c.Spawn.CountScale)
	case c.Spawn.Count < 0:
		return invalid("spawn.count", c.Spawn.Count)
	case c.Spawn.Extent < 0:
		return invalid("spawn.extent", c.Spawn.Extent)
	case c.Spawn.MaxAge.Min < 1 || c.Spawn.MaxAge.Max <= c.Spawn.MaxAge.Min:
		return invalid("spawn.max_age", c.Spawn.MaxAge)
	case c.Spawn.TrailLength.Min < 1 || c.Spawn.TrailLength.Max <= c.Spawn.TrailLength.Min:
		return invalid("spawn.trail_length", c.Spawn.TrailLength)
	case c.Spawn.MaxParticles < 0:
		return invalid("spawn.max_particles", c.Spawn.MaxParticles)
	case c.Camera.Radius <= 0:
		return invalid("camera.radius", c.Camera.Radius)
	case c.View.Width < 1 || c.View.Height < 1:
		return invalid("view", fmt.Sprintf("%dx%d", c.View.Width, c.View.Height))
	case c.View.Threshold <= 0:
		return invalid("view.divergence_threshold", c.View.Threshold)
	}
	return nil
}

// SpawnOptions converts the spawn section to particle options.
func (c *Config) SpawnOptions() particle.Options {
	return particle.Options{
		SpawnProbability: c.Spawn.Probability,
		CountScale:       c.Spawn.CountScale,
		SpawnCount:       c.Spawn.Count,
		Extent:           c.Spawn.Extent,
		MaxAge:           particle.IntRange{Min: c.Spawn.MaxAge.Min, Max: c.Spawn.MaxAge.Max},
		TrailLength:      particle.IntRange{Min: c.Spawn.TrailLength.Min, Max: c.Spawn.TrailLength.Max},
		MaxParticles:     c.Spawn.MaxParticles,
	}
}

func (c *Config) LoopConfig() sim.Config {
	return sim.Config{
		Dt:          c.Dt,
		OrbitRadius: c.Camera.Radius,
		OrbitSpeed:  c.Camera.Speed,
		FPS:         c.FPS,
	}
}
