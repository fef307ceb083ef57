package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/san-kum/trails/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "lorenz" {
		t.Errorf("expected model lorenz, got %s", cfg.Model)
	}
	if cfg.Dt != 0.002 {
		t.Errorf("expected dt 0.002, got %f", cfg.Dt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	opts := cfg.SpawnOptions()
	if opts.SpawnProbability != 0.2 || opts.CountScale != 2 || opts.Extent != 100 {
		t.Errorf("unexpected spawn options %+v", opts)
	}
	if opts.MaxAge.Min != 180 || opts.MaxAge.Max != 480 || opts.TrailLength.Min != 50 || opts.TrailLength.Max != 100 {
		t.Errorf("unexpected spawn ranges %+v", opts)
	}
	if lc := cfg.LoopConfig(); lc.OrbitRadius != 100 || lc.OrbitSpeed != 0.01 || lc.Dt != 0.002 {
		t.Errorf("unexpected loop config %+v", lc)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative frames", func(c *Config) { c.Frames = -1 }},
		{"probability above one", func(c *Config) { c.Spawn.Probability = 1.5 }},
		{"negative probability", func(c *Config) { c.Spawn.Probability = -0.1 }},
		{"inverted max age", func(c *Config) { c.Spawn.MaxAge = RangeConfig{Min: 300, Max: 200} }},
		{"empty trail length", func(c *Config) { c.Spawn.TrailLength = RangeConfig{Min: 50, Max: 50} }},
		{"zero trail length", func(c *Config) { c.Spawn.TrailLength = RangeConfig{Min: 0, Max: 5} }},
		{"negative cap", func(c *Config) { c.Spawn.MaxParticles = -3 }},
		{"zero radius", func(c *Config) { c.Camera.Radius = 0 }},
		{"zero width", func(c *Config) { c.View.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trails.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Params = map[string]float64{"rho": 24}
	cfg.Spawn.MaxParticles = 64
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 42 || loaded.Params["rho"] != 24 || loaded.Spawn.MaxParticles != 64 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("dt: 0.001\nspawn:\n  probability: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Dt != 0.001 || cfg.Spawn.Probability != 0.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Spawn.MaxAge.Max != 480 || cfg.Camera.Radius != 100 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dt: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Spawn.Probability != 0.8 {
		t.Errorf("expected probability 0.8, got %f", cfg.Spawn.Probability)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	// presets must not leak into each other or the defaults
	GetPreset("rossler")
	if DefaultConfig().Model != "lorenz" {
		t.Error("preset mutated defaults")
	}
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	sort.Strings(names)
	if len(names) != len(Presets) {
		t.Fatalf("ListPresets returned %d of %d", len(names), len(Presets))
	}
	for _, n := range names {
		if err := GetPreset(n).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", n, err)
		}
	}
}

func TestLoadWithPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("seed: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("rossler")
	cfg, err := LoadWith(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Model != "rossler" || cfg.Seed != 9 {
		t.Errorf("expected rossler preset with seed 9, got %s/%d", cfg.Model, cfg.Seed)
	}
	if base.Seed != 0 {
		t.Error("LoadWith mutated its base")
	}
}
