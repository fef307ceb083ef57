package config

// Presets are named overrides on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"dense": func(c *Config) {
		c.Spawn.Probability = 0.8
		c.Spawn.CountScale = 4
		c.Spawn.MaxParticles = 400
	},
	"sparse": func(c *Config) {
		c.Spawn.Probability = 0.05
		c.Spawn.TrailLength = RangeConfig{Min: 150, Max: 250}
	},
	"closeup": func(c *Config) {
		c.Camera.Radius = 60
		c.Camera.Speed = 0.004
	},
	"rossler": func(c *Config) {
		c.Model = "rossler"
		c.Dt = 0.01
		c.Spawn.Extent = 30
		c.Camera.Radius = 40
	},
	"smooth": func(c *Config) {
		c.Integrator = "rk4"
		c.Dt = 0.005
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
