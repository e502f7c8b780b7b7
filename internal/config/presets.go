package config

import "sort"

// Presets are named setups reachable with --preset. Each is a full config;
// flags still override individual fields.
var Presets = map[string]*Config{
	// The reference instrument at its interactive pace.
	"classic": DefaultConfig(),

	"realtime": func() *Config {
		c := DefaultConfig()
		c.Physics.TimeScale = 1
		return c
	}(),

	// The coarse full-frame render: one pixel per cell at screen scale.
	"fractal": func() *Config {
		c := DefaultConfig()
		c.Physics.MicroStep = 0.01
		c.Physics.TimeScale = 1
		return c
	}(),

	"fractal-fine": func() *Config {
		c := DefaultConfig()
		c.Physics.MicroStep = 0.001
		c.Physics.TimeScale = 1
		c.Render.Width = 600
		c.Render.Height = 600
		return c
	}(),

	// Magnets strong enough to destabilize the rest point under the pivot.
	"strong-magnets": func() *Config {
		c := DefaultConfig()
		c.Physics.MagnetCoeff = 0.002
		c.Physics.TimeScale = 1
		return c
	}(),

	"repulsive": func() *Config {
		c := DefaultConfig()
		c.Physics.MagnetCoeff = -0.0002
		return c
	}(),

	// Light air, long wandering transients.
	"drift": func() *Config {
		c := DefaultConfig()
		c.Physics.AirDrag = 0.01
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil if the name is
// unknown. Callers may mutate the copy freely.
func GetPreset(name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *preset
	cfg.Magnets.Positions = append([]VectorConfig(nil), preset.Magnets.Positions...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
