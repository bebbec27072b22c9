package config

import (
	"math"
	"sort"

	"github.com/san-kum/magbasin/internal/physics"
)

// Presets maps a name to a constructor so every lookup returns a fresh copy.
var Presets = map[string]func() *Config{
	"single": func() *Config {
		cfg := DefaultConfig()
		cfg.Magnets = []MagnetConfig{attractive(0, 0, -0.1, 1)}
		cfg.Physics.Friction = 0
		return cfg
	},
	"pair": func() *Config {
		cfg := DefaultConfig()
		cfg.Pendulum.Approximate = physics.Rigour.String()
		cfg.Magnets = []MagnetConfig{attractive(-0.3, 0, -0.1, 0.5), attractive(0.3, 0, -0.1, 0.5)}
		return cfg
	},
	"triangle": DefaultConfig,
	"square": func() *Config {
		cfg := DefaultConfig()
		cfg.Magnets = ring(4, 0.5, -0.1, 1, math.Pi/4)
		return cfg
	},
	"mixed": func() *Config {
		cfg := DefaultConfig()
		cfg.Pendulum.Approximate = physics.Rigour.String()
		cfg.Magnets = append(triangle(0.5, -0.1, 1), MagnetConfig{
			Position:  Vec3{Z: -0.1},
			Direction: physics.Negative.String(),
			Strength:  0.5,
		})
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the preset names in alphabetical order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func attractive(x, y, z, strength float64) MagnetConfig {
	return MagnetConfig{
		Position:  Vec3{X: x, Y: y, Z: z},
		Direction: physics.Positive.String(),
		Strength:  strength,
	}
}

func triangle(radius, z, strength float64) []MagnetConfig {
	return ring(3, radius, z, strength, 0)
}

// ring places n attractive magnets evenly on a circle, the first at angle
// phase.
func ring(n int, radius, z, strength, phase float64) []MagnetConfig {
	out := make([]MagnetConfig, n)
	for i := range out {
		a := phase + 2*math.Pi*float64(i)/float64(n)
		out[i] = attractive(radius*math.Cos(a), radius*math.Sin(a), z, strength)
	}
	return out
}
