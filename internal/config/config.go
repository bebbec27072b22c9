package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/magbasin/internal/basin"
	"github.com/san-kum/magbasin/internal/colormap"
	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/physics"
	"github.com/san-kum/magbasin/internal/render"
	"github.com/san-kum/magbasin/internal/sim"
	"github.com/san-kum/magbasin/internal/vecmath"
)

const (
	DefaultWidth       = 800
	DefaultHeight      = 800
	DefaultPadding     = 0.5
	DefaultHeightLimit = 0.5
	DefaultOutput      = "magnetic_fractal.png"
	DefaultIntegrator  = "rk4"
)

// Vec3 is a point in configuration files.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func (v Vec3) Vec() vecmath.Vec3 { return vecmath.New(v.X, v.Y, v.Z) }

type Config struct {
	Pendulum   PendulumConfig   `yaml:"pendulum" json:"pendulum"`
	Magnets    []MagnetConfig   `yaml:"magnets" json:"magnets"`
	Physics    PhysicsConfig    `yaml:"physics" json:"physics"`
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`
	Render     RenderConfig     `yaml:"render" json:"render"`
	Output     OutputConfig     `yaml:"output" json:"output"`
}

type PendulumConfig struct {
	SuspensionPoint Vec3    `yaml:"suspension_point" json:"suspension_point"`
	Mass            float64 `yaml:"mass" json:"mass"`
	Approximate     string  `yaml:"approximate" json:"approximate"`
	// RodLength of zero is derived from the suspension height.
	RodLength float64 `yaml:"rod_length,omitempty" json:"rod_length,omitempty"`
}

type MagnetConfig struct {
	Position  Vec3    `yaml:"position" json:"position"`
	Velocity  Vec3    `yaml:"velocity" json:"velocity"`
	Direction string  `yaml:"direction" json:"direction"`
	Strength  float64 `yaml:"strength" json:"strength"`
}

type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity" json:"gravity"`
	Friction      float64 `yaml:"friction" json:"friction"`
	ForceExponent float64 `yaml:"force_exponent" json:"force_exponent"`
}

type SimulationConfig struct {
	TimeStep         float64 `yaml:"time_step" json:"time_step"`
	MaxSteps         int     `yaml:"max_steps" json:"max_steps"`
	CaptureRadius    float64 `yaml:"capture_radius" json:"capture_radius"`
	CheckInterval    int     `yaml:"check_interval" json:"check_interval"`
	EscapeFactor     float64 `yaml:"escape_factor" json:"escape_factor"`
	Integrator       string  `yaml:"integrator" json:"integrator"`
	ThresholdSamples int     `yaml:"threshold_samples" json:"threshold_samples"`
}

type RenderConfig struct {
	Width       int     `yaml:"width" json:"width"`
	Height      int     `yaml:"height" json:"height"`
	Workers     int     `yaml:"workers" json:"workers"`
	Padding     float64 `yaml:"padding" json:"padding"`
	HeightLimit float64 `yaml:"height_limit" json:"height_limit"`
	// Bounds overrides the suggested region when set.
	Bounds            *basin.Bounds `yaml:"bounds,omitempty" json:"bounds,omitempty"`
	Palette           []string      `yaml:"palette,omitempty" json:"palette,omitempty"`
	Background        string        `yaml:"background" json:"background"`
	Saturation        float64       `yaml:"saturation" json:"saturation"`
	MaxLightness      float64       `yaml:"max_lightness" json:"max_lightness"`
	MinLightnessRatio float64       `yaml:"min_lightness_ratio" json:"min_lightness_ratio"`
}

type OutputConfig struct {
	Path string `yaml:"path" json:"path"`
}

// DefaultConfig is the "triangle" preset: three equal attractive magnets
// under a unit-height suspension.
func DefaultConfig() *Config {
	pp := physics.DefaultParams()
	sp := sim.DefaultParams()
	co := colormap.DefaultOptions()
	return &Config{
		Pendulum: PendulumConfig{
			SuspensionPoint: Vec3{Z: 1},
			Mass:            1,
			Approximate:     physics.SmallAngle.String(),
		},
		Magnets: triangle(0.5, -0.1, 1),
		Physics: PhysicsConfig{
			Gravity:       pp.Gravity,
			Friction:      pp.Friction,
			ForceExponent: pp.ForceExponent,
		},
		Simulation: SimulationConfig{
			TimeStep:         sp.TimeStep,
			MaxSteps:         sp.MaxSteps,
			CaptureRadius:    sp.CaptureRadius,
			CheckInterval:    sp.CheckInterval,
			EscapeFactor:     sp.EscapeFactor,
			Integrator:       DefaultIntegrator,
			ThresholdSamples: sp.ThresholdSamples,
		},
		Render: RenderConfig{
			Width:             DefaultWidth,
			Height:            DefaultHeight,
			Padding:           DefaultPadding,
			HeightLimit:       DefaultHeightLimit,
			Background:        co.Background,
			Saturation:        co.Saturation,
			MaxLightness:      co.MaxLightness,
			MinLightnessRatio: co.MinLightnessRatio,
		},
		Output: OutputConfig{Path: DefaultOutput},
	}
}

// Load reads a YAML (or JSON) file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML or JSON over the defaults. A magnets list in the input
// replaces the default magnets entirely.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Magnets = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Magnets == nil {
		cfg.Magnets = DefaultConfig().Magnets
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

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Magnets = append([]MagnetConfig(nil), c.Magnets...)
	out.Render.Palette = append([]string(nil), c.Render.Palette...)
	if c.Render.Bounds != nil {
		b := *c.Render.Bounds
		out.Render.Bounds = &b
	}
	return &out
}

// System converts the pendulum, magnets and physics sections.
func (c *Config) System() (*physics.System, error) {
	mode, err := physics.ParseApproximation(c.Pendulum.Approximate)
	if err != nil {
		return nil, dynamo.Configf("pendulum.approximate", "%v", err)
	}
	p := physics.Pendulum{
		Suspension:    c.Pendulum.SuspensionPoint.Vec(),
		Mass:          c.Pendulum.Mass,
		Approximation: mode,
		RodLength:     c.Pendulum.RodLength,
	}

	magnets := make([]physics.Magnet, len(c.Magnets))
	for i, m := range c.Magnets {
		pol, err := physics.ParsePolarity(m.Direction)
		if err != nil {
			return nil, dynamo.Configf("magnets["+strconv.Itoa(i)+"].direction", "%v", err)
		}
		magnets[i] = physics.Magnet{
			Position: m.Position.Vec(),
			Velocity: m.Velocity.Vec(),
			Polarity: pol,
			Strength: m.Strength,
		}
	}

	return physics.NewSystem(p, magnets, physics.Params{
		Gravity:       c.Physics.Gravity,
		Friction:      c.Physics.Friction,
		ForceExponent: c.Physics.ForceExponent,
	})
}

func (c *Config) SimParams() sim.Params {
	s := c.Simulation
	return sim.Params{
		TimeStep:         s.TimeStep,
		MaxSteps:         s.MaxSteps,
		CaptureRadius:    s.CaptureRadius,
		CheckInterval:    s.CheckInterval,
		EscapeFactor:     s.EscapeFactor,
		ThresholdSamples: s.ThresholdSamples,
	}
}

// Bounds returns the configured region, or the suggested one when none is
// configured.
func (c *Config) Bounds(sys *physics.System) (basin.Bounds, error) {
	if c.Render.Bounds != nil {
		return *c.Render.Bounds, c.Render.Bounds.Validate()
	}
	if !(c.Render.Padding >= 0) {
		return basin.Bounds{}, dynamo.Configf("render.padding", "must be non-negative, got %g", c.Render.Padding)
	}
	if !(c.Render.HeightLimit > 0 && c.Render.HeightLimit <= 1) {
		return basin.Bounds{}, dynamo.Configf("render.height_limit", "must be in (0, 1], got %g", c.Render.HeightLimit)
	}
	b := basin.SuggestBounds(sys, c.Render.Padding, c.Render.HeightLimit)
	return b, b.Validate()
}

func (c *Config) ColorOptions() colormap.Options {
	r := c.Render
	return colormap.Options{
		Saturation:        r.Saturation,
		MaxLightness:      r.MaxLightness,
		MinLightnessRatio: r.MinLightnessRatio,
		Palette:           r.Palette,
		Background:        r.Background,
	}
}

func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Width:   c.Render.Width,
		Height:  c.Render.Height,
		Workers: c.Render.Workers,
	}
}

// IntegratorName is the lower-cased integrator setting, rk4 when empty.
func (c *Config) IntegratorName() string {
	if c.Simulation.Integrator == "" {
		return DefaultIntegrator
	}
	return strings.ToLower(c.Simulation.Integrator)
}

// Build validates the whole configuration and assembles the immutable scene
// and colour mapper. Every failure unwraps to dynamo.ErrConfig.
func (c *Config) Build(integ dynamo.Integrator) (*sim.Scene, *colormap.Mapper, error) {
	sys, err := c.System()
	if err != nil {
		return nil, nil, err
	}
	bounds, err := c.Bounds(sys)
	if err != nil {
		return nil, nil, err
	}
	scene, err := sim.NewScene(sys, integ, c.SimParams(), bounds)
	if err != nil {
		return nil, nil, err
	}
	mapper, err := colormap.New(sys.NumMagnets(), c.Simulation.MaxSteps, c.ColorOptions())
	if err != nil {
		return nil, nil, err
	}
	return scene, mapper, nil
}
