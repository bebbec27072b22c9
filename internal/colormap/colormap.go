// Package colormap turns trajectory outcomes into colours: one hue per magnet,
// brightness by how quickly the magnet captured the bob.
package colormap

import (
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/sim"
)

// Options controls the palette.
type Options struct {
	Saturation float64
	// MaxLightness is the lightness of a capture at step 0.
	MaxLightness float64
	// MinLightnessRatio floors the lightness at this fraction of MaxLightness.
	MinLightnessRatio float64
	// Palette optionally fixes one hex colour per magnet; its hue and
	// saturation replace the evenly spaced defaults.
	Palette    []string
	Background string
}

func DefaultOptions() Options {
	return Options{
		Saturation:        1,
		MaxLightness:      0.6,
		MinLightnessRatio: 0.1,
		Background:        "#000000",
	}
}

// Mapper is immutable and safe for concurrent use.
type Mapper struct {
	hues       []float64
	sats       []float64
	maxSteps   int
	maxLight   float64
	minRatio   float64
	background color.RGBA
}

// New builds a mapper for numMagnets magnets and a step budget of maxSteps.
func New(numMagnets, maxSteps int, opts Options) (*Mapper, error) {
	if numMagnets < 1 {
		return nil, dynamo.Configf("magnets", "at least one magnet is required")
	}
	if maxSteps < 1 {
		return nil, dynamo.Configf("simulation.max_steps", "must be at least 1, got %d", maxSteps)
	}
	if !inUnit(opts.Saturation) {
		return nil, dynamo.Configf("render.saturation", "must be in [0, 1], got %g", opts.Saturation)
	}
	if !inUnit(opts.MaxLightness) {
		return nil, dynamo.Configf("render.max_lightness", "must be in [0, 1], got %g", opts.MaxLightness)
	}
	if !inUnit(opts.MinLightnessRatio) {
		return nil, dynamo.Configf("render.min_lightness_ratio", "must be in [0, 1], got %g", opts.MinLightnessRatio)
	}

	bg := "#000000"
	if opts.Background != "" {
		bg = opts.Background
	}
	bgc, err := colorful.Hex(bg)
	if err != nil {
		return nil, dynamo.Configf("render.background", "%v", err)
	}

	m := &Mapper{
		hues:       make([]float64, numMagnets),
		sats:       make([]float64, numMagnets),
		maxSteps:   maxSteps,
		maxLight:   opts.MaxLightness,
		minRatio:   opts.MinLightnessRatio,
		background: toRGBA(bgc),
	}

	if len(opts.Palette) > 0 {
		if len(opts.Palette) < numMagnets {
			return nil, dynamo.Configf("render.palette", "has %d colours for %d magnets", len(opts.Palette), numMagnets)
		}
		for i := range numMagnets {
			c, err := colorful.Hex(opts.Palette[i])
			if err != nil {
				return nil, dynamo.Configf("render.palette["+strconv.Itoa(i)+"]", "%v", err)
			}
			m.hues[i], m.sats[i], _ = c.Hsl()
		}
		return m, nil
	}

	for i := range numMagnets {
		m.hues[i] = float64(i) * 360 / float64(numMagnets)
		m.sats[i] = opts.Saturation
	}
	return m, nil
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }

// Hue is the HSL hue in degrees assigned to magnet i.
func (m *Mapper) Hue(i int) float64 { return m.hues[i] }

// Lightness falls with the square root of the share of the budget spent,
// never below MinLightnessRatio of the maximum.
func (m *Mapper) Lightness(steps int) float64 {
	ratio := math.Min(math.Max(float64(steps)/float64(m.maxSteps), 0), 1)
	return m.maxLight * math.Max(1-math.Sqrt(ratio), m.minRatio)
}

// Color returns the colour of a capture by magnet after steps steps. A
// negative or unknown magnet gets the background.
func (m *Mapper) Color(magnet, steps int) color.RGBA {
	if magnet < 0 || magnet >= len(m.hues) {
		return m.background
	}
	return toRGBA(colorful.Hsl(m.hues[magnet], m.sats[magnet], m.Lightness(steps)))
}

// Result colours a pixel result; anything not captured is background.
func (m *Mapper) Result(r sim.PixelResult) color.RGBA {
	if !r.Captured() {
		return m.background
	}
	return m.Color(r.Magnet, r.Steps)
}

func (m *Mapper) Background() color.RGBA { return m.background }

// Legend returns the full-brightness colour of every magnet.
func (m *Mapper) Legend() []color.RGBA {
	out := make([]color.RGBA, len(m.hues))
	for i := range out {
		out[i] = m.Color(i, 0)
	}
	return out
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
