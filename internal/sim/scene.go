package sim

import (
	"github.com/san-kum/magbasin/internal/basin"
	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/integrators"
	"github.com/san-kum/magbasin/internal/physics"
)

// Scene is the immutable input of a render. It is built once, before any
// pixel is simulated, and read concurrently by every worker.
type Scene struct {
	sys        *physics.System
	integrator dynamo.Integrator
	params     Params
	bounds     basin.Bounds
	escape     basin.Bounds
	detector   *basin.Detector
}

// NewScene validates the settings and precomputes the escape thresholds. A
// nil integrator selects RK4.
func NewScene(sys *physics.System, integ dynamo.Integrator, params Params, bounds basin.Bounds) (*Scene, error) {
	if sys == nil {
		return nil, dynamo.Configf("pendulum", "no system")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if integ == nil {
		integ = integrators.NewRK4()
	}

	det, err := basin.NewDetector(sys, basin.Thresholds(sys, params.ThresholdSamples), params.CaptureRadius)
	if err != nil {
		return nil, err
	}

	sc := &Scene{
		sys:        sys,
		integrator: integ,
		params:     params,
		bounds:     bounds,
		detector:   det,
	}
	if params.EscapeFactor > 0 {
		sc.escape = bounds.Scale(params.EscapeFactor)
	}

	dynamo.Logger().Debug("scene ready",
		"mode", sys.Mode(),
		"rod_length", sys.RodLength(),
		"magnets", sys.NumMagnets(),
		"bounds", bounds.String(),
	)
	return sc, nil
}

func (sc *Scene) System() *physics.System       { return sc.sys }
func (sc *Scene) Integrator() dynamo.Integrator { return sc.integrator }
func (sc *Scene) Params() Params                { return sc.params }
func (sc *Scene) Bounds() basin.Bounds          { return sc.bounds }
func (sc *Scene) Detector() *basin.Detector     { return sc.detector }

// Thresholds returns a copy of the per-magnet escape energies.
func (sc *Scene) Thresholds() []float64 { return sc.detector.Thresholds() }

// PixelPoint maps pixel (px, py) of a w×h image onto the bounds. Column 0 is
// MinX and row 0 is MaxY, so the image is drawn with y pointing up.
func (sc *Scene) PixelPoint(px, py, w, h int) (float64, float64) {
	b := sc.bounds
	x := b.MinX + b.Width()*float64(px)/float64(w)
	y := b.MaxY - b.Height()*float64(py)/float64(h)
	return x, y
}

func (sc *Scene) escaped(x, y float64) bool {
	return sc.params.EscapeFactor > 0 && !sc.escape.Contains(x, y)
}
