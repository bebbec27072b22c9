package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/magbasin/internal/dynamo"
)

// Outcome is how a trajectory ended.
type Outcome uint8

const (
	// OutcomeUnresolved means the step budget ran out without capture.
	OutcomeUnresolved Outcome = iota
	// OutcomeCaptured means the energy test placed the bob in a magnet's well.
	OutcomeCaptured
	// OutcomeUnstable means the state became non-finite.
	OutcomeUnstable
	// OutcomeEscaped means the bob left the escape region.
	OutcomeEscaped
	// OutcomeUnreachable means the start point lies outside the rod's reach.
	OutcomeUnreachable
)

// Outcomes lists every outcome in declaration order.
var Outcomes = []Outcome{OutcomeUnresolved, OutcomeCaptured, OutcomeUnstable, OutcomeEscaped, OutcomeUnreachable}

func (o Outcome) String() string {
	switch o {
	case OutcomeUnresolved:
		return "unresolved"
	case OutcomeCaptured:
		return "captured"
	case OutcomeUnstable:
		return "unstable"
	case OutcomeEscaped:
		return "escaped"
	case OutcomeUnreachable:
		return "unreachable"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// PixelResult is what a single trajectory reports. Magnet is -1 unless the
// outcome is OutcomeCaptured.
type PixelResult struct {
	Magnet  int
	Steps   int
	Outcome Outcome
}

// Captured reports whether a magnet captured the trajectory.
func (r PixelResult) Captured() bool { return r.Outcome == OutcomeCaptured }

func (r PixelResult) String() string {
	if r.Captured() {
		return fmt.Sprintf("captured by magnet %d after %d steps", r.Magnet, r.Steps)
	}
	return fmt.Sprintf("%s after %d steps", r.Outcome, r.Steps)
}

// Params are the numerical settings of a trajectory.
type Params struct {
	TimeStep      float64
	MaxSteps      int
	CaptureRadius float64
	// CheckInterval runs the capture test every k-th step.
	CheckInterval int
	// EscapeFactor scales the render bounds about their centre; a bob
	// outside the scaled region has escaped. Zero disables the test.
	EscapeFactor     float64
	ThresholdSamples int
}

func DefaultParams() Params {
	return Params{
		TimeStep:         0.01,
		MaxSteps:         5000,
		CaptureRadius:    0.25,
		CheckInterval:    1,
		EscapeFactor:     2,
		ThresholdSamples: 64,
	}
}

// Validate returns a *dynamo.ConfigError for the first bad setting.
func (p Params) Validate() error {
	if !(p.TimeStep > 0) || math.IsInf(p.TimeStep, 0) {
		return dynamo.Configf("simulation.time_step", "must be positive, got %g", p.TimeStep)
	}
	if p.MaxSteps < 1 {
		return dynamo.Configf("simulation.max_steps", "must be at least 1, got %d", p.MaxSteps)
	}
	if !(p.CaptureRadius > 0) || math.IsInf(p.CaptureRadius, 0) {
		return dynamo.Configf("simulation.capture_radius", "must be positive, got %g", p.CaptureRadius)
	}
	if p.CheckInterval < 1 {
		return dynamo.Configf("simulation.check_interval", "must be at least 1, got %d", p.CheckInterval)
	}
	if p.EscapeFactor != 0 && !(p.EscapeFactor >= 1) {
		return dynamo.Configf("simulation.escape_factor", "must be 0 (off) or at least 1, got %g", p.EscapeFactor)
	}
	if p.ThresholdSamples < 2 {
		return dynamo.Configf("simulation.threshold_samples", "must be at least 2, got %d", p.ThresholdSamples)
	}
	return nil
}
