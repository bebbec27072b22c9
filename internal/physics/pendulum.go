package physics

import (
	"fmt"
	"strings"

	"github.com/san-kum/magbasin/internal/vecmath"
)

// Approximation selects how the rod is modelled.
type Approximation int

const (
	// SmallAngle flattens the swing into the tangent plane at its lowest
	// point; the rod is replaced by a linear restoring force.
	SmallAngle Approximation = iota
	// Rigour keeps the bob on the sphere of radius RodLength around the
	// suspension point.
	Rigour
)

func (a Approximation) String() string {
	switch a {
	case SmallAngle:
		return "SmallAngle"
	case Rigour:
		return "Rigour"
	default:
		return fmt.Sprintf("Approximation(%d)", int(a))
	}
}

// ParseApproximation accepts the configuration spellings of an approximation.
func ParseApproximation(s string) (Approximation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "smallangle", "small_angle", "small-angle", "small":
		return SmallAngle, nil
	case "rigour", "rigor", "rigid", "exact":
		return Rigour, nil
	}
	return 0, fmt.Errorf("unknown approximation %q (want SmallAngle or Rigour)", s)
}

// Pendulum describes the suspended bob.
type Pendulum struct {
	Suspension    vecmath.Vec3
	Mass          float64
	Approximation Approximation
	// RodLength of zero means the rod reaches exactly down to z = 0.
	RodLength float64
}

// Params holds the environment constants.
type Params struct {
	Gravity  float64
	Friction float64
	// ForceExponent n gives a magnetic force magnitude of strength/d^n.
	ForceExponent float64
}

func DefaultParams() Params {
	return Params{
		Gravity:       9.8,
		Friction:      0.2,
		ForceExponent: 2,
	}
}
