package physics

import (
	"math"
	"strconv"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// MinDistance floors bob-magnet distances in both force and potential.
const MinDistance = 1e-4

// System is a magnetic pendulum: a bob on a rod (or its small-angle
// replacement) swinging above a fixed set of magnets with linear drag.
// A System is immutable and safe for concurrent use.
type System struct {
	pendulum Pendulum
	magnets  []Magnet
	params   Params
	model    model

	stiffness float64 // m g / L
	lowest    float64 // z of the swing's lowest point
}

var (
	_ dynamo.System      = (*System)(nil)
	_ dynamo.Hamiltonian = (*System)(nil)
	_ dynamo.Constrainer = (*System)(nil)
)

// NewSystem validates the configuration and builds a System. The magnet
// slice is copied. A rod length of zero is derived from the suspension height.
func NewSystem(p Pendulum, magnets []Magnet, params Params) (*System, error) {
	if p.RodLength == 0 {
		p.RodLength = p.Suspension[2]
	}
	if err := validate(p, magnets, params); err != nil {
		return nil, err
	}

	log := dynamo.Logger()
	for i, m := range magnets {
		if m.Velocity != vecmath.Zero {
			log.Warn("magnet velocity is ignored; magnets are static", "magnet", i, "velocity", m.Velocity)
		}
	}

	return &System{
		pendulum:  p,
		magnets:   append([]Magnet(nil), magnets...),
		params:    params,
		model:     modelFor(p.Approximation),
		stiffness: p.Mass * params.Gravity / p.RodLength,
		lowest:    p.Suspension[2] - p.RodLength,
	}, nil
}

func validate(p Pendulum, magnets []Magnet, params Params) error {
	if !vecmath.IsFinite(p.Suspension) {
		return dynamo.Configf("pendulum.suspension_point", "must be finite")
	}
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return dynamo.Configf("pendulum.mass", "must be positive, got %g", p.Mass)
	}
	if p.Approximation != SmallAngle && p.Approximation != Rigour {
		return dynamo.Configf("pendulum.approximate", "unsupported mode %v", p.Approximation)
	}
	if !(p.RodLength > 0) || math.IsInf(p.RodLength, 0) {
		return dynamo.Configf("pendulum.rod_length", "must be positive, got %g", p.RodLength)
	}
	if !(params.Gravity > 0) {
		return dynamo.Configf("physics.gravity", "must be positive, got %g", params.Gravity)
	}
	if !(params.Friction >= 0) {
		return dynamo.Configf("physics.friction", "must be non-negative, got %g", params.Friction)
	}
	if !(params.ForceExponent > 0) {
		return dynamo.Configf("physics.force_exponent", "must be positive, got %g", params.ForceExponent)
	}
	if len(magnets) == 0 {
		return dynamo.Configf("magnets", "at least one magnet is required")
	}

	lowest := p.Suspension[2] - p.RodLength
	for i, m := range magnets {
		field := func(name string) string { return "magnets[" + strconv.Itoa(i) + "]." + name }
		if !(m.Strength > 0) || math.IsInf(m.Strength, 0) {
			return dynamo.Configf(field("strength"), "must be positive, got %g", m.Strength)
		}
		if m.Polarity != Positive && m.Polarity != Negative {
			return dynamo.Configf(field("direction"), "unsupported polarity %v", m.Polarity)
		}
		if !vecmath.IsFinite(m.Position) {
			return dynamo.Configf(field("position"), "must be finite")
		}
		// The bob never goes below its lowest point, so a magnet strictly
		// beneath it can never coincide with the bob.
		if m.Position[2] >= lowest {
			return dynamo.Configf(field("position"), "z=%g must lie below the swing's lowest point z=%g", m.Position[2], lowest)
		}
	}
	return nil
}

func (s *System) Pendulum() Pendulum { return s.pendulum }
func (s *System) Params() Params     { return s.params }

// Magnets returns a copy of the magnet set in index order.
func (s *System) Magnets() []Magnet { return append([]Magnet(nil), s.magnets...) }

func (s *System) NumMagnets() int      { return len(s.magnets) }
func (s *System) Magnet(i int) Magnet  { return s.magnets[i] }
func (s *System) RodLength() float64   { return s.pendulum.RodLength }
func (s *System) LowestPoint() float64 { return s.lowest }
func (s *System) Mode() Approximation  { return s.pendulum.Approximation }

// MagneticForce is the summed force all magnets exert on a bob at pos.
func (s *System) MagneticForce(pos vecmath.Vec3) vecmath.Vec3 {
	var f vecmath.Vec3
	n := s.params.ForceExponent
	for _, m := range s.magnets {
		r := m.Position.Sub(pos)
		d := r.Len()
		if d == 0 {
			continue
		}
		sd := math.Max(d, MinDistance)
		f = f.Add(r.Mul(m.Polarity.Sign() * m.Strength / (math.Pow(sd, n) * d)))
	}
	return f
}

// MagneticPotential is the potential whose negative gradient is MagneticForce.
func (s *System) MagneticPotential(pos vecmath.Vec3) float64 {
	pe := 0.0
	n := s.params.ForceExponent
	for _, m := range s.magnets {
		d := math.Max(pos.Sub(m.Position).Len(), MinDistance)
		c := m.Polarity.Sign() * m.Strength
		if n == 1 {
			pe += c * math.Log(d)
		} else {
			pe -= c / ((n - 1) * math.Pow(d, n-1))
		}
	}
	return pe
}

// Force is the net applied force on the bob: gravity (or the small-angle
// restoring force), magnetic attraction/repulsion, and linear drag.
func (s *System) Force(x dynamo.State) vecmath.Vec3 {
	f := s.model.restoring(s, x.Pos)
	f = f.Add(s.MagneticForce(x.Pos))
	return f.Sub(x.Vel.Mul(s.params.Friction))
}

// Derive returns (velocity, acceleration) for the state.
func (s *System) Derive(x dynamo.State) dynamo.State {
	acc := s.Force(x).Mul(1 / s.pendulum.Mass)
	return dynamo.State{Pos: x.Vel, Vel: s.model.accelerate(s, x, acc)}
}

// Constrain projects the state back onto the rod sphere and removes radial
// velocity in Rigour mode. It is the identity for SmallAngle.
func (s *System) Constrain(x dynamo.State) dynamo.State {
	return s.model.constrain(s, x)
}

// Lift maps a horizontal point to an initial bob position. In Rigour mode
// points beyond the rod's reach report false.
func (s *System) Lift(x, y float64) (vecmath.Vec3, bool) {
	return s.model.lift(s, x, y)
}
