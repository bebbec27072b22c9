package physics

import (
	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// Kinetic returns ½ m |v|².
func (s *System) Kinetic(vel vecmath.Vec3) float64 {
	return 0.5 * s.pendulum.Mass * vecmath.LenSq(vel)
}

// Potential is the gravitational (or small-angle restoring) potential plus
// the magnetic potential at pos.
func (s *System) Potential(pos vecmath.Vec3) float64 {
	return s.model.restoringPotential(s, pos) + s.MagneticPotential(pos)
}

// Energy is the total mechanical energy of the state.
func (s *System) Energy(x dynamo.State) float64 {
	return s.Kinetic(x.Vel) + s.Potential(x.Pos)
}
